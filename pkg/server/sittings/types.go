package sittings

import (
	"context"
	"log/slog"
	"time"

	"github.com/KyleBrandon/mirror-server/internal/database"
	"github.com/google/uuid"
)

const (
	StatsWindowDays = 7
	dayFormat       = "2006-01-02"
)

type (
	Sitting struct {
		ID        uuid.UUID `json:"id,omitempty"`
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
	}

	CreateSittingRequest struct {
		StartTime time.Time `json:"start_time"`
		EndTime   time.Time `json:"end_time"`
	}

	DayStats struct {
		Date         string  `json:"date"`
		Count        int     `json:"count"`
		TotalSeconds float64 `json:"total_seconds"`
	}

	SittingStatsResponse struct {
		StartTime       time.Time  `json:"start_time"`
		EndTime         time.Time  `json:"end_time"`
		Count           int        `json:"count"`
		TotalSeconds    float64    `json:"total_seconds"`
		AverageSeconds  float64    `json:"average_seconds"`
		LongestSeconds  float64    `json:"longest_seconds"`
		ShortestSeconds float64    `json:"shortest_seconds"`
		Days            []DayStats `json:"days"`
	}

	SittingStore interface {
		InsertSitting(ctx context.Context, arg database.InsertSittingParams) (database.Sitting, error)
		GetSittingsInRange(ctx context.Context, arg database.GetSittingsInRangeParams) ([]database.Sitting, error)
	}

	Service struct {
		store  SittingStore
		logger *slog.Logger
		now    func() time.Time
	}

	Handler struct {
		service *Service
		apiKey  string
	}
)
