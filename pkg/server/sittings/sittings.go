package sittings

import (
	"context"
	"log/slog"
	"time"

	"github.com/KyleBrandon/mirror-server/internal/database"
)

func NewService(store SittingStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SaveSitting stores the sitting as given. The start is not checked against the end.
func (s *Service) SaveSitting(ctx context.Context, sitting Sitting) (Sitting, error) {
	s.logger.Info("Logging sitting", "start_time", sitting.StartTime, "end_time", sitting.EndTime)

	params := database.InsertSittingParams{
		StartTime: sitting.StartTime,
		EndTime:   sitting.EndTime,
	}

	dbSitting, err := s.store.InsertSitting(ctx, params)
	if err != nil {
		return Sitting{}, err
	}

	return databaseSittingToSitting(dbSitting), nil
}

// ListSittings returns the sittings that overlap [start, end).
func (s *Service) ListSittings(ctx context.Context, start, end time.Time) ([]Sitting, error) {
	params := database.GetSittingsInRangeParams{
		StartTime: start,
		EndTime:   end,
	}

	dbSittings, err := s.store.GetSittingsInRange(ctx, params)
	if err != nil {
		return nil, err
	}

	return databaseSittingsToSittings(dbSittings), nil
}

// GetSittingStatsLastWeek aggregates the seven full days before today. Today
// starts at local midnight of the wall clock at call time.
func (s *Service) GetSittingStatsLastWeek(ctx context.Context) (SittingStatsResponse, error) {
	start, end := lastWeekWindow(s.now())
	s.logger.Debug("Getting sitting stats", "start_time", start, "end_time", end)

	sittings, err := s.ListSittings(ctx, start, end)
	if err != nil {
		return SittingStatsResponse{}, err
	}

	return buildSittingStats(start, end, sittings), nil
}

func lastWeekWindow(now time.Time) (time.Time, time.Time) {
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -StatsWindowDays)

	return start, end
}

// buildSittingStats buckets each sitting by the day it started on. A sitting that
// started before the window counts towards the first day.
func buildSittingStats(start, end time.Time, sittings []Sitting) SittingStatsResponse {
	resp := SittingStatsResponse{
		StartTime: start,
		EndTime:   end,
		Count:     len(sittings),
		Days:      make([]DayStats, 0, StatsWindowDays),
	}

	dayStarts := make([]time.Time, 0, StatsWindowDays)
	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		dayStarts = append(dayStarts, day)
		resp.Days = append(resp.Days, DayStats{Date: day.Format(dayFormat)})
	}

	for i, sitting := range sittings {
		seconds := sitting.EndTime.Sub(sitting.StartTime).Seconds()

		resp.TotalSeconds += seconds
		if i == 0 || seconds > resp.LongestSeconds {
			resp.LongestSeconds = seconds
		}
		if i == 0 || seconds < resp.ShortestSeconds {
			resp.ShortestSeconds = seconds
		}

		bucket := 0
		for d, dayStart := range dayStarts {
			if !sitting.StartTime.Before(dayStart) {
				bucket = d
			}
		}

		if len(resp.Days) != 0 {
			resp.Days[bucket].Count++
			resp.Days[bucket].TotalSeconds += seconds
		}
	}

	if resp.Count != 0 {
		resp.AverageSeconds = resp.TotalSeconds / float64(resp.Count)
	}

	return resp
}

func databaseSittingToSitting(db database.Sitting) Sitting {
	return Sitting{
		ID:        db.ID,
		StartTime: db.StartTime,
		EndTime:   db.EndTime,
	}
}

func databaseSittingsToSittings(dbSittings []database.Sitting) []Sitting {
	results := make([]Sitting, 0, len(dbSittings))
	for _, db := range dbSittings {
		results = append(results, databaseSittingToSitting(db))
	}

	return results
}
