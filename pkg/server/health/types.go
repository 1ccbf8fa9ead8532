package health

import (
	"log/slog"
)

type (
	HealthResponse struct {
		Status   string `json:"status"`
		LogLevel string `json:"log_level"`
	}

	Handler struct {
		logger *slog.Logger
		level  *slog.LevelVar
	}
)
