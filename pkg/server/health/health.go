package health

import (
	"log/slog"
	"net/http"

	"github.com/KyleBrandon/mirror-server/internal/auth"
	"github.com/KyleBrandon/mirror-server/pkg/utils"
)

func NewHandler(level *slog.LevelVar, logger *slog.Logger) *Handler {
	return &Handler{
		logger: logger,
		level:  level,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux, apiKey string) {
	mux.HandleFunc("GET /v1/health", h.handlerHealthGet)
	mux.HandleFunc("PUT /v1/health/log_level", auth.RequireApiKey(apiKey, h.handlerLogLevelPut))
}

func (h *Handler) handlerHealthGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handlerHealthGet")
	defer slog.Debug("<<handlerHealthGet")

	response := HealthResponse{
		Status:   "ok",
		LogLevel: h.level.Level().String(),
	}

	utils.RespondWithJSON(w, http.StatusOK, response)
}

// handlerLogLevelPut changes the level of the shared logger at runtime.
func (h *Handler) handlerLogLevelPut(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handlerLogLevelPut")
	defer slog.Debug("<<handlerLogLevelPut")

	level, err := utils.ParseLogLevel(r.URL.Query().Get("level"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid 'level' parameter", err)
		return
	}

	h.level.Set(level)
	h.logger.Info("Log level changed", "level", level.String())

	utils.RespondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok", LogLevel: level.String()})
}
