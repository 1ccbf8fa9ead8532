package sittings

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/KyleBrandon/mirror-server/internal/auth"
	"github.com/KyleBrandon/mirror-server/pkg/utils"
)

func NewHandler(service *Service, apiKey string) *Handler {
	return &Handler{
		service,
		apiKey,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/sittings", h.handleSittingsGet)
	mux.HandleFunc("POST /v1/sittings", auth.RequireApiKey(h.apiKey, h.handleSittingsCreate))
	mux.HandleFunc("GET /v1/sittings/stats", h.handleSittingsStats)
}

func (h *Handler) handleSittingsCreate(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handleSittingsCreate")
	defer slog.Debug("<<handleSittingsCreate")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body for sitting", err)
		return
	}

	defer r.Body.Close()

	var req CreateSittingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid body for sitting", err)
		return
	}

	sitting, err := h.service.SaveSitting(r.Context(), Sitting{StartTime: req.StartTime, EndTime: req.EndTime})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save the sitting", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, sitting)
}

func (h *Handler) handleSittingsGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handleSittingsGet")
	defer slog.Debug("<<handleSittingsGet")

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid 'start' parameter", err)
		return
	}

	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid 'end' parameter", err)
		return
	}

	sittings, err := h.service.ListSittings(r.Context(), start, end)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read the sittings", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, sittings)
}

func (h *Handler) handleSittingsStats(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handleSittingsStats")
	defer slog.Debug("<<handleSittingsStats")

	stats, err := h.service.GetSittingStatsLastWeek(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to read the sitting stats", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
}
