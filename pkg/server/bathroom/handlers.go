package bathroom

import (
	"log/slog"
	"net/http"

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
	mux.HandleFunc("GET /v1/bathroom", h.handleBathroomGet)
	mux.HandleFunc("POST /v1/bathroom/urgent", auth.RequireApiKey(h.apiKey, h.handleBathroomUrgent))
	mux.HandleFunc("POST /v1/bathroom/alert", auth.RequireApiKey(h.apiKey, h.handleBathroomAlert))
}

func (h *Handler) handleBathroomGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handleBathroomGet")
	defer slog.Debug("<<handleBathroomGet")

	resp, err := h.service.GetState(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "failed to read the bathroom state", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleBathroomUrgent(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handleBathroomUrgent")
	defer slog.Debug("<<handleBathroomUrgent")

	if err := h.service.SignalUrgent(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "failed to signal urgent", err)
		return
	}

	utils.RespondWithNoContent(w, http.StatusAccepted)
}

func (h *Handler) handleBathroomAlert(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handleBathroomAlert")
	defer slog.Debug("<<handleBathroomAlert")

	state := r.URL.Query().Get("state")

	if err := h.service.AlertIfRegistered(r.Context(), state); err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "failed to send the bathroom alert", err)
		return
	}

	utils.RespondWithNoContent(w, http.StatusNoContent)
}
