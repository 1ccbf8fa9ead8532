package weather

import (
	"log/slog"
	"net/http"

	"github.com/KyleBrandon/mirror-server/pkg/utils"
)

func NewHandler(client *Client) *Handler {
	return &Handler{
		client,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/weather", h.handleWeatherGet)
}

func (h *Handler) handleWeatherGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handleWeatherGet")
	defer slog.Debug("<<handleWeatherGet")

	latLong := r.URL.Query().Get("latlong")
	if latLong == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing 'latlong' parameter", nil)
		return
	}

	forecast, err := h.client.GetForecast(r.Context(), latLong)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "failed to fetch the weather forecast", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, forecast)
}
