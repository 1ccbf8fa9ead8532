package status

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

func NewHandler(bathroom BathroomState, originPatterns []string, interval time.Duration) *Handler {
	if interval <= 0 {
		interval = DEFAULT_STATUS_INTERVAL
	}

	return &Handler{
		bathroom:          bathroom,
		originPatterns:    originPatterns,
		interval:          interval,
		heartbeatInterval: 30 * time.Second,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/status/ws", h.handleStatusWS)
}

func (h *Handler) handleStatusWS(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handleWS: new incoming connection")
	defer slog.Debug("<<handleWS")

	opts := &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	}
	c, err := websocket.Accept(w, r, opts)
	if err != nil {
		slog.Error("websocket accept error:", "error", err)
		return
	}

	defer c.Close(websocket.StatusInternalError, "Unexpected connection close")

	ctx := c.CloseRead(r.Context())

	h.monitorStatus(ctx, c)
}

// monitorStatus pushes the bathroom state to the client until it disconnects.
// The state is read fresh for every message.
func (h *Handler) monitorStatus(ctx context.Context, c *websocket.Conn) {
	slog.Debug(">>monitorStatus")
	defer slog.Debug("<<monitorStatus")

	ticker := time.NewTicker(h.interval)
	heartbeatTicker := time.NewTicker(h.heartbeatInterval)
	defer ticker.Stop()
	defer heartbeatTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("monitorStatus: client disconnected")
			c.Close(websocket.StatusNormalClosure, "Connection closed")
			return

		case <-ticker.C:
			status := h.buildSystemStatus(ctx)

			err := wsjson.Write(ctx, c, status)
			if err != nil {
				slog.Error("monitorStatus: error writing to client", "error", err)
				c.Close(websocket.StatusInternalError, "error writing status")
				return
			}

		case <-heartbeatTicker.C:
			err := c.Ping(ctx)
			if err != nil {
				slog.Error("monitorStatus: error sending ping", "error", err)
				c.Close(websocket.StatusInternalError, "error sending ping")
				return
			}
		}
	}
}

func (h *Handler) buildSystemStatus(ctx context.Context) SystemStatus {
	status := SystemStatus{
		ErrorMessages: make([]string, 0),
	}

	state, err := h.bathroom.GetState(ctx)
	if err != nil {
		status.ErrorMessages = append(status.ErrorMessages, err.Error())
		return status
	}

	status.Bathroom = &state

	return status
}
