package fixture

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/KyleBrandon/mirror-server/pkg/utils"
)

func NewMockFixture() *MockFixture {
	return &MockFixture{
		state: State{
			ID:         "mock",
			Label:      "Bathroom",
			Connected:  true,
			Power:      POWER_OFF,
			Brightness: 1.0,
			Color:      Color{Hue: 0, Saturation: 0, Kelvin: 3500},
		},
	}
}

func (m *MockFixture) GetState(ctx context.Context) (State, error) {
	slog.Debug(">>GetState")
	defer slog.Debug("<<GetState")

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state, nil
}

func (m *MockFixture) BreatheEffectRed(ctx context.Context) error {
	slog.Debug(">>BreatheEffectRed")
	defer slog.Debug("<<BreatheEffectRed")

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Power = POWER_ON
	m.state.Effect = "BREATHE"
	m.state.Color = Color{Hue: 0, Saturation: 1, Kelvin: 3500}

	return nil
}

// SetPower lets a developer flip the mock light when running without hardware.
func (m *MockFixture) SetPower(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if on {
		m.state.Power = POWER_ON
		return
	}

	m.state.Power = POWER_OFF
	m.state.Effect = ""
}

// RegisterRoutes exposes a debug route that flips the mock light, so the
// occupied/free transitions can be driven without a bulb.
func (m *MockFixture) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("PUT /v1/debug/fixture/power", m.handlePowerPut)
}

func (m *MockFixture) handlePowerPut(w http.ResponseWriter, r *http.Request) {
	slog.Debug(">>handlePowerPut")
	defer slog.Debug("<<handlePowerPut")

	on, err := strconv.ParseBool(r.URL.Query().Get("on"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid 'on' parameter", err)
		return
	}

	m.SetPower(on)

	utils.RespondWithNoContent(w, http.StatusNoContent)
}
