package bathroom

import (
	"strings"
	"time"

	"github.com/KyleBrandon/mirror-server/internal/fixture"
)

// red hues wrap around 0 on the 0-360 color wheel
const (
	redHueMargin     = 15.0
	redMinSaturation = 0.5
)

func convertFixtureState(state fixture.State, alertPending bool, checkedAt time.Time) BathroomResponse {
	resp := BathroomResponse{
		Brightness: state.Brightness,
		Color: ColorResponse{
			Hue:        state.Color.Hue,
			Saturation: state.Color.Saturation,
			Kelvin:     state.Color.Kelvin,
		},
		AlertPending: alertPending,
		CheckedAt:    checkedAt,
	}

	switch {
	case !state.Connected:
		resp.State = STATE_UNAVAILABLE
	case state.Power == fixture.POWER_ON:
		resp.State = STATE_OCCUPIED
		resp.Occupied = true
	default:
		resp.State = STATE_FREE
	}

	resp.Urgent = resp.Occupied && isEffectActive(state.Effect) && isRed(state.Color)

	return resp
}

func isEffectActive(effect string) bool {
	return len(effect) != 0 && !strings.EqualFold(effect, "OFF")
}

func isRed(c fixture.Color) bool {
	if c.Saturation < redMinSaturation {
		return false
	}

	return c.Hue <= redHueMargin || c.Hue >= 360-redHueMargin
}
