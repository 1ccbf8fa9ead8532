package fixture

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	POWER_ON  string = "on"
	POWER_OFF string = "off"

	DEFAULT_BASE_URL        string  = "https://api.lifx.com/v1"
	DEFAULT_SELECTOR        string  = "all"
	DEFAULT_URGENT_COLOR    string  = "red"
	DEFAULT_URGENT_PERIOD   float64 = 2
	DEFAULT_URGENT_CYCLES   float64 = 30
	DEFAULT_TIMEOUT_SECONDS int     = 10
)

var ErrFixtureNotFound = errors.New("no light matched the fixture selector")

type (
	// FixtureConfig is read from the "fixture" section of the config file.
	FixtureConfig struct {
		BaseURL        string       `json:"base_url"`
		Selector       string       `json:"selector"`
		TimeoutSeconds int          `json:"timeout_seconds"`
		UrgentEffect   EffectConfig `json:"urgent_effect"`
	}

	EffectConfig struct {
		Color  string  `json:"color"`
		Period float64 `json:"period"`
		Cycles float64 `json:"cycles"`
	}

	Color struct {
		Hue        float64 `json:"hue"`
		Saturation float64 `json:"saturation"`
		Kelvin     int     `json:"kelvin"`
	}

	// State is a snapshot of the light as reported by the bridge.
	State struct {
		ID         string  `json:"id"`
		Label      string  `json:"label"`
		Connected  bool    `json:"connected"`
		Power      string  `json:"power"`
		Brightness float64 `json:"brightness"`
		Color      Color   `json:"color"`
		Effect     string  `json:"effect,omitempty"`
	}

	Fixture interface {
		GetState(ctx context.Context) (State, error)
		BreatheEffectRed(ctx context.Context) error
	}

	LIFXFixture struct {
		config FixtureConfig
		token  string
		client *http.Client
	}

	MockFixture struct {
		mu    sync.Mutex
		state State
	}

	// StatusError is returned when the bridge answers with a non-2xx status.
	StatusError struct {
		StatusCode int
		Body       string
	}
)

func (e *StatusError) Error() string {
	return fmt.Sprintf("fixture request failed with status %d: %s", e.StatusCode, e.Body)
}

func (c FixtureConfig) timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
