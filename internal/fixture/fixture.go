package fixture

import (
	"log/slog"
	"net/http"
)

// NewFixture returns the fixture the server talks to. A mock fixture is used when
// useMock is set so the server can run without a bulb.
func NewFixture(config FixtureConfig, token string, useMock bool) Fixture {
	slog.Debug("NewFixture")

	config = applyDefaults(config)

	if useMock {
		slog.Info("Using the mock fixture")
		return NewMockFixture()
	}

	return &LIFXFixture{
		config: config,
		token:  token,
		client: &http.Client{Timeout: config.timeout()},
	}
}

func applyDefaults(config FixtureConfig) FixtureConfig {
	if len(config.BaseURL) == 0 {
		config.BaseURL = DEFAULT_BASE_URL
	}
	if len(config.Selector) == 0 {
		config.Selector = DEFAULT_SELECTOR
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = DEFAULT_TIMEOUT_SECONDS
	}
	if len(config.UrgentEffect.Color) == 0 {
		config.UrgentEffect.Color = DEFAULT_URGENT_COLOR
	}
	if config.UrgentEffect.Period <= 0 {
		config.UrgentEffect.Period = DEFAULT_URGENT_PERIOD
	}
	if config.UrgentEffect.Cycles <= 0 {
		config.UrgentEffect.Cycles = DEFAULT_URGENT_CYCLES
	}

	return config
}
