package fixture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

type breatheRequest struct {
	Color   string  `json:"color"`
	Period  float64 `json:"period"`
	Cycles  float64 `json:"cycles"`
	Persist bool    `json:"persist"`
	PowerOn bool    `json:"power_on"`
}

// GetState returns the first light that matches the configured selector.
func (f *LIFXFixture) GetState(ctx context.Context) (State, error) {
	slog.Debug(">>GetState")
	defer slog.Debug("<<GetState")

	endpoint := fmt.Sprintf("%s/lights/%s", f.config.BaseURL, url.PathEscape(f.config.Selector))

	body, err := f.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return State{}, err
	}

	var lights []State
	if err := json.Unmarshal(body, &lights); err != nil {
		return State{}, fmt.Errorf("failed to decode the light state: %w", err)
	}

	if len(lights) == 0 {
		return State{}, ErrFixtureNotFound
	}

	return lights[0], nil
}

// BreatheEffectRed makes the light breathe in the urgent color. The light is
// powered on for the effect and returns to its previous color afterwards.
func (f *LIFXFixture) BreatheEffectRed(ctx context.Context) error {
	slog.Debug(">>BreatheEffectRed")
	defer slog.Debug("<<BreatheEffectRed")

	endpoint := fmt.Sprintf("%s/lights/%s/effects/breathe", f.config.BaseURL, url.PathEscape(f.config.Selector))

	effect := breatheRequest{
		Color:   f.config.UrgentEffect.Color,
		Period:  f.config.UrgentEffect.Period,
		Cycles:  f.config.UrgentEffect.Cycles,
		Persist: false,
		PowerOn: true,
	}

	payload, err := json.Marshal(effect)
	if err != nil {
		return err
	}

	_, err = f.do(ctx, http.MethodPost, endpoint, payload)

	return err
}

func (f *LIFXFixture) do(ctx context.Context, method string, endpoint string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+f.token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fixture request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read the fixture response: %w", err)
	}

	// the effects endpoint answers 207 Multi-Status
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return body, nil
}
