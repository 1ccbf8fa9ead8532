package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// HTTPTransport issues plain GET requests.
type HTTPTransport struct {
	client *http.Client
}

func NewHTTPTransport(timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{client: &http.Client{Timeout: timeout}}
}

func (t *HTTPTransport) Get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, body, nil
}

// NewClient fills unset config values with the defaults. A nil transport uses
// an HTTPTransport with the configured timeout.
func NewClient(config Config, transport Transport, logger *slog.Logger) *Client {
	if len(config.Host) == 0 {
		config.Host = DEFAULT_HOST
	}
	if len(config.Endpoint) == 0 {
		config.Endpoint = DEFAULT_ENDPOINT
	}
	if len(config.Params) == 0 {
		config.Params = DEFAULT_PARAMS
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = DEFAULT_TIMEOUT_SECONDS
	}

	if transport == nil {
		transport = NewHTTPTransport(time.Duration(config.TimeoutSeconds) * time.Second)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config:    config,
		transport: transport,
		logger:    logger,
	}
}

// GetForecast returns the forecast for a "latitude,longitude" pair. A non-200
// reply is logged and an empty ForecastResponse is returned without an error.
func (c *Client) GetForecast(ctx context.Context, latLong string) (ForecastResponse, error) {
	status, body, err := c.transport.Get(ctx, c.buildURL(latLong))
	if err != nil {
		return ForecastResponse{}, fmt.Errorf("weather forecast request failed: %w", err)
	}

	if status != http.StatusOK {
		c.logger.Warn("Weather forecast http call failed", "status", status, "reason", http.StatusText(status))
		return ForecastResponse{}, nil
	}

	var forecast ForecastResponse
	if err := json.Unmarshal(body, &forecast); err != nil {
		return ForecastResponse{}, fmt.Errorf("failed to decode the weather forecast: %w", err)
	}

	return forecast, nil
}

func (c *Client) buildURL(latLong string) string {
	return fmt.Sprintf(urlPattern, c.config.Host, c.config.Endpoint, c.config.APIKey, latLong, c.config.Params)
}
