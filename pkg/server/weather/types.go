package weather

import (
	"context"
	"log/slog"
)

const (
	DEFAULT_HOST            = "https://api.darksky.net"
	DEFAULT_ENDPOINT        = "forecast"
	DEFAULT_PARAMS          = "exclude=flags,minutely&units=si"
	DEFAULT_TIMEOUT_SECONDS = 10

	urlPattern = "%s/%s/%s/%s?%s"
)

type (
	// Config is fixed for the lifetime of a Client.
	Config struct {
		Host           string `json:"host"`
		Endpoint       string `json:"endpoint"`
		Params         string `json:"params"`
		TimeoutSeconds int    `json:"timeout_seconds"`
		APIKey         string `json:"-"`
	}

	Transport interface {
		Get(ctx context.Context, url string) (int, []byte, error)
	}

	Client struct {
		config    Config
		transport Transport
		logger    *slog.Logger
	}

	Handler struct {
		client *Client
	}

	DataPoint struct {
		Time                int64   `json:"time"`
		Summary             string  `json:"summary,omitempty"`
		Icon                string  `json:"icon,omitempty"`
		SunriseTime         int64   `json:"sunriseTime,omitempty"`
		SunsetTime          int64   `json:"sunsetTime,omitempty"`
		MoonPhase           float64 `json:"moonPhase,omitempty"`
		PrecipIntensity     float64 `json:"precipIntensity,omitempty"`
		PrecipProbability   float64 `json:"precipProbability,omitempty"`
		PrecipType          string  `json:"precipType,omitempty"`
		Temperature         float64 `json:"temperature,omitempty"`
		ApparentTemperature float64 `json:"apparentTemperature,omitempty"`
		TemperatureHigh     float64 `json:"temperatureHigh,omitempty"`
		TemperatureLow      float64 `json:"temperatureLow,omitempty"`
		TemperatureMin      float64 `json:"temperatureMin,omitempty"`
		TemperatureMax      float64 `json:"temperatureMax,omitempty"`
		DewPoint            float64 `json:"dewPoint,omitempty"`
		Humidity            float64 `json:"humidity,omitempty"`
		Pressure            float64 `json:"pressure,omitempty"`
		WindSpeed           float64 `json:"windSpeed,omitempty"`
		WindGust            float64 `json:"windGust,omitempty"`
		WindBearing         float64 `json:"windBearing,omitempty"`
		CloudCover          float64 `json:"cloudCover,omitempty"`
		UVIndex             float64 `json:"uvIndex,omitempty"`
		Visibility          float64 `json:"visibility,omitempty"`
	}

	DataBlock struct {
		Summary string      `json:"summary,omitempty"`
		Icon    string      `json:"icon,omitempty"`
		Data    []DataPoint `json:"data,omitempty"`
	}

	Alert struct {
		Title       string   `json:"title"`
		Regions     []string `json:"regions,omitempty"`
		Severity    string   `json:"severity,omitempty"`
		Time        int64    `json:"time"`
		Expires     int64    `json:"expires,omitempty"`
		Description string   `json:"description,omitempty"`
		URI         string   `json:"uri,omitempty"`
	}

	// ForecastResponse mirrors the forecast API reply. The zero value is returned
	// when the API answers with a non-200 status.
	ForecastResponse struct {
		Latitude  float64    `json:"latitude"`
		Longitude float64    `json:"longitude"`
		Timezone  string     `json:"timezone"`
		Offset    float64    `json:"offset"`
		Currently *DataPoint `json:"currently,omitempty"`
		Hourly    *DataBlock `json:"hourly,omitempty"`
		Daily     *DataBlock `json:"daily,omitempty"`
		Alerts    []Alert    `json:"alerts,omitempty"`
	}
)

func (f ForecastResponse) IsEmpty() bool {
	return f.Timezone == "" && f.Currently == nil && f.Hourly == nil && f.Daily == nil && len(f.Alerts) == 0
}
