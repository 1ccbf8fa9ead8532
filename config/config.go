package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/KyleBrandon/mirror-server/internal/fixture"
	"github.com/KyleBrandon/mirror-server/pkg/server/weather"
)

const DefaultLogLevel = slog.LevelInfo

type Config struct {
	Fixture               fixture.FixtureConfig `json:"fixture"`
	Weather               weather.Config        `json:"weather"`
	OriginPatterns        []string              `json:"origin_patterns"`
	StatusIntervalSeconds int                   `json:"status_interval_seconds"`
}

func LoadConfigSettings(filename string) (Config, error) {
	var config Config
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}

	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return config, err
	}

	err = json.Unmarshal(bytes, &config)
	if err != nil {
		return config, err
	}

	return config, nil
}
