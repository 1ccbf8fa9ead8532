package utils

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	t.Run("parse known levels regardless of case", func(t *testing.T) {
		levels := map[string]slog.Level{
			"debug":   slog.LevelDebug,
			"INFO":    slog.LevelInfo,
			" warn ":  slog.LevelWarn,
			"warning": slog.LevelWarn,
			"Error":   slog.LevelError,
		}

		for in, want := range levels {
			got, err := ParseLogLevel(in)
			assert.NoError(t, err, in)
			assert.Equal(t, want, got, in)
		}
	})

	t.Run("unknown level falls back to info with an error", func(t *testing.T) {
		got, err := ParseLogLevel("verbose")
		assert.Error(t, err)
		assert.Equal(t, slog.LevelInfo, got)
	})
}
