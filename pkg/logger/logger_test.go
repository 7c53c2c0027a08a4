package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthlens/pkg/logger"
)

func TestJSONLoggerScopesFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf})

	log.WithComponent("engine").
		WithRequestID("req-1").
		Info().Err(errors.New("boom")).Msg("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "hello", entry["message"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "warn", Format: "json", Output: &buf})

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestLevelNames(t *testing.T) {
	tests := []struct {
		level string
		debug bool
		warn  bool
	}{
		{"debug", true, true},
		{"WARNING", false, true},
		{"error", false, false},
		{"", false, true},
		{"loud", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.Config{Level: tt.level, Format: "json", Output: &buf})

			log.Debug().Msg("debug")
			assert.Equal(t, tt.debug, buf.Len() > 0)

			buf.Reset()
			log.Warn().Msg("warn")
			assert.Equal(t, tt.warn, buf.Len() > 0)
		})
	}
}

func TestNopLoggerWritesNothing(t *testing.T) {
	log := logger.NewNop()
	log.WithFields(map[string]any{"k": "v"}).Error().Msg("ignored")
}
