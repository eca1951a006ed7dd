package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starsieve/pkg/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"  DEBUG ", zerolog.DebugLevel},
		{"bogus", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, logging.ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&logging.Config{Level: "debug", Format: "json", Writer: &buf})

	log.Info().Str("stage", "load").Int("stars", 42).Msg("catalog loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "catalog loaded", entry["message"])
	assert.Equal(t, "load", entry["stage"])
	assert.Equal(t, float64(42), entry["stars"])
	assert.NotEmpty(t, entry["time"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(&logging.Config{Level: "warn", Format: "json", Writer: &buf})

	log.Debug().Msg("dropped line")
	log.Info().Msg("also dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}
