package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"", zerolog.InfoLevel},
		{"debug", zerolog.DebugLevel},
		{" INFO ", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"off", zerolog.Disabled},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			level, err := ParseLevel(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, level)
		})
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("rovers-test", Config{Level: "debug", Format: "json", Out: &buf})
	require.NoError(t, err)

	logger.Debug().Int("rovers", 2).Msg("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rovers-test", entry["app"])
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, float64(2), entry["rovers"])
	assert.Contains(t, entry, "time")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("rovers-test", Config{Level: "warn", Format: "json", Out: &buf})
	require.NoError(t, err)

	logger.Info().Msg("quiet")
	assert.Empty(t, buf.String())

	logger.Warn().Msg("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestNew_Console(t *testing.T) {
	t.Setenv(EnvLogNoColor, "1")
	var buf bytes.Buffer
	logger, err := New("rovers-test", Config{Format: "console", Out: &buf})
	require.NoError(t, err)

	logger.Info().Msg("plateau ready")
	assert.Contains(t, buf.String(), "INF")
	assert.Contains(t, buf.String(), "plateau ready")
}

func TestNew_Errors(t *testing.T) {
	_, err := New("x", Config{Level: "chatty"})
	assert.Error(t, err)

	_, err = New("x", Config{Format: "xml"})
	assert.Error(t, err)
}
