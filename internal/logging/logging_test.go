package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"stdout only", Config{Level: "info"}, false},
		{"json file", Config{Level: "debug", Format: "json", File: "x.log", MaxSize: 10}, false},
		{"bad level", Config{Level: "loud"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
		{"file without size", Config{Level: "info", File: "x.log"}, true},
		{"negative backups", Config{Level: "info", MaxBackups: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, &Config{Level: LevelWarn})

	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)
	logger.Error("shown %d", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[WARN]")
	assert.Contains(t, out, "shown 2")
	assert.Contains(t, out, "shown 3")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, &Config{Level: LevelInfo, Format: FormatJSON})

	logger.Error("relay failed: %s", "boom")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "relay failed: boom", entry["message"])
}

func TestJSONLoggerLeavesZerologGlobalsAlone(t *testing.T) {
	prev := zerolog.TimeFieldFormat
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	t.Cleanup(func() { zerolog.TimeFieldFormat = prev })

	NewWriterLogger(io.Discard, &Config{Level: LevelInfo, Format: FormatJSON})
	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
}

func TestGetGlobalLoggerDefaultsToNop(t *testing.T) {
	SetGlobalLogger(nil)
	logger := GetGlobalLogger()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() { logger.Error("nothing to see") })
}
