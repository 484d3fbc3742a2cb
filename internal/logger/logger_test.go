package logger_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dine/backend/internal/logger"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logger.ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, logger.ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, logger.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("info"))
	assert.Equal(t, slog.LevelInfo, logger.ParseLevel("verbose"))
}

func TestNew_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, slog.LevelInfo, "json")

	log.Debug("hidden")
	log.Info("Connected to the database!", "uri", "mongodb://localhost:27017/dinedb")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Connected to the database!", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Contains(t, entry, "source")
}

func TestNew_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, slog.LevelInfo, "text")

	log.Info("Server is running on port 5000.")

	assert.Contains(t, buf.String(), `msg="Server is running on port 5000."`)
}
