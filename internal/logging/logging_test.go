package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tubesort/internal/logging"
)

func TestNewWriter_Text(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.NewWriter(&buf, slog.LevelInfo, "text")
	require.NoError(t, err)

	log.Debug("hidden")
	log.Warn("solve aborted", "error", errors.New("boom"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "err=boom")
	assert.NotContains(t, out, "error=")
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.NewWriter(&buf, slog.LevelDebug, "JSON")
	require.NoError(t, err)
	log.Debug("frontier advanced", "depth", 3)
	assert.Contains(t, buf.String(), `"depth":3`)
}

func TestNewWriter_BadFormat(t *testing.T) {
	_, err := logging.NewWriter(&bytes.Buffer{}, slog.LevelInfo, "xml")
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := logging.ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	assert.NotPanics(t, func() { logging.NewNop().Error("ignored") })
}
