package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"trace", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSetupWritesJSONLines(t *testing.T) {
	dir := t.TempDir()
	cleanup, err := Setup(Config{Dir: dir, Level: "info"})
	require.NoError(t, err)

	require.NoError(t, IsReady())
	assert.Equal(t, filepath.Join(dir, "logs", FileName), Path())

	L().Info("fleet.saved", "ships", 2)
	L().Debug("hidden")
	require.NoError(t, cleanup())

	assert.Error(t, IsReady())
	assert.Empty(t, Path())

	data, err := os.ReadFile(filepath.Join(dir, "logs", FileName))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "fleet.saved", rec["msg"])
	assert.Equal(t, float64(2), rec["ships"])
	assert.True(t, strings.HasSuffix(rec["time"].(string), "Z"))
}

func TestSetupDebugOverridesLevel(t *testing.T) {
	dir := t.TempDir()
	cleanup, err := Setup(Config{Dir: dir, Level: "error", Debug: true})
	require.NoError(t, err)
	L().Debug("visible")
	require.NoError(t, cleanup())

	data, err := os.ReadFile(filepath.Join(dir, "logs", FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "visible")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	_, err := Setup(Config{Dir: t.TempDir(), Level: "loud"})
	assert.Error(t, err)
}

func TestNewHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler(&buf, slog.LevelWarn, false))
	l.Info("quiet")
	l.Warn("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
}
