package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLogDir(t *testing.T, dir string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	return string(data)
}

func TestInitLogging_FiltersBelowLevel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitLogging(&LogConfig{LogDir: dir, LogLevel: WARNING}))
	t.Cleanup(Discard)

	InfoLogger.Printf("page rendered")
	DebugLogger.Printf("tree built")
	WarningLogger.Printf("unhandled request GET /api/unknown")
	ErrorLogger.Printf("listener closed")
	Close()

	out := readLogDir(t, dir)
	assert.NotContains(t, out, "page rendered")
	assert.NotContains(t, out, "tree built")
	assert.Contains(t, out, "WARNING: ")
	assert.Contains(t, out, "unhandled request GET /api/unknown")
	assert.Contains(t, out, "ERROR: ")
	assert.Contains(t, out, "listener closed")
}

func TestLog_IncludesCaller(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, InitLogging(&LogConfig{LogDir: dir, LogLevel: DEBUG}))
	t.Cleanup(Discard)

	Log(INFO, "server listening on %s", ":3000")
	Close()

	out := readLogDir(t, dir)
	assert.Contains(t, out, "INFO: ")
	assert.Contains(t, out, "logging_test.go:")
	assert.Contains(t, out, "server listening on :3000")
}

func TestInitLogging_DefaultsToStdout(t *testing.T) {
	require.NoError(t, InitLogging(nil))
	t.Cleanup(Discard)

	assert.Nil(t, logFile)
	assert.Nil(t, stopRotate)
}

func TestInitLogging_BadDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	err := InitLogging(&LogConfig{LogDir: filepath.Join(file, "logs")})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected LogLevel
		wantErr  bool
	}{
		{"debug", DEBUG, false},
		{"INFO", INFO, false},
		{"", INFO, false},
		{"warn", WARNING, false},
		{" Warning ", WARNING, false},
		{"error", ERROR, false},
		{"trace", INFO, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, level)
		})
	}
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "WARNING", WARNING.String())
	assert.Equal(t, "LogLevel(9)", LogLevel(9).String())
}
