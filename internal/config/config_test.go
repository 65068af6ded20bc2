package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// emptyEnvFile keeps Load away from any .env in the working directory
func emptyEnvFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "empty.env")
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(emptyEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, "character", cfg.Sheet.KeyPrefix)
	assert.Equal(t, "default", cfg.Sheet.ID)
	assert.Equal(t, 150*time.Millisecond, cfg.Sheet.SaveDebounce)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache:6380/2")
	t.Setenv("SHEET_ID", "brakka")
	t.Setenv("SHEET_SAVE_DEBOUNCE", "1s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(emptyEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "redis://cache:6380/2", cfg.Redis.URL)
	assert.Equal(t, "brakka", cfg.Sheet.ID)
	assert.Equal(t, time.Second, cfg.Sheet.SaveDebounce)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.env")
	require.NoError(t, os.WriteFile(path, []byte("SHEET_KEY_PREFIX=sheet\n"), 0o600))
	t.Setenv("SHEET_KEY_PREFIX", "")
	require.NoError(t, os.Unsetenv("SHEET_KEY_PREFIX"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sheet", cfg.Sheet.KeyPrefix)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unparseable debounce", key: "SHEET_SAVE_DEBOUNCE", value: "soon"},
		{name: "zero debounce", key: "SHEET_SAVE_DEBOUNCE", value: "0s"},
		{name: "unknown format", key: "LOG_FORMAT", value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load(emptyEnvFile(t))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingNamedFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "typo.env"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
