package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, name := range []string{"API_KEY", "GEMINI_API_KEY", "VANACLONE_AI_API_KEY", "VANACLONE_DATA_DIR", "VANACLONE_BACKEND", "VANACLONE_LOG_LEVEL", "VANACLONE_WEB_PORT", "VANACLONE_AI_TIMEOUT"} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("VANACLONE_DATA_DIR", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "bolt", cfg.Backend)
	assert.Equal(t, store.BackendBolt, cfg.StoreBackend())
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
	assert.Equal(t, 30*time.Second, cfg.AI.Timeout)
	assert.Empty(t, cfg.AI.APIKey)
	assert.Empty(t, cfg.AI.KeySource)
	assert.Equal(t, "127.0.0.1:8790", cfg.WebAddr())
	assert.Equal(t, filepath.Join(cfg.DataDir, "vanaclone.log"), cfg.LogFile())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	t.Setenv("VANACLONE_DATA_DIR", dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
backend = "sqlite"

[log]
level = "debug"
format = "json"

[ai]
api_key = "from-file"
timeout = "5s"
rate_limit = 0.5

[web]
port = 9000
`), 0600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "from-file", cfg.AI.APIKey)
	assert.Equal(t, "config", cfg.AI.KeySource)
	assert.Equal(t, 5*time.Second, cfg.AI.Timeout)
	assert.InDelta(t, 0.5, cfg.AI.RateLimit, 1e-9)
	assert.Equal(t, 9000, cfg.Web.Port)
	assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model, "keys missing from the file keep defaults")

	t.Setenv("VANACLONE_WEB_PORT", "9100")
	t.Setenv("VANACLONE_AI_TIMEOUT", "10s")
	t.Setenv("GEMINI_API_KEY", "from-gemini-env")

	cfg, err = Load("")
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Web.Port)
	assert.Equal(t, 10*time.Second, cfg.AI.Timeout)
	assert.Equal(t, "from-gemini-env", cfg.AI.APIKey)
	assert.Equal(t, "GEMINI_API_KEY", cfg.AI.KeySource)

	t.Setenv("VANACLONE_AI_API_KEY", "from-prefixed-env")

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-prefixed-env", cfg.AI.APIKey)
	assert.Equal(t, "VANACLONE_AI_API_KEY", cfg.AI.KeySource)
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		toml string
	}{
		{"backend", `backend = "redis"`},
		{"level", "[log]\nlevel = \"loud\""},
		{"format", "[log]\nformat = \"xml\""},
		{"port", "[web]\nport = 70000"},
		{"syntax", `backend = `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			path := filepath.Join(t.TempDir(), "c.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.toml), 0600))

			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLevel("trace")
	require.Error(t, err)
}

func TestWrite_OmitsAPIKey(t *testing.T) {
	cfg := Default()
	cfg.AI.APIKey = "secret"

	var buf bytes.Buffer
	require.NoError(t, cfg.Write(&buf))

	assert.NotContains(t, buf.String(), "secret")
	assert.Contains(t, buf.String(), "[ai]")
	assert.Equal(t, "secret", cfg.AI.APIKey)
}

func TestSuggestOptions(t *testing.T) {
	cfg := Default()
	cfg.AI.APIKey = "k"

	opts := cfg.SuggestOptions(nil)
	assert.Equal(t, "k", opts.APIKey)
	assert.Equal(t, cfg.AI.Model, opts.Model)
	assert.Equal(t, cfg.AI.Retries, opts.Retries)
}
