package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/config"
)

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(config.LogConfig{Level: "info"}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown", "profile", "p-1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.Contains(t, buf.String(), "profile=p-1")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(config.LogConfig{Level: "debug", Format: "JSON"}, &buf)
	require.NoError(t, err)

	logger.Debug("hello", "n", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, &bytes.Buffer{})
	require.Error(t, err)

	_, err = New(config.LogConfig{Format: "xml"}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestSetup_File(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Log.Level = "info"

	logger, closer, err := Setup(cfg, true)
	require.NoError(t, err)

	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(cfg.DataDir, "vanaclone.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")

	info, err := os.Stat(cfg.LogFile())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSetup_Stderr(t *testing.T) {
	logger, closer, err := Setup(config.Default(), false)
	require.NoError(t, err)
	require.NotNil(t, logger)
	require.NoError(t, closer.Close())
}
