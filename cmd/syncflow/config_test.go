package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syncflow/dashboard/internal/model"
)

func TestLoadConfig_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "http://"+model.DefaultMockAddr, cfg.APIURL)
	assert.Equal(t, model.DefaultLLMURL, cfg.LLMURL)
	assert.Equal(t, model.DefaultStreamInterval, cfg.StreamInterval)
	assert.Equal(t, model.DefaultInventoryInterval, cfg.InventoryInterval)
	assert.Equal(t, model.DefaultTailWindow, cfg.TailWindow)
	assert.Equal(t, filepath.Join(home, ".local", "share", "syncflow", "tasks.duckdb"), cfg.StorePath)
	assert.Empty(t, cfg.ConfigPath, "no config file exists")
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api-url: http://backend.internal:9000\n"+
			"tail-window: 50\n"+
			"stream-interval: 1s\n"+
			"store-path: ~/tasks.duckdb\n"+
			"reverse-scroll-wheel: true\n"), 0o644))
	t.Setenv("SYNCFLOW_STREAM_INTERVAL", "2s")

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://backend.internal:9000", cfg.APIURL)
	assert.Equal(t, 50, cfg.TailWindow)
	assert.Equal(t, 2*time.Second, cfg.StreamInterval, "env overrides the file")
	assert.Equal(t, filepath.Join(home, "tasks.duckdb"), cfg.StorePath)
	assert.True(t, cfg.ReverseScrollWheel)
	assert.Equal(t, path, cfg.ConfigPath)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"SYNCFLOW_API_URL":            "ftp://example.com",
		"SYNCFLOW_LLM_URL":            "localhost",
		"SYNCFLOW_TAIL_WINDOW":        "0",
		"SYNCFLOW_STREAM_INTERVAL":    "-1s",
		"SYNCFLOW_INVENTORY_INTERVAL": "0s",
		"SYNCFLOW_REQUEST_TIMEOUT":    "0s",
		"SYNCFLOW_MOCK_ADDR":          "no-port",
	}
	for env, value := range cases {
		t.Run(env, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			t.Setenv(env, value)
			_, err := loadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("api-url: [unterminated\n"), 0o644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}
