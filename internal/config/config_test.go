package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("STOCKDESK_CONFIG_DIR", dir)
	chdir(t, t.TempDir())
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Auth.LoginTimeout)
	assert.Equal(t, "file", cfg.Session.Backend)
	assert.Equal(t, "auth", cfg.Session.Slot)
	assert.Equal(t, dir, cfg.Session.Dir)
	assert.Equal(t, "/login", cfg.Guard.ForbiddenRedirect)
	assert.Equal(t, 10, cfg.Stock.LowThreshold)
	assert.Equal(t, 8470, cfg.Web.Port)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "DH", cfg.Display.Currency)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://inventory:9000\nauth:\n  login_timeout: 3s\nstock:\n  low_threshold: 5\n"), 0o600))
	t.Setenv("STOCKDESK_SESSION_BACKEND", "memory")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://inventory:9000", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Auth.LoginTimeout)
	assert.Equal(t, 5, cfg.Stock.LowThreshold)
	assert.Equal(t, "memory", cfg.Session.Backend)
}

func TestLoadExplicitFileMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"STOCKDESK_SESSION_BACKEND":          "redis",
		"STOCKDESK_GUARD_FORBIDDEN_REDIRECT": "/nowhere",
		"STOCKDESK_STOCK_LOW_THRESHOLD":      "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv(key, value)
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
