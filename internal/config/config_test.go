package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/popup-apps/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "popup-apps.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultBackend, cfg.App.BackendURL)
	assert.Equal(t, DefaultSupervisor, cfg.App.SupervisorURL)
	assert.Equal(t, catalog.GroupBySource, cfg.App.GroupBy)
	assert.Equal(t, DefaultTimeout, cfg.App.Timeout)
	assert.Equal(t, DefaultRetries, cfg.App.Retries)
	assert.Zero(t, cfg.App.Refresh)
	assert.False(t, cfg.Logging.Trace)
	assert.NoError(t, Validate(cfg))
}

func TestLoadArgsFlags(t *testing.T) {
	args := []string{
		"--backend", "http://apps.local:8080/",
		"--supervisor", "https://sup.local",
		"--group-by", "Category",
		"--timeout", "3s",
		"--retries", "0",
		"--rate-limit", "2.5",
		"--refresh", "30s",
		"--open-command", "firefox --new-tab",
		"--width", "100",
		"--height", "40",
		"--footer",
		"--verbose",
		"--trace",
		"--log-file", "/tmp/popup.log",
	}
	cfg, err := LoadArgs(args, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://apps.local:8080", cfg.App.BackendURL)
	assert.Equal(t, "https://sup.local", cfg.App.SupervisorURL)
	assert.Equal(t, catalog.GroupByCategory, cfg.App.GroupBy)
	assert.Equal(t, 3*time.Second, cfg.App.Timeout)
	assert.Equal(t, 0, cfg.App.Retries)
	assert.Equal(t, 2.5, cfg.App.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.App.Refresh)
	assert.Equal(t, "firefox --new-tab", cfg.App.OpenCommand)
	assert.Equal(t, 100, cfg.App.Width)
	assert.Equal(t, 40, cfg.App.Height)
	assert.True(t, cfg.App.ShowFooter)
	assert.True(t, cfg.App.Verbose)
	assert.True(t, cfg.Logging.Trace)
	assert.Equal(t, "/tmp/popup.log", cfg.Logging.FilePath)
	assert.Equal(t, "category", cfg.Flags["groupBy"])
	assert.Equal(t, args, cfg.Args)
}

func TestLoadArgsEnvironment(t *testing.T) {
	env := []string{
		"POPUP_APPS_BACKEND=http://env-backend:5000",
		"POPUP_APPS_GROUP_BY=category",
		"POPUP_APPS_TIMEOUT=5s",
		"POPUP_APPS_TRACE=true",
		"POPUP_APPS_WIDTH=not-a-number",
		"MALFORMED",
	}
	cfg, err := LoadArgs(nil, env)
	require.NoError(t, err)
	assert.Equal(t, "http://env-backend:5000", cfg.App.BackendURL)
	assert.Equal(t, catalog.GroupByCategory, cfg.App.GroupBy)
	assert.Equal(t, 5*time.Second, cfg.App.Timeout)
	assert.True(t, cfg.Logging.Trace)
	assert.Equal(t, 0, cfg.App.Width, "malformed env values fall back")
}

func TestLoadArgsPrecedence(t *testing.T) {
	path := writeConfigFile(t, `
backend = "http://file-backend:5000"
supervisor = "http://file-supervisor:5500"
group_by = "category"
timeout = "7s"
retries = 5
footer = true
`)
	env := []string{
		"POPUP_APPS_CONFIG=" + path,
		"POPUP_APPS_SUPERVISOR=http://env-supervisor:5500",
		"POPUP_APPS_RETRIES=4",
	}
	cfg, err := LoadArgs([]string{"--retries", "1"}, env)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.File)
	assert.Equal(t, "http://file-backend:5000", cfg.App.BackendURL, "file beats default")
	assert.Equal(t, "http://env-supervisor:5500", cfg.App.SupervisorURL, "env beats file")
	assert.Equal(t, 1, cfg.App.Retries, "flag beats env")
	assert.Equal(t, catalog.GroupByCategory, cfg.App.GroupBy)
	assert.Equal(t, 7*time.Second, cfg.App.Timeout)
	assert.True(t, cfg.App.ShowFooter)
}

func TestLoadArgsConfigFlagOverridesEnvPath(t *testing.T) {
	flagPath := writeConfigFile(t, `backend = "http://from-flag-file:1"`)
	cfg, err := LoadArgs([]string{"--config", flagPath}, []string{"POPUP_APPS_CONFIG=/does/not/exist.toml"})
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag-file:1", cfg.App.BackendURL)
}

func TestLoadArgsErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		env  []string
	}{
		{name: "negative width", args: []string{"--width", "-1"}},
		{name: "negative height", args: []string{"--height", "-2"}},
		{name: "unknown group-by", args: []string{"--group-by", "author"}},
		{name: "unknown flag", args: []string{"--socket", "x"}},
		{name: "missing config file", env: []string{"POPUP_APPS_CONFIG=/does/not/exist.toml"}},
		{name: "bad file duration", args: []string{"--config", writeConfigFile(t, `timeout = "soon"`)}},
		{name: "bad toml", args: []string{"--config", writeConfigFile(t, `backend = `)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadArgs(tc.args, tc.env)
			assert.Error(t, err)
		})
	}
}

func TestValidate(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	require.NoError(t, err)

	bad := cfg
	bad.App.BackendURL = "localhost:5000"
	assert.ErrorContains(t, Validate(bad), "backend")

	bad = cfg
	bad.App.SupervisorURL = "ftp://host"
	assert.ErrorContains(t, Validate(bad), "supervisor")

	bad = cfg
	bad.App.Timeout = 0
	assert.ErrorContains(t, Validate(bad), "timeout")

	bad = cfg
	bad.App.Retries = -1
	bad.App.RateLimit = -1
	err = Validate(bad)
	assert.ErrorContains(t, err, "retries")
	assert.ErrorContains(t, err, "rate-limit")
}
