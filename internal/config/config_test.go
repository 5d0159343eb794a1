package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(APIURLEnv, "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != PlaceholderURL {
		t.Fatalf("APIURL = %q, want placeholder", cfg.APIURL)
	}
	if cfg.IsConfigured() {
		t.Fatalf("IsConfigured() = true for placeholder URL")
	}
	if cfg.Timeout != defaultTimeout {
		t.Fatalf("Timeout = %v, want %v", cfg.Timeout, defaultTimeout)
	}
	if cfg.RefreshInterval != 0 {
		t.Fatalf("RefreshInterval = %v, want 0", cfg.RefreshInterval)
	}
	if !strings.HasPrefix(cfg.Log.File, home) {
		t.Fatalf("Log.File = %q, want it under HOME %q", cfg.Log.File, home)
	}
	if cfg.WebListen != defaultWebListen {
		t.Fatalf("WebListen = %q, want %q", cfg.WebListen, defaultWebListen)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(APIURLEnv, "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
api_url = "  https://example.com/exec  "
refresh_seconds = 60
timeout_seconds = 5

[log]
level = "debug"
file = "  ~/logs/dash.log  "
format = "text"

[web]
listen = ":9090"
allowed_origins = [" https://grafana.example.com ", ""]
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://example.com/exec" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if !cfg.IsConfigured() {
		t.Fatalf("IsConfigured() = false, want true")
	}
	if cfg.RefreshInterval != time.Minute || cfg.Timeout != 5*time.Second {
		t.Fatalf("intervals = %v/%v, want 1m/5s", cfg.RefreshInterval, cfg.Timeout)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Fatalf("Log = %#v", cfg.Log)
	}
	if cfg.Log.File != filepath.Join(home, "logs/dash.log") {
		t.Fatalf("Log.File = %q", cfg.Log.File)
	}
	if cfg.WebListen != ":9090" {
		t.Fatalf("WebListen = %q", cfg.WebListen)
	}
	if len(cfg.WebOrigins) != 1 || cfg.WebOrigins[0] != "https://grafana.example.com" {
		t.Fatalf("WebOrigins = %q", cfg.WebOrigins)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(APIURLEnv, "https://env.example.com/exec")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = "https://file.example.com/exec"`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "https://env.example.com/exec" {
		t.Fatalf("APIURL = %q, want env value", cfg.APIURL)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	cases := map[string]string{
		"bad toml":         `api_url = [`,
		"negative refresh": `refresh_seconds = -1`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("Load error = %v, want parse config error", err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if want := filepath.Join(home, "a/b"); got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error for blank path")
	}
}

func TestPrefs_RoundTripAndDegradation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "prefs.toml")

	if got := LoadPrefs(path); got.Theme != defaultTheme {
		t.Fatalf("LoadPrefs(missing).Theme = %q, want %q", got.Theme, defaultTheme)
	}
	if err := SavePrefs(path, Prefs{Theme: "Slate"}); err != nil {
		t.Fatalf("SavePrefs returned error: %v", err)
	}
	if got := LoadPrefs(path); got.Theme != "Slate" {
		t.Fatalf("LoadPrefs.Theme = %q, want Slate", got.Theme)
	}

	if err := os.WriteFile(path, []byte(`theme = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := LoadPrefs(path); got.Theme != defaultTheme {
		t.Fatalf("LoadPrefs(corrupt).Theme = %q, want %q", got.Theme, defaultTheme)
	}
}
