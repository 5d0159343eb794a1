package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/sheetdash/internal/logging"
	"github.com/five82/sheetdash/internal/sheets"
)

// Config captures everything sheetdash reads from config.toml.
type Config struct {
	APIURL          string
	RefreshInterval time.Duration // zero disables auto refresh
	Timeout         time.Duration
	Log             logging.Config
	WebListen       string
	WebOrigins      []string // CORS origins for the JSON API
	Path            string   // resolved config file path
}

const (
	// PlaceholderURL ships in the default config and must be replaced by the operator.
	PlaceholderURL = "https://script.google.com/macros/s/REPLACE_WITH_YOUR_DEPLOYMENT_ID/exec"

	// APIURLEnv overrides api_url.
	APIURLEnv = "SHEETDASH_API_URL"

	defaultConfigPath = "~/.config/sheetdash/config.toml"
	defaultLogFile    = "~/.local/state/sheetdash/sheetdash.log"
	defaultTimeout    = 30 * time.Second
	defaultWebListen  = "127.0.0.1:8080"
)

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		APIURL:    PlaceholderURL,
		Timeout:   defaultTimeout,
		Log:       logging.Config{Level: "info", File: mustExpand(defaultLogFile), Format: "json", Stderr: "auto"},
		WebListen: defaultWebListen,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
// SHEETDASH_API_URL takes precedence over the file.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path, defaultConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg := Defaults()
	cfg.Path = resolved

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL         string `toml:"api_url"`
		RefreshSeconds int    `toml:"refresh_seconds"`
		TimeoutSeconds int    `toml:"timeout_seconds"`
		Log            struct {
			Level  string `toml:"level"`
			File   string `toml:"file"`
			Format string `toml:"format"`
			Stderr string `toml:"stderr"`
		} `toml:"log"`
		Web struct {
			Listen         string   `toml:"listen"`
			AllowedOrigins []string `toml:"allowed_origins"`
		} `toml:"web"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.RefreshSeconds < 0 {
		return Config{}, fmt.Errorf("parse config: refresh_seconds must not be negative")
	}
	cfg.RefreshInterval = time.Duration(raw.RefreshSeconds) * time.Second
	if raw.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}

	if v := strings.TrimSpace(raw.Log.Level); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(raw.Log.File); v != "" {
		cfg.Log.File = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.Log.Format); v != "" {
		cfg.Log.Format = v
	}
	if v := strings.TrimSpace(raw.Log.Stderr); v != "" {
		cfg.Log.Stderr = v
	}
	if v := strings.TrimSpace(raw.Web.Listen); v != "" {
		cfg.WebListen = v
	}
	for _, origin := range raw.Web.AllowedOrigins {
		if v := strings.TrimSpace(origin); v != "" {
			cfg.WebOrigins = append(cfg.WebOrigins, v)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// IsConfigured reports whether api_url has been replaced from the placeholder.
func (c Config) IsConfigured() bool {
	url := strings.TrimSpace(c.APIURL)
	return url != "" && !sheets.IsPlaceholder(url)
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(APIURLEnv)); v != "" {
		cfg.APIURL = v
	}
}

func resolvePath(path, fallback string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(fallback)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
