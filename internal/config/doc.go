// Package config loads sheetdash configuration and UI preferences.
//
// The config file defaults to ~/.config/sheetdash/config.toml. A missing
// file is not an error; defaults are used and the API URL is left at the
// placeholder so the dashboard can tell the operator to set it.
//
//	api_url = "https://script.google.com/macros/s/<deployment>/exec"
//	refresh_seconds = 30   # 0 disables auto refresh
//	timeout_seconds = 30
//
//	[log]
//	level = "info"
//	file = "~/.local/state/sheetdash/sheetdash.log"
//	format = "json"        # or "text"
//	stderr = "auto"        # "always" or "never"
//
//	[web]
//	listen = "127.0.0.1:8080"
//	allowed_origins = []   # CORS origins for /api/rows
//
// SHEETDASH_API_URL overrides api_url. Paths accept a leading tilde.
//
// Preferences (currently just the theme) live in a separate prefs.toml that
// the UI rewrites. Unlike the config, a broken prefs file silently falls
// back to defaults.
package config
