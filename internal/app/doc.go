// Package app wires sheetdash together.
//
// # Overview
//
// Bootstrap is the composition root shared by every command. It loads the
// config, sets up logging, and builds the sheets client, the state store,
// the dashboard board and the refresh controller. Run and Serve then attach
// a surface: the terminal dashboard or the web view.
//
//	┌──────────────┐
//	│ Bootstrap()  │
//	└──────┬───────┘
//	       ├─────> config.Load()         config.toml + SHEETDASH_API_URL
//	       ├─────> logging.Setup()       logrus file/stderr sinks
//	       ├─────> sheets.NewClient()    HTTP fetcher
//	       ├─────> &state.Store{}         generations, dataset, failures
//	       └─────> dashboard.NewController()
//
//	Run:   StartPoller() + ui.Run()       (blocks until quit)
//	Serve: StartPoller() + web.Serve()    (blocks until ctx is cancelled)
//
// # Polling
//
// StartPoller triggers a refresh every refresh interval. Consecutive
// failures double the wait up to five minutes; any successful refresh,
// including one that returns no rows, resets it. A refresh superseded by a
// newer one does not count either way. A zero interval disables polling.
//
// # Errors
//
// Only setup problems are fatal: an unreadable config, a log file that
// cannot be opened, or an API URL that does not parse. Fetch failures are
// shown on the dashboard and logged, and polling continues. An API URL
// still set to the shipped placeholder is not fatal either; it surfaces as
// a configuration error on the first refresh.
package app
