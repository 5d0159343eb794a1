package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/sheetdash/internal/config"
	"github.com/five82/sheetdash/internal/dashboard"
	"github.com/five82/sheetdash/internal/logging"
	"github.com/five82/sheetdash/internal/sheets"
	"github.com/five82/sheetdash/internal/state"
	"github.com/five82/sheetdash/internal/ui"
	"github.com/five82/sheetdash/internal/web"
)

// Options configure a sheetdash run. Non-zero fields override the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/sheetdash/prefs.toml
	APIURL     string
	PollEvery  time.Duration
	Timeout    time.Duration
	Listen     string
}

// Env is a fully wired dashboard.
type Env struct {
	Config     config.Config
	Client     *sheets.Client
	Store      *state.Store
	Board      *dashboard.Board
	Controller *dashboard.Controller
	LogPath    string
	Log        *logrus.Entry
}

// Bootstrap loads configuration, sets up logging and wires the dashboard.
// interactive marks runs that own the terminal, which keeps logs off stderr.
// Callers must Close the returned Env.
func Bootstrap(opts Options, interactive bool) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	applyOverrides(&cfg, opts)

	cfg.Log.Interactive = interactive
	logPath, err := logging.Setup(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logging: %w", err)
	}
	log := logging.NewLogger("app")

	client, err := sheets.NewClient(cfg.APIURL, cfg.Timeout)
	if err != nil {
		_ = logging.Close()
		return nil, fmt.Errorf("init sheets client: %w", err)
	}
	if !cfg.IsConfigured() {
		log.Warn("api_url is still the placeholder; every refresh will fail until it is set")
	}

	store := &state.Store{}
	board := dashboard.NewBoard()
	log.WithFields(logrus.Fields{
		"config":  cfg.Path,
		"refresh": cfg.RefreshInterval,
		"timeout": cfg.Timeout,
	}).Debug("configuration loaded")

	return &Env{
		Config:     cfg,
		Client:     client,
		Store:      store,
		Board:      board,
		Controller: dashboard.NewController(client, store, board),
		LogPath:    logPath,
		Log:        log,
	}, nil
}

// Close flushes and closes the log file.
func (e *Env) Close() error {
	return logging.Close()
}

func applyOverrides(cfg *config.Config, opts Options) {
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.PollEvery > 0 {
		cfg.RefreshInterval = opts.PollEvery
	}
	if opts.Timeout > 0 {
		cfg.Timeout = opts.Timeout
	}
	if opts.Listen != "" {
		cfg.WebListen = opts.Listen
	}
}

// Run boots the terminal dashboard until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Bootstrap(opts, true)
	if err != nil {
		return err
	}
	defer env.Close()

	StartPoller(ctx, env.Controller, env.Config.RefreshInterval)

	userPrefs := config.LoadPrefs(opts.PrefsPath)
	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: env.Controller,
		Board:      env.Board,
		Config:     &env.Config,
		ThemeName:  userPrefs.Theme,
		PrefsPath:  opts.PrefsPath,
	})
}

// Serve runs the HTML dashboard until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	env, err := Bootstrap(opts, false)
	if err != nil {
		return err
	}
	defer env.Close()

	srv, err := web.NewServer(web.Config{
		Controller: env.Controller,
		Board:      env.Board,
		Addr:       env.Config.WebListen,

		AllowedOrigins: env.Config.WebOrigins,
	})
	if err != nil {
		return err
	}

	go env.Controller.Refresh(ctx, dashboard.TriggerStartup)
	StartPoller(ctx, env.Controller, env.Config.RefreshInterval)

	return srv.Serve(ctx)
}
