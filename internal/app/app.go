package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/roster/internal/config"
	"github.com/five82/roster/internal/logging"
	"github.com/five82/roster/internal/people"
	"github.com/five82/roster/internal/prefs"
	"github.com/five82/roster/internal/state"
	"github.com/five82/roster/internal/ui"
)

// Options configure a roster run.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/roster/prefs.toml
	Endpoint   string // overrides the configured endpoint
	LogFile    string // overrides the configured log file
	Debug      bool
}

// runtime holds the pieces shared by the TUI and the headless commands.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
	loader *Loader
}

func setup(opts Options) (*runtime, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}
	if opts.LogFile != "" {
		path, err := config.ExpandPath(opts.LogFile)
		if err != nil {
			return nil, fmt.Errorf("log file: %w", err)
		}
		cfg.LogFile = path
	}

	logger := logging.NewOrNop(logging.Options{Path: cfg.LogFile, Debug: opts.Debug})

	client, err := people.NewClient(cfg.Endpoint, people.Options{
		Timeout: cfg.RequestTimeout,
		Limit:   cfg.Limit,
	})
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init people client: %w", err)
	}

	logger.Debug("roster starting",
		zap.String("endpoint", client.Endpoint()),
		zap.Duration("loading_delay", cfg.LoadingDelay),
		zap.Duration("filter_debounce", cfg.FilterDebounce))

	return &runtime{
		cfg:    cfg,
		logger: logger,
		loader: NewLoader(client, &state.Store{}, cfg.LoadingDelay, logger),
	}, nil
}

// Run boots the roster TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := setup(opts)
	if err != nil {
		return err
	}
	defer func() { _ = rt.logger.Sync() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return ui.Run(ui.Options{
		Context:        ctx,
		Loader:         rt.loader,
		Logger:         rt.logger,
		Prefs:          prefs.Load(prefsPath),
		PrefsPath:      prefsPath,
		FilterDebounce: rt.cfg.FilterDebounce,
	})
}
