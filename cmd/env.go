package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vanagroupofficial-ai/VANACLONE/internal/application"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/cli"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/config"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/logging"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/monitor"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/service"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/store"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/suggest"
	"github.com/vanagroupofficial-ai/VANACLONE/internal/web"
)

// appEnv holds everything a command works with. It is opened once per
// invocation by the root command's pre-run hook.
type appEnv struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    store.Store
	metrics  *monitor.Metrics
	profiles *service.ProfileStore
	settings *service.SettingsStore
	provider suggest.Provider

	closers []io.Closer
}

var rt *appEnv

func openRuntime(cfg *config.Config, toFile, withStore bool) (*appEnv, error) {
	closeRuntime()

	logger, logCloser, err := logging.Setup(cfg, toFile)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(logger)

	r := &appEnv{
		cfg:     cfg,
		logger:  logger,
		metrics: monitor.NewMetrics(),
		closers: []io.Closer{logCloser},
	}

	if !withStore {
		return r, nil
	}

	if cfg.StoreBackend() != store.BackendMemory {
		if err := application.EnsureDir(cfg.DataDir); err != nil {
			r.close()
			return nil, err
		}
	}

	st, err := store.Open(cfg.StoreBackend(), cfg.DataDir)
	if err != nil {
		r.close()
		return nil, fmt.Errorf("failed to open %s store in %s: %w", cfg.StoreBackend(), cfg.DataDir, err)
	}

	r.store = st
	r.closers = append([]io.Closer{st}, r.closers...)

	opts := []service.Option{service.WithLogger(logger), service.WithMetrics(r.metrics)}
	r.profiles = service.OpenProfileStore(st, opts...)
	r.settings = service.NewSettingsStore(st, opts...)
	r.settings.Load()

	r.provider = suggest.Instrument(suggest.NewProvider(cfg.SuggestOptions(logger)), r.metrics, logger)

	logger.Debug("runtime ready",
		"backend", cfg.StoreBackend(),
		"data_dir", cfg.DataDir,
		"provider", r.provider.Name(),
		"profiles", r.profiles.Len(),
	)

	return r, nil
}

func (r *appEnv) close() error {
	var errs []error

	for _, c := range r.closers {
		if c == nil {
			continue
		}

		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	r.closers = nil

	return errors.Join(errs...)
}

// closeRuntime releases the current runtime, if any.
func closeRuntime() {
	if rt == nil {
		return
	}

	if err := rt.close(); err != nil {
		rt.logger.Warn("failed to close runtime", "error", err)
	}

	rt = nil
}

func (r *appEnv) cliDeps() cli.Deps {
	return cli.Deps{
		Profiles: r.profiles,
		Settings: r.settings,
		Provider: r.provider,
		Metrics:  r.metrics,
		Logger:   r.logger,
	}
}

func (r *appEnv) webDeps() web.Deps {
	return web.Deps{
		Store:    r.store,
		Profiles: r.profiles,
		Settings: r.settings,
		Provider: r.provider,
		Metrics:  r.metrics,
		Logger:   r.logger,
	}
}
