package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"indiamap/internal/config"
	"indiamap/internal/db"
	"indiamap/internal/featurestore"
	"indiamap/internal/logging"
	"indiamap/internal/metrics"
	"indiamap/internal/theme"
)

// App holds all application-wide state for indiamap.
// It is created once and shared by the terminal and web sinks.
type App struct {
	config  *config.Config
	home    string
	logs    *logging.Manager
	db      *db.DB
	store   *featurestore.Store
	themes  *theme.Controller
	session *Session

	loadOnce sync.Once
}

// Config returns the effective configuration.
func (a *App) Config() *config.Config { return a.config }

// Home returns the indiamap home directory.
func (a *App) Home() string { return a.home }

// Logs returns the logging manager.
func (a *App) Logs() *logging.Manager { return a.logs }

// DB returns the dataset cache. Nil when the cache could not be opened.
func (a *App) DB() *db.DB { return a.db }

// Store returns the feature store.
func (a *App) Store() *featurestore.Store { return a.store }

// Session returns the interaction session shared by every sink.
func (a *App) Session() *Session { return a.session }

// Open wires an App from cfg. The dataset is not loaded until LoadDataset.
func Open(cfg *config.Config, home string) (*App, error) {
	logs, err := logging.NewManager(home, cfg.Logging.Level, cfg.Logging.RotationMB, cfg.Logging.ToConsole)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	initial, err := theme.Parse(cfg.UI.Theme)
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("app: %w", err)
	}

	a := &App{config: cfg, home: home, logs: logs}

	src := featurestore.SourceFor(cfg.Dataset.Source)
	if _, remote := src.(*featurestore.HTTPSource); remote && cfg.Dataset.CacheTTLMinutes > 0 {
		// Without a cache the viewer still works; it just refetches.
		d, err := db.Open(DBPath(home))
		if err != nil {
			logs.System.Warn("dataset cache disabled: %v", err)
		} else {
			a.db = d
			src = &featurestore.CachedSource{
				Source:  src,
				Cache:   d,
				TTL:     time.Duration(cfg.Dataset.CacheTTLMinutes) * time.Minute,
				Observe: metrics.ObserveCache,
			}
		}
	}

	a.store = featurestore.New(src, logs.System)
	a.themes = theme.NewController(initial)
	a.session = NewSession(a.store, a.themes, logs.Interaction)

	logs.System.Info("indiamap starting: dataset=%s theme=%s", cfg.Dataset.Source, initial)
	return a, nil
}

// LoadDataset loads the dataset and starts the session. Only the first call
// does any work; the result of that attempt is returned to every caller.
func (a *App) LoadDataset(ctx context.Context) error {
	a.loadOnce.Do(func() {
		timeout := time.Duration(a.config.Dataset.TimeoutSeconds) * time.Second
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		if err := a.store.Load(ctx); err != nil {
			metrics.DatasetLoadFailTotal.Inc()
			return
		}
		metrics.DatasetLoadDurationMs.Observe(float64(time.Since(start).Milliseconds()))

		snap, _ := a.store.Snapshot()
		metrics.DatasetFeatures.Set(float64(len(snap.Features())))

		if err := a.session.Start(); err != nil {
			a.logs.System.Error("start session: %v", err)
		}
	})
	return a.store.Err()
}

// Close cleanly shuts down all resources.
func (a *App) Close() error {
	var errs []error

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("app: close db: %w", err))
		}
	}

	if a.logs != nil {
		a.logs.System.Info("indiamap stopped")
		if err := a.logs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("app: close logs: %w", err))
		}
	}

	return errors.Join(errs...)
}
