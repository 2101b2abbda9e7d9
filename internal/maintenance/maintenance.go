// Package maintenance runs the API server's periodic background work as Go
// tickers: today that is watching the snapshot file and swapping in a new
// version after the ingest CLI rewrites it.
package maintenance

import (
	"context"
	"time"

	"github.com/albapepper/cbb-data/internal/dataset"
	"github.com/albapepper/cbb-data/internal/logging"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	ReloadInterval time.Duration // snapshot mtime poll
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{ReloadInterval: 30 * time.Second}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, store *dataset.Store, cfg Config, hooks []ReloadHook, logger *logging.Logger) {
	logger.Info("Maintenance tickers started", "reload", cfg.ReloadInterval)

	if cfg.ReloadInterval > 0 {
		t := time.NewTicker(cfg.ReloadInterval)
		defer t.Stop()
		go runLoop(ctx, t.C, func() { ReloadSnapshot(ctx, store, hooks, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// ReloadSnapshot installs a rewritten snapshot and runs the hooks when one
// was installed. A bad file is logged and the current snapshot kept.
func ReloadSnapshot(ctx context.Context, store *dataset.Store, hooks []ReloadHook, logger *logging.Logger) bool {
	changed, err := store.Reload()
	if err != nil {
		logger.Warn("Snapshot reload failed, keeping current snapshot", "path", store.Path(), "error", err)
		return false
	}
	if !changed {
		return false
	}
	RunHooks(ctx, hooks, logger)
	return true
}
