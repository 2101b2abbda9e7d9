package maintenance

import (
	"context"
	"time"

	"github.com/albapepper/cbb-data/internal/cache"
	"github.com/albapepper/cbb-data/internal/logging"
)

// ReloadHook runs after a new snapshot is installed.
type ReloadHook struct {
	Name string
	Fn   func(ctx context.Context) error
}

// PurgeCache drops every cached response built from the previous snapshot.
// Keys are version-scoped already; purging frees the memory right away
// instead of waiting for TTL eviction.
func PurgeCache(c *cache.Cache, logger *logging.Logger) ReloadHook {
	return ReloadHook{
		Name: "purge_cache",
		Fn: func(context.Context) error {
			n := c.Purge()
			logger.Info("Purged response cache", "entries", n)
			return nil
		},
	}
}

// RunHooks runs each hook in order. A failing hook is logged and does not
// stop the rest.
func RunHooks(ctx context.Context, hooks []ReloadHook, logger *logging.Logger) {
	for _, h := range hooks {
		start := time.Now()
		err := h.Fn(ctx)
		dur := time.Since(start).Round(time.Millisecond)
		if err != nil {
			logger.Warn("Reload hook failed", "hook", h.Name, "duration", dur, "error", err)
			continue
		}
		logger.Debug("Reload hook finished", "hook", h.Name, "duration", dur)
	}
}
