package background

import (
	"context"
	"fmt"
	"time"

	"ellavera-site/internal/seed"
	"ellavera-site/pkg/logger"
)

const (
	DraftSweepJobName = "editor.draft_sweep"
	SeedPagesJobName  = "seed.default_pages"
)

// Sweeper drops expired entries and reports how many it removed.
type Sweeper interface {
	Sweep(ctx context.Context) int
}

// DraftSweepJob removes expired editor sessions from an in-memory store.
func DraftSweepJob(store Sweeper) Job {
	return Job{
		Name:    DraftSweepJobName,
		Timeout: 30 * time.Second,
		Run: func(ctx context.Context) error {
			if removed := store.Sweep(ctx); removed > 0 {
				logger.Info("Swept expired editor sessions", map[string]interface{}{"removed": removed})
			}
			return nil
		},
	}
}

// SeedPagesJob creates the default sections of every page that has none.
// The job fails, and is retried, while any page could not be checked.
func SeedPagesJob(store seed.SectionStore, retries int, backoff time.Duration) Job {
	return Job{
		Name:        SeedPagesJobName,
		Timeout:     time.Minute,
		RetryPolicy: RetryPolicy{MaxRetries: retries, Backoff: backoff},
		Run: func(ctx context.Context) error {
			failed := 0
			for _, page := range seed.Pages() {
				if _, err := seed.EnsurePage(ctx, store, page); err != nil {
					logger.Warn("Default sections not seeded", map[string]interface{}{"page": page, "error": err.Error()})
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d pages could not be seeded", failed)
			}
			return nil
		},
	}
}
