package batch

import (
	"context"
	"time"
)

// Watch runs a batch over dir right away and then on every tick of
// interval until ctx is cancelled. Each completed run is passed to report,
// which may be nil. Watch returns nil once ctx is done.
func (c *Converter) Watch(ctx context.Context, dir string, interval time.Duration, report func(*Result, error)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	run := func() {
		result, err := c.Run(ctx, dir)
		if err != nil && ctx.Err() != nil {
			return
		}
		if err != nil {
			c.log.Error("batch failed", "dir", dir, "error", err)
		}
		if report != nil {
			report(result, err)
		}
	}

	run()
	for {
		select {
		case <-ticker.C:
			run()
		case <-ctx.Done():
			c.log.Info("watch stopping", "dir", dir)
			return nil
		}
	}
}
