package app

import (
	"context"
	"time"

	"github.com/five82/sheetdash/internal/dashboard"
	"github.com/five82/sheetdash/internal/logging"
)

const maxBackoff = 5 * time.Minute

// refresher is the part of the controller the poller drives.
type refresher interface {
	Refresh(ctx context.Context, trigger dashboard.Trigger) dashboard.Outcome
}

// StartPoller refreshes every interval until ctx is cancelled. Consecutive
// failures stretch the wait exponentially up to maxBackoff. A non-positive
// interval disables auto refresh. It returns immediately.
func StartPoller(ctx context.Context, r refresher, interval time.Duration) {
	if interval <= 0 {
		return
	}
	log := logging.NewLogger("poller")

	go func() {
		failures := 0
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}

			switch r.Refresh(ctx, dashboard.TriggerPoll) {
			case dashboard.OutcomeFailed:
				failures++
			case dashboard.OutcomeLive, dashboard.OutcomeNoData:
				failures = 0
			}

			wait := calculateBackoff(failures, interval)
			if failures > 0 {
				log.WithField("failures", failures).WithField("next", wait).Debug("backing off")
			}
			timer.Reset(wait)
		}
	}()
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	wait := base
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}
