package watcher

import (
	"context"
	"time"
)

// wait sleeps for one poll interval. A change notification ends the wait
// early, after the debounce window. It returns false once ctx is done.
func (w *Watcher) wait(ctx context.Context) bool {
	timer := time.NewTimer(w.cfg.PollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	case <-w.wake.Ready():
	}

	if w.cfg.Debounce > 0 {
		settle := time.NewTimer(w.cfg.Debounce)
		defer settle.Stop()
		select {
		case <-ctx.Done():
			return false
		case <-settle.C:
		}
	}

	if p := w.wake.TryTake(); p != nil {
		w.log.Debug("woken by change", "path", *p)
	}
	return true
}
