package rates

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Refresher holds the current rate snapshot and refreshes it on demand. The
// fiat-currency cascade triggers a refresh after its commits; the refresh is
// asynchronous and a failure never affects the committed settings.
type Refresher struct {
	source Source

	mu   sync.RWMutex
	snap Snapshot
}

// NewRefresher creates a refresher seeded from the source. A failed initial
// fetch leaves an empty snapshot; conversion then errors until the first
// successful refresh.
func NewRefresher(source Source) *Refresher {
	r := &Refresher{source: source}
	snap, err := source.Fetch()
	if err != nil {
		logrus.WithError(err).Warn("rates: initial snapshot fetch failed")
		return r
	}
	r.snap = snap
	return r
}

// Current returns the latest snapshot.
func (r *Refresher) Current() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// Refresh pulls a fresh snapshot from the source.
func (r *Refresher) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	snap, err := r.source.Fetch()
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.snap = snap
	r.mu.Unlock()
	logrus.WithField("taken_at", snap.TakenAt).Debug("rates: snapshot refreshed")
	return nil
}

// RefreshAsync runs Refresh in the background, logging failures.
func (r *Refresher) RefreshAsync(ctx context.Context) {
	go func() {
		if err := r.Refresh(ctx); err != nil {
			logrus.WithError(err).Warn("rates: background refresh failed")
		}
	}()
}
