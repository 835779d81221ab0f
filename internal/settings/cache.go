package settings

import (
	"encoding/json"
	"sync"
	"time"

	"wallet-settings/internal/models"
	"wallet-settings/internal/store"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// StateEvent is published on every commit, carrying the field group that
// changed and its new value.
type StateEvent struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	Kind      EventKind `json:"kind"`
	Data      any       `json:"data"`
	At        time.Time `json:"at"`
}

// EventsChannel returns the pub/sub channel carrying commit events for one
// account session.
func EventsChannel(accountID string) string {
	return "settings:events:" + accountID
}

// Cache is the in-memory settings snapshot for one logged-in account. It is
// the single authoritative in-process copy; the UI layer reads it and the
// orchestrator is the only writer. Operations are not mutually exclusive
// with each other, so overlapping read-modify-write sequences can interleave
// across concurrent operations; each individual commit is atomic.
type Cache struct {
	mu    sync.RWMutex
	snap  models.SettingsSnapshot
	store store.Store
}

// NewCache wraps a hydrated snapshot. The store is used only to publish
// commit events.
func NewCache(snap models.SettingsSnapshot, st store.Store) *Cache {
	return &Cache{snap: snap, store: st}
}

// AccountID returns the account the cache is bound to.
func (c *Cache) AccountID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap.AccountID
}

// Snapshot returns a copy of the current settings state.
func (c *Cache) Snapshot() models.SettingsSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap.Clone()
}

// Commit applies one delta to the snapshot and publishes the corresponding
// state event. Publication failures are logged, never escalated: a commit
// notification must not fail a settings operation.
func (c *Cache) Commit(delta Delta) {
	c.mu.Lock()
	delta.apply(&c.snap)
	accountID := c.snap.AccountID
	c.mu.Unlock()

	event := StateEvent{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Kind:      delta.Kind(),
		Data:      delta,
		At:        time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Warn("settings cache: failed to encode state event")
		return
	}
	if err := c.store.Publish(EventsChannel(accountID), payload); err != nil {
		logrus.WithError(err).Warn("settings cache: failed to publish state event")
	}
}
