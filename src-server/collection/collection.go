// Package collection holds the session's authoritative event list. It is
// a cache derived from the grid surface, never the origin of truth: the
// only inbound mutation is ReplaceAll, fed by the surface's set-changed
// notification, and every ReplaceAll mirrors the collection to the store.
package collection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"caldeck/src-server/model"
	"caldeck/src-server/store"
)

type Collection struct {
	mu     sync.RWMutex
	events []model.Event
	store  store.Store

	// save latency in microseconds, nil when metrics are off
	writeLatencyChan chan<- float64
}

func New(s store.Store, writeLatencyChan chan<- float64) *Collection {
	return &Collection{
		store:            s,
		writeLatencyChan: writeLatencyChan,
	}
}

// Hydrate fills the collection from the store once at startup. A broken
// or missing store falls back to an empty collection; the app must keep
// running either way.
func (c *Collection) Hydrate(ctx context.Context) []model.Event {
	events, err := c.store.Load(ctx)
	if err != nil {
		slog.Warn("can't load stored events, starting empty", "error", err)
		events = []model.Event{}
	}
	c.mu.Lock()
	c.events = events
	c.mu.Unlock()
	return append([]model.Event(nil), events...)
}

// ReplaceAll resyncs the cache from the surface's authoritative set and
// persists it, once per confirmed mutation. Save failures are logged
// and swallowed; storage is a convenience cache, not a system of record.
func (c *Collection) ReplaceAll(ctx context.Context, events []model.Event) {
	c.mu.Lock()
	c.events = append([]model.Event(nil), events...)
	snapshot := c.events
	c.mu.Unlock()

	start := time.Now()
	if err := c.store.Save(ctx, snapshot); err != nil {
		slog.Warn("can't persist event collection", "count", len(snapshot), "error", err)
		return
	}
	if c.writeLatencyChan != nil {
		select {
		case c.writeLatencyChan <- float64(time.Since(start).Microseconds()):
		default:
		}
	}
}

// Events returns a snapshot of the collection, never nil so callers can
// serialize it straight to an empty array.
func (c *Collection) Events() []model.Event {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]model.Event, len(c.events))
	copy(out, c.events)
	return out
}

func (c *Collection) Get(id string) (model.Event, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.events {
		if c.events[i].ID == id {
			return c.events[i], true
		}
	}
	return model.Event{}, false
}

func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.events)
}
