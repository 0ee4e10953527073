package store

import (
	"context"

	"caldeck/src-server/model"
)

// Store persists the whole event collection in one shot. It is a mirror
// of the in-memory collection, never the origin of truth: Load runs once
// at startup, Save once after every confirmed mutation. Callers treat
// Save errors as non-fatal since storage is a convenience cache.
type Store interface {
	Load(ctx context.Context) ([]model.Event, error)
	Save(ctx context.Context, events []model.Event) error
}
