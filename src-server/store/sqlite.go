package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"caldeck/src-server/model"

	"github.com/uptrace/bun"
)

// SQLiteStore mirrors the collection into a sqlite table for installs
// that want sturdier durability than a flat file. Same whole-collection
// Load/Save contract as the JSON store; row order is kept through the
// position column.
type SQLiteStore struct {
	db *bun.DB
}

func NewSQLiteStore(db *bun.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context) ([]model.Event, error) {
	events := make([]model.Event, 0)
	if err := s.db.NewSelect().
		Model(&events).
		Order("position ASC").
		Scan(ctx); err != nil {
		return []model.Event{}, fmt.Errorf("(*SQLiteStore).Load: %w", err)
	}

	valid := make([]model.Event, 0, len(events))
	for _, event := range events {
		if err := event.Validate(); err != nil {
			slog.Warn("dropping malformed stored event", "id", event.ID, "error", err)
			continue
		}
		valid = append(valid, event)
	}
	return valid, nil
}

func (s *SQLiteStore) Save(ctx context.Context, events []model.Event) error {
	if err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*model.Event)(nil)).
			Where("1 = 1").
			Exec(ctx); err != nil {
			return err
		}
		if len(events) == 0 {
			return nil
		}
		rows := make([]model.Event, len(events))
		copy(rows, events)
		for i := range rows {
			rows[i].Position = i
		}
		if _, err := tx.NewInsert().
			Model(&rows).
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}); err != nil {
		return fmt.Errorf("(*SQLiteStore).Save: %w", err)
	}
	return nil
}
