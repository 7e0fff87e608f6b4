package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// SlotRepo stores opaque values under unique names.
type SlotRepo struct {
	drv *entsql.Driver
}

// Get returns the value stored under name, or nil if the slot is empty.
func (r *SlotRepo) Get(ctx context.Context, name string) ([]byte, error) {
	query, args := builder().
		Select("data").
		From(entsql.Table(slotsTable)).
		Where(entsql.EQ("name", name)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query slot %q: %w", name, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, fmt.Errorf("scan slot %q: %w", name, err)
	}
	return data, rows.Err()
}

// Put writes data under name, replacing any previous value.
func (r *SlotRepo) Put(ctx context.Context, name string, data []byte) error {
	query, args := builder().
		Insert(slotsTable).
		Columns("name", "data", "updated_at").
		Values(name, data, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save slot %q: %w", name, err)
	}
	return nil
}

// Delete empties the slot.
func (r *SlotRepo) Delete(ctx context.Context, name string) error {
	query, args := builder().
		Delete(slotsTable).
		Where(entsql.EQ("name", name)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete slot %q: %w", name, err)
	}
	return nil
}
