package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// kvRepo implements KVRepo on the kv table.
type kvRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	q, args := entsql.Dialect(dialect.SQLite).
		Select("value").
		From(entsql.Table(tableKV)).
		Where(entsql.EQ("name", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return "", false, fmt.Errorf("query %s: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return "", false, rows.Err()
	}
	var v string
	if err := rows.Scan(&v); err != nil {
		return "", false, fmt.Errorf("scan %s: %w", key, err)
	}
	return v, true, nil
}

func (r *kvRepo) PutAll(ctx context.Context, values map[string]string) (err error) {
	if len(values) == 0 {
		return nil
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// Sorted for a deterministic write order.
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	ts := r.now().UnixMilli()
	for _, k := range keys {
		q, args := entsql.Dialect(dialect.SQLite).
			Insert(tableKV).
			Columns("name", "value", "updated_at").
			Values(k, values[k], ts).
			OnConflict(
				entsql.ConflictColumns("name"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if err = tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("put %s: %w", k, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}
	q, qargs := entsql.Dialect(dialect.SQLite).
		Delete(tableKV).
		Where(entsql.In("name", args...)).
		Query()
	if err := r.drv.Exec(ctx, q, qargs, nil); err != nil {
		return fmt.Errorf("delete keys: %w", err)
	}
	return nil
}
