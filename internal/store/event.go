package store

import (
	"context"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter hands out one increasing sequence shared by the session
// and answer event tables, so events of both kinds can be interleaved in
// the order they happened.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu  sync.Mutex
	drv dialect.ExecQuerier
}

func newSequenceCounter(ctx context.Context, drv dialect.ExecQuerier) (*sequenceCounter, error) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS global_sequence (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			next_val INTEGER NOT NULL DEFAULT 1
		)`,
		`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`,
	}
	for _, q := range stmts {
		if err := drv.Exec(ctx, q, []any{}, nil); err != nil {
			return nil, fmt.Errorf("init sequence: %w", err)
		}
	}
	return &sequenceCounter{drv: drv}, nil
}

// Next returns the next sequence number and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var rows entsql.Rows
	err := sc.drv.Query(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
		[]any{}, &rows)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, fmt.Errorf("next sequence: counter row missing")
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}
	return seq, nil
}
