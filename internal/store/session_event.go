package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on the event tables.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Insert(tableSessionEvents).
		Columns(
			"sequence", "timestamp", "session_id", "node_id", "language", "action",
			"completed", "stars", "correct", "total", "hearts", "best_streak", "points", "duration_ms",
		).
		Values(
			seqNum, r.now().UnixMilli(), data.SessionID, data.NodeID, data.Language, data.Action,
			data.Completed, data.Stars, data.Correct, data.Total, data.Hearts, data.BestStreak,
			data.Points, data.Duration.Milliseconds(),
		).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	q, args := entsql.Dialect(dialect.SQLite).
		Insert(tableAnswerEvents).
		Columns("sequence", "timestamp", "session_id", "node_id", "step", "kind", "correct", "elapsed_ms", "points").
		Values(
			seqNum, r.now().UnixMilli(), data.SessionID, data.NodeID, data.Step, data.Kind,
			data.Correct, data.Elapsed.Milliseconds(), data.Points,
		).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(
			"sequence", "timestamp", "session_id", "node_id", "language", "action",
			"completed", "stars", "correct", "total", "hearts", "best_streak", "points", "duration_ms",
		).
		From(entsql.Table(tableSessionEvents)).
		Where(entsql.In("action", ActionEnd, ActionAbandon)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	q, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec       SessionRecord
			ts, durMs int64
		)
		err := rows.Scan(
			&rec.Sequence, &ts, &rec.SessionID, &rec.NodeID, &rec.Language, &rec.Action,
			&rec.Completed, &rec.Stars, &rec.Correct, &rec.Total, &rec.Hearts, &rec.BestStreak,
			&rec.Points, &durMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		rec.Duration = time.Duration(durMs) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals

	sessions := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*"), "COALESCE(SUM(completed), 0)").
		From(entsql.Table(tableSessionEvents)).
		Where(entsql.In("action", ActionEnd, ActionAbandon))
	if err := r.scanOne(ctx, sessions, &t.Sessions, &t.Completed); err != nil {
		return Totals{}, fmt.Errorf("session totals: %w", err)
	}

	answers := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*"), "COALESCE(SUM(correct), 0)", "COALESCE(SUM(points), 0)").
		From(entsql.Table(tableAnswerEvents))
	if err := r.scanOne(ctx, answers, &t.Answers, &t.Correct, &t.Points); err != nil {
		return Totals{}, fmt.Errorf("answer totals: %w", err)
	}
	return t, nil
}

func (r *eventRepo) scanOne(ctx context.Context, sel *entsql.Selector, dest ...any) error {
	q, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	if !rows.Next() {
		return rows.Err()
	}
	return rows.Scan(dest...)
}
