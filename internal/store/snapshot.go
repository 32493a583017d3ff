package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const snapshotsTable = "snapshots"

// snapshotRepo implements SnapshotRepo on the snapshots table.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	if snap.Kind == "" {
		return errors.New("save snapshot: kind is required")
	}
	if snap.Sequence == 0 {
		seq, err := r.seq.Next(ctx)
		if err != nil {
			return err
		}
		snap.Sequence = seq
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = time.Now().UTC()
	}

	query, args := builder().Insert(snapshotsTable).
		Columns("kind", "sequence", "timestamp", "data").
		Values(snap.Kind, snap.Sequence, snap.Timestamp.UnixMilli(), string(snap.Data)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		snap.ID = id
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context, kind string) (*Snapshot, error) {
	b := builder()
	query, args := b.Select("id", "kind", "sequence", "timestamp", "data").
		From(b.Table(snapshotsTable)).
		Where(entsql.EQ("kind", kind)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var (
		snap Snapshot
		ts   int64
		data string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&snap.ID, &snap.Kind, &snap.Sequence, &ts, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest %s snapshot: %w", kind, err)
	}
	snap.Timestamp = time.UnixMilli(ts).UTC()
	snap.Data = []byte(data)
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, kind string, keep int) error {
	// Find the newest version that falls outside the keep window.
	b := builder()
	query, args := b.Select("sequence").
		From(b.Table(snapshotsTable)).
		Where(entsql.EQ("kind", kind)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep versions exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(snapshotsTable).
		Where(entsql.And(entsql.EQ("kind", kind), entsql.LTE("sequence", threshold))).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Clear(ctx context.Context, kind string) error {
	query, args := builder().Delete(snapshotsTable).Where(entsql.EQ("kind", kind)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear %s snapshots: %w", kind, err)
	}
	return nil
}

func (r *snapshotRepo) Count(ctx context.Context, kind string) (int, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(snapshotsTable)).
		Where(entsql.EQ("kind", kind)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s snapshots: %w", kind, err)
	}
	return n, nil
}
