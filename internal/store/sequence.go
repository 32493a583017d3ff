package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

const sequenceRow = 1

// sequenceCounter hands out the global sequence. The mutex serializes
// callers in this process; the UPDATE ... RETURNING keeps each increment
// atomic in the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter seeds the counter row if the table is empty.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	query, args := builder().Insert("global_sequence").
		Columns("id", "next_val").
		Values(sequenceRow, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := db.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns the current value and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	query, args := builder().Update("global_sequence").
		Add("next_val", 1).
		Where(entsql.EQ("id", sequenceRow)).
		Returning("next_val").
		Query()
	var next int64
	if err := sc.db.QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return next - 1, nil
}
