package postgres

import "context"

type counterRepository struct {
	q querier
}

// NextSequence increments and reads in one statement, so concurrent callers
// never see the same value.
func (r *counterRepository) NextSequence(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO counters (name, value) VALUES ($1, 1)
	          ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
	          RETURNING value`
	var n int64
	err := r.q.QueryRowContext(ctx, query, name).Scan(&n)
	return n, err
}
