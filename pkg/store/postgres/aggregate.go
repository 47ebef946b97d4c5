package postgres

import (
	"context"
	"time"

	"github.com/yurifrl/residentledger/pkg/models"
)

type aggregateRepository struct {
	q querier
}

const aggregateColumns = `id, resident_id, period, total_due, paid, pending, status, created_at, updated_at`

func (r *aggregateRepository) GetAggregate(ctx context.Context, residentID, period string) (*models.Aggregate, error) {
	query := `SELECT ` + aggregateColumns + ` FROM ledger_aggregates WHERE resident_id = $1 AND period = $2`
	a, err := scanAggregate(r.q.QueryRowContext(ctx, query, residentID, period))
	if err != nil {
		return nil, notFound(err)
	}
	return a, nil
}

// UpsertAggregate writes on the (resident_id, period) key.
func (r *aggregateRepository) UpsertAggregate(ctx context.Context, a *models.Aggregate) error {
	query := `INSERT INTO ledger_aggregates (resident_id, period, total_due, paid, pending, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	          ON CONFLICT (resident_id, period) DO UPDATE SET
	            total_due = EXCLUDED.total_due, paid = EXCLUDED.paid, pending = EXCLUDED.pending,
	            status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
	          RETURNING id`
	return r.q.QueryRowContext(ctx, query,
		a.ResidentID, a.Period, a.TotalDue, a.Paid, a.Pending, string(a.Status), time.Now(),
	).Scan(&a.ID)
}

func (r *aggregateRepository) ListAggregates(ctx context.Context, period string) ([]*models.Aggregate, error) {
	query := `SELECT ` + aggregateColumns + ` FROM ledger_aggregates WHERE ($1 = '' OR period = $1) ORDER BY period, resident_id`
	rows, err := r.q.QueryContext(ctx, query, period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Aggregate
	for rows.Next() {
		a, err := scanAggregate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAggregate(s scanner) (*models.Aggregate, error) {
	var (
		a      models.Aggregate
		status string
	)
	if err := s.Scan(&a.ID, &a.ResidentID, &a.Period, &a.TotalDue, &a.Paid, &a.Pending, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Status = models.LedgerStatus(status)
	return &a, nil
}
