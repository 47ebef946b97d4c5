package postgres

import (
	"context"
	"fmt"

	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/store"
)

type receiptRepository struct {
	q querier
}

const receiptColumns = `id, resident_id, receipt_no, receipt_date, date_defaulted, registration, rent, utilities, misc, total, created_at`

func (r *receiptRepository) FindReceipt(ctx context.Context, receiptNo string) (*models.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_no = $1`
	rc, err := scanReceipt(r.q.QueryRowContext(ctx, query, receiptNo))
	if err != nil {
		return nil, notFound(err)
	}
	return rc, nil
}

func (r *receiptRepository) InsertReceipt(ctx context.Context, rc *models.Receipt) (int64, error) {
	query := `INSERT INTO receipts (resident_id, receipt_no, receipt_date, date_defaulted, registration, rent, utilities, misc, total, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now()) RETURNING id`
	err := r.q.QueryRowContext(ctx, query,
		rc.ResidentID, rc.ReceiptNo, rc.Date, rc.DateDefaulted, rc.Registration, rc.Rent, rc.Utilities, rc.Misc, rc.Total,
	).Scan(&rc.ID)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("receipt %s: %w", rc.ReceiptNo, store.ErrDuplicate)
	}
	return rc.ID, err
}

func (r *receiptRepository) ListReceipts(ctx context.Context, residentID string) ([]*models.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE resident_id = $1 ORDER BY id`
	rows, err := r.q.QueryContext(ctx, query, residentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, rows.Err()
}

func scanReceipt(s scanner) (*models.Receipt, error) {
	var rc models.Receipt
	if err := s.Scan(&rc.ID, &rc.ResidentID, &rc.ReceiptNo, &rc.Date, &rc.DateDefaulted,
		&rc.Registration, &rc.Rent, &rc.Utilities, &rc.Misc, &rc.Total, &rc.CreatedAt); err != nil {
		return nil, err
	}
	return &rc, nil
}
