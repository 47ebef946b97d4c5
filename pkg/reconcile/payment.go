package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/store"
)

const receiptSequence = "receipt"

// Payment is a receipt entered by hand rather than imported.
type Payment struct {
	Date         time.Time
	Registration decimal.Decimal
	Rent         decimal.Decimal
	Utilities    decimal.Decimal
	Misc         decimal.Decimal
}

// FindResident applies the import matching policy directly against the store:
// phone first, then lower(name)|phone.
func (e *Engine) FindResident(ctx context.Context, name, phone string) (*models.Resident, error) {
	if phone != "" {
		r, err := e.store.FindResidentByPhone(ctx, phone)
		if err == nil {
			return r, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	return e.store.FindResidentByNameAndPhone(ctx, name, phone)
}

// RecordPayment stores a payment under the next receipt number from the
// store's counter and refreshes the resident's aggregate, in one unit of work.
func (e *Engine) RecordPayment(ctx context.Context, residentID string, p Payment) (*models.Receipt, error) {
	now := e.now()
	if p.Date.IsZero() {
		p.Date = now
	}

	ctx = context.WithoutCancel(ctx)
	var receipt *models.Receipt
	err := e.store.Atomic(ctx, func(r store.Repository) error {
		resident, err := r.GetResident(ctx, residentID)
		if err != nil {
			return fmt.Errorf("resident %s: %w", residentID, err)
		}

		no, err := nextReceiptNo(ctx, r)
		if err != nil {
			return err
		}
		receipt, err = models.NewReceipt(no).
			ForResident(resident.ID).
			SetDate(p.Date, false).
			SetFees(p.Registration, p.Rent, p.Utilities, p.Misc).
			Build()
		if err != nil {
			return err
		}
		if receipt.ID, err = r.InsertReceipt(ctx, receipt); err != nil {
			return err
		}
		return e.refreshAggregates(ctx, r, resident, []time.Time{p.Date}, now)
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("payment recorded", "resident", residentID, "receipt", receipt.ReceiptNo, "total", receipt.Total.String())
	return receipt, nil
}

// nextReceiptNo skips counter values already taken by imported receipts.
func nextReceiptNo(ctx context.Context, r store.Repository) (string, error) {
	for {
		n, err := r.NextSequence(ctx, receiptSequence)
		if err != nil {
			return "", fmt.Errorf("failed to allocate receipt number: %w", err)
		}
		no := fmt.Sprintf("RCP-%06d", n)
		_, err = r.FindReceipt(ctx, no)
		if errors.Is(err, store.ErrNotFound) {
			return no, nil
		}
		if err != nil {
			return "", err
		}
	}
}
