package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LedgerStatus string

const (
	Unpaid        LedgerStatus = "unpaid"
	PartiallyPaid LedgerStatus = "partially_paid"
	Paid          LedgerStatus = "paid"
)

// Aggregate is the per-resident, per-period summary of the fee ledger.
// Pending is signed: an overpaid resident carries a negative value.
type Aggregate struct {
	ID         int64
	ResidentID string
	Period     string
	TotalDue   decimal.Decimal
	Paid       decimal.Decimal
	Pending    decimal.Decimal
	Status     LedgerStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Outstanding is Pending floored at zero, for display.
func (a *Aggregate) Outstanding() decimal.Decimal {
	if a.Pending.IsNegative() {
		return decimal.Zero
	}
	return a.Pending
}
