// Package ledger derives per-period fee aggregates from receipt history.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/yurifrl/residentledger/pkg/models"
)

// Compute rebuilds an aggregate from every receipt total of the resident. It
// never patches the existing values, so receipts ingested out of order or
// re-ingested after a partial failure still produce the same result. This is
// O(n) in the resident's receipts; an incremental update with a periodic sweep
// is the way forward if volumes grow.
func Compute(existing *models.Aggregate, totals []decimal.Decimal, due decimal.Decimal) models.Aggregate {
	var agg models.Aggregate
	if existing != nil {
		agg = *existing
	}

	paid := decimal.Zero
	for _, t := range totals {
		paid = paid.Add(t)
	}

	agg.TotalDue = due
	agg.Paid = paid
	agg.Pending = due.Sub(paid)
	agg.Status = Status(paid, due)
	return agg
}

func Status(paid, due decimal.Decimal) models.LedgerStatus {
	switch {
	case paid.GreaterThanOrEqual(due):
		return models.Paid
	case paid.IsPositive():
		return models.PartiallyPaid
	default:
		return models.Unpaid
	}
}
