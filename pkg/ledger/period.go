package ledger

import (
	"fmt"
	"time"
)

type PeriodBasis string

const (
	// BasisImport labels every receipt with the period current at import time.
	BasisImport PeriodBasis = "import"
	// BasisReceipt labels each receipt with the period its own date falls in.
	BasisReceipt PeriodBasis = "receipt"
)

// PeriodLabel names the annual cycle containing t, e.g. "2025-26" for a cycle
// starting in startMonth 2025.
func PeriodLabel(t time.Time, startMonth time.Month) string {
	year := t.Year()
	if t.Month() < startMonth {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// Periods labels receipts for aggregation.
type Periods struct {
	Basis      PeriodBasis
	StartMonth time.Month
}

// For returns the period a receipt dated on belongs to when imported at now.
func (p Periods) For(receiptDate, now time.Time) string {
	if p.Basis == BasisReceipt && !receiptDate.IsZero() {
		return PeriodLabel(receiptDate, p.StartMonth)
	}
	return PeriodLabel(now, p.StartMonth)
}

// Contains reports whether date falls in the period labeled label.
func (p Periods) Contains(label string, date time.Time) bool {
	return PeriodLabel(date, p.StartMonth) == label
}
