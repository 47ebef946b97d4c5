package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yurifrl/residentledger/pkg/models"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestComputePartialThenPaid(t *testing.T) {
	agg := Compute(nil, []decimal.Decimal{d(5000), d(4000)}, d(15000))
	assert.True(t, agg.Paid.Equal(d(9000)))
	assert.True(t, agg.Pending.Equal(d(6000)))
	assert.Equal(t, models.PartiallyPaid, agg.Status)

	agg = Compute(&agg, []decimal.Decimal{d(5000), d(4000), d(6000)}, d(15000))
	assert.True(t, agg.Paid.Equal(d(15000)))
	assert.True(t, agg.Pending.IsZero())
	assert.Equal(t, models.Paid, agg.Status)
}

func TestComputeKeepsIdentityAndSign(t *testing.T) {
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	existing := &models.Aggregate{ID: 7, ResidentID: "r1", Period: "2025-26", CreatedAt: created, Paid: d(100)}

	agg := Compute(existing, []decimal.Decimal{d(12000)}, d(10000))
	assert.Equal(t, int64(7), agg.ID)
	assert.Equal(t, "r1", agg.ResidentID)
	assert.Equal(t, created, agg.CreatedAt)
	assert.True(t, agg.Pending.Equal(d(-2000)), "overpayment keeps a negative pending")
	assert.True(t, agg.Outstanding().IsZero())
	assert.Equal(t, models.Paid, agg.Status)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, models.Unpaid, Status(d(0), d(15000)))
	assert.Equal(t, models.PartiallyPaid, Status(d(1), d(15000)))
	assert.Equal(t, models.Paid, Status(d(15000), d(15000)))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "2025-26", PeriodLabel(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), time.June))
	assert.Equal(t, "2024-25", PeriodLabel(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), time.June))
	assert.Equal(t, "2099-00", PeriodLabel(time.Date(2099, 7, 1, 0, 0, 0, 0, time.UTC), time.June))
	assert.Equal(t, "2026-27", PeriodLabel(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), time.January))
}

func TestPeriodsFor(t *testing.T) {
	now := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	receipt := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-27", Periods{Basis: BasisImport, StartMonth: time.June}.For(receipt, now))
	byReceipt := Periods{Basis: BasisReceipt, StartMonth: time.June}
	assert.Equal(t, "2025-26", byReceipt.For(receipt, now))
	assert.Equal(t, "2026-27", byReceipt.For(time.Time{}, now))
	assert.True(t, byReceipt.Contains("2025-26", receipt))
}
