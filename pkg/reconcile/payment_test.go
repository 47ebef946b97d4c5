package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/parser"
	"github.com/yurifrl/residentledger/pkg/store"
)

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()
	e, s := newEngine(t, DefaultOptions())

	primary := parser.Row{"1", "Asha, Pune, 9876543210", "B-7", "", "", "RCP-000001", "01.07.2026", "0", "5000", "", "", "", "15000"}
	_, err := e.Import(ctx, workbook(primary))
	require.NoError(t, err)

	r, err := e.FindResident(ctx, "asha", "9876543210")
	require.NoError(t, err)

	receipt, err := e.RecordPayment(ctx, r.ID, Payment{Rent: dec(4000), Misc: dec(500)})
	require.NoError(t, err)
	assert.Equal(t, "RCP-000002", receipt.ReceiptNo, "imported numbers are skipped")
	assert.True(t, receipt.Total.Equal(dec(4500)))
	assert.Equal(t, importTime, receipt.Date)

	next, err := e.RecordPayment(ctx, r.ID, Payment{Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Rent: dec(1000)})
	require.NoError(t, err)
	assert.Equal(t, "RCP-000003", next.ReceiptNo)

	agg, err := s.GetAggregate(ctx, r.ID, period)
	require.NoError(t, err)
	assert.True(t, agg.Paid.Equal(dec(10500)))
	assert.True(t, agg.Pending.Equal(dec(4500)))
	assert.Equal(t, models.PartiallyPaid, agg.Status)
}

func TestRecordPaymentUnknownResident(t *testing.T) {
	e, _ := newEngine(t, DefaultOptions())
	_, err := e.RecordPayment(context.Background(), "missing", Payment{Rent: dec(1)})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFindResidentByNameWithoutPhone(t *testing.T) {
	ctx := context.Background()
	e, s := newEngine(t, DefaultOptions())
	id, err := s.UpsertResident(ctx, &models.Resident{Name: "Sunil"})
	require.NoError(t, err)

	r, err := e.FindResident(ctx, "SUNIL", "")
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)

	_, err = e.FindResident(ctx, "Sunil", "9000000001")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
