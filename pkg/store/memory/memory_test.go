package memory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/store"
)

func TestResidentLookups(t *testing.T) {
	ctx := context.Background()
	s := New()

	id, err := s.UpsertResident(ctx, &models.Resident{Name: "John Doe", Phone: "9999999999"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	byPhone, err := s.FindResidentByPhone(ctx, "9999999999")
	require.NoError(t, err)
	assert.Equal(t, id, byPhone.ID)

	byName, err := s.FindResidentByNameAndPhone(ctx, "JOHN DOE", "9999999999")
	require.NoError(t, err)
	assert.Equal(t, id, byName.ID)

	_, err = s.FindResidentByPhone(ctx, "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestReceiptUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()
	id, err := s.UpsertResident(ctx, &models.Resident{Name: "Asha"})
	require.NoError(t, err)

	_, err = s.InsertReceipt(ctx, &models.Receipt{ResidentID: id, ReceiptNo: "R1", Total: decimal.NewFromInt(10)})
	require.NoError(t, err)
	_, err = s.InsertReceipt(ctx, &models.Receipt{ResidentID: id, ReceiptNo: "R1"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	_, err = s.InsertReceipt(ctx, &models.Receipt{ResidentID: "missing", ReceiptNo: "R2"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	receipts, err := s.ListReceipts(ctx, id)
	require.NoError(t, err)
	assert.Len(t, receipts, 1)
}

func TestAtomicRollsBack(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.Atomic(ctx, func(r store.Repository) error {
		if _, err := r.UpsertResident(ctx, &models.Resident{ID: "r1", Name: "Ghost"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = s.GetResident(ctx, "r1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAggregateUpsertKeepsKey(t *testing.T) {
	ctx := context.Background()
	s := New()

	first := &models.Aggregate{ResidentID: "r1", Period: "2025-26", Paid: decimal.NewFromInt(5)}
	require.NoError(t, s.UpsertAggregate(ctx, first))
	require.NoError(t, s.UpsertAggregate(ctx, &models.Aggregate{ResidentID: "r1", Period: "2025-26", Paid: decimal.NewFromInt(9)}))
	require.NoError(t, s.UpsertAggregate(ctx, &models.Aggregate{ResidentID: "r1", Period: "2026-27"}))

	all, err := s.ListAggregates(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := s.GetAggregate(ctx, "r1", "2025-26")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.True(t, got.Paid.Equal(decimal.NewFromInt(9)))
}

func TestNextSequenceIsMonotonic(t *testing.T) {
	ctx := context.Background()
	s := New()
	for want := int64(1); want <= 3; want++ {
		n, err := s.NextSequence(ctx, "receipt")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	n, err := s.NextSequence(ctx, "other")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.json")

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.UpsertResident(ctx, &models.Resident{Name: "Meera", Phone: "9123456780", TotalDue: decimal.NewFromInt(15000)})
	require.NoError(t, err)
	_, err = s.NextSequence(ctx, "receipt")
	require.NoError(t, err)

	reopened, err := Open(path)
	require.NoError(t, err)
	r, err := reopened.GetResident(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Meera", r.Name)
	assert.True(t, r.TotalDue.Equal(decimal.NewFromInt(15000)))

	n, err := reopened.NextSequence(ctx, "receipt")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
