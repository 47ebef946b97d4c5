// Package store defines the record store the reconciliation engine reads and
// writes: residents, receipts, ledger aggregates and named counters.
package store

import (
	"context"
	"errors"

	"github.com/yurifrl/residentledger/pkg/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
)

type ResidentRepository interface {
	GetResident(ctx context.Context, id string) (*models.Resident, error)
	FindResidentByPhone(ctx context.Context, phone string) (*models.Resident, error)
	FindResidentByNameAndPhone(ctx context.Context, name, phone string) (*models.Resident, error)
	ListResidents(ctx context.Context) ([]*models.Resident, error)
	// UpsertResident inserts or replaces by ID, assigning one when empty.
	UpsertResident(ctx context.Context, r *models.Resident) (string, error)
}

type ReceiptRepository interface {
	FindReceipt(ctx context.Context, receiptNo string) (*models.Receipt, error)
	// InsertReceipt fails with ErrDuplicate when the receipt number exists.
	InsertReceipt(ctx context.Context, r *models.Receipt) (int64, error)
	ListReceipts(ctx context.Context, residentID string) ([]*models.Receipt, error)
}

type AggregateRepository interface {
	GetAggregate(ctx context.Context, residentID, period string) (*models.Aggregate, error)
	UpsertAggregate(ctx context.Context, a *models.Aggregate) error
	// ListAggregates returns every aggregate of period, or all when period is empty.
	ListAggregates(ctx context.Context, period string) ([]*models.Aggregate, error)
}

// CounterRepository hands out monotonic sequence numbers.
type CounterRepository interface {
	// NextSequence atomically increments the named counter and returns the new value.
	NextSequence(ctx context.Context, name string) (int64, error)
}

type Repository interface {
	ResidentRepository
	ReceiptRepository
	AggregateRepository
	CounterRepository
}

type Store interface {
	Repository
	// Atomic runs fn in a single unit of work. Nothing fn wrote survives an error.
	Atomic(ctx context.Context, fn func(Repository) error) error
	Close() error
}
