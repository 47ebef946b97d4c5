// Package memory is an in-process store, optionally snapshotted to a JSON file
// after every committed write.
package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/store"
)

type dataset struct {
	Residents     map[string]*models.Resident `json:"residents"`
	Receipts      []*models.Receipt           `json:"receipts"`
	Aggregates    []*models.Aggregate         `json:"aggregates"`
	Sequences     map[string]int64            `json:"sequences"`
	LastReceipt   int64                       `json:"last_receipt_id"`
	LastAggregate int64                       `json:"last_aggregate_id"`
}

type Store struct {
	mu   sync.Mutex
	data *dataset
	path string
	now  func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{data: newDataset(), now: time.Now}
}

// Open loads the snapshot at path, starting empty if the file does not exist.
func Open(path string) (*Store, error) {
	s := New()
	s.path = path

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if err := json.Unmarshal(raw, s.data); err != nil {
		return nil, fmt.Errorf("failed to decode store file %s: %w", path, err)
	}
	if s.data.Residents == nil {
		s.data.Residents = map[string]*models.Resident{}
	}
	if s.data.Sequences == nil {
		s.data.Sequences = map[string]int64{}
	}
	return s, nil
}

func newDataset() *dataset {
	return &dataset{
		Residents: map[string]*models.Resident{},
		Sequences: map[string]int64{},
	}
}

func (s *Store) Atomic(ctx context.Context, fn func(store.Repository) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(&repo{data: work, now: s.now}); err != nil {
		return err
	}
	if err := s.save(work); err != nil {
		return err
	}
	s.data = work
	return nil
}

func (s *Store) Close() error {
	return nil
}

// write runs a single mutation as its own unit of work.
func (s *Store) write(ctx context.Context, fn func(*repo) error) error {
	return s.Atomic(ctx, func(r store.Repository) error {
		return fn(r.(*repo))
	})
}

func (s *Store) read() *repo {
	return &repo{data: s.data, now: s.now}
}

func (s *Store) save(d *dataset) error {
	if s.path == "" {
		return nil
	}
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create store dir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

func (d *dataset) clone() *dataset {
	out := &dataset{
		Residents:     make(map[string]*models.Resident, len(d.Residents)),
		Receipts:      make([]*models.Receipt, 0, len(d.Receipts)),
		Aggregates:    make([]*models.Aggregate, 0, len(d.Aggregates)),
		Sequences:     make(map[string]int64, len(d.Sequences)),
		LastReceipt:   d.LastReceipt,
		LastAggregate: d.LastAggregate,
	}
	for id, r := range d.Residents {
		cp := *r
		out.Residents[id] = &cp
	}
	for _, r := range d.Receipts {
		cp := *r
		out.Receipts = append(out.Receipts, &cp)
	}
	for _, a := range d.Aggregates {
		cp := *a
		out.Aggregates = append(out.Aggregates, &cp)
	}
	for k, v := range d.Sequences {
		out.Sequences[k] = v
	}
	return out
}

// Store methods outside Atomic behave like single-statement transactions.

func (s *Store) GetResident(ctx context.Context, id string) (*models.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetResident(ctx, id)
}

func (s *Store) FindResidentByPhone(ctx context.Context, phone string) (*models.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().FindResidentByPhone(ctx, phone)
}

func (s *Store) FindResidentByNameAndPhone(ctx context.Context, name, phone string) (*models.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().FindResidentByNameAndPhone(ctx, name, phone)
}

func (s *Store) ListResidents(ctx context.Context) ([]*models.Resident, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().ListResidents(ctx)
}

func (s *Store) UpsertResident(ctx context.Context, r *models.Resident) (id string, err error) {
	err = s.write(ctx, func(rp *repo) error {
		id, err = rp.UpsertResident(ctx, r)
		return err
	})
	return id, err
}

func (s *Store) FindReceipt(ctx context.Context, receiptNo string) (*models.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().FindReceipt(ctx, receiptNo)
}

func (s *Store) InsertReceipt(ctx context.Context, r *models.Receipt) (id int64, err error) {
	err = s.write(ctx, func(rp *repo) error {
		id, err = rp.InsertReceipt(ctx, r)
		return err
	})
	return id, err
}

func (s *Store) ListReceipts(ctx context.Context, residentID string) ([]*models.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().ListReceipts(ctx, residentID)
}

func (s *Store) GetAggregate(ctx context.Context, residentID, period string) (*models.Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().GetAggregate(ctx, residentID, period)
}

func (s *Store) UpsertAggregate(ctx context.Context, a *models.Aggregate) error {
	return s.write(ctx, func(rp *repo) error {
		return rp.UpsertAggregate(ctx, a)
	})
}

func (s *Store) ListAggregates(ctx context.Context, period string) ([]*models.Aggregate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read().ListAggregates(ctx, period)
}

func (s *Store) NextSequence(ctx context.Context, name string) (n int64, err error) {
	err = s.write(ctx, func(rp *repo) error {
		n, err = rp.NextSequence(ctx, name)
		return err
	})
	return n, err
}

// repo works on one dataset without locking; the Store holds the lock.
type repo struct {
	data *dataset
	now  func() time.Time
}

func (r *repo) GetResident(_ context.Context, id string) (*models.Resident, error) {
	res, ok := r.data.Residents[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *res
	return &cp, nil
}

func (r *repo) FindResidentByPhone(_ context.Context, phone string) (*models.Resident, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, store.ErrNotFound
	}
	for _, res := range r.sortedResidents() {
		if res.Phone == phone {
			cp := *res
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *repo) FindResidentByNameAndPhone(_ context.Context, name, phone string) (*models.Resident, error) {
	key := models.NameKey(name, phone)
	for _, res := range r.sortedResidents() {
		if res.NameKey() == key {
			cp := *res
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *repo) ListResidents(_ context.Context) ([]*models.Resident, error) {
	out := make([]*models.Resident, 0, len(r.data.Residents))
	for _, res := range r.sortedResidents() {
		cp := *res
		out = append(out, &cp)
	}
	return out, nil
}

// sortedResidents orders by creation so "first match" is stable.
func (r *repo) sortedResidents() []*models.Resident {
	out := make([]*models.Resident, 0, len(r.data.Residents))
	for _, res := range r.data.Residents {
		out = append(out, res)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *repo) UpsertResident(_ context.Context, res *models.Resident) (string, error) {
	now := r.now()
	cp := *res
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if existing, ok := r.data.Residents[cp.ID]; ok {
		cp.CreatedAt = existing.CreatedAt
	} else if cp.CreatedAt.IsZero() {
		cp.CreatedAt = now
	}
	cp.UpdatedAt = now
	r.data.Residents[cp.ID] = &cp
	return cp.ID, nil
}

func (r *repo) FindReceipt(_ context.Context, receiptNo string) (*models.Receipt, error) {
	for _, rc := range r.data.Receipts {
		if rc.ReceiptNo == receiptNo {
			cp := *rc
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *repo) InsertReceipt(ctx context.Context, rc *models.Receipt) (int64, error) {
	if _, ok := r.data.Residents[rc.ResidentID]; !ok {
		return 0, fmt.Errorf("receipt %s: resident %s: %w", rc.ReceiptNo, rc.ResidentID, store.ErrNotFound)
	}
	if _, err := r.FindReceipt(ctx, rc.ReceiptNo); err == nil {
		return 0, fmt.Errorf("receipt %s: %w", rc.ReceiptNo, store.ErrDuplicate)
	}
	r.data.LastReceipt++
	cp := *rc
	cp.ID = r.data.LastReceipt
	cp.CreatedAt = r.now()
	r.data.Receipts = append(r.data.Receipts, &cp)
	return cp.ID, nil
}

func (r *repo) ListReceipts(_ context.Context, residentID string) ([]*models.Receipt, error) {
	var out []*models.Receipt
	for _, rc := range r.data.Receipts {
		if rc.ResidentID == residentID {
			cp := *rc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *repo) GetAggregate(_ context.Context, residentID, period string) (*models.Aggregate, error) {
	for _, a := range r.data.Aggregates {
		if a.ResidentID == residentID && a.Period == period {
			cp := *a
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *repo) UpsertAggregate(_ context.Context, a *models.Aggregate) error {
	now := r.now()
	for i, existing := range r.data.Aggregates {
		if existing.ResidentID == a.ResidentID && existing.Period == a.Period {
			cp := *a
			cp.ID = existing.ID
			cp.CreatedAt = existing.CreatedAt
			cp.UpdatedAt = now
			r.data.Aggregates[i] = &cp
			return nil
		}
	}
	r.data.LastAggregate++
	cp := *a
	cp.ID = r.data.LastAggregate
	cp.CreatedAt = now
	cp.UpdatedAt = now
	r.data.Aggregates = append(r.data.Aggregates, &cp)
	a.ID = cp.ID
	return nil
}

func (r *repo) ListAggregates(_ context.Context, period string) ([]*models.Aggregate, error) {
	var out []*models.Aggregate
	for _, a := range r.data.Aggregates {
		if period == "" || a.Period == period {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *repo) NextSequence(_ context.Context, name string) (int64, error) {
	r.data.Sequences[name]++
	return r.data.Sequences[name], nil
}
