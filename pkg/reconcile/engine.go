// Package reconcile turns grouped ledger rows into residents, receipts and
// per-period aggregates without creating duplicates.
//
// Groups are reconciled strictly in document order, each inside one store
// transaction. A failing group is recorded in the summary and skipped; groups
// already committed stay committed.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yurifrl/residentledger/pkg/grouper"
	"github.com/yurifrl/residentledger/pkg/identity"
	"github.com/yurifrl/residentledger/pkg/ledger"
	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/parser"
	"github.com/yurifrl/residentledger/pkg/store"
)

type Options struct {
	// UpdateExisting fills blank fields of matched residents from the import.
	UpdateExisting bool
	HeaderScanRows int
	Periods        ledger.Periods
}

func DefaultOptions() Options {
	return Options{
		UpdateExisting: true,
		HeaderScanRows: 10,
		Periods:        ledger.Periods{Basis: ledger.BasisImport, StartMonth: time.June},
	}
}

type Engine struct {
	store  store.Store
	logger *log.Logger
	opts   Options
	now    func() time.Time
}

func New(s store.Store, logger *log.Logger, opts Options) *Engine {
	if opts.HeaderScanRows <= 0 {
		opts.HeaderScanRows = DefaultOptions().HeaderScanRows
	}
	if opts.Periods.StartMonth == 0 {
		opts.Periods.StartMonth = time.June
	}
	return &Engine{
		store:  s,
		logger: logger,
		opts:   opts,
		now:    time.Now,
	}
}

// SetClock replaces the engine's time source.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// groupResult counts what one committed group changed.
type groupResult struct {
	created  *models.Resident
	updated  bool
	inserted int
	skipped  int
}

// Import reconciles every sheet of wb. It returns an error only when the store
// cannot be read at all; everything else lands in the summary.
func (e *Engine) Import(ctx context.Context, wb *parser.Workbook) (*models.Summary, error) {
	existing, err := e.store.ListResidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load residents: %w", err)
	}
	index := identity.NewIndex(existing)
	e.logger.Debug("loaded resident index", "residents", len(existing), "workbook", wb.Name)

	summary := &models.Summary{}
	groups := 0

sheets:
	for _, sheet := range wb.Sheets {
		header, err := sheet.LocateHeader(e.opts.HeaderScanRows)
		if err != nil {
			summary.Errors = append(summary.Errors, err.Error())
			e.logger.Warn("skipping sheet", "sheet", sheet.Name, "error", err)
			continue
		}
		summary.TotalRows += len(sheet.Rows) - header - 1

		for _, g := range grouper.Split(sheet.Rows, header) {
			if ctx.Err() != nil {
				summary.Cancelled = true
				break sheets
			}
			groups++

			now := e.now()
			rec, res, err := e.reconcileGroup(ctx, index, g, now)
			if rec != nil {
				for _, w := range rec.warnings {
					summary.Warnings = append(summary.Warnings, fmt.Sprintf("%s %s", sheet.Name, w))
				}
			}
			if err != nil {
				msg := fmt.Sprintf("%s row %d: %v", sheet.Name, g.Primary().Number, err)
				summary.Errors = append(summary.Errors, msg)
				e.logger.Warn("group failed", "sheet", sheet.Name, "row", g.Primary().Number, "error", err)
				continue
			}

			if res.created != nil {
				index.Add(res.created)
				summary.NewResidents++
			}
			if res.updated {
				summary.UpdatedResidents++
			}
			summary.NewTransactions += res.inserted
			summary.SkippedReceipts += res.skipped
		}
	}

	summary.Success = len(summary.Errors) == 0 && !summary.Cancelled
	summary.Message = message(summary, groups)
	e.logger.Info("import finished", "workbook", wb.Name, "groups", groups,
		"new_residents", summary.NewResidents, "new_transactions", summary.NewTransactions,
		"errors", len(summary.Errors), "cancelled", summary.Cancelled)
	return summary, nil
}

func message(s *models.Summary, groups int) string {
	var b strings.Builder
	if s.Cancelled {
		fmt.Fprintf(&b, "import cancelled after %d groups: ", groups)
	} else {
		fmt.Fprintf(&b, "processed %d groups: ", groups)
	}
	fmt.Fprintf(&b, "%d new residents, %d updated, %d new transactions, %d duplicate receipts skipped",
		s.NewResidents, s.UpdatedResidents, s.NewTransactions, s.SkippedReceipts)
	if n := len(s.Errors); n > 0 {
		fmt.Fprintf(&b, ", %d errors", n)
	}
	return b.String()
}

func (e *Engine) reconcileGroup(ctx context.Context, index *identity.Index, g grouper.Group, now time.Time) (rec *record, res groupResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("unexpected failure: %v", p)
		}
	}()

	rec, err = parseGroup(g, now)
	if err != nil {
		return nil, res, err
	}

	// A started group always runs to commit; cancellation is honoured between groups.
	ctx = context.WithoutCancel(ctx)

	err = e.store.Atomic(ctx, func(r store.Repository) error {
		res = groupResult{}
		resident, err := e.upsertResident(ctx, r, index, rec, &res)
		if err != nil {
			return err
		}

		for _, d := range rec.receipts {
			if _, err := r.FindReceipt(ctx, d.receiptNo); err == nil {
				e.logger.Debug("skipping known receipt", "receipt", d.receiptNo, "row", d.line)
				res.skipped++
				continue
			} else if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("receipt %s: %w", d.receiptNo, err)
			}

			receipt, err := d.build(resident.ID)
			if err != nil {
				return err
			}
			if _, err := r.InsertReceipt(ctx, receipt); err != nil {
				return err
			}
			res.inserted++
		}

		return e.refreshAggregates(ctx, r, resident, rec.dates(), now)
	})
	return rec, res, err
}

func (e *Engine) upsertResident(ctx context.Context, r store.Repository, index *identity.Index, rec *record, res *groupResult) (*models.Resident, error) {
	if id, ok := index.Resolve(rec.resident.Name, rec.resident.Phone); ok {
		existing, err := r.GetResident(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resident %s: %w", id, err)
		}
		if e.opts.UpdateExisting && merge(existing, rec.resident) {
			if _, err := r.UpsertResident(ctx, existing); err != nil {
				return nil, err
			}
			res.updated = true
		}
		return existing, nil
	}

	created := rec.resident
	created.ID = uuid.NewString()
	created.EnrollmentNo = placeholderEnrollment()
	created.Imported = true
	if _, err := r.UpsertResident(ctx, &created); err != nil {
		return nil, err
	}
	res.created = &created
	return &created, nil
}

func placeholderEnrollment() string {
	return "IMP-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// refreshAggregates recomputes the resident's aggregate for every period the
// receipts touch, from the resident's full receipt history.
func (e *Engine) refreshAggregates(ctx context.Context, r store.Repository, resident *models.Resident, dates []time.Time, now time.Time) error {
	history, err := r.ListReceipts(ctx, resident.ID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		return nil
	}

	for _, period := range e.periods(dates, now) {
		existing, err := r.GetAggregate(ctx, resident.ID, period)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		totals := make([]decimal.Decimal, 0, len(history))
		for _, rc := range history {
			if e.opts.Periods.Basis == ledger.BasisReceipt && !e.opts.Periods.Contains(period, rc.Date) {
				continue
			}
			totals = append(totals, rc.Total)
		}

		agg := ledger.Compute(existing, totals, resident.TotalDue)
		agg.ResidentID = resident.ID
		agg.Period = period
		if err := r.UpsertAggregate(ctx, &agg); err != nil {
			return err
		}
		e.logger.Debug("aggregate refreshed", "resident", resident.ID, "period", period,
			"paid", agg.Paid.String(), "pending", agg.Pending.String(), "status", agg.Status)
	}
	return nil
}

func (e *Engine) periods(dates []time.Time, now time.Time) []string {
	if e.opts.Periods.Basis != ledger.BasisReceipt || len(dates) == 0 {
		return []string{e.opts.Periods.For(time.Time{}, now)}
	}
	seen := map[string]bool{}
	var out []string
	for _, d := range dates {
		p := e.opts.Periods.For(d, now)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
