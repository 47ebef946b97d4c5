package executors

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/yurifrl/residentledger/pkg/csv"
	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/store"
)

var ledgerHeader = []string{
	"Period", "EnrollmentNo", "Name", "Phone", "Zone", "Unit",
	"TotalDue", "Paid", "Pending", "Status",
}

// LedgerLine is one aggregate joined with its resident for export.
type LedgerLine struct {
	Resident  *models.Resident
	Aggregate *models.Aggregate
}

func (l LedgerLine) Fields() []string {
	return []string{
		l.Aggregate.Period,
		l.Resident.EnrollmentNo,
		l.Resident.Name,
		l.Resident.Phone,
		l.Resident.Zone,
		l.Resident.Unit,
		l.Aggregate.TotalDue.StringFixed(2),
		l.Aggregate.Paid.StringFixed(2),
		l.Aggregate.Pending.StringFixed(2),
		string(l.Aggregate.Status),
	}
}

// Ledger writes the aggregates of period (all periods when empty) as CSV,
// ordered by period then resident name.
func (e *Executor) Ledger(ctx context.Context, period string, filter csv.FilterFunc[LedgerLine]) error {
	aggs, err := e.store.ListAggregates(ctx, period)
	if err != nil {
		return fmt.Errorf("failed to list aggregates: %w", err)
	}

	residents := map[string]*models.Resident{}
	lines := make([]LedgerLine, 0, len(aggs))
	for _, a := range aggs {
		r, ok := residents[a.ResidentID]
		if !ok {
			r, err = e.store.GetResident(ctx, a.ResidentID)
			if errors.Is(err, store.ErrNotFound) {
				e.logger.Warn("aggregate without resident", "resident_id", a.ResidentID, "period", a.Period)
				continue
			}
			if err != nil {
				return err
			}
			residents[a.ResidentID] = r
		}
		lines = append(lines, LedgerLine{Resident: r, Aggregate: a})
	}

	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Aggregate.Period != lines[j].Aggregate.Period {
			return lines[i].Aggregate.Period < lines[j].Aggregate.Period
		}
		return lines[i].Resident.Name < lines[j].Resident.Name
	})

	out, err := csv.Create(ledgerHeader, lines, filter)
	if err != nil {
		return err
	}
	_, err = e.out.Write(out)
	return err
}
