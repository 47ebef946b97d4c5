package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/yurifrl/residentledger/pkg/grouper"
	"github.com/yurifrl/residentledger/pkg/identity"
	"github.com/yurifrl/residentledger/pkg/parser"
	"github.com/yurifrl/residentledger/pkg/store"
)

// Status is the dry-run outcome for one row group.
//
//   - Matched: the resident already exists.
//   - Create:  the resident would be created.
//   - Invalid: the group cannot be parsed.
type Status int

const (
	Matched Status = iota
	Create
	Invalid
)

func (s Status) String() string {
	switch s {
	case Matched:
		return "matched"
	case Create:
		return "new"
	default:
		return "invalid"
	}
}

// Entry describes what importing one group would do.
type Entry struct {
	Sheet         string
	Row           int
	Name          string
	Phone         string
	Unit          string
	ResidentID    string // empty unless Matched
	Status        Status
	NewReceipts   []string
	KnownReceipts []string
	Err           error
}

// Report is a dry-run of an import: nothing is written to the store.
type Report struct {
	Workbook string
	Items    []Entry
	Errors   []string
}

func (r *Report) MatchedCount() int { return r.count(Matched) }

func (r *Report) NewCount() int { return r.count(Create) }

func (r *Report) InvalidCount() int { return r.count(Invalid) }

func (r *Report) count(s Status) int {
	n := 0
	for _, it := range r.Items {
		if it.Status == s {
			n++
		}
	}
	return n
}

// NewReceiptCount is the number of receipts an import would ingest.
func (r *Report) NewReceiptCount() int {
	n := 0
	for _, it := range r.Items {
		n += len(it.NewReceipts)
	}
	return n
}

// Plan runs parsing, grouping and identity resolution without writing.
func (e *Engine) Plan(ctx context.Context, wb *parser.Workbook) (*Report, error) {
	existing, err := e.store.ListResidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load residents: %w", err)
	}
	index := identity.NewIndex(existing)
	report := &Report{Workbook: wb.Name}
	seen := map[string]bool{}

	for _, sheet := range wb.Sheets {
		header, err := sheet.LocateHeader(e.opts.HeaderScanRows)
		if err != nil {
			report.Errors = append(report.Errors, err.Error())
			continue
		}

		for i, g := range grouper.Split(sheet.Rows, header) {
			entry := Entry{Sheet: sheet.Name, Row: g.Primary().Number}
			rec, err := parseGroup(g, e.now())
			if err != nil {
				entry.Status = Invalid
				entry.Err = err
				report.Items = append(report.Items, entry)
				continue
			}

			entry.Name = rec.resident.Name
			entry.Phone = rec.resident.Phone
			entry.Unit = rec.resident.Unit
			if id, ok := index.Resolve(rec.resident.Name, rec.resident.Phone); ok {
				entry.Status = Matched
				entry.ResidentID = id
			} else {
				entry.Status = Create
				// later groups in the same file match this one
				pending := rec.resident
				pending.ID = fmt.Sprintf("planned-%s-%d", sheet.Name, i)
				index.Add(&pending)
			}

			for _, d := range rec.receipts {
				_, err := e.store.FindReceipt(ctx, d.receiptNo)
				switch {
				case err == nil || seen[d.receiptNo]:
					entry.KnownReceipts = append(entry.KnownReceipts, d.receiptNo)
				case errors.Is(err, store.ErrNotFound):
					seen[d.receiptNo] = true
					entry.NewReceipts = append(entry.NewReceipts, d.receiptNo)
				default:
					return nil, fmt.Errorf("receipt %s: %w", d.receiptNo, err)
				}
			}
			report.Items = append(report.Items, entry)
		}
	}
	return report, nil
}
