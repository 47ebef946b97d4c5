package reconcile

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/residentledger/pkg/fields"
	"github.com/yurifrl/residentledger/pkg/grouper"
	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/parser"
)

// Column contract, counted from the sequence number column.
const (
	colSeq = iota
	colContact
	colUnit
	colCourse
	colEnrollment
	colReceiptNo
	colReceiptDate
	colRegistration
	colRent
	colUtilities
	colMisc
	colCollected
	colTotalDue
	colOutstanding
	colRemark
	colDeposit
)

// record is one row group decomposed into a resident candidate and its receipts.
type record struct {
	line     int
	resident models.Resident
	receipts []draft
	warnings []string
}

type draft struct {
	line          int
	receiptNo     string
	date          time.Time
	dateDefaulted bool
	fees          [4]decimal.Decimal
}

func (d draft) build(residentID string) (*models.Receipt, error) {
	return models.NewReceipt(d.receiptNo).
		ForResident(residentID).
		SetDate(d.date, d.dateDefaulted).
		SetFees(d.fees[0], d.fees[1], d.fees[2], d.fees[3]).
		Build()
}

func parseGroup(g grouper.Group, now time.Time) (*record, error) {
	primary := g.Primary()
	row := primary.Row
	rec := &record{line: primary.Number}

	contact := fields.ParseContact(row.Cell(colContact))
	if contact.Value.Name == "" {
		return nil, fmt.Errorf("resident name is empty")
	}
	if contact.WasDefaulted() {
		rec.warn(primary.Number, "no 10-digit phone in %q, matching by name only", row.Cell(colContact))
	}

	unit := fields.ParseUnit(row.Cell(colUnit))
	enrollment := fields.ParseDateRange(row.Cell(colEnrollment), now)
	if enrollment.WasDefaulted() && row.Cell(colEnrollment) != "" {
		rec.warn(primary.Number, "enrollment %q unreadable, using import date", row.Cell(colEnrollment))
	}

	due, err := amount(row, colTotalDue, "total due")
	if err != nil {
		return nil, err
	}
	deposit, err := amount(row, colDeposit, "security deposit")
	if err != nil {
		return nil, err
	}

	remark := row.Cell(colRemark)
	flags := fields.ParseRemark(remark)
	residency := models.Permanent
	if flags.Temporary {
		residency = models.Temporary
	}

	rec.resident = models.Resident{
		Name:            contact.Value.Name,
		Phone:           contact.Value.Phone,
		Address:         contact.Value.Address,
		Zone:            unit.Value.Zone,
		Unit:            unit.Value.Code,
		Course:          row.Cell(colCourse),
		EnrollmentStart: enrollment.Value.Start,
		EnrollmentEnd:   enrollment.Value.End,
		Remark:          remark,
		TotalDue:        due,
		SecurityDeposit: deposit,
		Residency:       residency,
		OldResident:     flags.OldResident,
		Vacated:         flags.Vacated,
	}

	for _, l := range g.Lines {
		d, ok, err := parseReceipt(l, now)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if d.dateDefaulted {
			rec.warn(l.Number, "receipt %s date %q unreadable, using import date", d.receiptNo, l.Row.Cell(colReceiptDate))
		}
		rec.receipts = append(rec.receipts, d)
	}
	return rec, nil
}

func parseReceipt(l grouper.Line, now time.Time) (draft, bool, error) {
	no := l.Row.Cell(colReceiptNo)
	if no == "" {
		return draft{}, false, nil
	}
	date := fields.ParseDate(l.Row.Cell(colReceiptDate), now)
	d := draft{line: l.Number, receiptNo: no, date: date.Value, dateDefaulted: date.WasDefaulted()}

	names := [4]string{"registration", "rent", "utilities", "miscellaneous"}
	for i := range d.fees {
		v, err := amount(l.Row, colRegistration+i, names[i])
		if err != nil {
			return draft{}, false, fmt.Errorf("receipt %s: %w", no, err)
		}
		d.fees[i] = v
	}
	return d, true, nil
}

func amount(row parser.Row, col int, name string) (decimal.Decimal, error) {
	v, err := fields.ParseAmount(row.Cell(col))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", name, err)
	}
	return v.Value, nil
}

func (r *record) warn(line int, format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf("row %d: %s", line, fmt.Sprintf(format, args...)))
}

func (r *record) dates() []time.Time {
	out := make([]time.Time, 0, len(r.receipts))
	for _, d := range r.receipts {
		out = append(out, d.date)
	}
	return out
}

// merge copies import data into the blank fields of existing and reports
// whether anything changed. Populated fields are never overwritten. Residency
// only moves toward Temporary.
func merge(existing *models.Resident, in models.Resident) bool {
	changed := false
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" && src != "" {
			*dst = src
			changed = true
		}
	}

	fill(&existing.Course, in.Course)
	if existing.Zone == "" && existing.Unit == "" && in.Unit != "" {
		existing.Zone, existing.Unit = in.Zone, in.Unit
		changed = true
	}
	fill(&existing.Address, in.Address)
	if existing.TotalDue.IsZero() && !in.TotalDue.IsZero() {
		existing.TotalDue = in.TotalDue
		changed = true
	}
	// TODO: confirm with product whether a Permanent import should clear Temporary.
	if in.Residency == models.Temporary && existing.Residency != models.Temporary {
		existing.Residency = models.Temporary
		changed = true
	}
	return changed
}
