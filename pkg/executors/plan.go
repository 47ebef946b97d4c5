package executors

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yurifrl/residentledger/pkg/plan"
	"github.com/yurifrl/residentledger/pkg/reconcile"
)

var (
	matchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	newStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
)

// Plan previews what applying p would do. Nothing is written to the store.
func (e *Executor) Plan(ctx context.Context, p *plan.Plan) ([]*reconcile.Report, error) {
	reports := make([]*reconcile.Report, 0, len(p.Workbooks))
	for _, wb := range p.Workbooks {
		e.logger.Debug("planning workbook", "file", wb.File)

		book, err := e.load(p, wb)
		if err != nil {
			return reports, err
		}
		report, err := e.engine(wb).Plan(ctx, book)
		if err != nil {
			return reports, err
		}
		e.logger.Debug("processing plan report", "total", len(report.Items), "matched", report.MatchedCount(), "new", report.NewCount())

		e.printReport(report)
		e.dump(report)
		reports = append(reports, report)
	}
	return reports, nil
}

func (e *Executor) printReport(r *reconcile.Report) {
	fmt.Fprintf(e.out, "%s\n", r.Workbook)
	for _, msg := range r.Errors {
		fmt.Fprintln(e.out, invalidStyle.Render("! "+msg))
	}

	for _, it := range r.Items {
		switch it.Status {
		case reconcile.Invalid:
			line := fmt.Sprintf("%s row %d | %v", it.Sheet, it.Row, it.Err)
			fmt.Fprintln(e.out, invalidStyle.Render("! "+line))
		case reconcile.Matched:
			fmt.Fprintln(e.out, matchedStyle.Render("= "+entryLine(it)))
		default:
			fmt.Fprintln(e.out, newStyle.Render("+ "+entryLine(it)))
		}
	}

	fmt.Fprintf(e.out, "\nPlan: %d resident(s) to create, %d matched, %d invalid, %d receipt(s) to add\n\n",
		r.NewCount(), r.MatchedCount(), r.InvalidCount(), r.NewReceiptCount())
}

func entryLine(it reconcile.Entry) string {
	receipts := "-"
	if len(it.NewReceipts) > 0 {
		receipts = "+" + strings.Join(it.NewReceipts, ",")
	}
	if len(it.KnownReceipts) > 0 {
		receipts += " =" + strings.Join(it.KnownReceipts, ",")
	}
	return fmt.Sprintf("%s row %d | %-30s | %-12s | %-5s | %s", it.Sheet, it.Row, it.Name, it.Phone, it.Unit, receipts)
}
