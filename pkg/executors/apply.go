package executors

import (
	"context"

	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/plan"
)

// Apply imports every workbook of p in order. A workbook that cannot be read
// stops the run; row-level failures only show up in its summary.
func (e *Executor) Apply(ctx context.Context, p *plan.Plan) ([]*models.Summary, error) {
	e.logger.Debug("applying plan", "workbooks", len(p.Workbooks))

	summaries := make([]*models.Summary, 0, len(p.Workbooks))
	for _, wb := range p.Workbooks {
		book, err := e.load(p, wb)
		if err != nil {
			return summaries, err
		}

		summary, err := e.engine(wb).Import(ctx, book)
		if err != nil {
			return summaries, err
		}
		e.printSummary(book.Name, summary)
		e.dump(summary)
		summaries = append(summaries, summary)

		if summary.Cancelled {
			break
		}
	}
	return summaries, nil
}
