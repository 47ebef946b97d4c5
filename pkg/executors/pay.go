package executors

import (
	"context"
	"fmt"

	"github.com/yurifrl/residentledger/pkg/models"
	"github.com/yurifrl/residentledger/pkg/plan"
	"github.com/yurifrl/residentledger/pkg/reconcile"
)

// Pay records a manual payment for the resident matching name and phone.
func (e *Executor) Pay(ctx context.Context, name, phone string, p reconcile.Payment) (*models.Receipt, error) {
	eng := e.engine(plan.Workbook{})

	resident, err := eng.FindResident(ctx, name, phone)
	if err != nil {
		return nil, fmt.Errorf("resident %q (%s): %w", name, phone, err)
	}

	receipt, err := eng.RecordPayment(ctx, resident.ID, p)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(e.out, "%s %s | %s | %s\n", receipt.ReceiptNo, receipt.Date.Format("2006-01-02"), resident.Name, receipt.Total.StringFixed(2))
	e.dump(receipt)
	return receipt, nil
}
