package executors

import (
	"fmt"

	"github.com/yurifrl/residentledger/pkg/models"
)

func (e *Executor) printSummary(name string, s *models.Summary) {
	style := newStyle
	if !s.Success {
		style = invalidStyle
	}
	fmt.Fprintf(e.out, "%s: %s\n", name, style.Render(s.Message))
	fmt.Fprintf(e.out, "  rows:              %d\n", s.TotalRows)
	fmt.Fprintf(e.out, "  new residents:     %d\n", s.NewResidents)
	fmt.Fprintf(e.out, "  updated residents: %d\n", s.UpdatedResidents)
	fmt.Fprintf(e.out, "  new receipts:      %d\n", s.NewTransactions)
	fmt.Fprintf(e.out, "  skipped receipts:  %d\n", s.SkippedReceipts)

	for _, w := range s.Warnings {
		fmt.Fprintln(e.out, matchedStyle.Render("  warning: "+w))
	}

	shown := s.DisplayErrors(e.maxErrors)
	for _, msg := range shown {
		fmt.Fprintln(e.out, invalidStyle.Render("  error: "+msg))
	}
	if hidden := len(s.Errors) - len(shown); hidden > 0 {
		fmt.Fprintf(e.out, "  ... and %d more error(s)\n", hidden)
	}
}
