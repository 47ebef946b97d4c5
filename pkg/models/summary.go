package models

// Summary is the outcome of one import run.
type Summary struct {
	Success          bool
	Message          string
	TotalRows        int
	NewResidents     int
	UpdatedResidents int
	NewTransactions  int
	SkippedReceipts  int
	Cancelled        bool
	Errors           []string
	Warnings         []string
}

// DisplayErrors caps the error list for display. Processing never truncates it.
func (s *Summary) DisplayErrors(max int) []string {
	if max <= 0 || len(s.Errors) <= max {
		return s.Errors
	}
	return s.Errors[:max]
}
