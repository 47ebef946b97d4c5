package main

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/residentledger/pkg/executors"
	"github.com/yurifrl/residentledger/pkg/models"
)

func line(name, zone string, pending int64, status models.LedgerStatus) executors.LedgerLine {
	return executors.LedgerLine{
		Resident:  &models.Resident{Name: name, Zone: zone},
		Aggregate: &models.Aggregate{Pending: decimal.NewFromInt(pending), Status: status},
	}
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name string
		f    filters
		in   executors.LedgerLine
		want bool
	}{
		{"no filters", filters{}, line("John", "A", 0, models.Paid), true},
		{"status match", filters{status: "PAID"}, line("John", "A", 0, models.Paid), true},
		{"status mismatch", filters{status: "unpaid"}, line("John", "A", 0, models.Paid), false},
		{"name substring", filters{name: "oh"}, line("John", "A", 0, models.Paid), true},
		{"name mismatch", filters{name: "meera"}, line("John", "A", 0, models.Paid), false},
		{"zone", filters{zone: "b"}, line("John", "B", 0, models.Paid), true},
		{"below min pending", filters{minPending: 500}, line("John", "A", 100, models.PartiallyPaid), false},
		{"above min pending", filters{minPending: 500}, line("John", "A", 900, models.PartiallyPaid), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.toFilterFunc()(tt.in); got != tt.want {
				t.Errorf("filter(%+v) = %v, want %v", tt.f, got, tt.want)
			}
		})
	}
}
