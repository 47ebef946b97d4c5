package main

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/residentledger/pkg/csv"
	"github.com/yurifrl/residentledger/pkg/executors"
	"github.com/yurifrl/residentledger/pkg/models"
)

type filters struct {
	status     string
	name       string
	zone       string
	minPending float64
}

func (f *filters) toFilterFunc() csv.FilterFunc[executors.LedgerLine] {
	min := decimal.NewFromFloat(f.minPending)
	return func(l executors.LedgerLine) bool {
		if f.status != "" && l.Aggregate.Status != models.LedgerStatus(strings.ToLower(f.status)) {
			return false
		}
		if f.name != "" && !strings.Contains(strings.ToLower(l.Resident.Name), strings.ToLower(f.name)) {
			return false
		}
		if f.zone != "" && !strings.EqualFold(l.Resident.Zone, f.zone) {
			return false
		}
		if f.minPending != 0 && l.Aggregate.Pending.LessThan(min) {
			return false
		}
		return true
	}
}
