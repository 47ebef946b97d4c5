package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/residentledger/pkg/models"
)

func TestPaymentFlags(t *testing.T) {
	p, err := paymentFlags{name: "John", date: "2026-07-01", rent: "Rs. 8,000", misc: "250"}.toPayment()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), p.Date)
	assert.True(t, p.Rent.Equal(decimal.NewFromInt(8000)))
	assert.True(t, p.Misc.Equal(decimal.NewFromInt(250)))
	assert.True(t, p.Registration.IsZero())
}

func TestPaymentFlagsRejects(t *testing.T) {
	tests := map[string]paymentFlags{
		"no name":      {rent: "100"},
		"bad date":     {name: "John", date: "01/07/2026", rent: "100"},
		"bad amount":   {name: "John", rent: "lots"},
		"negative":     {name: "John", rent: "-5"},
		"zero payment": {name: "John"},
	}
	for name, f := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := f.toPayment()
			assert.Error(t, err)
		})
	}
}

func TestCheckSummaries(t *testing.T) {
	assert.NoError(t, checkSummaries([]*models.Summary{{Success: true}}))
	assert.ErrorIs(t, checkSummaries([]*models.Summary{{Success: true}, {Success: false}}), errImportFailed)
}
