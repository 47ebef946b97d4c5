package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Receipt is one payment event tied to a resident, unique by ReceiptNo.
type Receipt struct {
	ID            int64
	ResidentID    string
	ReceiptNo     string
	Date          time.Time
	DateDefaulted bool
	Registration  decimal.Decimal
	Rent          decimal.Decimal
	Utilities     decimal.Decimal
	Misc          decimal.Decimal
	Total         decimal.Decimal
	CreatedAt     time.Time
}

type ReceiptBuilder struct {
	receipt Receipt
	err     error
}

func NewReceipt(receiptNo string) *ReceiptBuilder {
	return &ReceiptBuilder{receipt: Receipt{ReceiptNo: strings.TrimSpace(receiptNo)}}
}

func (b *ReceiptBuilder) ForResident(id string) *ReceiptBuilder {
	b.receipt.ResidentID = id
	return b
}

// SetDate records the receipt date and whether it was defaulted by the parser.
func (b *ReceiptBuilder) SetDate(t time.Time, defaulted bool) *ReceiptBuilder {
	b.receipt.Date = t
	b.receipt.DateDefaulted = defaulted
	return b
}

func (b *ReceiptBuilder) SetFees(registration, rent, utilities, misc decimal.Decimal) *ReceiptBuilder {
	b.receipt.Registration = registration
	b.receipt.Rent = rent
	b.receipt.Utilities = utilities
	b.receipt.Misc = misc
	return b
}

func (b *ReceiptBuilder) Build() (*Receipt, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.receipt.ReceiptNo == "" {
		return nil, fmt.Errorf("receipt number is empty")
	}
	if b.receipt.ResidentID == "" {
		return nil, fmt.Errorf("receipt %s has no resident", b.receipt.ReceiptNo)
	}
	r := b.receipt
	r.Total = r.Registration.Add(r.Rent).Add(r.Utilities).Add(r.Misc)
	return &r, nil
}
