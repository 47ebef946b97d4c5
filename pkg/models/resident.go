package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Residency string

const (
	Permanent Residency = "permanent"
	Temporary Residency = "temporary"
)

// Resident is a person occupying a unit, with enrollment and fee data.
type Resident struct {
	ID              string
	EnrollmentNo    string
	Name            string
	Phone           string
	Address         string
	Zone            string
	Unit            string
	Course          string
	EnrollmentStart time.Time
	EnrollmentEnd   *time.Time
	Remark          string
	TotalDue        decimal.Decimal
	SecurityDeposit decimal.Decimal
	Residency       Residency
	OldResident     bool
	Vacated         bool
	Imported        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NameKey is the fallback natural key: lower(name)|phone.
func NameKey(name, phone string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.TrimSpace(phone)
}

func (r *Resident) NameKey() string {
	return NameKey(r.Name, r.Phone)
}
