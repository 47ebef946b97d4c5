package fields

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyMarks = strings.NewReplacer("₹", "", "INR", "", "Rs.", "", "Rs", "", "$", "", ",", "", " ", "", "/-", "")

// ParseAmount reads a money cell. Blank and "-" cells are zero (Defaulted);
// anything else that is not a number is an error.
func ParseAmount(s string) (Result[decimal.Decimal], error) {
	clean := currencyMarks.Replace(strings.TrimSpace(s))
	if clean == "" || clean == "-" {
		return defaulted(decimal.Zero), nil
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return defaulted(decimal.Zero), fmt.Errorf("invalid amount %q", s)
	}
	return parsed(d), nil
}
