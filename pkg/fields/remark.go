package fields

import "strings"

type RemarkFlags struct {
	Temporary   bool
	OldResident bool
	Vacated     bool
}

// ParseRemark derives flags from free text with case-insensitive substring tests.
func ParseRemark(s string) RemarkFlags {
	lower := strings.ToLower(s)
	return RemarkFlags{
		Temporary:   strings.Contains(lower, "temporary"),
		OldResident: strings.Contains(lower, "old") && strings.Contains(lower, "resident"),
		Vacated:     strings.Contains(lower, "vacat"),
	}
}
