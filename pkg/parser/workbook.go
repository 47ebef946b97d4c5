package parser

import (
	"fmt"
	"strings"
)

// Row is one spreadsheet row. Numeric cells arrive in their formatted text form.
type Row []string

// Cell returns the trimmed cell at i, or "" past the end of the row.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[i])
}

func (r Row) IsBlank() bool {
	for _, c := range r {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

type Sheet struct {
	Name string
	Rows []Row
}

type Workbook struct {
	Name   string
	Sheets []Sheet
}

// ErrHeaderNotFound is returned when no serial-number header appears in the scan window.
var ErrHeaderNotFound = fmt.Errorf("header row not found")

// LocateHeader scans the first scan rows for a cell mentioning both "sr" and
// "no", as in "Sr. No.".
func (s *Sheet) LocateHeader(scan int) (int, error) {
	for i := 0; i < len(s.Rows) && i < scan; i++ {
		for _, c := range s.Rows[i] {
			lower := strings.ToLower(c)
			if strings.Contains(lower, "sr") && strings.Contains(lower, "no") {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("sheet %q: %w in first %d rows", s.Name, ErrHeaderNotFound, scan)
}
