// Package grouper recovers the one-resident-many-receipts structure of a flat
// ledger sheet.
package grouper

import (
	"math"
	"strconv"
	"strings"

	"github.com/yurifrl/residentledger/pkg/parser"
)

// Line is a row together with its 1-based spreadsheet row number.
type Line struct {
	Number int
	Row    parser.Row
}

// Group is one resident: a primary line followed by continuation lines that
// carry only receipt-level fields.
type Group struct {
	Lines []Line
}

func (g Group) Primary() Line {
	return g.Lines[0]
}

// Split scans the rows after header. A row whose first cell is a number opens a
// new group; any other non-blank row joins the current group. Rows before the
// first numbered row are dropped.
func Split(rows []parser.Row, header int) []Group {
	var (
		groups  []Group
		current *Group
	)
	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		line := Line{Number: i + 1, Row: row}

		if isSequenceNumber(row.Cell(0)) {
			groups = append(groups, Group{Lines: []Line{line}})
			current = &groups[len(groups)-1]
			continue
		}
		if current == nil || row.IsBlank() {
			continue
		}
		current.Lines = append(current.Lines, line)
	}
	return groups
}

func isSequenceNumber(s string) bool {
	s = strings.TrimSuffix(strings.TrimSpace(s), ".")
	if s == "" {
		return false
	}
	n, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsInf(n, 0) && !math.IsNaN(n)
}
