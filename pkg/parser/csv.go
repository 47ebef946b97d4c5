package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// ParseCSV reads a single-sheet export. Rows may have any number of columns.
func (p *Parser) ParseCSV(data []byte) (*Workbook, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv is empty")
	}

	sheet := Sheet{Name: "csv", Rows: make([]Row, 0, len(records))}
	for _, rec := range records {
		sheet.Rows = append(sheet.Rows, Row(rec))
	}
	return &Workbook{Sheets: []Sheet{sheet}}, nil
}
