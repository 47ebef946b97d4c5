package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

func (p *Parser) ParseXLSX(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			p.logger.Warn("skipping unreadable sheet", "sheet", name, "error", err)
			continue
		}
		sheet := Sheet{Name: name, Rows: make([]Row, 0, len(rows))}
		for _, r := range rows {
			sheet.Rows = append(sheet.Rows, Row(r))
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("no readable sheets in workbook")
	}
	return wb, nil
}
