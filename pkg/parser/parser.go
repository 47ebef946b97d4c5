package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

type FileType string

const (
	XLS  FileType = "xls"
	XLSX FileType = "xlsx"
	CSV  FileType = "csv"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// ProcessBytes reads a whole workbook. An error here means the file itself is
// unreadable; sheet-level problems are left to the caller.
func (p *Parser) ProcessBytes(data []byte, filename string) (*Workbook, error) {
	fileType := detectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	var (
		wb  *Workbook
		err error
	)
	switch fileType {
	case XLS:
		wb, err = p.ParseXLS(data)
	case XLSX:
		wb, err = p.ParseXLSX(data)
	case CSV:
		wb, err = p.ParseCSV(data)
	default:
		return nil, fmt.Errorf("unknown file type: %s", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	wb.Name = filepath.Base(filename)
	for _, s := range wb.Sheets {
		p.logger.Debug("read sheet", "file", wb.Name, "sheet", s.Name, "rows", len(s.Rows))
	}
	return wb, nil
}

func detectType(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xls":
		return XLS
	case ".xlsx", ".xlsm":
		return XLSX
	case ".csv", ".txt":
		return CSV
	}
	return ""
}
