package plan

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Plan is a batch of workbooks to import, read from YAML:
//
//	workbooks:
//	  - file: ~/ledgers/2025-block-a.xls
//	    sheets: [Block A]
//	  - file: block-b.xlsx
//	    update_existing: false
type Plan struct {
	Workbooks []Workbook `yaml:"workbooks"`

	dir string
}

type Workbook struct {
	File           string   `yaml:"file"`
	Sheets         []string `yaml:"sheets"`
	UpdateExisting *bool    `yaml:"update_existing"`
}

func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Workbooks) == 0 {
		return nil, fmt.Errorf("plan has no workbooks")
	}
	for i, wb := range p.Workbooks {
		if strings.TrimSpace(wb.File) == "" {
			return nil, fmt.Errorf("plan workbook %d has no file", i+1)
		}
	}
	p.dir = filepath.Dir(path)
	return &p, nil
}

// FromFiles builds a plan for files given on the command line.
func FromFiles(files ...string) *Plan {
	p := &Plan{}
	for _, f := range files {
		p.Workbooks = append(p.Workbooks, Workbook{File: f})
	}
	return p
}

// Path resolves the workbook file, expanding ~ and making relative paths
// relative to the plan file.
func (p *Plan) Path(wb Workbook) (string, error) {
	if strings.HasPrefix(wb.File, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, wb.File[2:]), nil
	}
	if filepath.IsAbs(wb.File) || p.dir == "" {
		return wb.File, nil
	}
	return filepath.Join(p.dir, wb.File), nil
}

// WantsSheet reports whether a sheet is selected; no selection means all.
func (wb Workbook) WantsSheet(name string) bool {
	if len(wb.Sheets) == 0 {
		return true
	}
	for _, s := range wb.Sheets {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

func (p *Plan) Print(w io.Writer) {
	for i, wb := range p.Workbooks {
		sheets := "all"
		if len(wb.Sheets) > 0 {
			sheets = strings.Join(wb.Sheets, ",")
		}
		update := "default"
		if wb.UpdateExisting != nil {
			update = fmt.Sprintf("%t", *wb.UpdateExisting)
		}
		fmt.Fprintf(w, "[%d] file=%s sheets=%s update_existing=%s\n", i+1, wb.File, sheets, update)
	}
}
