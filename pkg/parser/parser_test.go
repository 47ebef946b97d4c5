package parser

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/xuri/excelize/v2"
)

const ledgerCSV = `Hostel Fee Register,,,
Sr. No.,Name / Address / Phone,Room,Course
1,"John Doe, City Town, 9999999999",A-01,BSc I
,,,
2,"Asha, Pune, 9876543210",B-7,MA II
`

func TestProcessBytesCSV(t *testing.T) {
	p := New(log.Default())
	wb, err := p.ProcessBytes([]byte(ledgerCSV), "/tmp/register.csv")
	if err != nil {
		t.Fatalf("ProcessBytes failed: %v", err)
	}
	if wb.Name != "register.csv" || len(wb.Sheets) != 1 {
		t.Fatalf("unexpected workbook %+v", wb)
	}

	sheet := wb.Sheets[0]
	if len(sheet.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(sheet.Rows))
	}
	if got := sheet.Rows[2].Cell(1); got != "John Doe, City Town, 9999999999" {
		t.Errorf("unexpected cell %q", got)
	}
	if got := sheet.Rows[2].Cell(40); got != "" {
		t.Errorf("expected empty cell past row end, got %q", got)
	}
	if !sheet.Rows[3].IsBlank() {
		t.Error("expected blank row")
	}

	header, err := sheet.LocateHeader(10)
	if err != nil || header != 1 {
		t.Errorf("expected header at 1, got %d (%v)", header, err)
	}
}

func TestLocateHeaderOutsideWindow(t *testing.T) {
	sheet := Sheet{Name: "late", Rows: []Row{{"title"}, {"notes"}, {"Sr No"}}}
	if _, err := sheet.LocateHeader(2); !errors.Is(err, ErrHeaderNotFound) {
		t.Errorf("expected ErrHeaderNotFound, got %v", err)
	}
	if i, err := sheet.LocateHeader(3); err != nil || i != 2 {
		t.Errorf("expected header at 2, got %d (%v)", i, err)
	}
}

func TestProcessBytesXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Sr.No", "Name"}); err != nil {
		t.Fatal(err)
	}
	if err := f.SetSheetRow("Sheet1", "A2", &[]interface{}{1, "John Doe, City Town, 9999999999"}); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}

	wb, err := New(log.Default()).ProcessBytes(buf.Bytes(), "ledger.xlsx")
	if err != nil {
		t.Fatalf("ProcessBytes failed: %v", err)
	}
	rows := wb.Sheets[0].Rows
	if len(rows) != 2 || rows[1].Cell(0) != "1" || rows[1].Cell(1) != "John Doe, City Town, 9999999999" {
		t.Errorf("unexpected rows %v", rows)
	}
}

func TestProcessBytesUnknownType(t *testing.T) {
	if _, err := New(log.Default()).ProcessBytes([]byte("x"), "notes.pdf"); err == nil {
		t.Error("expected error for unknown file type")
	}
}
