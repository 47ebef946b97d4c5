package fields

import (
	"testing"
	"time"
)

var now = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func TestParseDateTwoDigitYear(t *testing.T) {
	for _, in := range []string{"5.3.25", "05/03/25", "5-3-25", "31.12.99", "1/1/00"} {
		got := ParseDate(in, now)
		if got.WasDefaulted() {
			t.Errorf("%q: unexpectedly defaulted", in)
			continue
		}
		if got.Value.Year() < 2000 || got.Value.Year() > 2099 {
			t.Errorf("%q: expected 20YY year, got %d", in, got.Value.Year())
		}
	}
	if y := ParseDate("31.12.99", now).Value.Year(); y != 2099 {
		t.Errorf("expected 2099, got %d", y)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in        string
		want      string
		defaulted bool
	}{
		{"01.06.2025", "2025-06-01", false},
		{"1/6/2025", "2025-06-01", false},
		{"01-06-2025", "2025-06-01", false},
		{"2025-06-01", "2025-06-01", false},
		{"1 Jun 2025", "2025-06-01", false},
		{"45809", "2025-06-01", false},
		{"2025", "2026-10-16", true},
		{"12", "2026-10-16", true},
		{"31.02.2025", "2026-10-16", true},
		{"not a date", "2026-10-16", true},
		{"", "2026-10-16", true},
	}

	for _, tt := range tests {
		got := ParseDate(tt.in, now)
		if got.Value.Format("2006-01-02") != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, got.Value.Format("2006-01-02"), tt.want)
		}
		if got.WasDefaulted() != tt.defaulted {
			t.Errorf("ParseDate(%q) defaulted = %v, want %v", tt.in, got.WasDefaulted(), tt.defaulted)
		}
	}
}

func TestParseDateRange(t *testing.T) {
	got := ParseDateRange("01.06.2025 To 01.05.2026", now)
	if got.Value.Start.Format("2006-01-02") != "2025-06-01" {
		t.Errorf("unexpected start %s", got.Value.Start)
	}
	if got.Value.End == nil || got.Value.End.Format("2006-01-02") != "2026-05-01" {
		t.Fatalf("unexpected end %v", got.Value.End)
	}

	open := ParseDateRange("15/07/2025", now)
	if open.Value.End != nil {
		t.Errorf("expected open range, got end %v", open.Value.End)
	}

	empty := ParseDateRange("", now)
	if !empty.WasDefaulted() || !empty.Value.Start.Equal(now) {
		t.Errorf("expected defaulted start at now, got %+v", empty)
	}
}
