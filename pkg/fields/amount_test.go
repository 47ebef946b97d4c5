package fields

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5000", "5000"},
		{"13,500", "13500"},
		{"₹ 8,000.50", "8000.5"},
		{"Rs. 500/-", "500"},
		{"", "0"},
		{"-", "0"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		if err != nil {
			t.Errorf("ParseAmount(%q) error: %v", tt.in, err)
			continue
		}
		if got.Value.String() != tt.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got.Value, tt.want)
		}
	}

	if _, err := ParseAmount("five hundred"); err == nil {
		t.Error("expected error for non-numeric amount")
	}
}

func TestParseRemark(t *testing.T) {
	f := ParseRemark("TEMPORARY stay, old Resident")
	if !f.Temporary || !f.OldResident || f.Vacated {
		t.Errorf("unexpected flags %+v", f)
	}
	if !ParseRemark("Vacated in March").Vacated {
		t.Error("expected vacated")
	}
	if ParseRemark("Active") != (RemarkFlags{}) {
		t.Error("expected no flags")
	}
}
