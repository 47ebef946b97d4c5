package fields

import "testing"

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"B-7", Unit{"B", "B007"}},
		{"A-01", Unit{"A", "A001"}},
		{" c - 112 ", Unit{"C", "C112"}},
		{"D-1234", Unit{"D", "D1234"}},
		{"C", Unit{"C", "C001"}},
		{"C-", Unit{"C", "C001"}},
		{"", Unit{"A", "A001"}},
		{"-5", Unit{"A", "A005"}},
	}

	for _, tt := range tests {
		if got := ParseUnit(tt.in); got.Value != tt.want {
			t.Errorf("ParseUnit(%q) = %+v, want %+v", tt.in, got.Value, tt.want)
		}
	}

	if !ParseUnit("C").WasDefaulted() {
		t.Error("bare zone should be tagged defaulted")
	}
	if ParseUnit("B-7").WasDefaulted() {
		t.Error("B-7 should parse")
	}
}
