package core

import (
	"testing"
	"time"
)

func TestIsAbsent(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"Not Available", true},
		{"not available", true},
		{"  Not Available  ", true},
		{"0", false},
		{"Available", false},
		{"N/A", false},
	}

	for _, tt := range tests {
		if got := IsAbsent(tt.in); got != tt.want {
			t.Errorf("IsAbsent(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToPgText(t *testing.T) {
	tests := []struct {
		in    string
		want  string
		valid bool
	}{
		{"hello", "hello", true},
		{"  spaced  ", "spaced", true},
		{"", "", false},
		{"Not Available", "", false},
		{"0", "0", true},
	}

	for _, tt := range tests {
		got := ToPgText(tt.in)
		if got.Valid != tt.valid {
			t.Errorf("ToPgText(%q).Valid = %v, want %v", tt.in, got.Valid, tt.valid)
			continue
		}
		if got.Valid && got.String != tt.want {
			t.Errorf("ToPgText(%q) = %q, want %q", tt.in, got.String, tt.want)
		}
	}
}

func TestToPgTimestamp(t *testing.T) {
	tests := []struct {
		in    string
		want  time.Time
		valid bool
	}{
		{"2023-07-14T09:30:00Z", time.Date(2023, 7, 14, 9, 30, 0, 0, time.UTC), true},
		{"2023-07-14 09:30:00", time.Date(2023, 7, 14, 9, 30, 0, 0, time.UTC), true},
		{"2023-07-14", time.Date(2023, 7, 14, 0, 0, 0, 0, time.UTC), true},
		{"07/14/2023", time.Date(2023, 7, 14, 0, 0, 0, 0, time.UTC), true},
		{"7/4/2023", time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC), true},
		{"Jul 14, 2023", time.Date(2023, 7, 14, 0, 0, 0, 0, time.UTC), true},
		{"Not Available", time.Time{}, false},
		{"", time.Time{}, false},
		{"yesterday", time.Time{}, false},
	}

	for _, tt := range tests {
		got := ToPgTimestamp(tt.in)
		if got.Valid != tt.valid {
			t.Errorf("ToPgTimestamp(%q).Valid = %v, want %v", tt.in, got.Valid, tt.valid)
			continue
		}
		if got.Valid && !got.Time.Equal(tt.want) {
			t.Errorf("ToPgTimestamp(%q) = %v, want %v", tt.in, got.Time, tt.want)
		}
	}
}

func TestToPgNumeric(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"12.34", true},
		{"$12.34", true},
		{"$1,234.56", true},
		{"€9.99", true},
		{"£9.99", true},
		{"(45.00)", true},
		{"-3.5", true},
		{".5", true},
		{"", false},
		{"Not Available", false},
		{"free", false},
		{"12.3.4", false},
	}

	for _, tt := range tests {
		got := ToPgNumeric(tt.in)
		if got.Valid != tt.valid {
			t.Errorf("ToPgNumeric(%q).Valid = %v, want %v", tt.in, got.Valid, tt.valid)
		}
	}
}

func TestToPgNumeric_AccountingNegative(t *testing.T) {
	got := ToPgNumeric("($45.00)")
	if !got.Valid {
		t.Fatal("ToPgNumeric(\"($45.00)\") should be valid")
	}
	if got.Int.Sign() >= 0 {
		t.Errorf("ToPgNumeric(\"($45.00)\") = %v, want negative", got.Int)
	}
}

func TestToPgBool(t *testing.T) {
	tests := []struct {
		in    string
		want  bool
		valid bool
	}{
		{"true", true, true},
		{"Yes", true, true},
		{"Y", true, true},
		{"1", true, true},
		{"false", false, true},
		{"No", false, true},
		{"n", false, true},
		{"0", false, true},
		{"", false, false},
		{"Not Available", false, false},
		{"maybe", false, false},
	}

	for _, tt := range tests {
		got := ToPgBool(tt.in)
		if got.Valid != tt.valid {
			t.Errorf("ToPgBool(%q).Valid = %v, want %v", tt.in, got.Valid, tt.valid)
			continue
		}
		if got.Valid && got.Bool != tt.want {
			t.Errorf("ToPgBool(%q) = %v, want %v", tt.in, got.Bool, tt.want)
		}
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want int32
		ok   bool
	}{
		{"2", 2, true},
		{"2.0", 2, true},
		{"2.00", 2, true},
		{" 15 ", 15, true},
		{"-1", -1, true},
		{"2.5", 0, false},
		{"", 0, false},
		{"Not Available", 0, false},
		{"two", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseInt(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseInt(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`="113-2029871"`, "113-2029871"},
		{"=B00ABC", "B00ABC"},
		{`"quoted"`, "quoted"},
		{"'quoted'", "quoted"},
		{"\uFEFFOrder ID", "Order ID"},
		{"  plain  ", "plain"},
	}

	for _, tt := range tests {
		if got := CleanCell(tt.in); got != tt.want {
			t.Errorf("CleanCell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMakeHeaderIndex(t *testing.T) {
	idx := MakeHeaderIndex([]string{"Order ID", "ASIN", "order id"})

	if got, ok := idx["order id"]; !ok || got != 0 {
		t.Errorf("idx[order id] = %d, %v; want 0, true (first occurrence wins)", got, ok)
	}
	if got, ok := idx["asin"]; !ok || got != 1 {
		t.Errorf("idx[asin] = %d, %v; want 1, true", got, ok)
	}
}
