package core

import (
	"testing"
)

func TestParseCSV_Ragged(t *testing.T) {
	data := []byte("a,b,c\n1,2\n3,4,5,6\n")

	records, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	if len(records[1]) != 2 || len(records[2]) != 4 {
		t.Errorf("ragged rows not preserved: %v", records)
	}
}

func TestParseCSV_InvalidUTF8(t *testing.T) {
	data := []byte("name\ncaf\xff\n")

	records, err := ParseCSV(data)
	if err != nil {
		t.Fatalf("ParseCSV() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[1][0] == "caf\xff" {
		t.Error("invalid byte should have been replaced")
	}
}

func TestSanitizeUTF8_ValidPassthrough(t *testing.T) {
	data := []byte("héllo, wörld")
	got := SanitizeUTF8(data)
	if string(got) != string(data) {
		t.Errorf("SanitizeUTF8 altered valid input: %q", got)
	}
}

func TestFindHeader(t *testing.T) {
	records := [][]string{
		{"Amazon.com - Your Orders"},
		{""},
		{"Order ID", "ASIN", "Quantity"},
		{"111-222", "B0001", "1"},
	}

	got := FindHeader(records, []string{"Order ID", "ASIN"})
	if got != 2 {
		t.Errorf("FindHeader() = %d, want 2", got)
	}
}

func TestFindHeader_NotFound(t *testing.T) {
	records := [][]string{
		{"Order ID", "ASIN"},
	}

	if got := FindHeader(records, []string{"Order ID", "Quantity"}); got != -1 {
		t.Errorf("FindHeader() = %d, want -1", got)
	}
}

func TestFindHeader_RespectsSearchLimit(t *testing.T) {
	old := MaxHeaderSearchRows
	MaxHeaderSearchRows = 2
	defer func() { MaxHeaderSearchRows = old }()

	records := [][]string{
		{"junk"},
		{"junk"},
		{"Order ID", "ASIN"},
	}

	if got := FindHeader(records, []string{"Order ID"}); got != -1 {
		t.Errorf("FindHeader() = %d, want -1 beyond search limit", got)
	}
}

func TestIsEmptyRow(t *testing.T) {
	tests := []struct {
		row  []string
		want bool
	}{
		{[]string{}, true},
		{[]string{"", "  ", "\t"}, true},
		{[]string{"", "x"}, false},
	}

	for _, tt := range tests {
		if got := IsEmptyRow(tt.row); got != tt.want {
			t.Errorf("IsEmptyRow(%v) = %v, want %v", tt.row, got, tt.want)
		}
	}
}
