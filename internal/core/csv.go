package core

import (
	"bytes"
	"encoding/csv"
	"strings"
	"unicode/utf8"
)

// MaxHeaderSearchRows is the maximum number of rows to scan for the header.
// Some exports put a title or disclaimer line above the real header.
var MaxHeaderSearchRows = 20

// ParseCSV parses raw file data leniently: ragged rows are allowed and
// quoting errors are tolerated.
func ParseCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(SanitizeUTF8(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// SanitizeUTF8 replaces invalid byte sequences with the replacement rune.
func SanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}
	return buf.Bytes()
}

// FindHeader returns the index of the first row that carries every required
// column, scanning at most MaxHeaderSearchRows rows. Returns -1 if no row
// qualifies.
func FindHeader(records [][]string, required []string) int {
	maxRows := MaxHeaderSearchRows
	if len(records) < maxRows {
		maxRows = len(records)
	}

	for i := 0; i < maxRows; i++ {
		idx := MakeHeaderIndex(records[i])
		if containsAll(idx, required) {
			return i
		}
	}
	return -1
}

func containsAll(idx HeaderIndex, required []string) bool {
	for _, name := range required {
		if _, ok := idx[strings.ToLower(name)]; !ok {
			return false
		}
	}
	return true
}

// IsEmptyRow reports whether every cell of a row is blank.
func IsEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
