package amazon

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/amzorders/importer/internal/core"
)

// Address is one parsed export address. Line1 is never empty; the other
// fields may be.
type Address struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}

var addressPrefix = regexp.MustCompile(`(?i)^(shipping|billing)\s+address:\s*`)

// streetSuffixes mark the end of the street line; anything after the last
// suffix becomes Line2 (apartment, suite, ...).
var streetSuffixes = map[string]bool{
	"DR": true, "ST": true, "AVE": true, "BLVD": true,
	"RD": true, "LN": true, "CT": true, "WAY": true,
}

// ParseAddress splits the export's single-string address into components.
//
// The format is space-separated with fixed trailing structure:
//
//	<street...> <city> <state> <zip[-plus4]> United States
//
// ZIP+4 codes are truncated to the five-digit ZIP so the natural key
// (line1, city, state, postal_code) is stable across exports.
func ParseAddress(s string) (*Address, error) {
	s = strings.TrimSpace(s)
	if core.IsAbsent(s) {
		return nil, fmt.Errorf("address not available")
	}
	s = addressPrefix.ReplaceAllString(s, "")

	parts := strings.Fields(s)

	country := "United States"
	if len(parts) >= 2 && parts[len(parts)-2] == "United" && parts[len(parts)-1] == "States" {
		parts = parts[:len(parts)-2]
	}

	// street + city + state + zip is the minimum shape
	if len(parts) < 4 {
		return nil, fmt.Errorf("unparseable address: %q", s)
	}

	postal := parts[len(parts)-1]
	if i := strings.IndexByte(postal, '-'); i >= 0 {
		postal = postal[:i]
	}
	state := parts[len(parts)-2]
	city := parts[len(parts)-3]
	street := parts[:len(parts)-3]

	line1 := strings.Join(street, " ")
	line2 := ""
	split := -1
	for i, word := range street {
		if streetSuffixes[strings.ToUpper(word)] {
			split = i + 1
		}
	}
	if split > 0 && split < len(street) {
		line1 = strings.Join(street[:split], " ")
		line2 = strings.Join(street[split:], " ")
	}

	return &Address{
		Line1:      line1,
		Line2:      line2,
		City:       city,
		State:      state,
		PostalCode: postal,
		Country:    country,
	}, nil
}
