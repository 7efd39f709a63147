package amazon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress_Basic(t *testing.T) {
	addr, err := ParseAddress("123 Main St Seattle WA 98101 United States")
	require.NoError(t, err)

	assert.Equal(t, "123 Main St", addr.Line1)
	assert.Equal(t, "", addr.Line2)
	assert.Equal(t, "Seattle", addr.City)
	assert.Equal(t, "WA", addr.State)
	assert.Equal(t, "98101", addr.PostalCode)
	assert.Equal(t, "United States", addr.Country)
}

func TestParseAddress_SecondLine(t *testing.T) {
	addr, err := ParseAddress("123 Main St Apt 4B Seattle WA 98101 United States")
	require.NoError(t, err)

	assert.Equal(t, "123 Main St", addr.Line1)
	assert.Equal(t, "Apt 4B", addr.Line2)
	assert.Equal(t, "Seattle", addr.City)
}

func TestParseAddress_ZipPlus4Truncated(t *testing.T) {
	addr, err := ParseAddress("500 Oak Ave Portland OR 97201-1234 United States")
	require.NoError(t, err)

	assert.Equal(t, "97201", addr.PostalCode)
}

func TestParseAddress_StripsLabelPrefix(t *testing.T) {
	addr, err := ParseAddress("Shipping Address: 123 Main St Seattle WA 98101 United States")
	require.NoError(t, err)
	assert.Equal(t, "123 Main St", addr.Line1)

	addr, err = ParseAddress("billing address: 123 Main St Seattle WA 98101 United States")
	require.NoError(t, err)
	assert.Equal(t, "123 Main St", addr.Line1)
}

func TestParseAddress_WithoutCountrySuffix(t *testing.T) {
	addr, err := ParseAddress("77 Pine Rd Denver CO 80202")
	require.NoError(t, err)

	assert.Equal(t, "77 Pine Rd", addr.Line1)
	assert.Equal(t, "Denver", addr.City)
	assert.Equal(t, "CO", addr.State)
	assert.Equal(t, "80202", addr.PostalCode)
	assert.Equal(t, "United States", addr.Country)
}

func TestParseAddress_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"not available", "Not Available"},
		{"too short", "123 Main"},
		{"only country", "United States"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAddress(tt.in)
			assert.Error(t, err)
		})
	}
}
