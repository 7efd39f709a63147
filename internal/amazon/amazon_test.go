package amazon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	assert.True(t, Money("$12.34").Valid)
	assert.True(t, Money("(5.00)").Valid)
	assert.False(t, Money("").Valid)
	assert.False(t, Money("Not Available").Valid)
}

func TestMoneyOrZero(t *testing.T) {
	n := MoneyOrZero("Not Available")
	require.True(t, n.Valid)
	assert.Equal(t, 0, n.Int.Sign())

	n = MoneyOrZero("$3.99")
	require.True(t, n.Valid)
	assert.Equal(t, 1, n.Int.Sign())
}

func TestYesNo(t *testing.T) {
	b := YesNo("Yes")
	require.True(t, b.Valid)
	assert.True(t, b.Bool)

	b = YesNo("No")
	require.True(t, b.Valid)
	assert.False(t, b.Bool)

	assert.False(t, YesNo("Not Available").Valid)
}

func TestSplitCarrierTracking(t *testing.T) {
	tests := []struct {
		in       string
		carrier  string
		tracking string
	}{
		{"AMZN_US(TBA123456789000)", "AMZN_US", "TBA123456789000"},
		{"USPS(9400111899223344556677)", "USPS", "9400111899223344556677"},
		{"UPS", "UPS", ""},
	}

	for _, tt := range tests {
		carrier, tracking := SplitCarrierTracking(tt.in)
		require.True(t, carrier.Valid, "input %q", tt.in)
		assert.Equal(t, tt.carrier, carrier.String, "input %q", tt.in)
		if tt.tracking == "" {
			assert.False(t, tracking.Valid, "input %q", tt.in)
		} else {
			require.True(t, tracking.Valid, "input %q", tt.in)
			assert.Equal(t, tt.tracking, tracking.String, "input %q", tt.in)
		}
	}
}

func TestSplitCarrierTracking_Absent(t *testing.T) {
	carrier, tracking := SplitCarrierTracking("Not Available")
	assert.False(t, carrier.Valid)
	assert.False(t, tracking.Valid)
}
