package amazon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Open", "Open", false},
		{"closed", "Closed", false},
		{"CANCELLED", "Cancelled", false},
		{"", "Open", false},
		{"Not Available", "Open", false},
		{"Lost", "", true},
	}

	for _, tt := range tests {
		got, err := OrderStatus(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestShipmentStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Shipped", "Shipped", false},
		{"delivered", "Delivered", false},
		{"", "Pending", false},
		{"Not Available", "Pending", false},
		{"Teleported", "", true},
	}

	for _, tt := range tests {
		got, err := ShipmentStatus(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestReturnStatus_Synonyms(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"Completed", "Completed", false},
		{"Complete", "Completed", false},
		{"Returned", "Completed", false},
		{"In Progress", "Pending", false},
		{"rejected", "Rejected", false},
		{"", "Pending", false},
		{"Vanished", "", true},
	}

	for _, tt := range tests {
		got, err := ReturnStatus(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    int32
		wantErr bool
	}{
		{"1", 1, false},
		{"3", 3, false},
		{"2.0", 2, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"", 0, true},
		{"Not Available", 0, true},
		{"many", 0, true},
	}

	for _, tt := range tests {
		got, err := Quantity(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
