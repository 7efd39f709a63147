package amazon

import (
	"fmt"
	"strings"

	"github.com/amzorders/importer/internal/core"
	"github.com/amzorders/importer/internal/schema"
)

// Status parsing is strict: an empty or "Not Available" cell takes the
// documented default, a known source synonym is normalized, and anything
// else fails the row instead of being coerced.

// OrderStatus maps a cell to the order_status_enum. Default: Open.
func OrderStatus(s string) (string, error) {
	return mapStatus(s, "Open", schema.OrderStatuses, nil)
}

// ShipmentStatus maps a cell to the shipment_status_enum. Default: Pending.
func ShipmentStatus(s string) (string, error) {
	return mapStatus(s, "Pending", schema.ShipmentStatuses, nil)
}

// returnStatusSynonyms are vocabulary the returns export uses for the same
// states under different generations.
var returnStatusSynonyms = map[string]string{
	"complete":    "Completed",
	"returned":    "Completed",
	"in progress": "Pending",
}

// ReturnStatus maps a cell to the return_status_enum. Default: Pending.
func ReturnStatus(s string) (string, error) {
	return mapStatus(s, "Pending", schema.ReturnStatuses, returnStatusSynonyms)
}

func mapStatus(s, def string, members []string, synonyms map[string]string) (string, error) {
	s = strings.TrimSpace(s)
	if core.IsAbsent(s) {
		return def, nil
	}
	if mapped, ok := synonyms[strings.ToLower(s)]; ok {
		return mapped, nil
	}
	for _, m := range members {
		if strings.EqualFold(m, s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("status %q is not one of: %s", s, strings.Join(members, ", "))
}

// Quantity parses a quantity cell. Rows with quantity <= 0 are rejected.
func Quantity(s string) (int32, error) {
	if core.IsAbsent(s) {
		return 0, fmt.Errorf("quantity is missing")
	}
	n, ok := core.ParseInt(s)
	if !ok {
		return 0, fmt.Errorf("invalid quantity %q", s)
	}
	if n <= 0 {
		return 0, fmt.Errorf("quantity must be positive, got %d", n)
	}
	return n, nil
}
