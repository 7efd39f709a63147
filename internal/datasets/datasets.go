// Package datasets registers every Amazon export source with the core
// registry. Import this package for the side effect of registration.
//
// Sequence numbers order the import so parent rows (orders, products,
// addresses) are committed before dependent rows (items, returns, payments).
package datasets

import (
	"github.com/amzorders/importer/internal/core"
	"github.com/amzorders/importer/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
)

func init() {
	registerRetailOrders()
	registerRetailReturns()
	registerDigitalOrders()
	registerDigitalItems()
	registerDigitalPayments()
	registerDigitalBorrows()
	registerCartItems()
}

// addressParams converts a parsed address into upsert params.
func addressParams(line1, line2, city, state, postal, country string) database.UpsertAddressParams {
	return database.UpsertAddressParams{
		AddressLine1: line1,
		AddressLine2: core.ToPgText(line2),
		City:         core.ToPgText(city),
		State:        core.ToPgText(state),
		PostalCode:   core.ToPgText(postal),
		Country:      core.ToPgText(country),
	}
}

// one is the default quantity for exports that omit the column entirely.
var one = int32(1)

func textOrDefault(s, def string) pgtype.Text {
	t := core.ToPgText(s)
	if !t.Valid {
		return core.ToPgText(def)
	}
	return t
}
