// Package database is the hand-written query layer for the importer.
//
// Every write is a single atomic upsert keyed on the entity's natural key
// (asin, order id, address tuple, ...) so repeated imports of the same
// export are idempotent and resolve-or-create never races.
package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// ErrMissingParent is returned when an insert-select matched no parent row,
// meaning the referenced order/product has not been imported yet.
var ErrMissingParent = errors.New("referenced parent row does not exist")

// Queries exposes all importer queries against a pool or transaction.
type Queries struct {
	db DBTX
}

// New returns a Queries bound to the given pool or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}
