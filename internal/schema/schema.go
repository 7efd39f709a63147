// Package schema declares the relational schema the importer writes into.
//
// The schema is the persisted contract for downstream querying tooling:
// table names, column names and types, enum label sets, and foreign keys are
// all normative. Ensure is idempotent and safe to run before every import.
package schema

import (
	"context"
	"fmt"

	"github.com/amzorders/importer/internal/database"
)

// Enum label sets. Values written to the corresponding columns must be
// members of these sets; anything else is rejected at import time.
var (
	OrderStatuses    = []string{"Open", "Closed", "Cancelled"}
	ShipmentStatuses = []string{"Pending", "Shipped", "Delivered"}
	ReturnStatuses   = []string{"Pending", "Completed", "Rejected"}
)

var enums = []string{
	`DO $$ BEGIN
		CREATE TYPE order_status_enum AS ENUM ('Open', 'Closed', 'Cancelled');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		CREATE TYPE shipment_status_enum AS ENUM ('Pending', 'Shipped', 'Delivered');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		CREATE TYPE return_status_enum AS ENUM ('Pending', 'Completed', 'Rejected');
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
}

var tables = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id           BIGSERIAL PRIMARY KEY,
		asin         TEXT NOT NULL UNIQUE,
		product_name TEXT,
		condition    TEXT,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS addresses (
		id            BIGSERIAL PRIMARY KEY,
		address_line1 TEXT NOT NULL,
		address_line2 TEXT,
		city          TEXT,
		state         TEXT,
		postal_code   TEXT,
		country       TEXT DEFAULT 'US',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE NULLS NOT DISTINCT (address_line1, city, state, postal_code)
	)`,

	`CREATE TABLE IF NOT EXISTS payment_methods (
		id           BIGSERIAL PRIMARY KEY,
		payment_type TEXT NOT NULL,
		instrument   TEXT,
		is_active    BOOLEAN NOT NULL DEFAULT TRUE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE NULLS NOT DISTINCT (payment_type, instrument)
	)`,

	`CREATE TABLE IF NOT EXISTS orders (
		id                  BIGSERIAL PRIMARY KEY,
		order_id            TEXT NOT NULL UNIQUE,
		website             TEXT,
		order_date          TIMESTAMPTZ,
		currency            TEXT,
		order_status        order_status_enum NOT NULL DEFAULT 'Open',
		total_owed          NUMERIC(12,2),
		shipping_charge     NUMERIC(12,2),
		total_discounts     NUMERIC(12,2),
		shipping_address_id BIGINT NOT NULL REFERENCES addresses(id),
		billing_address_id  BIGINT NOT NULL REFERENCES addresses(id),
		payment_method_id   BIGINT NOT NULL REFERENCES payment_methods(id),
		created_at          TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id              BIGSERIAL PRIMARY KEY,
		order_id        TEXT NOT NULL REFERENCES orders(order_id),
		product_id      BIGINT NOT NULL REFERENCES products(id),
		quantity        INTEGER NOT NULL CHECK (quantity > 0),
		unit_price      NUMERIC(12,2),
		unit_price_tax  NUMERIC(12,2),
		shipment_status shipment_status_enum NOT NULL DEFAULT 'Pending',
		ship_date       TIMESTAMPTZ,
		carrier_name    TEXT,
		tracking_number TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (order_id, product_id)
	)`,

	`CREATE TABLE IF NOT EXISTS returns (
		id                      BIGSERIAL PRIMARY KEY,
		return_authorization_id TEXT NOT NULL UNIQUE,
		order_item_id           BIGINT NOT NULL REFERENCES order_items(id),
		return_date             TIMESTAMPTZ,
		return_status           return_status_enum NOT NULL DEFAULT 'Pending',
		return_reason           TEXT,
		tracking_id             TEXT,
		return_ship_option      TEXT,
		created_at              TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS refunds (
		id              BIGSERIAL PRIMARY KEY,
		return_id       BIGINT NOT NULL REFERENCES returns(id),
		reversal_id     TEXT NOT NULL UNIQUE,
		amount_refunded NUMERIC(12,2),
		refund_date     TIMESTAMPTZ,
		status          TEXT NOT NULL DEFAULT 'Completed',
		currency        TEXT DEFAULT 'USD',
		created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS digital_orders (
		id                 BIGSERIAL PRIMARY KEY,
		order_id           TEXT NOT NULL UNIQUE,
		delivery_packet_id TEXT,
		marketplace        TEXT,
		order_date         TIMESTAMPTZ,
		fulfilled_date     TIMESTAMPTZ,
		is_fulfilled       BOOLEAN NOT NULL DEFAULT FALSE,
		currency           TEXT DEFAULT 'USD',
		created_at         TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS digital_order_items (
		id               BIGSERIAL PRIMARY KEY,
		digital_order_id BIGINT NOT NULL REFERENCES digital_orders(id),
		product_id       BIGINT NOT NULL REFERENCES products(id),
		quantity         INTEGER NOT NULL CHECK (quantity > 0),
		unit_price       NUMERIC(12,2),
		created_at       TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (digital_order_id, product_id)
	)`,

	`CREATE TABLE IF NOT EXISTS digital_order_payments (
		id                      BIGSERIAL PRIMARY KEY,
		digital_order_id        BIGINT NOT NULL REFERENCES digital_orders(id),
		transaction_amount      NUMERIC(12,2),
		currency                TEXT DEFAULT 'USD',
		claim_code              TEXT,
		monetary_component_type TEXT,
		offer_type              TEXT,
		created_at              TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE NULLS NOT DISTINCT (digital_order_id, monetary_component_type, transaction_amount)
	)`,

	`CREATE TABLE IF NOT EXISTS digital_borrows (
		id                    BIGSERIAL PRIMARY KEY,
		asin                  TEXT NOT NULL REFERENCES products(asin),
		loan_creation_date    TIMESTAMPTZ,
		loan_acceptance_date  TIMESTAMPTZ,
		loan_status           TEXT,
		loan_program          TEXT,
		end_date              TIMESTAMPTZ,
		delivery_device_name  TEXT,
		content_type          TEXT,
		is_first_content_loan BOOLEAN NOT NULL DEFAULT FALSE,
		created_at            TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE NULLS NOT DISTINCT (asin, loan_creation_date)
	)`,

	`CREATE TABLE IF NOT EXISTS cart_items (
		id                BIGSERIAL PRIMARY KEY,
		asin              TEXT NOT NULL REFERENCES products(asin),
		cart_list         TEXT,
		quantity          INTEGER NOT NULL CHECK (quantity > 0),
		date_added        TIMESTAMPTZ,
		one_click_buyable BOOLEAN,
		to_be_gifted      BOOLEAN,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE NULLS NOT DISTINCT (asin, date_added)
	)`,

	`CREATE TABLE IF NOT EXISTS import_runs (
		id          UUID PRIMARY KEY,
		dataset     TEXT NOT NULL,
		file_name   TEXT NOT NULL,
		started_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMPTZ,
		total_rows  INTEGER,
		imported    INTEGER,
		skipped     INTEGER,
		error       TEXT
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_product_id ON order_items (product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders (order_date)`,
	`CREATE INDEX IF NOT EXISTS idx_returns_order_item_id ON returns (order_item_id)`,
	`CREATE INDEX IF NOT EXISTS idx_refunds_return_id ON refunds (return_id)`,
	`CREATE INDEX IF NOT EXISTS idx_digital_orders_packet ON digital_orders (delivery_packet_id)`,
	`CREATE INDEX IF NOT EXISTS idx_digital_order_items_order ON digital_order_items (digital_order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_digital_borrows_asin ON digital_borrows (asin)`,
	`CREATE INDEX IF NOT EXISTS idx_import_runs_started ON import_runs (started_at DESC)`,
}

// triggers refresh updated_at on every mutation to the tables that carry it.
var triggers = []string{
	`CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
	BEGIN
		NEW.updated_at = CURRENT_TIMESTAMP;
		RETURN NEW;
	END;
	$$ LANGUAGE plpgsql`,
	`DO $$ BEGIN
		CREATE TRIGGER products_set_updated_at
			BEFORE UPDATE ON products
			FOR EACH ROW EXECUTE FUNCTION set_updated_at();
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		CREATE TRIGGER orders_set_updated_at
			BEFORE UPDATE ON orders
			FOR EACH ROW EXECUTE FUNCTION set_updated_at();
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		CREATE TRIGGER digital_orders_set_updated_at
			BEFORE UPDATE ON digital_orders
			FOR EACH ROW EXECUTE FUNCTION set_updated_at();
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
}

// Ensure creates all enums, tables, indexes, and triggers if absent.
func Ensure(ctx context.Context, db database.DBTX) error {
	groups := [][]string{enums, tables, indexes, triggers}
	for _, group := range groups {
		for _, stmt := range group {
			if _, err := db.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("ensure schema: %w", err)
			}
		}
	}
	return nil
}
