package database

import (
	"database/sql"
	"log"
)

// RunMigrations creates the schema if it does not exist yet and applies
// incremental updates. Statements are idempotent so startup can always run
// the full list.
func RunMigrations(db *sql.DB) error {
	log.Println("Running database migrations...")

	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ
		)`,

		`CREATE TABLE IF NOT EXISTS sessions (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS tenants (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email TEXT NOT NULL UNIQUE,
			first_name VARCHAR(30),
			last_name VARCHAR(30),
			phone VARCHAR(20),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS properties (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			house_number VARCHAR(20) NOT NULL UNIQUE,
			area NUMERIC(12,2) NOT NULL CHECK (area > 0),
			address VARCHAR(255) NOT NULL,
			rental_status VARCHAR(20) NOT NULL DEFAULT 'available',
			current_value NUMERIC(12,2) NOT NULL DEFAULT 0,
			maintenance_note TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS contracts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			tenant_id UUID NOT NULL REFERENCES tenants(id),
			start_date DATE NOT NULL,
			end_date DATE NOT NULL,
			monthly_rent NUMERIC(12,2) NOT NULL DEFAULT 0,
			yearly_rent NUMERIC(12,2) NOT NULL DEFAULT 0,
			total_rent NUMERIC(12,2) NOT NULL DEFAULT 0,
			rental_area NUMERIC(12,2) NOT NULL DEFAULT 0,
			rental_unit_price NUMERIC(12,2) NOT NULL DEFAULT 0,
			rent_collection_time DATE,
			deposit_amount NUMERIC(12,2) NOT NULL DEFAULT 0,
			management_fee NUMERIC(12,2) NOT NULL DEFAULT 0,
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			current_receivable NUMERIC(12,2) NOT NULL DEFAULT 0,
			current_outstanding NUMERIC(12,2) NOT NULL DEFAULT 0,
			total_overdue NUMERIC(12,2) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS contract_properties (
			contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
			property_id UUID NOT NULL REFERENCES properties(id),
			PRIMARY KEY (contract_id, property_id)
		)`,

		`CREATE TABLE IF NOT EXISTS fees (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			contract_id UUID NOT NULL REFERENCES contracts(id) ON DELETE CASCADE,
			category VARCHAR(50) NOT NULL,
			amount NUMERIC(12,2) NOT NULL,
			term VARCHAR(50) NOT NULL,
			is_collected BOOLEAN NOT NULL DEFAULT false,
			overdue_status VARCHAR(20) NOT NULL DEFAULT 'on_time',
			payment_method VARCHAR(20),
			receipt_path TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_fees_contract ON fees(contract_id)`,
		`CREATE INDEX IF NOT EXISTS idx_fees_collected ON fees(is_collected)`,
		`CREATE INDEX IF NOT EXISTS idx_fees_overdue ON fees(overdue_status)`,

		`CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			fee_id UUID NOT NULL REFERENCES fees(id) ON DELETE CASCADE,
			amount NUMERIC(12,2) NOT NULL,
			payment_method VARCHAR(20) NOT NULL,
			paid_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			receipt_path TEXT
		)`,

		`CREATE INDEX IF NOT EXISTS idx_payments_fee ON payments(fee_id)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			log.Printf("Migration statement failed: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
