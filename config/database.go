package config

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq"
)

func InitDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			country VARCHAR(100) NOT NULL,
			income_bracket VARCHAR(100) NOT NULL,
			reset_otp VARCHAR(6),
			income_categories JSONB NOT NULL DEFAULT '[]',
			expense_categories JSONB NOT NULL DEFAULT '[]',
			totp_secret VARCHAR(255),
			totp_enabled BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS transactions (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			description VARCHAR(255) NOT NULL,
			type VARCHAR(10) NOT NULL CHECK (type IN ('INCOME', 'EXPENSE')),
			category VARCHAR(100) NOT NULL,
			date CHAR(10) NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			notes TEXT,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS budgets (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			category VARCHAR(100) NOT NULL,
			budget_amount DOUBLE PRECISION NOT NULL,
			spent_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			remaining_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			month CHAR(7) NOT NULL,
			description TEXT,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS tax_estimations (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT NOT NULL,
			status VARCHAR(20) NOT NULL CHECK (status IN ('Pending', 'Completed', 'Overdue')),
			due_date CHAR(10) NOT NULL,
			currency_symbol VARCHAR(10),
			estimated_tax DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS reports (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			generated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			report_type VARCHAR(50) NOT NULL,
			report_period VARCHAR(50) NOT NULL,
			report_format VARCHAR(10) NOT NULL,
			report_url TEXT NOT NULL,
			quarter_label VARCHAR(20),
			created_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_transactions_user_id ON transactions(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_budgets_lookup ON budgets(user_id, category, month)`,
		`CREATE INDEX IF NOT EXISTS idx_tax_estimations_user_id ON tax_estimations(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_user_id ON reports(user_id)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return nil
}
