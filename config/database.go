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
			email VARCHAR(255) UNIQUE NOT NULL,
			name VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		// user_id IS NULL marks a global category visible to all users
		`CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name VARCHAR(100) NOT NULL,
			type VARCHAR(20) NOT NULL CHECK (type IN ('expense', 'income')),
			color VARCHAR(7) NOT NULL DEFAULT '#3B82F6',
			user_id UUID REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT NOW(),
			UNIQUE(user_id, name, type)
		)`,

		`CREATE TABLE IF NOT EXISTS expenses (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
			amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
			description TEXT NOT NULL,
			date DATE NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'one-time' CHECK (type IN ('one-time', 'recurring')),
			start_date DATE,
			end_date DATE,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW(),
			CHECK (type != 'recurring' OR (start_date IS NOT NULL AND end_date IS NOT NULL AND start_date < end_date))
		)`,

		`CREATE TABLE IF NOT EXISTS incomes (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
			amount NUMERIC(14,2) NOT NULL CHECK (amount > 0),
			description TEXT NOT NULL DEFAULT '',
			source VARCHAR(255) NOT NULL,
			date DATE NOT NULL,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_categories_user_id ON categories(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_user_id ON expenses(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
		`CREATE INDEX IF NOT EXISTS idx_expenses_end_date ON expenses(end_date) WHERE type = 'recurring'`,
		`CREATE INDEX IF NOT EXISTS idx_incomes_user_id ON incomes(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_incomes_date ON incomes(date)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to run migration: %w", err)
		}
	}

	return seedGlobalCategories(db)
}

// seedGlobalCategories inserts the default shared categories once.
// The UNIQUE constraint does not cover NULL owners, so existence is
// checked explicitly.
func seedGlobalCategories(db *sql.DB) error {
	defaults := []struct {
		name, ctype, color string
	}{
		{"Alimentation", "expense", "#EF4444"},
		{"Transport", "expense", "#F59E0B"},
		{"Logement", "expense", "#8B5CF6"},
		{"Santé", "expense", "#10B981"},
		{"Loisirs", "expense", "#EC4899"},
		{"Salaire", "income", "#22C55E"},
		{"Freelance", "income", "#06B6D4"},
		{"Autres revenus", "income", "#6366F1"},
	}

	for _, d := range defaults {
		_, err := db.Exec(`
			INSERT INTO categories (name, type, color)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (
				SELECT 1 FROM categories WHERE name = $1 AND type = $2 AND user_id IS NULL
			)
		`, d.name, d.ctype, d.color)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", d.name, err)
		}
	}

	return nil
}
