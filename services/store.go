package services

import (
	"context"
	"database/sql"
	"time"

	"finance-api/models"

	"github.com/shopspring/decimal"
)

// TransactionStore is the query surface the summary engine needs from
// persistence. Amounts come back as exact decimals (NUMERIC in
// Postgres); absence of matching rows yields zero, never an error.
type TransactionStore interface {
	SumIncomes(ctx context.Context, userID string, period models.Period) (decimal.Decimal, error)
	SumExpensesByMonth(ctx context.Context, userID string, month, year int) (decimal.Decimal, error)
	SumExpensesOverlapping(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error)
	ExpensesByCategory(ctx context.Context, userID string, start, end time.Time) ([]models.CategorySummary, error)
	IncomesByCategory(ctx context.Context, userID string, period models.Period) ([]models.CategorySummary, error)
	RecurringExpensesEndingBetween(ctx context.Context, userID string, from, to time.Time) ([]models.RecurringDeadline, error)
}

// Store implements TransactionStore against PostgreSQL.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// SumIncomes totals incomes for a calendar month or a date range.
func (s *Store) SumIncomes(ctx context.Context, userID string, period models.Period) (decimal.Decimal, error) {
	var total decimal.Decimal
	var err error

	if period.Kind == models.PeriodKindMonth {
		err = s.db.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(amount), 0)
			FROM incomes
			WHERE user_id = $1
			  AND EXTRACT(MONTH FROM date) = $2
			  AND EXTRACT(YEAR FROM date) = $3
		`, userID, period.Month, period.Year).Scan(&total)
	} else {
		err = s.db.QueryRowContext(ctx, `
			SELECT COALESCE(SUM(amount), 0)
			FROM incomes
			WHERE user_id = $1
			  AND date BETWEEN $2 AND $3
		`, userID, period.Start, period.End).Scan(&total)
	}

	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumExpensesByMonth totals one-time expenses by month/year equality.
// Recurring expenses are excluded; this is the trend and alert path.
func (s *Store) SumExpensesByMonth(ctx context.Context, userID string, month, year int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM expenses
		WHERE user_id = $1
		  AND type = 'one-time'
		  AND EXTRACT(MONTH FROM date) = $2
		  AND EXTRACT(YEAR FROM date) = $3
	`, userID, month, year).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// SumExpensesOverlapping totals expenses contributing to the inclusive
// [start, end] window: one-time expenses dated inside it, recurring
// expenses whose activity window overlaps it (full amount, never
// prorated).
func (s *Store) SumExpensesOverlapping(ctx context.Context, userID string, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(
			CASE
				WHEN type = 'one-time' AND date BETWEEN $2 AND $3 THEN amount
				WHEN type = 'recurring' AND start_date <= $3 AND end_date >= $2 THEN amount
				ELSE 0
			END
		), 0)
		FROM expenses
		WHERE user_id = $1
	`, userID, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// ExpensesByCategory breaks expenses down per category over a window,
// recurrence-aware, zero-amount categories omitted, largest first.
// Global categories (user_id IS NULL) participate alongside the user's.
func (s *Store) ExpensesByCategory(ctx context.Context, userID string, start, end time.Time) ([]models.CategorySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name, c.color,
		       COALESCE(SUM(
		           CASE
		               WHEN e.type = 'one-time' AND e.date BETWEEN $2 AND $3 THEN e.amount
		               WHEN e.type = 'recurring' AND e.start_date <= $3 AND e.end_date >= $2 THEN e.amount
		               ELSE 0
		           END
		       ), 0) AS amount
		FROM categories c
		LEFT JOIN expenses e ON c.id = e.category_id AND e.user_id = $1
		WHERE (c.user_id = $1 OR c.user_id IS NULL) AND c.type = 'expense'
		GROUP BY c.id, c.name, c.color
		HAVING COALESCE(SUM(
		    CASE
		        WHEN e.type = 'one-time' AND e.date BETWEEN $2 AND $3 THEN e.amount
		        WHEN e.type = 'recurring' AND e.start_date <= $3 AND e.end_date >= $2 THEN e.amount
		        ELSE 0
		    END
		), 0) > 0
		ORDER BY amount DESC
	`, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategorySummaries(rows)
}

// IncomesByCategory breaks incomes down per category for the period.
func (s *Store) IncomesByCategory(ctx context.Context, userID string, period models.Period) ([]models.CategorySummary, error) {
	var rows *sql.Rows
	var err error

	if period.Kind == models.PeriodKindMonth {
		rows, err = s.db.QueryContext(ctx, `
			SELECT c.name, c.color, COALESCE(SUM(i.amount), 0) AS amount
			FROM incomes i
			JOIN categories c ON i.category_id = c.id
			WHERE i.user_id = $1
			  AND EXTRACT(MONTH FROM i.date) = $2
			  AND EXTRACT(YEAR FROM i.date) = $3
			GROUP BY c.id, c.name, c.color
			ORDER BY amount DESC
		`, userID, period.Month, period.Year)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT c.name, c.color, COALESCE(SUM(i.amount), 0) AS amount
			FROM incomes i
			JOIN categories c ON i.category_id = c.id
			WHERE i.user_id = $1
			  AND i.date BETWEEN $2 AND $3
			GROUP BY c.id, c.name, c.color
			ORDER BY amount DESC
		`, userID, period.Start, period.End)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCategorySummaries(rows)
}

// RecurringExpensesEndingBetween lists recurring expenses whose end
// date falls in the inclusive [from, to] window.
func (s *Store) RecurringExpensesEndingBetween(ctx context.Context, userID string, from, to time.Time) ([]models.RecurringDeadline, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT description, end_date
		FROM expenses
		WHERE user_id = $1
		  AND type = 'recurring'
		  AND end_date BETWEEN $2 AND $3
		ORDER BY end_date
	`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deadlines := []models.RecurringDeadline{}
	for rows.Next() {
		var d models.RecurringDeadline
		if err := rows.Scan(&d.Description, &d.EndDate); err != nil {
			return nil, err
		}
		deadlines = append(deadlines, d)
	}
	return deadlines, rows.Err()
}

func scanCategorySummaries(rows *sql.Rows) ([]models.CategorySummary, error) {
	summaries := []models.CategorySummary{}
	for rows.Next() {
		var cs models.CategorySummary
		if err := rows.Scan(&cs.CategoryName, &cs.CategoryColor, &cs.Amount); err != nil {
			return nil, err
		}
		summaries = append(summaries, cs)
	}
	return summaries, rows.Err()
}
