package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ExpenseTypeOneTime   = "one-time"
	ExpenseTypeRecurring = "recurring"
)

// Expense is a one-time transaction on a single date, or a recurring
// charge active over the inclusive [StartDate, EndDate] window.
type Expense struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	CategoryID    *string         `json:"category_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	Type          string          `json:"type"`
	StartDate     *time.Time      `json:"start_date,omitempty"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	CategoryName  *string         `json:"category_name,omitempty"`
	CategoryColor *string         `json:"category_color,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ActiveBetween reports whether the expense counts toward the inclusive
// [start, end] window. One-time expenses count when their date falls in
// the window; recurring expenses count when their activity window
// overlaps it, and always for their full amount.
func (e *Expense) ActiveBetween(start, end time.Time) bool {
	if e.Type == ExpenseTypeRecurring {
		if e.StartDate == nil || e.EndDate == nil {
			return false
		}
		return !e.StartDate.After(end) && !e.EndDate.Before(start)
	}
	return !e.Date.Before(start) && !e.Date.After(end)
}

type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	CategoryID  *string         `json:"category_id"`
	Type        string          `json:"type" binding:"omitempty,oneof=one-time recurring"`
	StartDate   string          `json:"start_date"`
	EndDate     string          `json:"end_date"`
}

type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
	CategoryID  *string          `json:"category_id"`
	Type        *string          `json:"type" binding:"omitempty,oneof=one-time recurring"`
	StartDate   *string          `json:"start_date"`
	EndDate     *string          `json:"end_date"`
}
