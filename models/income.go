package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is always attributed to a single date; there is no recurrence
// concept for incomes.
type Income struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	CategoryID    *string         `json:"category_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Source        string          `json:"source"`
	Date          time.Time       `json:"date"`
	CategoryName  *string         `json:"category_name,omitempty"`
	CategoryColor *string         `json:"category_color,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CreateIncomeRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Source      string          `json:"source" binding:"required"`
	Date        string          `json:"date" binding:"required"`
	CategoryID  *string         `json:"category_id"`
}

type UpdateIncomeRequest struct {
	Amount      *decimal.Decimal `json:"amount"`
	Description *string          `json:"description"`
	Source      *string          `json:"source"`
	Date        *string          `json:"date"`
	CategoryID  *string         `json:"category_id"`
}
