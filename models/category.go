package models

import "time"

const (
	CategoryTypeExpense = "expense"
	CategoryTypeIncome  = "income"
)

// DefaultCategoryColor is applied when a category is created without one.
const DefaultCategoryColor = "#3B82F6"

// Category groups expenses or incomes. A nil UserID marks a global
// category visible to every user.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
	UserID    *string   `json:"user_id,omitempty"`
	IsGlobal  bool      `json:"is_global"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Type  string `json:"type" binding:"required,oneof=expense income"`
	Color string `json:"color" binding:"omitempty,hexcolor"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=100"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
}
