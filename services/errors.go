package services

import "errors"

// Validation failures surfaced to handlers as 400s. Store failures are
// returned as-is and become 500s; missing rows map to sql.ErrNoRows.
var (
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrInvalidDate            = errors.New("invalid date, expected YYYY-MM-DD")
	ErrRecurringDatesRequired = errors.New("start and end dates are required for recurring expenses")
	ErrInvalidRecurringWindow = errors.New("start date must be before end date")
	ErrCategoryNameTaken      = errors.New("a category with this name already exists for this type")
	ErrCategoryInUse          = errors.New("category is used by expenses or incomes")
	ErrNothingToUpdate        = errors.New("no fields to update")
)
