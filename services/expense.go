package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"finance-api/models"

	"github.com/google/uuid"
)

type ExpenseService struct {
	db *sql.DB
}

func NewExpenseService(db *sql.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

// ExpenseFilter narrows List results. Zero values mean "no filter".
type ExpenseFilter struct {
	Month      int
	Year       int
	CategoryID string
	Type       string
}

const expenseColumns = `
	e.id, e.user_id, e.category_id, e.amount, e.description, e.date,
	e.type, e.start_date, e.end_date, c.name, c.color,
	e.created_at, e.updated_at`

// List returns the user's expenses, newest first.
func (s *ExpenseService) List(ctx context.Context, userID string, filter ExpenseFilter) ([]models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE e.user_id = $1`
	values := []interface{}{userID}

	if filter.Month != 0 && filter.Year != 0 {
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM e.date) = $%d AND EXTRACT(YEAR FROM e.date) = $%d", len(values)+1, len(values)+2)
		values = append(values, filter.Month, filter.Year)
	}
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND e.category_id = $%d", len(values)+1)
		values = append(values, filter.CategoryID)
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND e.type = $%d", len(values)+1)
		values = append(values, filter.Type)
	}

	query += " ORDER BY e.date DESC"

	rows, err := s.db.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.Date,
			&e.Type, &e.StartDate, &e.EndDate, &e.CategoryName, &e.CategoryColor,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// GetByID returns one expense owned by the user, or sql.ErrNoRows.
func (s *ExpenseService) GetByID(ctx context.Context, userID, id string) (*models.Expense, error) {
	var e models.Expense
	err := s.db.QueryRowContext(ctx, `
		SELECT `+expenseColumns+`
		FROM expenses e
		LEFT JOIN categories c ON e.category_id = c.id
		WHERE e.id = $1 AND e.user_id = $2
	`, id, userID).Scan(
		&e.ID, &e.UserID, &e.CategoryID, &e.Amount, &e.Description, &e.Date,
		&e.Type, &e.StartDate, &e.EndDate, &e.CategoryName, &e.CategoryColor,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create validates and inserts a new expense. Recurring expenses must
// carry a start date strictly before their end date.
func (s *ExpenseService) Create(ctx context.Context, userID string, req models.CreateExpenseRequest) (*models.Expense, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	expenseType := req.Type
	if expenseType == "" {
		expenseType = models.ExpenseTypeOneTime
	}

	var startDate, endDate *time.Time
	if expenseType == models.ExpenseTypeRecurring {
		if req.StartDate == "" || req.EndDate == "" {
			return nil, ErrRecurringDatesRequired
		}
		start, err := models.ParseDate(req.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		end, err := models.ParseDate(req.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		if !start.Before(end) {
			return nil, ErrInvalidRecurringWindow
		}
		startDate, endDate = &start, &end
	}

	now := time.Now()
	expense := &models.Expense{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		Type:        expenseType,
		StartDate:   startDate,
		EndDate:     endDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, user_id, category_id, amount, description, date, type, start_date, end_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, expense.ID, expense.UserID, expense.CategoryID, expense.Amount, expense.Description,
		expense.Date, expense.Type, expense.StartDate, expense.EndDate, expense.CreatedAt, expense.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return expense, nil
}

// Update patches the provided fields of an expense owned by the user.
func (s *ExpenseService) Update(ctx context.Context, userID, id string, req models.UpdateExpenseRequest) (*models.Expense, error) {
	existing, err := s.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updates := []string{}
	values := []interface{}{}

	addUpdate := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, len(values)+1))
		values = append(values, value)
	}

	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, ErrInvalidAmount
		}
		addUpdate("amount", *req.Amount)
	}
	if req.Description != nil {
		addUpdate("description", *req.Description)
	}
	if req.Date != nil {
		date, err := models.ParseDate(*req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		addUpdate("date", date)
	}
	if req.CategoryID != nil {
		addUpdate("category_id", *req.CategoryID)
	}

	expenseType := existing.Type
	if req.Type != nil {
		expenseType = *req.Type
		addUpdate("type", expenseType)
	}

	startDate, endDate := existing.StartDate, existing.EndDate
	if req.StartDate != nil {
		start, err := models.ParseDate(*req.StartDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		startDate = &start
		addUpdate("start_date", start)
	}
	if req.EndDate != nil {
		end, err := models.ParseDate(*req.EndDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		endDate = &end
		addUpdate("end_date", end)
	}

	if expenseType == models.ExpenseTypeRecurring {
		if startDate == nil || endDate == nil {
			return nil, ErrRecurringDatesRequired
		}
		if !startDate.Before(*endDate) {
			return nil, ErrInvalidRecurringWindow
		}
	}

	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	addUpdate("updated_at", time.Now())
	values = append(values, id)

	query := fmt.Sprintf("UPDATE expenses SET %s WHERE id = $%d", strings.Join(updates, ", "), len(values))
	if _, err := s.db.ExecContext(ctx, query, values...); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, userID, id)
}

// Delete removes an expense owned by the user.
func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = $1", id)
	return err
}
