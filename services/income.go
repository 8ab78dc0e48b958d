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

type IncomeService struct {
	db *sql.DB
}

func NewIncomeService(db *sql.DB) *IncomeService {
	return &IncomeService{db: db}
}

// IncomeFilter narrows List results. Source matches case-insensitively
// on a substring, like the ILIKE filter it feeds.
type IncomeFilter struct {
	Month      int
	Year       int
	CategoryID string
	Source     string
}

const incomeColumns = `
	i.id, i.user_id, i.category_id, i.amount, i.description, i.source,
	i.date, c.name, c.color, i.created_at, i.updated_at`

func (s *IncomeService) List(ctx context.Context, userID string, filter IncomeFilter) ([]models.Income, error) {
	query := `
		SELECT ` + incomeColumns + `
		FROM incomes i
		LEFT JOIN categories c ON i.category_id = c.id
		WHERE i.user_id = $1`
	values := []interface{}{userID}

	if filter.Month != 0 && filter.Year != 0 {
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM i.date) = $%d AND EXTRACT(YEAR FROM i.date) = $%d", len(values)+1, len(values)+2)
		values = append(values, filter.Month, filter.Year)
	}
	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND i.category_id = $%d", len(values)+1)
		values = append(values, filter.CategoryID)
	}
	if filter.Source != "" {
		query += fmt.Sprintf(" AND i.source ILIKE $%d", len(values)+1)
		values = append(values, "%"+filter.Source+"%")
	}

	query += " ORDER BY i.date DESC"

	rows, err := s.db.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		var in models.Income
		if err := rows.Scan(
			&in.ID, &in.UserID, &in.CategoryID, &in.Amount, &in.Description, &in.Source,
			&in.Date, &in.CategoryName, &in.CategoryColor, &in.CreatedAt, &in.UpdatedAt,
		); err != nil {
			return nil, err
		}
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

func (s *IncomeService) GetByID(ctx context.Context, userID, id string) (*models.Income, error) {
	var in models.Income
	err := s.db.QueryRowContext(ctx, `
		SELECT `+incomeColumns+`
		FROM incomes i
		LEFT JOIN categories c ON i.category_id = c.id
		WHERE i.id = $1 AND i.user_id = $2
	`, id, userID).Scan(
		&in.ID, &in.UserID, &in.CategoryID, &in.Amount, &in.Description, &in.Source,
		&in.Date, &in.CategoryName, &in.CategoryColor, &in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *IncomeService) Create(ctx context.Context, userID string, req models.CreateIncomeRequest) (*models.Income, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	date, err := models.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := time.Now()
	income := &models.Income{
		ID:          uuid.New().String(),
		UserID:      userID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Description: req.Description,
		Source:      req.Source,
		Date:        date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO incomes (id, user_id, category_id, amount, description, source, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, income.ID, income.UserID, income.CategoryID, income.Amount, income.Description,
		income.Source, income.Date, income.CreatedAt, income.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return income, nil
}

func (s *IncomeService) Update(ctx context.Context, userID, id string, req models.UpdateIncomeRequest) (*models.Income, error) {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
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
	if req.Source != nil {
		addUpdate("source", *req.Source)
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

	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	addUpdate("updated_at", time.Now())
	values = append(values, id)

	query := fmt.Sprintf("UPDATE incomes SET %s WHERE id = $%d", strings.Join(updates, ", "), len(values))
	if _, err := s.db.ExecContext(ctx, query, values...); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, userID, id)
}

func (s *IncomeService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.GetByID(ctx, userID, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, "DELETE FROM incomes WHERE id = $1", id)
	return err
}
