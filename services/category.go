package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"finance-api/models"
	"finance-api/utils"

	"github.com/google/uuid"
)

type CategoryService struct {
	db *sql.DB
}

func NewCategoryService(db *sql.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List returns global categories plus the user's own, by name.
// typeFilter is "expense", "income" or empty for both.
func (s *CategoryService) List(ctx context.Context, userID, typeFilter string) ([]models.Category, error) {
	query := `
		SELECT id, name, type, color, user_id, created_at
		FROM categories
		WHERE (user_id = $1 OR user_id IS NULL)`
	values := []interface{}{userID}

	if typeFilter != "" {
		query += " AND type = $2"
		values = append(values, typeFilter)
	}
	query += " ORDER BY name"

	rows, err := s.db.QueryContext(ctx, query, values...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Color, &c.UserID, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.IsGlobal = c.UserID == nil
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// Create inserts a user-owned category. Names are unique per user and
// type; global categories do not block a user from reusing a name.
func (s *CategoryService) Create(ctx context.Context, userID string, req models.CreateCategoryRequest) (*models.Category, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND type = $2 AND user_id = $3)
	`, req.Name, req.Type, userID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrCategoryNameTaken
	}

	color := req.Color
	if color == "" {
		color = models.DefaultCategoryColor
	}

	category := &models.Category{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Type:      req.Type,
		Color:     color,
		UserID:    &userID,
		CreatedAt: time.Now(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, type, color, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, category.ID, category.Name, category.Type, category.Color, category.UserID, category.CreatedAt)
	if err != nil {
		return nil, err
	}

	return category, nil
}

// Update renames or recolors a user-owned category. Global categories
// cannot be modified through the API.
func (s *CategoryService) Update(ctx context.Context, userID, id string, req models.UpdateCategoryRequest) (*models.Category, error) {
	var existing models.Category
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, type, color, user_id, created_at
		FROM categories
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&existing.ID, &existing.Name, &existing.Type, &existing.Color, &existing.UserID, &existing.CreatedAt)
	if err != nil {
		return nil, err
	}

	updates := []string{}
	values := []interface{}{}

	if req.Name != nil {
		var taken bool
		err := s.db.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND type = $2 AND user_id = $3 AND id != $4)
		`, *req.Name, existing.Type, userID, id).Scan(&taken)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrCategoryNameTaken
		}
		updates = append(updates, fmt.Sprintf("name = $%d", len(values)+1))
		values = append(values, *req.Name)
		existing.Name = *req.Name
	}
	if req.Color != nil {
		updates = append(updates, fmt.Sprintf("color = $%d", len(values)+1))
		values = append(values, *req.Color)
		existing.Color = *req.Color
	}

	if len(updates) == 0 {
		return nil, ErrNothingToUpdate
	}

	values = append(values, id)
	query := fmt.Sprintf("UPDATE categories SET %s WHERE id = $%d", strings.Join(updates, ", "), len(values))
	if _, err := s.db.ExecContext(ctx, query, values...); err != nil {
		return nil, err
	}

	return &existing, nil
}

// Delete removes a user-owned category that no expense or income
// references. The usage check and the delete run in one transaction so
// a concurrent insert cannot orphan a reference.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1 AND user_id = $2)
	`, id, userID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return sql.ErrNoRows
	}

	return utils.WithTransaction(s.db, func(tx *sql.Tx) error {
		var usage int
		err := tx.QueryRowContext(ctx, `
			SELECT (SELECT COUNT(*) FROM expenses WHERE category_id = $1)
			     + (SELECT COUNT(*) FROM incomes WHERE category_id = $1)
		`, id).Scan(&usage)
		if err != nil {
			return err
		}
		if usage > 0 {
			return ErrCategoryInUse
		}

		_, err = tx.ExecContext(ctx, "DELETE FROM categories WHERE id = $1", id)
		return err
	})
}
