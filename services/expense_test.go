package services

import (
	"context"
	"testing"

	"finance-api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// Validation runs before any statement is issued, so a nil DB is safe
// for these cases.
func TestCreateExpenseValidation(t *testing.T) {
	svc := NewExpenseService(nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     models.CreateExpenseRequest
		wantErr error
	}{
		{
			name: "zero amount",
			req: models.CreateExpenseRequest{
				Amount:      decimal.Zero,
				Description: "Courses",
				Date:        "2024-05-01",
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			req: models.CreateExpenseRequest{
				Amount:      decimal.NewFromInt(-500),
				Description: "Courses",
				Date:        "2024-05-01",
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "unparseable date",
			req: models.CreateExpenseRequest{
				Amount:      decimal.NewFromInt(1000),
				Description: "Courses",
				Date:        "01/05/2024",
			},
			wantErr: ErrInvalidDate,
		},
		{
			name: "recurring without window",
			req: models.CreateExpenseRequest{
				Amount:      decimal.NewFromInt(1000),
				Description: "Loyer",
				Date:        "2024-05-01",
				Type:        models.ExpenseTypeRecurring,
			},
			wantErr: ErrRecurringDatesRequired,
		},
		{
			name: "recurring window inverted",
			req: models.CreateExpenseRequest{
				Amount:      decimal.NewFromInt(1000),
				Description: "Loyer",
				Date:        "2024-05-01",
				Type:        models.ExpenseTypeRecurring,
				StartDate:   "2024-06-01",
				EndDate:     "2024-05-01",
			},
			wantErr: ErrInvalidRecurringWindow,
		},
		{
			name: "recurring window empty",
			req: models.CreateExpenseRequest{
				Amount:      decimal.NewFromInt(1000),
				Description: "Loyer",
				Date:        "2024-05-01",
				Type:        models.ExpenseTypeRecurring,
				StartDate:   "2024-05-01",
				EndDate:     "2024-05-01",
			},
			wantErr: ErrInvalidRecurringWindow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "u1", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateIncomeValidation(t *testing.T) {
	svc := NewIncomeService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", models.CreateIncomeRequest{
		Amount: decimal.NewFromInt(-100),
		Source: "Salaire",
		Date:   "2024-05-01",
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.Create(ctx, "u1", models.CreateIncomeRequest{
		Amount: decimal.NewFromInt(100),
		Source: "Salaire",
		Date:   "mai 2024",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}
