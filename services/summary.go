package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"finance-api/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ErrDateRangeRequired is returned when a range report is requested
// without both bounds. No queries run in that case.
var ErrDateRangeRequired = errors.New("start and end dates are required")

const trendMonths = 6

// recurringAlertWindowDays is how far ahead expiring recurring
// expenses trigger a deadline alert.
const recurringAlertWindowDays = 30

var (
	alertThresholdHigh   = decimal.NewFromInt(100000)
	alertThresholdMedium = decimal.NewFromInt(80000)
)

// SummaryService computes the derived reports. Every entry point is a
// stateless read: safe to retry, nothing cached, nothing persisted.
type SummaryService struct {
	store TransactionStore
}

func NewSummaryService(store TransactionStore) *SummaryService {
	return &SummaryService{store: store}
}

// BuildMonthlyReport assembles totals, both category breakdowns and
// the 6-month expense evolution for one calendar month.
func (s *SummaryService) BuildMonthlyReport(ctx context.Context, userID string, month, year int) (*models.MonthlyReport, error) {
	period := models.MonthPeriod(month, year)
	first, last := models.MonthBounds(month, year)

	totalIncome, err := s.store.SumIncomes(ctx, userID, period)
	if err != nil {
		return nil, fmt.Errorf("sum incomes: %w", err)
	}

	totalExpenses, err := s.store.SumExpensesOverlapping(ctx, userID, first, last)
	if err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}

	categoryExpenses, err := s.store.ExpensesByCategory(ctx, userID, first, last)
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}

	categoryIncomes, err := s.store.IncomesByCategory(ctx, userID, period)
	if err != nil {
		return nil, fmt.Errorf("incomes by category: %w", err)
	}

	evolution, err := s.buildTrend(ctx, userID, month, year)
	if err != nil {
		return nil, fmt.Errorf("monthly evolution: %w", err)
	}

	return &models.MonthlyReport{
		Month:            month,
		Year:             year,
		TotalIncome:      totalIncome,
		TotalExpenses:    totalExpenses,
		Balance:          totalIncome.Sub(totalExpenses),
		CategoryExpenses: categoryExpenses,
		CategoryIncomes:  categoryIncomes,
		MonthlyEvolution: evolution,
	}, nil
}

// buildTrend returns exactly trendMonths points, oldest first, ending
// at the reference month. Each point counts one-time expenses only.
// The per-month sums are independent, so they run concurrently.
func (s *SummaryService) buildTrend(ctx context.Context, userID string, month, year int) ([]models.TrendPoint, error) {
	points := make([]models.TrendPoint, trendMonths)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < trendMonths; i++ {
		idx := i
		m, y := models.RollBackMonths(month, year, trendMonths-1-i)
		g.Go(func() error {
			total, err := s.store.SumExpensesByMonth(ctx, userID, m, y)
			if err != nil {
				return err
			}
			points[idx] = models.TrendPoint{Month: m, Year: y, Total: total}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return points, nil
}

// BuildRangeReport assembles totals and the expense breakdown over an
// arbitrary inclusive date range. Incomes use plain date inclusion;
// expenses apply the recurrence overlap rule.
func (s *SummaryService) BuildRangeReport(ctx context.Context, userID string, start, end time.Time) (*models.RangeReport, error) {
	if start.IsZero() || end.IsZero() {
		return nil, ErrDateRangeRequired
	}

	totalIncome, err := s.store.SumIncomes(ctx, userID, models.RangePeriod(start, end))
	if err != nil {
		return nil, fmt.Errorf("sum incomes: %w", err)
	}

	totalExpenses, err := s.store.SumExpensesOverlapping(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("sum expenses: %w", err)
	}

	categoryExpenses, err := s.store.ExpensesByCategory(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}

	return &models.RangeReport{
		StartDate:        start.Format(models.DateLayout),
		EndDate:          end.Format(models.DateLayout),
		TotalIncome:      totalIncome,
		TotalExpenses:    totalExpenses,
		Balance:          totalIncome.Sub(totalExpenses),
		CategoryExpenses: categoryExpenses,
	}, nil
}

// BuildAlerts evaluates the fixed spending thresholds against the
// current month and flags recurring expenses ending within the next
// 30 days. Both thresholds fire independently.
func (s *SummaryService) BuildAlerts(ctx context.Context, userID string, now time.Time) (*models.AlertsReport, error) {
	total, err := s.store.SumExpensesByMonth(ctx, userID, int(now.Month()), now.Year())
	if err != nil {
		return nil, fmt.Errorf("sum current month expenses: %w", err)
	}

	alerts := []models.Alert{}

	if total.GreaterThan(alertThresholdHigh) {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertTypeWarning,
			Message:  fmt.Sprintf("Vos dépenses du mois dépassent 100 000 Ar (%s Ar)", total.StringFixed(0)),
			Severity: models.AlertSeverityHigh,
		})
	}

	if total.GreaterThan(alertThresholdMedium) {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertTypeInfo,
			Message:  fmt.Sprintf("Vos dépenses du mois approchent de 100 000 Ar (%s Ar)", total.StringFixed(0)),
			Severity: models.AlertSeverityMedium,
		})
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	deadlines, err := s.store.RecurringExpensesEndingBetween(ctx, userID, today, today.AddDate(0, 0, recurringAlertWindowDays))
	if err != nil {
		return nil, fmt.Errorf("recurring deadlines: %w", err)
	}

	for _, d := range deadlines {
		alerts = append(alerts, models.Alert{
			Type:     models.AlertTypeInfo,
			Message:  fmt.Sprintf("Dépense récurrente \"%s\" se termine dans %d jour(s)", d.Description, daysUntil(now, d.EndDate)),
			Severity: models.AlertSeverityLow,
		})
	}

	return &models.AlertsReport{TotalExpenses: total, Alerts: alerts}, nil
}

// daysUntil is ceil((end - now) / 24h), floored at 0 for deadlines
// falling today.
func daysUntil(now, end time.Time) int {
	days := int(math.Ceil(end.Sub(now).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}
