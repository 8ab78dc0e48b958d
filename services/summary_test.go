package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"finance-api/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore implements TransactionStore over in-memory slices, applying
// the same membership rules the Postgres store expresses in SQL. It
// counts queries so tests can assert that validation short-circuits.
type fakeStore struct {
	expenses []models.Expense
	incomes  []models.Income
	queries  int
}

func (f *fakeStore) SumIncomes(_ context.Context, userID string, period models.Period) (decimal.Decimal, error) {
	f.queries++
	start, end := period.Bounds()
	total := decimal.Zero
	for _, in := range f.incomes {
		if in.UserID != userID {
			continue
		}
		if period.Kind == models.PeriodKindMonth {
			if int(in.Date.Month()) != period.Month || in.Date.Year() != period.Year {
				continue
			}
		} else if in.Date.Before(start) || in.Date.After(end) {
			continue
		}
		total = total.Add(in.Amount)
	}
	return total, nil
}

func (f *fakeStore) SumExpensesByMonth(_ context.Context, userID string, month, year int) (decimal.Decimal, error) {
	f.queries++
	total := decimal.Zero
	for _, e := range f.expenses {
		if e.UserID != userID || e.Type != models.ExpenseTypeOneTime {
			continue
		}
		if int(e.Date.Month()) == month && e.Date.Year() == year {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (f *fakeStore) SumExpensesOverlapping(_ context.Context, userID string, start, end time.Time) (decimal.Decimal, error) {
	f.queries++
	total := decimal.Zero
	for _, e := range f.expenses {
		if e.UserID == userID && e.ActiveBetween(start, end) {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

func (f *fakeStore) ExpensesByCategory(_ context.Context, userID string, start, end time.Time) ([]models.CategorySummary, error) {
	f.queries++
	byName := map[string]*models.CategorySummary{}
	for _, e := range f.expenses {
		if e.UserID != userID || e.CategoryName == nil || !e.ActiveBetween(start, end) {
			continue
		}
		cs, ok := byName[*e.CategoryName]
		if !ok {
			cs = &models.CategorySummary{CategoryName: *e.CategoryName, Amount: decimal.Zero}
			if e.CategoryColor != nil {
				cs.CategoryColor = *e.CategoryColor
			}
			byName[*e.CategoryName] = cs
		}
		cs.Amount = cs.Amount.Add(e.Amount)
	}
	return sortedSummaries(byName), nil
}

func (f *fakeStore) IncomesByCategory(_ context.Context, userID string, period models.Period) ([]models.CategorySummary, error) {
	f.queries++
	start, end := period.Bounds()
	byName := map[string]*models.CategorySummary{}
	for _, in := range f.incomes {
		if in.UserID != userID || in.CategoryName == nil {
			continue
		}
		if in.Date.Before(start) || in.Date.After(end) {
			continue
		}
		cs, ok := byName[*in.CategoryName]
		if !ok {
			cs = &models.CategorySummary{CategoryName: *in.CategoryName, Amount: decimal.Zero}
			byName[*in.CategoryName] = cs
		}
		cs.Amount = cs.Amount.Add(in.Amount)
	}
	return sortedSummaries(byName), nil
}

func (f *fakeStore) RecurringExpensesEndingBetween(_ context.Context, userID string, from, to time.Time) ([]models.RecurringDeadline, error) {
	f.queries++
	deadlines := []models.RecurringDeadline{}
	for _, e := range f.expenses {
		if e.UserID != userID || e.Type != models.ExpenseTypeRecurring || e.EndDate == nil {
			continue
		}
		if !e.EndDate.Before(from) && !e.EndDate.After(to) {
			deadlines = append(deadlines, models.RecurringDeadline{Description: e.Description, EndDate: *e.EndDate})
		}
	}
	return deadlines, nil
}

func sortedSummaries(byName map[string]*models.CategorySummary) []models.CategorySummary {
	out := []models.CategorySummary{}
	for _, cs := range byName {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

func date(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func oneTime(userID string, amount int64, day, category string) models.Expense {
	e := models.Expense{
		UserID: userID,
		Amount: decimal.NewFromInt(amount),
		Date:   date(day),
		Type:   models.ExpenseTypeOneTime,
	}
	if category != "" {
		e.CategoryName = strPtr(category)
		e.CategoryColor = strPtr("#3B82F6")
	}
	return e
}

func recurring(userID string, amount int64, description, start, end string) models.Expense {
	s, e := date(start), date(end)
	return models.Expense{
		UserID:        userID,
		Amount:        decimal.NewFromInt(amount),
		Description:   description,
		Date:          s,
		Type:          models.ExpenseTypeRecurring,
		StartDate:     &s,
		EndDate:       &e,
		CategoryName:  strPtr("Abonnements"),
		CategoryColor: strPtr("#8B5CF6"),
	}
}

func income(userID string, amount int64, day, category string) models.Income {
	in := models.Income{
		UserID: userID,
		Amount: decimal.NewFromInt(amount),
		Source: "test",
		Date:   date(day),
	}
	if category != "" {
		in.CategoryName = strPtr(category)
	}
	return in
}

func TestMonthlyReportEmptyMonth(t *testing.T) {
	svc := NewSummaryService(&fakeStore{})

	report, err := svc.BuildMonthlyReport(context.Background(), "u1", 7, 2024)
	require.NoError(t, err)

	assert.True(t, report.TotalIncome.IsZero())
	assert.True(t, report.TotalExpenses.IsZero())
	assert.True(t, report.Balance.IsZero())
	assert.Empty(t, report.CategoryExpenses)
	assert.Empty(t, report.CategoryIncomes)
	require.Len(t, report.MonthlyEvolution, 6)
	for _, point := range report.MonthlyEvolution {
		assert.True(t, point.Total.IsZero())
	}
}

func TestMonthlyReportTotalsAndBalance(t *testing.T) {
	store := &fakeStore{
		expenses: []models.Expense{
			oneTime("u1", 30000, "2024-05-03", "Alimentation"),
			oneTime("u1", 15000, "2024-05-20", "Transport"),
			oneTime("u2", 99999, "2024-05-10", "Alimentation"), // other user
			oneTime("u1", 5000, "2024-04-28", "Alimentation"),  // other month
		},
		incomes: []models.Income{
			income("u1", 120000, "2024-05-01", "Salaire"),
			income("u1", 20000, "2024-05-15", "Freelance"),
		},
	}
	svc := NewSummaryService(store)

	report, err := svc.BuildMonthlyReport(context.Background(), "u1", 5, 2024)
	require.NoError(t, err)

	assert.Equal(t, "140000", report.TotalIncome.String())
	assert.Equal(t, "45000", report.TotalExpenses.String())
	assert.Equal(t, "95000", report.Balance.String())
	assert.True(t, report.Balance.Equal(report.TotalIncome.Sub(report.TotalExpenses)))
}

func TestMonthlyReportRecurringOverlap(t *testing.T) {
	// Active window 2024-01-10 through 2024-03-20.
	store := &fakeStore{
		expenses: []models.Expense{
			recurring("u1", 25000, "Loyer studio", "2024-01-10", "2024-03-20"),
		},
	}
	svc := NewSummaryService(store)

	tests := []struct {
		name  string
		month int
		total string
	}{
		{"partial overlap counts in full (january)", 1, "25000"},
		{"month fully inside window (february)", 2, "25000"},
		{"partial overlap at tail (march)", 3, "25000"},
		{"no overlap (april)", 4, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := svc.BuildMonthlyReport(context.Background(), "u1", tt.month, 2024)
			require.NoError(t, err)
			assert.Equal(t, tt.total, report.TotalExpenses.String())
		})
	}
}

func TestTrendYearRollover(t *testing.T) {
	svc := NewSummaryService(&fakeStore{})

	report, err := svc.BuildMonthlyReport(context.Background(), "u1", 3, 2024)
	require.NoError(t, err)

	want := []struct{ month, year int }{
		{10, 2023}, {11, 2023}, {12, 2023}, {1, 2024}, {2, 2024}, {3, 2024},
	}
	require.Len(t, report.MonthlyEvolution, 6)
	for i, point := range report.MonthlyEvolution {
		assert.Equal(t, want[i].month, point.Month, "point %d month", i)
		assert.Equal(t, want[i].year, point.Year, "point %d year", i)
	}
}

func TestTrendCountsOneTimeOnly(t *testing.T) {
	store := &fakeStore{
		expenses: []models.Expense{
			oneTime("u1", 10000, "2024-02-05", "Alimentation"),
			recurring("u1", 50000, "Internet", "2024-01-01", "2024-12-31"),
		},
	}
	svc := NewSummaryService(store)

	report, err := svc.BuildMonthlyReport(context.Background(), "u1", 3, 2024)
	require.NoError(t, err)

	byMonth := map[int]string{}
	for _, p := range report.MonthlyEvolution {
		byMonth[p.Month] = p.Total.String()
	}
	assert.Equal(t, "10000", byMonth[2], "one-time expense counted")
	assert.Equal(t, "0", byMonth[1], "recurring expense excluded from trend")
	assert.Equal(t, "0", byMonth[3])
}

func TestCategoryBreakdownOrdering(t *testing.T) {
	store := &fakeStore{
		expenses: []models.Expense{
			oneTime("u1", 300, "2024-05-02", "Transport"),
			oneTime("u1", 100, "2024-05-03", "Santé"),
			oneTime("u1", 500, "2024-05-04", "Alimentation"),
		},
	}
	svc := NewSummaryService(store)

	report, err := svc.BuildMonthlyReport(context.Background(), "u1", 5, 2024)
	require.NoError(t, err)

	require.Len(t, report.CategoryExpenses, 3)
	assert.Equal(t, "500", report.CategoryExpenses[0].Amount.String())
	assert.Equal(t, "300", report.CategoryExpenses[1].Amount.String())
	assert.Equal(t, "100", report.CategoryExpenses[2].Amount.String())
	assert.Equal(t, "Alimentation", report.CategoryExpenses[0].CategoryName)
}

func TestRangeReport(t *testing.T) {
	store := &fakeStore{
		expenses: []models.Expense{
			oneTime("u1", 12000, "2024-02-10", "Alimentation"),
			oneTime("u1", 8000, "2024-04-01", "Alimentation"), // outside range
			recurring("u1", 25000, "Loyer studio", "2024-01-10", "2024-03-20"),
		},
		incomes: []models.Income{
			income("u1", 100000, "2024-02-01", "Salaire"),
			income("u1", 40000, "2024-03-25", "Salaire"), // outside range
		},
	}
	svc := NewSummaryService(store)

	report, err := svc.BuildRangeReport(context.Background(), "u1", date("2024-02-01"), date("2024-02-29"))
	require.NoError(t, err)

	assert.Equal(t, "2024-02-01", report.StartDate)
	assert.Equal(t, "2024-02-29", report.EndDate)
	assert.Equal(t, "100000", report.TotalIncome.String())
	// One-time inside the range plus the overlapping recurring charge in full.
	assert.Equal(t, "37000", report.TotalExpenses.String())
	assert.Equal(t, "63000", report.Balance.String())
	require.Len(t, report.CategoryExpenses, 2)
	assert.Equal(t, "Abonnements", report.CategoryExpenses[0].CategoryName)
	assert.Equal(t, "25000", report.CategoryExpenses[0].Amount.String())
}

func TestRangeReportSingleDay(t *testing.T) {
	store := &fakeStore{
		expenses: []models.Expense{
			recurring("u1", 25000, "Loyer studio", "2024-01-10", "2024-03-20"),
		},
	}
	svc := NewSummaryService(store)

	report, err := svc.BuildRangeReport(context.Background(), "u1", date("2024-02-14"), date("2024-02-14"))
	require.NoError(t, err)
	assert.Equal(t, "25000", report.TotalExpenses.String())
}

func TestRangeReportMissingBoundRunsNoQueries(t *testing.T) {
	store := &fakeStore{}
	svc := NewSummaryService(store)

	_, err := svc.BuildRangeReport(context.Background(), "u1", date("2024-02-01"), time.Time{})
	assert.ErrorIs(t, err, ErrDateRangeRequired)

	_, err = svc.BuildRangeReport(context.Background(), "u1", time.Time{}, date("2024-02-29"))
	assert.ErrorIs(t, err, ErrDateRangeRequired)

	assert.Zero(t, store.queries, "validation must short-circuit before any store query")
}

func TestAlertThresholds(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		total      int64
		wantAlerts int
		severities []string
	}{
		{"below both thresholds", 50000, 0, nil},
		{"above medium only", 85000, 1, []string{models.AlertSeverityMedium}},
		{"exactly at high threshold", 100000, 1, []string{models.AlertSeverityMedium}},
		{"above both thresholds", 120000, 2, []string{models.AlertSeverityHigh, models.AlertSeverityMedium}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{
				expenses: []models.Expense{oneTime("u1", tt.total, "2024-05-10", "Alimentation")},
			}
			svc := NewSummaryService(store)

			report, err := svc.BuildAlerts(context.Background(), "u1", now)
			require.NoError(t, err)

			assert.Equal(t, decimal.NewFromInt(tt.total).String(), report.TotalExpenses.String())
			require.Len(t, report.Alerts, tt.wantAlerts)
			for i, severity := range tt.severities {
				assert.Equal(t, severity, report.Alerts[i].Severity)
				assert.Contains(t, report.Alerts[i].Message, decimal.NewFromInt(tt.total).StringFixed(0))
			}
		})
	}
}

func TestAlertHighSeverityIsWarning(t *testing.T) {
	store := &fakeStore{
		expenses: []models.Expense{oneTime("u1", 150000, "2024-05-10", "Alimentation")},
	}
	svc := NewSummaryService(store)

	report, err := svc.BuildAlerts(context.Background(), "u1", time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.Len(t, report.Alerts, 2)
	assert.Equal(t, models.AlertTypeWarning, report.Alerts[0].Type)
	assert.Equal(t, models.AlertSeverityHigh, report.Alerts[0].Severity)
	assert.Equal(t, models.AlertTypeInfo, report.Alerts[1].Type)
	assert.Equal(t, models.AlertSeverityMedium, report.Alerts[1].Severity)
}

func TestRecurringDeadlineAlerts(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	store := &fakeStore{
		expenses: []models.Expense{
			recurring("u1", 10000, "Abonnement salle", "2024-01-01", "2024-05-20"), // 5 days out
			recurring("u1", 20000, "Assurance moto", "2024-01-01", "2024-06-29"),   // 45 days out
			recurring("u1", 5000, "Forfait mobile", "2024-01-01", "2024-05-15"),    // ends today
		},
	}
	svc := NewSummaryService(store)

	report, err := svc.BuildAlerts(context.Background(), "u1", now)
	require.NoError(t, err)

	require.Len(t, report.Alerts, 2, "expense ending in 45 days must not alert")

	messages := []string{report.Alerts[0].Message, report.Alerts[1].Message}
	assert.Contains(t, messages, `Dépense récurrente "Abonnement salle" se termine dans 5 jour(s)`)
	assert.Contains(t, messages, `Dépense récurrente "Forfait mobile" se termine dans 0 jour(s)`)
	for _, alert := range report.Alerts {
		assert.Equal(t, models.AlertTypeInfo, alert.Type)
		assert.Equal(t, models.AlertSeverityLow, alert.Severity)
	}
}
