package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts serialize as JSON numbers, never strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// DateLayout is the wire format for all dates (query params and bodies).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

const (
	PeriodKindMonth = "month"
	PeriodKindRange = "range"
)

// Period is the tagged variant of the two report granularities: a
// calendar month or an arbitrary inclusive date range.
type Period struct {
	Kind  string
	Month int
	Year  int
	Start time.Time
	End   time.Time
}

func MonthPeriod(month, year int) Period {
	return Period{Kind: PeriodKindMonth, Month: month, Year: year}
}

func RangePeriod(start, end time.Time) Period {
	return Period{Kind: PeriodKindRange, Start: start, End: end}
}

// Bounds returns the inclusive [start, end] dates covered by the period.
func (p Period) Bounds() (time.Time, time.Time) {
	if p.Kind == PeriodKindMonth {
		return MonthBounds(p.Month, p.Year)
	}
	return p.Start, p.End
}

// MonthBounds returns the first and last day of a calendar month.
func MonthBounds(month, year int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// RollBackMonths steps back from month/year, wrapping into the
// previous year when the month index underflows.
func RollBackMonths(month, year, back int) (int, int) {
	m := month - back
	if m <= 0 {
		return m + 12, year - 1
	}
	return m, year
}

// CategorySummary is one entry of a per-category breakdown.
type CategorySummary struct {
	CategoryName  string          `json:"category_name"`
	CategoryColor string          `json:"category_color"`
	Amount        decimal.Decimal `json:"amount"`
}

// TrendPoint is one month of the trailing expense evolution.
type TrendPoint struct {
	Month int             `json:"month"`
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyReport summarizes one calendar month for one user.
type MonthlyReport struct {
	Month            int               `json:"month"`
	Year             int               `json:"year"`
	TotalIncome      decimal.Decimal   `json:"total_income"`
	TotalExpenses    decimal.Decimal   `json:"total_expenses"`
	Balance          decimal.Decimal   `json:"balance"`
	CategoryExpenses []CategorySummary `json:"category_expenses"`
	CategoryIncomes  []CategorySummary `json:"category_incomes"`
	MonthlyEvolution []TrendPoint      `json:"monthly_evolution"`
}

// RangeReport summarizes an arbitrary date range. Recurring expenses
// count in full whenever their window overlaps the range.
type RangeReport struct {
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
	TotalIncome      decimal.Decimal   `json:"total_income"`
	TotalExpenses    decimal.Decimal   `json:"total_expenses"`
	Balance          decimal.Decimal   `json:"balance"`
	CategoryExpenses []CategorySummary `json:"category_expenses"`
}

const (
	AlertTypeWarning = "warning"
	AlertTypeInfo    = "info"

	AlertSeverityLow    = "low"
	AlertSeverityMedium = "medium"
	AlertSeverityHigh   = "high"
)

// Alert is transient: recomputed on every request, never persisted.
type Alert struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type AlertsReport struct {
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Alerts        []Alert         `json:"alerts"`
}

// RecurringDeadline is a recurring expense approaching its end date.
type RecurringDeadline struct {
	Description string
	EndDate     time.Time
}
