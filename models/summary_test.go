package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		name        string
		month, year int
		first, last string
	}{
		{"january", 1, 2024, "2024-01-01", "2024-01-31"},
		{"february leap year", 2, 2024, "2024-02-01", "2024-02-29"},
		{"february common year", 2, 2023, "2023-02-01", "2023-02-28"},
		{"december", 12, 2024, "2024-12-01", "2024-12-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := MonthBounds(tt.month, tt.year)
			assert.Equal(t, tt.first, first.Format(DateLayout))
			assert.Equal(t, tt.last, last.Format(DateLayout))
		})
	}
}

func TestRollBackMonths(t *testing.T) {
	tests := []struct {
		name                string
		month, year, back   int
		wantMonth, wantYear int
	}{
		{"no step", 3, 2024, 0, 3, 2024},
		{"same year", 6, 2024, 3, 3, 2024},
		{"wrap one month", 1, 2024, 1, 12, 2023},
		{"wrap from march", 3, 2024, 5, 10, 2023},
		{"wrap full window", 2, 2024, 11, 3, 2023},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, y := RollBackMonths(tt.month, tt.year, tt.back)
			assert.Equal(t, tt.wantMonth, m)
			assert.Equal(t, tt.wantYear, y)
		})
	}
}

func TestPeriodBounds(t *testing.T) {
	first, last := MonthPeriod(2, 2024).Bounds()
	assert.Equal(t, "2024-02-01", first.Format(DateLayout))
	assert.Equal(t, "2024-02-29", last.Format(DateLayout))

	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	gotStart, gotEnd := RangePeriod(start, end).Bounds()
	assert.Equal(t, start, gotStart)
	assert.Equal(t, end, gotEnd)
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-03-20")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC), date)

	_, err = ParseDate("20/03/2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}
