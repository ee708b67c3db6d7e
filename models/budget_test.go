package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudgetRecalculate(t *testing.T) {
	tests := []struct {
		name      string
		budget    float64
		spent     float64
		remaining float64
	}{
		{"under budget", 1000, 400, 600},
		{"exactly spent", 1000, 1000, 0},
		{"overspent clamps to zero", 1000, 1500, 0},
		{"nothing spent", 500, 0, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Budget{BudgetAmount: tt.budget, SpentAmount: tt.spent}
			b.Recalculate()
			assert.Equal(t, tt.remaining, b.RemainingAmount)
		})
	}
}

func TestMonthRegex(t *testing.T) {
	assert.True(t, MonthRegex.MatchString("2025-08"))
	assert.True(t, MonthRegex.MatchString("2025-12"))
	assert.False(t, MonthRegex.MatchString("2025-13"))
	assert.False(t, MonthRegex.MatchString("2025-8"))
	assert.False(t, MonthRegex.MatchString("2025-08-01"))
	assert.False(t, MonthRegex.MatchString("08-2025"))
}

func TestDateRegex(t *testing.T) {
	assert.True(t, DateRegex.MatchString("2025-08-31"))
	assert.True(t, DateRegex.MatchString("2025-01-01"))
	assert.False(t, DateRegex.MatchString("2025-08-32"))
	assert.False(t, DateRegex.MatchString("2025-00-10"))
	assert.False(t, DateRegex.MatchString("2025-8-1"))
	assert.False(t, DateRegex.MatchString("31-08-2025"))
}

func TestTransactionMonth(t *testing.T) {
	tx := Transaction{Date: "2025-08-15"}
	assert.Equal(t, "2025-08", tx.Month())

	short := Transaction{Date: "2025"}
	assert.Equal(t, "2025", short.Month())
}
