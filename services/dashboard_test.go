package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taxpal/taxpal-api/models"
)

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		prev     float64
		expected string
	}{
		{"both zero", 0, 0, "No change"},
		{"growth from zero", 100, 0, "↑100% (from 0 last month)"},
		{"drop from zero", -100, 0, "↓100% (from 0 last month)"},
		{"equal months", 100, 100, "No change"},
		{"increase", 150, 100, "↑50.0% from last Month"},
		{"decrease", 50, 100, "↓50.0% from last Month"},
		{"fractional decrease", 90, 120, "↓25.0% from last Month"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PercentageChange(tt.current, tt.prev))
		})
	}
}

func TestSavingsRate(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		expense  float64
		expected float64
	}{
		{"no income", 0, 100, 0},
		{"negative income", -50, 0, 0},
		{"simple", 1000, 400, 60},
		{"rounded to one decimal", 3000, 1000, 66.7},
		{"overspent", 100, 150, -50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SavingsRate(tt.income, tt.expense))
		})
	}
}

func TestBucketMonthly(t *testing.T) {
	transactions := []models.Transaction{
		{Type: models.TypeIncome, Date: "2025-01-10", Amount: 1000},
		{Type: models.TypeIncome, Date: "2024-01-20", Amount: 500},
		{Type: models.TypeExpense, Date: "2025-01-15", Amount: 300},
		{Type: models.TypeExpense, Date: "2025-03-02", Amount: 50},
		{Type: models.TypeIncome, Date: "not-a-date", Amount: 9999},
	}

	records := BucketMonthly(transactions)

	assert.Len(t, records, 12)
	assert.Equal(t, "Jan", records[0].Month)
	assert.Equal(t, "Dec", records[11].Month)

	// January merges both years.
	assert.Equal(t, 1500.0, records[0].Income)
	assert.Equal(t, 300.0, records[0].Expense)

	assert.Equal(t, 50.0, records[2].Expense)
	assert.Equal(t, 0.0, records[1].Income)
	assert.Equal(t, 0.0, records[1].Expense)
}

func TestBucketMonthlyEmpty(t *testing.T) {
	records := BucketMonthly(nil)

	assert.Len(t, records, 12)
	for _, r := range records {
		assert.Zero(t, r.Income)
		assert.Zero(t, r.Expense)
	}
}
