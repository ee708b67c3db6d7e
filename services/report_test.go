package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpal/taxpal-api/models"
)

func TestGetPeriodRange(t *testing.T) {
	now := time.Date(2025, time.August, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		period    string
		wantStart string
		wantEnd   string
		wantLabel string
	}{
		{"current month", "Current Month", "2025-08-01", "2025-08-31", ""},
		{"last month", "Last Month", "2025-07-01", "2025-07-31", ""},
		{"current quarter", "Current Quarter", "2025-07-01", "2025-09-30", "Q3(Jul-Sep)"},
		{"last quarter", "Last Quarter", "2025-04-01", "2025-06-30", "Q2(Apr-Jun)"},
		{"current year", "Current Year", "2025-01-01", "2025-12-31", ""},
		{"last year", "Last Year", "2024-01-01", "2024-12-31", ""},
		{"explicit quarter", "Q1(Jan-Mar)", "2025-01-01", "2025-03-31", "Q1(Jan-Mar)"},
		{"explicit fourth quarter", "Q4(Oct-Dec)", "2025-10-01", "2025-12-31", "Q4(Oct-Dec)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr, err := GetPeriodRange(tt.period, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, pr.Start.Format("2006-01-02"))
			assert.Equal(t, tt.wantEnd, pr.End.Format("2006-01-02"))
			assert.Equal(t, tt.wantLabel, pr.QuarterLabel)
		})
	}
}

func TestGetPeriodRangeYearBoundary(t *testing.T) {
	january := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)

	pr, err := GetPeriodRange("Last Month", january)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", pr.Start.Format("2006-01-02"))
	assert.Equal(t, "2024-12-31", pr.End.Format("2006-01-02"))

	pr, err = GetPeriodRange("Last Quarter", january)
	require.NoError(t, err)
	assert.Equal(t, "2024-10-01", pr.Start.Format("2006-01-02"))
	assert.Equal(t, "2024-12-31", pr.End.Format("2006-01-02"))
	assert.Equal(t, "Q4(Oct-Dec)", pr.QuarterLabel)
}

func TestGetPeriodRangeInvalid(t *testing.T) {
	_, err := GetPeriodRange("Fortnight", time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid period")
}

func TestPeriodRangeLabel(t *testing.T) {
	pr := PeriodRange{QuarterLabel: "Q3(Jul-Sep)"}
	assert.Equal(t, "Current Quarter - Q3(Jul-Sep)", pr.Label("Current Quarter"))
	assert.Equal(t, "Q3(Jul-Sep)", pr.Label("Q3(Jul-Sep)"))

	plain := PeriodRange{}
	assert.Equal(t, "Current Month", plain.Label("Current Month"))
}

func TestAggregateTransactions(t *testing.T) {
	transactions := []models.Transaction{
		{Description: "Paycheck", Category: "Salary", Type: models.TypeIncome, Date: "2025-08-01", Amount: 500},
		{Description: "Side gig", Category: "Freelance", Type: models.TypeIncome, Date: "2025-08-05", Amount: 200},
		{Description: "Bonus", Category: "Salary", Type: models.TypeIncome, Date: "2025-08-10", Amount: 100},
	}

	formatted, totals, total := AggregateTransactions(transactions, "united states")

	require.Len(t, formatted, 3)
	assert.Equal(t, "500.00", formatted[0].AmountFormatted)

	// Category totals come back in first-encounter order.
	require.Len(t, totals, 2)
	assert.Equal(t, "Salary", totals[0].Category)
	assert.Equal(t, 600.0, totals[0].Amount)
	assert.Equal(t, "Freelance", totals[1].Category)
	assert.Equal(t, 200.0, totals[1].Amount)

	assert.Equal(t, 800.0, total.Raw)
}

func TestMajorityCurrencySymbol(t *testing.T) {
	tests := []struct {
		name        string
		estimations []models.TaxEstimation
		expected    string
	}{
		{"empty set", nil, "₹"},
		{
			"single symbol",
			[]models.TaxEstimation{{CurrencySymbol: "$"}},
			"$",
		},
		{
			"clear majority",
			[]models.TaxEstimation{{CurrencySymbol: "€"}, {CurrencySymbol: "$"}, {CurrencySymbol: "$"}},
			"$",
		},
		{
			"tie breaks to first encountered",
			[]models.TaxEstimation{{CurrencySymbol: "€"}, {CurrencySymbol: "$"}},
			"€",
		},
		{
			"blank symbols default to rupee",
			[]models.TaxEstimation{{CurrencySymbol: ""}, {CurrencySymbol: ""}},
			"₹",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MajorityCurrencySymbol(tt.estimations))
		})
	}
}

func TestBuildReportData(t *testing.T) {
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	pr, err := GetPeriodRange("Current Month", now)
	require.NoError(t, err)

	transactions := []models.Transaction{
		{Description: "Paycheck", Category: "Salary", Type: models.TypeIncome, Date: "2025-08-01", Amount: 1000},
		{Description: "Groceries", Category: "Groceries", Type: models.TypeExpense, Date: "2025-08-03", Amount: 400},
	}

	data := BuildReportData(models.ReportTransactionDetail, "Current Month", pr, "india", transactions, now)

	assert.Equal(t, "8/15/2025", data.GeneratedOn)
	assert.Equal(t, "Current Month", data.Period)
	require.NotNil(t, data.TotalIncome)
	require.NotNil(t, data.TotalExpense)
	require.NotNil(t, data.NetProfitLoss)
	assert.Equal(t, 600.0, data.NetProfitLoss.Raw)
}

func TestBuildReportDataOneSided(t *testing.T) {
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	pr, err := GetPeriodRange("Current Month", now)
	require.NoError(t, err)

	transactions := []models.Transaction{
		{Description: "Paycheck", Category: "Salary", Type: models.TypeIncome, Date: "2025-08-01", Amount: 1000},
	}

	data := BuildReportData(models.ReportIncomeStatement, "Current Month", pr, "india", transactions, now)

	require.NotNil(t, data.TotalIncome)
	assert.Nil(t, data.TotalExpense)
	// Net profit/loss needs both sides.
	assert.Nil(t, data.NetProfitLoss)
}

func TestBuildExportTableRowShape(t *testing.T) {
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	pr, err := GetPeriodRange("Current Month", now)
	require.NoError(t, err)

	transactions := []models.Transaction{
		{Description: "Paycheck", Category: "Salary", Type: models.TypeIncome, Date: "2025-08-01", Amount: 500},
		{Description: "Side gig", Category: "Freelance", Type: models.TypeIncome, Date: "2025-08-05", Amount: 200},
		{Description: "Bonus", Category: "Salary", Type: models.TypeIncome, Date: "2025-08-10", Amount: 100},
	}

	data := BuildReportData(models.ReportIncomeStatement, "Current Month", pr, "india", transactions, now)
	table := BuildExportTable(models.ReportIncomeStatement, data)

	// 3 data rows, 1 blank separator, 2 category totals, 1 grand total.
	require.Len(t, table.Rows, 7)
	assert.Equal(t, []string{"description", "category", "date", "currencySymbol", "amount"}, table.Headers)

	for _, cell := range table.Rows[3] {
		assert.Equal(t, "", cell)
	}

	last := table.Rows[len(table.Rows)-1]
	assert.Equal(t, "Overall Total Income", last[2])
	assert.Equal(t, 800.0, last[4])
}

func TestBuildExportTableTax(t *testing.T) {
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	pr, err := GetPeriodRange("Current Quarter", now)
	require.NoError(t, err)

	estimations := []models.TaxEstimation{
		{Title: "Q3 advance", Description: "Estimated", Status: models.TaxStatusPending, DueDate: "2025-09-15", CurrencySymbol: "₹", EstimatedTax: 5000},
		{Title: "Late filing", Description: "Penalty", Status: models.TaxStatusOverdue, DueDate: "2025-07-31", CurrencySymbol: "₹", EstimatedTax: 1500},
		{Title: "Paid quarter", Description: "Settled", Status: models.TaxStatusCompleted, DueDate: "2025-07-15", CurrencySymbol: "₹", EstimatedTax: 4000},
	}

	data := BuildTaxReportData(models.ReportQuarterlyTax, "Current Quarter", pr, "india", estimations, now)
	assert.Equal(t, "Current Quarter - Q3(Jul-Sep)", data.Period)
	assert.Equal(t, 6500.0, data.TotalDueTax.Raw)
	assert.Equal(t, 10500.0, data.TotalTax.Raw)

	table := BuildExportTable(models.ReportQuarterlyTax, data)

	// 3 data rows, 1 blank separator, 5 totals rows.
	require.Len(t, table.Rows, 9)
	assert.Equal(t, "Pending Total", table.Rows[4][3])
	assert.Equal(t, "Overall Total Tax", table.Rows[8][3])
	assert.Equal(t, 10500.0, table.Rows[8][5])
}

func TestDetailExportOneSidedNet(t *testing.T) {
	now := time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC)
	pr, err := GetPeriodRange("Current Month", now)
	require.NoError(t, err)

	expenses := []models.Transaction{
		{Description: "Groceries", Category: "Groceries", Type: models.TypeExpense, Date: "2025-08-03", Amount: 400},
		{Description: "Bus pass", Category: "Transportation", Type: models.TypeExpense, Date: "2025-08-04", Amount: 60},
	}

	data := BuildReportData(models.ReportTransactionDetail, "Current Month", pr, "india", expenses, now)
	table := BuildExportTable(models.ReportTransactionDetail, data)

	// Expense-only range: the net row carries the signed expense total.
	last := table.Rows[len(table.Rows)-1]
	assert.Equal(t, "Net Profit/Loss", last[3])
	assert.Equal(t, -460.0, last[5])

	income := []models.Transaction{
		{Description: "Paycheck", Category: "Salary", Type: models.TypeIncome, Date: "2025-08-01", Amount: 1000},
	}
	data = BuildReportData(models.ReportTransactionDetail, "Current Month", pr, "india", income, now)
	table = BuildExportTable(models.ReportTransactionDetail, data)

	last = table.Rows[len(table.Rows)-1]
	assert.Equal(t, "Net Profit/Loss", last[3])
	assert.Equal(t, 1000.0, last[5])
}

func TestReportTypeChecks(t *testing.T) {
	assert.True(t, IsTaxReport(models.ReportQuarterlyTax))
	assert.True(t, IsTaxReport(models.ReportAnnualTax))
	assert.False(t, IsTaxReport(models.ReportIncomeStatement))

	assert.True(t, ValidReportType(models.ReportExpenseBreakdown))
	assert.True(t, ValidReportType(models.ReportTransactionDetail))
	assert.False(t, ValidReportType("Balance Sheet"))
}
