package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/taxpal/taxpal-api/models"
)

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// DashboardService produces chart-ready aggregates from raw transactions.
type DashboardService struct {
	db *sql.DB
}

func NewDashboardService(db *sql.DB) *DashboardService {
	return &DashboardService{db: db}
}

// BucketMonthly sums income and expense into a fixed 12-element sequence by
// calendar month index. Records from any year sharing a month number are
// merged; the year is deliberately not filtered.
func BucketMonthly(transactions []models.Transaction) []models.MonthlyRecord {
	records := make([]models.MonthlyRecord, 12)
	for i := range records {
		records[i].Month = monthNames[i]
	}

	for _, tx := range transactions {
		parsed, err := time.Parse("2006-01-02", tx.Date)
		if err != nil {
			continue
		}
		idx := int(parsed.Month()) - 1
		switch tx.Type {
		case models.TypeIncome:
			records[idx].Income += tx.Amount
		case models.TypeExpense:
			records[idx].Expense += tx.Amount
		}
	}

	return records
}

// PercentageChange renders a current-vs-previous month comparison as a
// display string with a direction arrow.
func PercentageChange(current, prev float64) string {
	if prev == 0 && current == 0 {
		return "No change"
	}
	if prev == 0 && current > 0 {
		return "↑100% (from 0 last month)"
	}
	if prev == 0 && current < 0 {
		return "↓100% (from 0 last month)"
	}

	change := ((current - prev) / prev) * 100
	if change == 0 {
		return "No change"
	}
	symbol := "↑"
	if change < 0 {
		symbol = "↓"
	}
	return fmt.Sprintf("%s%.1f%% from last Month", symbol, math.Abs(change))
}

// SavingsRate returns (income-expense)/income as a percentage rounded to
// one decimal, or 0 when there is no income.
func SavingsRate(income, expense float64) float64 {
	if income <= 0 {
		return 0
	}
	rate := (income - expense) / income * 100
	return math.Round(rate*10) / 10
}

// IncomeVsExpense returns the 12-month income/expense series for a user.
func (s *DashboardService) IncomeVsExpense(ctx context.Context, userID string) ([]models.MonthlyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, type, amount FROM transactions WHERE user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.Date, &tx.Type, &tx.Amount); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return BucketMonthly(transactions), nil
}

// ExpenseBreakdown groups a user's expenses by category.
func (s *DashboardService) ExpenseBreakdown(ctx context.Context, userID string) ([]models.CategoryBreakdown, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, SUM(amount)
		FROM transactions
		WHERE user_id = $1 AND type = 'EXPENSE'
		GROUP BY category
		ORDER BY category
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	breakdown := []models.CategoryBreakdown{}
	for rows.Next() {
		var c models.CategoryBreakdown
		if err := rows.Scan(&c.Name, &c.Value); err != nil {
			return nil, err
		}
		breakdown = append(breakdown, c)
	}
	return breakdown, rows.Err()
}

// Summary compares the current calendar month against the previous one and
// surfaces the nearest-due pending tax estimation.
func (s *DashboardService) Summary(ctx context.Context, userID, country string) (*models.Summary, error) {
	now := time.Now()
	currentMonth := now.Format("2006-01")
	lastMonth := now.AddDate(0, -1, 0).Format("2006-01")

	rows, err := s.db.QueryContext(ctx, `
		SELECT substring(date from 1 for 7) AS month, type, SUM(amount)
		FROM transactions
		WHERE user_id = $1
		GROUP BY 1, 2
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type monthTotals struct{ income, expense float64 }
	totals := map[string]*monthTotals{}
	for rows.Next() {
		var month, txType string
		var sum float64
		if err := rows.Scan(&month, &txType, &sum); err != nil {
			return nil, err
		}
		mt, ok := totals[month]
		if !ok {
			mt = &monthTotals{}
			totals[month] = mt
		}
		if txType == models.TypeIncome {
			mt.income = sum
		} else {
			mt.expense = sum
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var currentIncome, currentExpense, lastIncome, lastExpense float64
	if mt, ok := totals[currentMonth]; ok {
		currentIncome, currentExpense = mt.income, mt.expense
	}
	if mt, ok := totals[lastMonth]; ok {
		lastIncome, lastExpense = mt.income, mt.expense
	}

	savingsRate := SavingsRate(currentIncome, currentExpense)

	taxDue, taxDueMsg, err := s.upcomingTax(ctx, userID)
	if err != nil {
		return nil, err
	}

	savingsMsg := "No savings data"
	if currentIncome > 0 {
		savingsMsg = fmt.Sprintf("↑%s%% from your goal!", strconv.FormatFloat(savingsRate, 'f', 1, 64))
	}

	return &models.Summary{
		Income:      currentIncome,
		Expense:     currentExpense,
		TaxDue:      taxDue,
		SavingsRate: savingsRate,
		Country:     country,
		Changes: models.SummaryChanges{
			Income:  PercentageChange(currentIncome, lastIncome),
			Expense: PercentageChange(currentExpense, lastExpense),
			TaxDue:  taxDueMsg,
			Savings: savingsMsg,
		},
	}, nil
}

// upcomingTax finds the pending estimation with the soonest due date, past
// or future.
func (s *DashboardService) upcomingTax(ctx context.Context, userID string) (float64, string, error) {
	var dueDate, symbol string
	var estimated float64

	err := s.db.QueryRowContext(ctx, `
		SELECT due_date, COALESCE(currency_symbol, ''), estimated_tax
		FROM tax_estimations
		WHERE user_id = $1 AND status = 'Pending'
		ORDER BY due_date ASC
		LIMIT 1
	`, userID).Scan(&dueDate, &symbol, &estimated)
	if err == sql.ErrNoRows {
		return 0, "No upcoming tax", nil
	}
	if err != nil {
		return 0, "", err
	}

	msg := fmt.Sprintf("Tax due on %s : %s%s", dueDate, symbol,
		strconv.FormatFloat(estimated, 'f', -1, 64))
	return estimated, msg, nil
}
