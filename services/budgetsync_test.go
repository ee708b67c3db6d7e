package services

import (
	"context"
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxpal/taxpal-api/models"
)

func budgetRows(id, category string, budget, spent, remaining float64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "category", "budget_amount", "spent_amount", "remaining_amount", "month"}).
		AddRow(id, "user-1", category, budget, spent, remaining, "2025-08")
}

func TestApplyExpense(t *testing.T) {
	tests := []struct {
		name          string
		budgetAmount  float64
		spentBefore   float64
		amount        float64
		wantSpent     float64
		wantRemaining float64
	}{
		{"adds the expense amount", 1000, 200, 300, 500, 500},
		{"overspend clamps remaining at zero", 1000, 200, 900, 1100, 0},
		{"first expense against a fresh budget", 500, 0, 120, 120, 380},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			mock.ExpectQuery("FROM budgets").
				WithArgs("user-1", "Groceries", "2025-08").
				WillReturnRows(budgetRows("b-1", "Groceries", tt.budgetAmount, tt.spentBefore, tt.budgetAmount-tt.spentBefore))
			mock.ExpectExec("UPDATE budgets").
				WithArgs(tt.wantSpent, tt.wantRemaining, "b-1").
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			tx, err := db.Begin()
			require.NoError(t, err)

			svc := NewBudgetSyncService()
			expense := &models.Transaction{Type: models.TypeExpense, Category: "Groceries", Date: "2025-08-15", Amount: tt.amount}
			require.NoError(t, svc.ApplyExpense(context.Background(), tx, "user-1", expense))
			require.NoError(t, tx.Commit())

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestApplyExpenseSkipsIncome(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	svc := NewBudgetSyncService()
	income := &models.Transaction{Type: models.TypeIncome, Category: "Salary", Date: "2025-08-01", Amount: 1000}
	require.NoError(t, svc.ApplyExpense(context.Background(), tx, "user-1", income))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyExpenseNoBudget(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM budgets").
		WithArgs("user-1", "Food", "2025-08").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	svc := NewBudgetSyncService()
	expense := &models.Transaction{Type: models.TypeExpense, Category: "Food", Date: "2025-08-15", Amount: 50}
	require.NoError(t, svc.ApplyExpense(context.Background(), tx, "user-1", expense))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRollbackExpense(t *testing.T) {
	tests := []struct {
		name          string
		budgetAmount  float64
		spentBefore   float64
		amount        float64
		wantSpent     float64
		wantRemaining float64
	}{
		{"reverses exactly its own contribution", 1000, 500, 300, 200, 800},
		{"full reversal restores the whole budget", 1000, 300, 300, 0, 1000},
		{"reversal out of an overspent state", 1000, 1100, 900, 200, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectBegin()
			mock.ExpectQuery("FROM budgets").
				WithArgs("user-1", "Groceries", "2025-08").
				WillReturnRows(budgetRows("b-1", "Groceries", tt.budgetAmount, tt.spentBefore, 0))
			mock.ExpectExec("UPDATE budgets").
				WithArgs(tt.wantSpent, tt.wantRemaining, "b-1").
				WillReturnResult(sqlmock.NewResult(0, 1))
			mock.ExpectCommit()

			tx, err := db.Begin()
			require.NoError(t, err)

			svc := NewBudgetSyncService()
			expense := &models.Transaction{Type: models.TypeExpense, Category: "Groceries", Date: "2025-08-15", Amount: tt.amount}
			require.NoError(t, svc.RollbackExpense(context.Background(), tx, "user-1", expense))
			require.NoError(t, tx.Commit())

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// An edit that moves an expense to another category rolls back the old
// budget and applies the new one; expectations pin down that exactly those
// two rows are touched.
func TestEditMovesImpactBetweenBudgets(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("FROM budgets").
		WithArgs("user-1", "Groceries", "2025-08").
		WillReturnRows(budgetRows("b-groceries", "Groceries", 1000, 500, 500))
	mock.ExpectExec("UPDATE budgets").
		WithArgs(200.0, 800.0, "b-groceries").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM budgets").
		WithArgs("user-1", "Food", "2025-08").
		WillReturnRows(budgetRows("b-food", "Food", 400, 0, 400))
	mock.ExpectExec("UPDATE budgets").
		WithArgs(200.0, 200.0, "b-food").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)

	svc := NewBudgetSyncService()
	old := &models.Transaction{Type: models.TypeExpense, Category: "Groceries", Date: "2025-08-15", Amount: 300}
	updated := &models.Transaction{Type: models.TypeExpense, Category: "Food", Date: "2025-08-20", Amount: 200}

	require.NoError(t, svc.RollbackExpense(context.Background(), tx, "user-1", old))
	require.NoError(t, svc.ApplyExpense(context.Background(), tx, "user-1", updated))
	require.NoError(t, tx.Commit())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedSpentAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("user-1", "Groceries", "2025-08").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(750.0))

	svc := NewBudgetSyncService()
	spent, err := svc.SeedSpentAmount(context.Background(), db, "user-1", "Groceries", "2025-08")
	require.NoError(t, err)
	assert.Equal(t, 750.0, spent)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedSpentAmountNoExpenses(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("user-1", "Rent", "2025-09").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.0))

	svc := NewBudgetSyncService()
	spent, err := svc.SeedSpentAmount(context.Background(), db, "user-1", "Rent", "2025-09")
	require.NoError(t, err)
	assert.Zero(t, spent)

	assert.NoError(t, mock.ExpectationsWereMet())
}
