package services

import (
	"context"
	"database/sql"

	"github.com/taxpal/taxpal-api/models"
	"github.com/taxpal/taxpal-api/utils"
)

// BudgetSyncService keeps each budget's spent/remaining figures consistent
// with the expense transactions tagged to its (user, category, month).
// Budgets are opt-in: a missing budget is never an error.
type BudgetSyncService struct{}

func NewBudgetSyncService() *BudgetSyncService {
	return &BudgetSyncService{}
}

// lockBudget loads the matching budget row under FOR UPDATE so concurrent
// writers to the same (user, category, month) serialize instead of racing.
func (s *BudgetSyncService) lockBudget(ctx context.Context, tx *sql.Tx, userID, category, month string) (*models.Budget, error) {
	query := `
		SELECT id, user_id, category, budget_amount, spent_amount, remaining_amount, month
		FROM budgets
		WHERE user_id = $1 AND category = $2 AND month = $3
		FOR UPDATE
	`

	var b models.Budget
	err := tx.QueryRowContext(ctx, query, userID, category, month).Scan(
		&b.ID, &b.UserID, &b.Category, &b.BudgetAmount, &b.SpentAmount, &b.RemainingAmount, &b.Month,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *BudgetSyncService) saveBudget(ctx context.Context, tx *sql.Tx, b *models.Budget) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE budgets SET spent_amount = $1, remaining_amount = $2 WHERE id = $3
	`, b.SpentAmount, b.RemainingAmount, b.ID)
	return err
}

// ApplyExpense adds an expense's amount to its matching budget, if any.
func (s *BudgetSyncService) ApplyExpense(ctx context.Context, tx *sql.Tx, userID string, t *models.Transaction) error {
	if t.Type != models.TypeExpense {
		return nil
	}

	budget, err := s.lockBudget(ctx, tx, userID, t.Category, t.Month())
	if err != nil {
		return err
	}
	if budget == nil {
		utils.SafeLog("no budget for user=%s month=%s category=%s, expense recorded without adjustment",
			utils.MaskID(userID), t.Month(), t.Category)
		return nil
	}

	budget.SpentAmount += t.Amount
	budget.Recalculate()

	if err := s.saveBudget(ctx, tx, budget); err != nil {
		return err
	}
	utils.LogBudgetAction("expense applied", budget.ID, userID)
	return nil
}

// RollbackExpense reverses an expense's contribution to its matching
// budget, if any. Used on transaction delete and for the rollback half of
// an update.
func (s *BudgetSyncService) RollbackExpense(ctx context.Context, tx *sql.Tx, userID string, t *models.Transaction) error {
	if t.Type != models.TypeExpense {
		return nil
	}

	budget, err := s.lockBudget(ctx, tx, userID, t.Category, t.Month())
	if err != nil {
		return err
	}
	if budget == nil {
		return nil
	}

	budget.SpentAmount -= t.Amount
	budget.Recalculate()

	if err := s.saveBudget(ctx, tx, budget); err != nil {
		return err
	}
	utils.LogBudgetAction("expense rolled back", budget.ID, userID)
	return nil
}

// SeedSpentAmount sums the expenses already recorded for a user, category
// and month, so a budget created after the fact starts already spent up.
// Transaction dates are YYYY-MM-DD strings, matched by month prefix.
func (s *BudgetSyncService) SeedSpentAmount(ctx context.Context, db *sql.DB, userID, category, month string) (float64, error) {
	var total float64
	err := db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND type = 'EXPENSE' AND category = $2 AND date LIKE $3 || '-%'
	`, userID, category, month).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
