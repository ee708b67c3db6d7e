package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxpal/taxpal-api/middleware"
	"github.com/taxpal/taxpal-api/models"
	"github.com/taxpal/taxpal-api/services"
	"github.com/taxpal/taxpal-api/utils"
)

type BudgetHandler struct {
	DB   *sql.DB
	Sync *services.BudgetSyncService
	WS   *WSHandler
}

func (h *BudgetHandler) notify(userID string) {
	if h.WS != nil {
		h.WS.BroadcastUpdate(userID, "budgets")
	}
}

// Create opens a budget for a (category, month) pair. Expenses already
// recorded for that pair are summed into the starting spent amount, so a
// budget created mid-month reflects reality immediately.
func (h *BudgetHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.MonthRegex.MatchString(req.Month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month format. Expected YYYY-MM"})
		return
	}

	var exists bool
	err := h.DB.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM budgets WHERE user_id = $1 AND category = $2 AND month = $3)
	`, userID, req.Category, req.Month).Scan(&exists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "Budget already exists for this category and month"})
		return
	}

	spent, err := h.Sync.SeedSpentAmount(c.Request.Context(), h.DB, userID, req.Category, req.Month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute spent amount"})
		return
	}

	budget := models.Budget{
		UserID:       userID,
		Category:     req.Category,
		BudgetAmount: req.BudgetAmount,
		SpentAmount:  spent,
		Month:        req.Month,
		Description:  req.Description,
	}
	budget.Recalculate()

	err = h.DB.QueryRow(`
		INSERT INTO budgets (user_id, category, budget_amount, spent_amount, remaining_amount, month, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, userID, req.Category, req.BudgetAmount, budget.SpentAmount, budget.RemainingAmount, req.Month, req.Description).
		Scan(&budget.ID, &budget.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create budget"})
		return
	}

	utils.LogBudgetAction("created", budget.ID, userID)
	h.notify(userID)
	c.JSON(http.StatusCreated, gin.H{"message": "Budget created successfully", "budget": budget})
}

func (h *BudgetHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	rows, err := h.DB.QueryContext(c.Request.Context(), `
		SELECT id, user_id, category, budget_amount, spent_amount, remaining_amount, month, COALESCE(description, ''), created_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY month DESC, category
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.BudgetAmount, &b.SpentAmount, &b.RemainingAmount, &b.Month, &b.Description, &b.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// Update edits a budget's own fields. The stored spent amount is kept as-is
// and remaining is recomputed against the new budget amount.
func (h *BudgetHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := requireUUID(c)
	if !ok {
		return
	}

	var req models.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Month != "" && !models.MonthRegex.MatchString(req.Month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month format. Expected YYYY-MM"})
		return
	}

	var b models.Budget
	err := h.DB.QueryRowContext(c.Request.Context(), `
		SELECT id, user_id, category, budget_amount, spent_amount, remaining_amount, month, COALESCE(description, ''), created_at
		FROM budgets
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&b.ID, &b.UserID, &b.Category, &b.BudgetAmount, &b.SpentAmount, &b.RemainingAmount, &b.Month, &b.Description, &b.CreatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.Category != "" {
		b.Category = req.Category
	}
	if req.Month != "" {
		b.Month = req.Month
	}
	if req.BudgetAmount != nil {
		b.BudgetAmount = *req.BudgetAmount
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	b.Recalculate()

	_, err = h.DB.ExecContext(c.Request.Context(), `
		UPDATE budgets
		SET category = $1, budget_amount = $2, remaining_amount = $3, month = $4, description = $5
		WHERE id = $6 AND user_id = $7
	`, b.Category, b.BudgetAmount, b.RemainingAmount, b.Month, b.Description, id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}

	utils.LogBudgetAction("updated", id, userID)
	h.notify(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Budget updated successfully", "budget": b})
}

func (h *BudgetHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := requireUUID(c)
	if !ok {
		return
	}

	result, err := h.DB.ExecContext(c.Request.Context(),
		"DELETE FROM budgets WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete budget"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget not found"})
		return
	}

	utils.LogBudgetAction("deleted", id, userID)
	h.notify(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted successfully"})
}
