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

type TransactionHandler struct {
	DB   *sql.DB
	Sync *services.BudgetSyncService
	WS   *WSHandler
}

func (h *TransactionHandler) notify(userID string) {
	if h.WS != nil {
		h.WS.BroadcastUpdate(userID, "transactions")
	}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.DateRegex.MatchString(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Expected YYYY-MM-DD"})
		return
	}

	transaction := models.Transaction{
		UserID:      userID,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		Date:        req.Date,
		Amount:      req.Amount,
		Notes:       req.Notes,
	}

	err := utils.WithTransaction(h.DB, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(c.Request.Context(), `
			INSERT INTO transactions (user_id, description, type, category, date, amount, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at
		`, userID, req.Description, req.Type, req.Category, req.Date, req.Amount, req.Notes).
			Scan(&transaction.ID, &transaction.CreatedAt)
		if err != nil {
			return err
		}
		return h.Sync.ApplyExpense(c.Request.Context(), tx, userID, &transaction)
	})
	if err != nil {
		utils.SafeLog("failed to create transaction for user %s: %v", utils.MaskID(userID), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}

	h.notify(userID)
	c.JSON(http.StatusCreated, gin.H{"message": "Transaction created successfully", "transaction": transaction})
}

func (h *TransactionHandler) scanList(rows *sql.Rows) ([]models.Transaction, error) {
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Description, &t.Type, &t.Category, &t.Date, &t.Amount, &t.Notes, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (h *TransactionHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	rows, err := h.DB.QueryContext(c.Request.Context(), `
		SELECT id, user_id, description, type, category, date, amount, COALESCE(notes, ''), created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	transactions, err := h.scanList(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// Recent returns the ten most recently dated transactions.
func (h *TransactionHandler) Recent(c *gin.Context) {
	userID := middleware.UserID(c)

	rows, err := h.DB.QueryContext(c.Request.Context(), `
		SELECT id, user_id, description, type, category, date, amount, COALESCE(notes, ''), created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT 10
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	transactions, err := h.scanList(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

func (h *TransactionHandler) load(c *gin.Context, userID, id string) (*models.Transaction, bool) {
	var t models.Transaction
	err := h.DB.QueryRowContext(c.Request.Context(), `
		SELECT id, user_id, description, type, category, date, amount, COALESCE(notes, ''), created_at
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&t.ID, &t.UserID, &t.Description, &t.Type, &t.Category, &t.Date, &t.Amount, &t.Notes, &t.CreatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}
	return &t, true
}

// Update replaces a transaction's fields. The old expense contribution is
// rolled back and the new one applied inside the same database
// transaction, so budgets never see a half-applied edit.
func (h *TransactionHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := requireUUID(c)
	if !ok {
		return
	}

	var req models.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.DateRegex.MatchString(req.Date) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Expected YYYY-MM-DD"})
		return
	}

	existing, ok := h.load(c, userID, id)
	if !ok {
		return
	}

	updated := models.Transaction{
		ID:          existing.ID,
		UserID:      userID,
		Description: req.Description,
		Type:        req.Type,
		Category:    req.Category,
		Date:        req.Date,
		Amount:      req.Amount,
		Notes:       req.Notes,
		CreatedAt:   existing.CreatedAt,
	}

	err := utils.WithTransaction(h.DB, func(tx *sql.Tx) error {
		if err := h.Sync.RollbackExpense(c.Request.Context(), tx, userID, existing); err != nil {
			return err
		}
		_, err := tx.ExecContext(c.Request.Context(), `
			UPDATE transactions
			SET description = $1, type = $2, category = $3, date = $4, amount = $5, notes = $6
			WHERE id = $7 AND user_id = $8
		`, req.Description, req.Type, req.Category, req.Date, req.Amount, req.Notes, id, userID)
		if err != nil {
			return err
		}
		return h.Sync.ApplyExpense(c.Request.Context(), tx, userID, &updated)
	})
	if err != nil {
		utils.SafeLog("failed to update transaction %s: %v", utils.MaskID(id), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}

	h.notify(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Transaction updated successfully", "transaction": updated})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := requireUUID(c)
	if !ok {
		return
	}

	existing, ok := h.load(c, userID, id)
	if !ok {
		return
	}

	err := utils.WithTransaction(h.DB, func(tx *sql.Tx) error {
		if err := h.Sync.RollbackExpense(c.Request.Context(), tx, userID, existing); err != nil {
			return err
		}
		_, err := tx.ExecContext(c.Request.Context(),
			"DELETE FROM transactions WHERE id = $1 AND user_id = $2", id, userID)
		return err
	})
	if err != nil {
		utils.SafeLog("failed to delete transaction %s: %v", utils.MaskID(id), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}

	h.notify(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
