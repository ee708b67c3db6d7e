package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taxpal/taxpal-api/middleware"
	"github.com/taxpal/taxpal-api/models"
	"github.com/taxpal/taxpal-api/utils"
)

type TaxEstimationHandler struct {
	DB *sql.DB
	WS *WSHandler
}

func (h *TaxEstimationHandler) notify(userID string) {
	if h.WS != nil {
		h.WS.BroadcastUpdate(userID, "tax_estimations")
	}
}

func (h *TaxEstimationHandler) Create(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.CreateTaxEstimationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.DateRegex.MatchString(req.DueDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date format. Expected YYYY-MM-DD"})
		return
	}

	estimation := models.TaxEstimation{
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		Status:         req.Status,
		DueDate:        req.DueDate,
		CurrencySymbol: req.CurrencySymbol,
		EstimatedTax:   req.EstimatedTax,
	}

	err := h.DB.QueryRowContext(c.Request.Context(), `
		INSERT INTO tax_estimations (user_id, title, description, status, due_date, currency_symbol, estimated_tax)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, userID, req.Title, req.Description, req.Status, req.DueDate, req.CurrencySymbol, req.EstimatedTax).
		Scan(&estimation.ID, &estimation.CreatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tax estimation"})
		return
	}

	h.notify(userID)
	c.JSON(http.StatusCreated, gin.H{"message": "Tax estimation created successfully", "tax_estimation": estimation})
}

func (h *TaxEstimationHandler) List(c *gin.Context) {
	userID := middleware.UserID(c)

	rows, err := h.DB.QueryContext(c.Request.Context(), `
		SELECT id, user_id, title, description, status, due_date, COALESCE(currency_symbol, ''), estimated_tax, created_at
		FROM tax_estimations
		WHERE user_id = $1
		ORDER BY due_date ASC
	`, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	defer rows.Close()

	estimations := []models.TaxEstimation{}
	for rows.Next() {
		var t models.TaxEstimation
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.CurrencySymbol, &t.EstimatedTax, &t.CreatedAt); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		estimations = append(estimations, t)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tax_estimations": estimations})
}

func (h *TaxEstimationHandler) Update(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := requireUUID(c)
	if !ok {
		return
	}

	var req models.UpdateTaxEstimationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DueDate != "" && !models.DateRegex.MatchString(req.DueDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid due date format. Expected YYYY-MM-DD"})
		return
	}
	if req.Status != "" && req.Status != models.TaxStatusPending &&
		req.Status != models.TaxStatusCompleted && req.Status != models.TaxStatusOverdue {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	var t models.TaxEstimation
	err := h.DB.QueryRowContext(c.Request.Context(), `
		SELECT id, user_id, title, description, status, due_date, COALESCE(currency_symbol, ''), estimated_tax, created_at
		FROM tax_estimations
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.CurrencySymbol, &t.EstimatedTax, &t.CreatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tax estimation not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if req.Title != "" {
		t.Title = req.Title
	}
	if req.Description != "" {
		t.Description = req.Description
	}
	if req.DueDate != "" {
		t.DueDate = req.DueDate
	}
	if req.Status != "" {
		t.Status = req.Status
	}

	_, err = h.DB.ExecContext(c.Request.Context(), `
		UPDATE tax_estimations
		SET title = $1, description = $2, status = $3, due_date = $4
		WHERE id = $5 AND user_id = $6
	`, t.Title, t.Description, t.Status, t.DueDate, id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tax estimation"})
		return
	}

	h.notify(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Tax estimation updated successfully", "tax_estimation": t})
}

func (h *TaxEstimationHandler) Delete(c *gin.Context) {
	userID := middleware.UserID(c)
	id, ok := requireUUID(c)
	if !ok {
		return
	}

	result, err := h.DB.ExecContext(c.Request.Context(),
		"DELETE FROM tax_estimations WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tax estimation"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tax estimation not found"})
		return
	}

	h.notify(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Tax estimation deleted successfully"})
}

// CheckOverdue marks pending estimations whose due date has passed as
// Overdue and reports how many flipped.
func (h *TaxEstimationHandler) CheckOverdue(c *gin.Context) {
	userID := middleware.UserID(c)
	today := time.Now().Format("2006-01-02")

	result, err := h.DB.ExecContext(c.Request.Context(), `
		UPDATE tax_estimations
		SET status = 'Overdue'
		WHERE user_id = $1 AND status = 'Pending' AND due_date < $2
	`, userID, today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check overdue estimations"})
		return
	}

	updated, _ := result.RowsAffected()
	if updated > 0 {
		utils.SafeLog("marked %d tax estimations overdue for user %s", updated, utils.MaskID(userID))
		h.notify(userID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Overdue check complete", "updated": updated})
}
