package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxpal/taxpal-api/middleware"
	"github.com/taxpal/taxpal-api/services"
)

type DashboardHandler struct {
	DB  *sql.DB
	Svc *services.DashboardService
}

func (h *DashboardHandler) IncomeVsExpense(c *gin.Context) {
	userID := middleware.UserID(c)

	records, err := h.Svc.IncomeVsExpense(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": records})
}

func (h *DashboardHandler) ExpenseBreakdown(c *gin.Context) {
	userID := middleware.UserID(c)

	breakdown, err := h.Svc.ExpenseBreakdown(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": breakdown})
}

func (h *DashboardHandler) Summary(c *gin.Context) {
	userID := middleware.UserID(c)

	var country string
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT country FROM users WHERE id = $1", userID).Scan(&country)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	summary, err := h.Svc.Summary(c.Request.Context(), userID, country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
