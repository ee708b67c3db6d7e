package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxpal/taxpal-api/middleware"
	"github.com/taxpal/taxpal-api/models"
	"github.com/taxpal/taxpal-api/utils"
)

type SettingsHandler struct {
	DB *sql.DB
}

func categoryColumn(kind string) string {
	if kind == models.CategoryKindIncome {
		return "income_categories"
	}
	return "expense_categories"
}

func (h *SettingsHandler) loadCategories(c *gin.Context, userID, kind string) ([]models.Category, bool) {
	var raw []byte
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT "+categoryColumn(kind)+" FROM users WHERE id = $1", userID).Scan(&raw)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return nil, false
	}

	var categories []models.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt category data"})
		return nil, false
	}
	return categories, true
}

func (h *SettingsHandler) saveCategories(c *gin.Context, userID, kind string, categories []models.Category) bool {
	raw, err := json.Marshal(categories)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode categories"})
		return false
	}

	_, err = h.DB.ExecContext(c.Request.Context(),
		"UPDATE users SET "+categoryColumn(kind)+" = $1, updated_at = NOW() WHERE id = $2", raw, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save categories"})
		return false
	}
	return true
}

// ListCategories returns both category lists.
func (h *SettingsHandler) ListCategories(c *gin.Context) {
	userID := middleware.UserID(c)

	income, ok := h.loadCategories(c, userID, models.CategoryKindIncome)
	if !ok {
		return
	}
	expense, ok := h.loadCategories(c, userID, models.CategoryKindExpense)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"income_categories":  income,
		"expense_categories": expense,
	})
}

func (h *SettingsHandler) AddCategory(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.AddCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories, ok := h.loadCategories(c, userID, req.Type)
	if !ok {
		return
	}
	for _, cat := range categories {
		if cat.Name == req.Name {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
			return
		}
	}

	categories = append(categories, models.Category{Name: req.Name, Color: req.Color})
	if !h.saveCategories(c, userID, req.Type, categories) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Category added successfully", "categories": categories})
}

func (h *SettingsHandler) UpdateCategory(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories, ok := h.loadCategories(c, userID, req.Type)
	if !ok {
		return
	}

	found := false
	for i, cat := range categories {
		if cat.Name == req.OldName {
			categories[i] = models.Category{Name: req.Name, Color: req.Color}
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	if !h.saveCategories(c, userID, req.Type, categories) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully", "categories": categories})
}

func (h *SettingsHandler) DeleteCategory(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.DeleteCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	categories, ok := h.loadCategories(c, userID, req.Type)
	if !ok {
		return
	}

	filtered := categories[:0]
	for _, cat := range categories {
		if cat.Name != req.Name {
			filtered = append(filtered, cat)
		}
	}
	if len(filtered) == len(categories) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	if !h.saveCategories(c, userID, req.Type, filtered) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully", "categories": filtered})
}

func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var passwordHash string
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT password_hash FROM users WHERE id = $1", userID).Scan(&passwordHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, passwordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	_, err = h.DB.ExecContext(c.Request.Context(),
		"UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2", newHash, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to change password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}

func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := h.DB.QueryRowContext(c.Request.Context(), `
		UPDATE users SET name = $1, country = $2, income_bracket = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, name, email, country, income_bracket, totp_enabled, created_at, updated_at
	`, req.Name, req.Country, req.IncomeBracket, userID).
		Scan(&user.ID, &user.Name, &user.Email, &user.Country, &user.IncomeBracket, &user.TOTPEnabled, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// SetupTOTP generates and stores a new secret. 2FA only becomes active
// once VerifyTOTP confirms the user's authenticator produces valid codes.
func (h *SettingsHandler) SetupTOTP(c *gin.Context) {
	userID := middleware.UserID(c)

	var email string
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT email FROM users WHERE id = $1", userID).Scan(&email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	secret, url, err := utils.GenerateTOTPSecret(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate TOTP secret"})
		return
	}

	_, err = h.DB.ExecContext(c.Request.Context(),
		"UPDATE users SET totp_secret = $1, totp_enabled = FALSE, updated_at = NOW() WHERE id = $2", secret, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store TOTP secret"})
		return
	}

	c.JSON(http.StatusOK, models.TOTPSetupResponse{Secret: secret, URL: url})
}

func (h *SettingsHandler) VerifyTOTP(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var secret sql.NullString
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT totp_secret FROM users WHERE id = $1", userID).Scan(&secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !secret.Valid || secret.String == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "TOTP setup not started"})
		return
	}

	if !utils.VerifyTOTP(secret.String, req.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid TOTP code"})
		return
	}

	_, err = h.DB.ExecContext(c.Request.Context(),
		"UPDATE users SET totp_enabled = TRUE, updated_at = NOW() WHERE id = $1", userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enable 2FA"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Two-factor authentication enabled"})
}

func (h *SettingsHandler) DisableTOTP(c *gin.Context) {
	userID := middleware.UserID(c)

	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var secret sql.NullString
	var enabled bool
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT totp_secret, totp_enabled FROM users WHERE id = $1", userID).Scan(&secret, &enabled)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !enabled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Two-factor authentication is not enabled"})
		return
	}

	if !secret.Valid || !utils.VerifyTOTP(secret.String, req.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid TOTP code"})
		return
	}

	_, err = h.DB.ExecContext(c.Request.Context(),
		"UPDATE users SET totp_secret = NULL, totp_enabled = FALSE, updated_at = NOW() WHERE id = $1", userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disable 2FA"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Two-factor authentication disabled"})
}
