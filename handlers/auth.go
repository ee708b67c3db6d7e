package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taxpal/taxpal-api/middleware"
	"github.com/taxpal/taxpal-api/models"
	"github.com/taxpal/taxpal-api/services"
	"github.com/taxpal/taxpal-api/utils"
)

type AuthHandler struct {
	DB    *sql.DB
	Email *services.EmailService
}

func (h *AuthHandler) setAuthCookie(c *gin.Context, token string) {
	sameSite := http.SameSiteLaxMode
	if utils.IsProduction {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(middleware.AuthCookieName, token, int(utils.TokenTTL.Seconds()), "/", "", utils.IsProduction, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists bool
	err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", req.Email).Scan(&exists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists with this email"})
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	incomeCategories, _ := json.Marshal(models.DefaultIncomeCategories)
	expenseCategories, _ := json.Marshal(models.DefaultExpenseCategories)

	var userID string
	var createdAt time.Time
	err = h.DB.QueryRow(`
		INSERT INTO users (name, email, password_hash, country, income_bracket, income_categories, expense_categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, req.Name, req.Email, passwordHash, req.Country, req.IncomeBracket, incomeCategories, expenseCategories).Scan(&userID, &createdAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := utils.GenerateToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	h.setAuthCookie(c, token)

	utils.LogAuthAction("register", req.Email, true)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": models.User{
			ID:                userID,
			Name:              req.Name,
			Email:             req.Email,
			Country:           req.Country,
			IncomeBracket:     req.IncomeBracket,
			IncomeCategories:  models.DefaultIncomeCategories,
			ExpenseCategories: models.DefaultExpenseCategories,
			CreatedAt:         createdAt,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	var passwordHash string
	var totpSecret sql.NullString
	err := h.DB.QueryRow(`
		SELECT id, name, email, password_hash, country, income_bracket, totp_secret, totp_enabled, created_at, updated_at
		FROM users
		WHERE email = $1
	`, req.Email).Scan(&user.ID, &user.Name, &user.Email, &passwordHash, &user.Country,
		&user.IncomeBracket, &totpSecret, &user.TOTPEnabled, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		utils.LogAuthAction("login", req.Email, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !utils.CheckPassword(req.Password, passwordHash) {
		utils.LogAuthAction("login", req.Email, false)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if user.TOTPEnabled {
		if req.TOTPCode == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "TOTP code required", "totp_required": true})
			return
		}
		if !totpSecret.Valid || !utils.VerifyTOTP(totpSecret.String, req.TOTPCode) {
			utils.LogAuthAction("login-totp", req.Email, false)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid TOTP code"})
			return
		}
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	h.setAuthCookie(c, token)

	utils.LogAuthAction("login", req.Email, true)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	if utils.IsProduction {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", utils.IsProduction, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Me returns the authenticated user's profile, categories included.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.UserID(c)

	var user models.User
	var incomeCategories, expenseCategories []byte
	err := h.DB.QueryRow(`
		SELECT id, name, email, country, income_bracket, income_categories, expense_categories, totp_enabled, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID).Scan(&user.ID, &user.Name, &user.Email, &user.Country, &user.IncomeBracket,
		&incomeCategories, &expenseCategories, &user.TOTPEnabled, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := json.Unmarshal(incomeCategories, &user.IncomeCategories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt category data"})
		return
	}
	if err := json.Unmarshal(expenseCategories, &user.ExpenseCategories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Corrupt category data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) sendResetOTP(c *gin.Context, email string) {
	var userID string
	err := h.DB.QueryRow("SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	otp, err := utils.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate OTP"})
		return
	}

	if _, err := h.DB.Exec("UPDATE users SET reset_otp = $1, updated_at = NOW() WHERE id = $2", otp, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store OTP"})
		return
	}

	if err := h.Email.SendOTP(email, otp); err != nil {
		utils.SafeLog("failed to send OTP email to %s: %v", utils.MaskEmail(email), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP email"})
		return
	}

	utils.LogAuthAction("otp-sent", email, true)
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent to your email"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.sendResetOTP(c, req.Email)
}

func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.sendResetOTP(c, req.Email)
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var storedOTP sql.NullString
	err := h.DB.QueryRow("SELECT reset_otp FROM users WHERE email = $1", req.Email).Scan(&storedOTP)
	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !storedOTP.Valid || storedOTP.String == "" || storedOTP.String != req.OTP {
		utils.LogAuthAction("otp-verify", req.Email, false)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OTP"})
		return
	}

	// Single-use: a verified code cannot be replayed.
	if _, err := h.DB.Exec("UPDATE users SET reset_otp = NULL, updated_at = NOW() WHERE email = $1", req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	utils.LogAuthAction("otp-verify", req.Email, true)
	c.JSON(http.StatusOK, gin.H{"message": "OTP verified"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var exists bool
	err := h.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)", req.Email).Scan(&exists)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	passwordHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	_, err = h.DB.Exec(`
		UPDATE users SET password_hash = $1, reset_otp = NULL, updated_at = NOW() WHERE email = $2
	`, passwordHash, req.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	utils.LogAuthAction("password-reset", req.Email, true)
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}
