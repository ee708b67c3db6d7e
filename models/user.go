package models

import "time"

type Category struct {
	Name  string `json:"category_name" binding:"required"`
	Color string `json:"category_color" binding:"required"`
}

// DefaultIncomeCategories seeds a fresh account's income category list.
var DefaultIncomeCategories = []Category{
	{Name: "Salary", Color: "#54c947"},
	{Name: "Freelance", Color: "#f64949"},
	{Name: "Investment", Color: "#E8C547"},
	{Name: "Rental Income", Color: "#60A2D5"},
	{Name: "Gift", Color: "#FF4500"},
	{Name: "Other", Color: "#894BCA"},
}

// DefaultExpenseCategories seeds a fresh account's expense category list.
var DefaultExpenseCategories = []Category{
	{Name: "Groceries", Color: "#54c947"},
	{Name: "Food", Color: "#f64949"},
	{Name: "Rent", Color: "#E8C547"},
	{Name: "Utilities", Color: "#60A2D5"},
	{Name: "Transportation", Color: "#FF4500"},
	{Name: "Other", Color: "#894BCA"},
}

type User struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	PasswordHash      string     `json:"-"`
	Country           string     `json:"country"`
	IncomeBracket     string     `json:"income_bracket"`
	ResetOTP          string     `json:"-"`
	IncomeCategories  []Category `json:"income_categories,omitempty"`
	ExpenseCategories []Category `json:"expense_categories,omitempty"`
	TOTPSecret        string     `json:"-"`
	TOTPEnabled       bool       `json:"totp_enabled"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type RegisterRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	Country       string `json:"country" binding:"required"`
	IncomeBracket string `json:"income_bracket" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type UpdateProfileRequest struct {
	Name          string `json:"name" binding:"required"`
	Country       string `json:"country" binding:"required"`
	IncomeBracket string `json:"income_bracket" binding:"required"`
}

type TOTPSetupResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

type VerifyTOTPRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}
