package models

import (
	"regexp"
	"time"
)

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

// DateRegex validates transaction dates (YYYY-MM-DD).
var DateRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])-(0[1-9]|[12][0-9]|3[01])$`)

type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Category    string    `json:"category"`
	Date        string    `json:"date"`
	Amount      float64   `json:"amount"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Month derives the budget month key (YYYY-MM) from the transaction date.
func (t *Transaction) Month() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}

type CreateTransactionRequest struct {
	Description string  `json:"description" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category    string  `json:"category" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Notes       string  `json:"notes"`
}

type UpdateTransactionRequest struct {
	Description string  `json:"description" binding:"required"`
	Type        string  `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category    string  `json:"category" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Notes       string  `json:"notes"`
}
