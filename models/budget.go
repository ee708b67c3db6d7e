package models

import (
	"regexp"
	"time"
)

// MonthRegex validates budget months (YYYY-MM).
var MonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type Budget struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Category        string    `json:"category"`
	BudgetAmount    float64   `json:"budget_amount"`
	SpentAmount     float64   `json:"spent_amount"`
	RemainingAmount float64   `json:"remaining_amount"`
	Month           string    `json:"month"`
	Description     string    `json:"description,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// Recalculate keeps remaining_amount consistent with the clamp invariant:
// remaining = max(budget_amount - spent_amount, 0).
func (b *Budget) Recalculate() {
	b.RemainingAmount = b.BudgetAmount - b.SpentAmount
	if b.RemainingAmount < 0 {
		b.RemainingAmount = 0
	}
}

type CreateBudgetRequest struct {
	Category     string  `json:"category" binding:"required"`
	BudgetAmount float64 `json:"budget_amount" binding:"required,gt=0"`
	Month        string  `json:"month" binding:"required"`
	Description  string  `json:"description"`
}

type UpdateBudgetRequest struct {
	Category     string   `json:"category"`
	BudgetAmount *float64 `json:"budget_amount"`
	Month        string   `json:"month"`
	Description  *string  `json:"description"`
}
