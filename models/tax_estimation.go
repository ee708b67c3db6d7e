package models

import "time"

const (
	TaxStatusPending   = "Pending"
	TaxStatusCompleted = "Completed"
	TaxStatusOverdue   = "Overdue"
)

type TaxEstimation struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	DueDate        string    `json:"due_date"`
	CurrencySymbol string    `json:"currency_symbol"`
	EstimatedTax   float64   `json:"estimated_tax"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateTaxEstimationRequest struct {
	Title          string  `json:"title" binding:"required"`
	Description    string  `json:"description" binding:"required"`
	Status         string  `json:"status" binding:"required,oneof=Pending Completed Overdue"`
	DueDate        string  `json:"due_date" binding:"required"`
	CurrencySymbol string  `json:"currency_symbol" binding:"required"`
	EstimatedTax   float64 `json:"estimated_tax" binding:"required,gt=0"`
}

type UpdateTaxEstimationRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}
