package models

// Category list kinds accepted by the settings endpoints.
const (
	CategoryKindIncome  = "income"
	CategoryKindExpense = "expense"
)

type AddCategoryRequest struct {
	Type  string `json:"type" binding:"required,oneof=income expense"`
	Name  string `json:"category_name" binding:"required"`
	Color string `json:"category_color" binding:"required"`
}

type UpdateCategoryRequest struct {
	Type    string `json:"type" binding:"required,oneof=income expense"`
	OldName string `json:"old_category_name" binding:"required"`
	Name    string `json:"category_name" binding:"required"`
	Color   string `json:"category_color" binding:"required"`
}

type DeleteCategoryRequest struct {
	Type string `json:"type" binding:"required,oneof=income expense"`
	Name string `json:"category_name" binding:"required"`
}
