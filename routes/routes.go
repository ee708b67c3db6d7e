package routes

import (
	"database/sql"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/taxpal/taxpal-api/handlers"
	"github.com/taxpal/taxpal-api/services"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	emailService := services.NewEmailService(os.Getenv("RESEND_API_KEY"), os.Getenv("FROM_EMAIL"))
	authHandler := &handlers.AuthHandler{DB: db, Email: emailService}

	rg.POST("/auth/register", authHandler.Register)
	rg.POST("/auth/login", authHandler.Login)
	rg.POST("/auth/logout", authHandler.Logout)
	rg.POST("/auth/forgot-password", authHandler.ForgotPassword)
	rg.POST("/auth/verify-otp", authHandler.VerifyOTP)
	rg.POST("/auth/resend-otp", authHandler.ResendOTP)
	rg.POST("/auth/reset-password", authHandler.ResetPassword)
}

// SetupProfileRoutes sets up protected profile routes.
func SetupProfileRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.GET("/auth/me", authHandler.Me)
}

// SetupTransactionRoutes sets up protected transaction routes.
func SetupTransactionRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	h := &handlers.TransactionHandler{DB: db, Sync: services.NewBudgetSyncService(), WS: ws}

	rg.GET("/transactions", h.List)
	rg.GET("/transactions/recent", h.Recent)
	rg.POST("/transactions", h.Create)
	rg.PUT("/transactions/:id", h.Update)
	rg.DELETE("/transactions/:id", h.Delete)
}

// SetupBudgetRoutes sets up protected budget routes.
func SetupBudgetRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	h := &handlers.BudgetHandler{DB: db, Sync: services.NewBudgetSyncService(), WS: ws}

	rg.GET("/budgets", h.List)
	rg.POST("/budgets", h.Create)
	rg.PUT("/budgets/:id", h.Update)
	rg.DELETE("/budgets/:id", h.Delete)
}

// SetupDashboardRoutes sets up protected dashboard routes.
func SetupDashboardRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.DashboardHandler{DB: db, Svc: services.NewDashboardService(db)}

	rg.GET("/dashboard/income-vs-expense", h.IncomeVsExpense)
	rg.GET("/dashboard/expense-breakdown", h.ExpenseBreakdown)
	rg.GET("/dashboard/summary", h.Summary)
}

// SetupTaxRoutes sets up protected tax estimation routes.
func SetupTaxRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	h := &handlers.TaxEstimationHandler{DB: db, WS: ws}

	rg.GET("/tax-estimations", h.List)
	rg.POST("/tax-estimations", h.Create)
	rg.PUT("/tax-estimations/:id", h.Update)
	rg.DELETE("/tax-estimations/:id", h.Delete)
	rg.POST("/tax-estimations/overdue-check", h.CheckOverdue)
}

// SetupSettingsRoutes sets up protected settings routes.
func SetupSettingsRoutes(rg *gin.RouterGroup, db *sql.DB) {
	h := &handlers.SettingsHandler{DB: db}

	rg.GET("/settings/categories", h.ListCategories)
	rg.POST("/settings/categories", h.AddCategory)
	rg.PUT("/settings/categories", h.UpdateCategory)
	rg.DELETE("/settings/categories", h.DeleteCategory)
	rg.POST("/settings/password", h.ChangePassword)
	rg.PUT("/settings/profile", h.UpdateProfile)
	rg.POST("/settings/2fa/setup", h.SetupTOTP)
	rg.POST("/settings/2fa/verify", h.VerifyTOTP)
	rg.POST("/settings/2fa/disable", h.DisableTOTP)
}

// SetupReportRoutes sets up protected report routes.
func SetupReportRoutes(rg *gin.RouterGroup, db *sql.DB, storage *services.StorageService, ws *handlers.WSHandler) {
	h := &handlers.ReportHandler{DB: db, Svc: services.NewReportService(db), Storage: storage, WS: ws}

	rg.GET("/reports", h.List)
	rg.POST("/reports", h.Create)
	rg.DELETE("/reports", h.Delete)
}
