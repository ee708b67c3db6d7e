package models

import "time"

// Report types and formats accepted by the report pipeline.
const (
	ReportIncomeStatement   = "Income Statement"
	ReportExpenseBreakdown  = "Expense Breakdown"
	ReportTransactionDetail = "Transaction Detail Export"
	ReportQuarterlyTax      = "Quarterly Tax Estimate"
	ReportAnnualTax         = "Annual Tax Summary"
)

const (
	FormatPDF  = "PDF"
	FormatDOCX = "DOCX"
	FormatCSV  = "CSV"
	FormatXLSX = "XLSX"
)

type Report struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	GeneratedAt  time.Time `json:"generated_at"`
	ReportType   string    `json:"report_type"`
	ReportPeriod string    `json:"report_period"`
	ReportFormat string    `json:"report_format"`
	ReportURL    string    `json:"report_url"`
	QuarterLabel string    `json:"quarter_label,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreateReportRequest struct {
	ReportType string `json:"report_type" binding:"required"`
	Period     string `json:"period" binding:"required"`
	Format     string `json:"format" binding:"required,oneof=PDF DOCX CSV XLSX"`
}

type DeleteReportRequest struct {
	ReportURL string `json:"report_url" binding:"required"`
}
