package services

import (
	"bytes"

	"github.com/go-pdf/fpdf"
)

// RenderPDF draws the structured report on A4 pages. The layout follows
// the app's report templates: title block, period line, per-section
// tables with category subtotals, then the closing totals.
func RenderPDF(data *ReportData) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, tr("TaxPal — "+data.ReportType), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, tr("Period: "+data.Period), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, tr("Generated on: "+data.GeneratedOn), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	if IsTaxReport(data.ReportType) {
		renderTaxSection(pdf, tr, data)
	} else {
		if len(data.Income) > 0 {
			renderTransactionSection(pdf, tr, "Income", data.Income, data.IncomeCategoryTotals, data.TotalIncome, data.CurrencySymbol)
		}
		if len(data.Expense) > 0 {
			renderTransactionSection(pdf, tr, "Expense", data.Expense, data.ExpenseCategoryTotals, data.TotalExpense, data.CurrencySymbol)
		}
		if data.NetProfitLoss != nil {
			pdf.Ln(3)
			pdf.SetFont("Helvetica", "B", 12)
			pdf.CellFormat(0, 8, tr("Net Profit/Loss: "+data.CurrencySymbol+data.NetProfitLoss.Formatted), "T", 1, "R", false, 0, "")
		}
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderTransactionSection(pdf *fpdf.Fpdf, tr func(string) string, title string, transactions []ReportTransaction, totals []CategoryTotal, total *AmountValue, symbol string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr(title), "", 1, "L", false, 0, "")

	widths := []float64{70, 40, 35, 45}
	headers := []string{"Description", "Category", "Date", "Amount"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(51, 51, 51)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, tx := range transactions {
		pdf.CellFormat(widths[0], 6, tr(tx.Description), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(tx.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tx.Date, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(symbol+tx.AmountFormatted), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Helvetica", "B", 10)
	for _, ct := range totals {
		pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, tr(ct.Category+" Total"), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(symbol+ct.Formatted), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if total != nil {
		pdf.CellFormat(widths[0]+widths[1]+widths[2], 7, tr("Total "+title), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 7, tr(symbol+total.Formatted), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(5)
}

func renderTaxSection(pdf *fpdf.Fpdf, tr func(string) string, data *ReportData) {
	widths := []float64{55, 30, 35, 70}
	headers := []string{"Title", "Status", "Due Date", "Estimated Tax"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(51, 51, 51)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, tax := range data.TaxEstimations {
		pdf.CellFormat(widths[0], 6, tr(tax.Title), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tax.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, tax.DueDate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(tax.CurrencySymbol+tax.EstimatedTaxFormatted), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 10)
	totals := []struct {
		label string
		value AmountValue
	}{
		{"Pending Total", data.PendingTax},
		{"Completed Total", data.CompletedTax},
		{"Overdue Total", data.OverdueTax},
		{"Total Due Tax", data.TotalDueTax},
		{"Overall Total Tax", data.TotalTax},
	}
	for _, row := range totals {
		pdf.CellFormat(widths[0]+widths[1]+widths[2], 6, tr(row.label), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, tr(data.CurrencySymbol+row.value.Formatted), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
}
