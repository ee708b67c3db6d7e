package services

import (
	"bytes"
	"fmt"

	docx "github.com/fumiama/go-docx"
)

// RenderDOCX writes the structured report as a Word document mirroring the
// PDF layout: title, period lines, line items, subtotals, totals.
func RenderDOCX(data *ReportData) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("TaxPal — " + data.ReportType).Size("32").Bold()
	doc.AddParagraph().AddText("Period: " + data.Period)
	doc.AddParagraph().AddText("Generated on: " + data.GeneratedOn)
	doc.AddParagraph()

	if IsTaxReport(data.ReportType) {
		writeTaxBody(doc, data)
	} else {
		writeTransactionBody(doc, data)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTransactionBody(doc *docx.Docx, data *ReportData) {
	if len(data.Income) > 0 {
		writeTransactionSection(doc, "Income", data.Income, data.IncomeCategoryTotals, data.TotalIncome, data.CurrencySymbol)
	}
	if len(data.Expense) > 0 {
		writeTransactionSection(doc, "Expense", data.Expense, data.ExpenseCategoryTotals, data.TotalExpense, data.CurrencySymbol)
	}
	if data.NetProfitLoss != nil {
		doc.AddParagraph().AddText("Net Profit/Loss: " + data.CurrencySymbol + data.NetProfitLoss.Formatted).Size("24").Bold()
	}
}

func writeTransactionSection(doc *docx.Docx, title string, transactions []ReportTransaction, totals []CategoryTotal, total *AmountValue, symbol string) {
	doc.AddParagraph().AddText(title).Size("26").Bold()

	for _, tx := range transactions {
		line := fmt.Sprintf("%s  |  %s  |  %s  |  %s%s", tx.Description, tx.Category, tx.Date, symbol, tx.AmountFormatted)
		doc.AddParagraph().AddText(line)
	}

	for _, ct := range totals {
		doc.AddParagraph().AddText(fmt.Sprintf("%s Total: %s%s", ct.Category, symbol, ct.Formatted)).Bold()
	}
	if total != nil {
		doc.AddParagraph().AddText(fmt.Sprintf("Total %s: %s%s", title, symbol, total.Formatted)).Bold()
	}
	doc.AddParagraph()
}

func writeTaxBody(doc *docx.Docx, data *ReportData) {
	for _, tax := range data.TaxEstimations {
		line := fmt.Sprintf("%s  |  %s  |  due %s  |  %s%s", tax.Title, tax.Status, tax.DueDate, tax.CurrencySymbol, tax.EstimatedTaxFormatted)
		doc.AddParagraph().AddText(line)
	}

	doc.AddParagraph()
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
		doc.AddParagraph().AddText(fmt.Sprintf("%s: %s%s", row.label, data.CurrencySymbol, row.value.Formatted)).Bold()
	}
}
