package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/taxpal/taxpal-api/models"
	"github.com/taxpal/taxpal-api/utils"
)

var quarterLabels = [4]string{"Q1(Jan-Mar)", "Q2(Apr-Jun)", "Q3(Jul-Sep)", "Q4(Oct-Dec)"}

// PeriodRange is a resolved report period. Start and End are inclusive
// calendar days.
type PeriodRange struct {
	Start        time.Time
	End          time.Time
	QuarterLabel string
}

// GetPeriodRange maps a named period to a concrete date range. Quarter
// boundaries use quarter = floor(month/3).
func GetPeriodRange(period string, now time.Time) (PeriodRange, error) {
	year, month := now.Year(), int(now.Month())

	switch period {
	case "Current Month":
		return PeriodRange{
			Start: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC),
		}, nil
	case "Last Month":
		return PeriodRange{
			Start: time.Date(year, time.Month(month-1), 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.Month(month), 0, 0, 0, 0, 0, time.UTC),
		}, nil
	case "Current Quarter":
		quarter := (month - 1) / 3
		return quarterRange(year, quarter), nil
	case "Last Quarter":
		quarter := (month-1)/3 - 1
		if quarter < 0 {
			return quarterRange(year-1, 3), nil
		}
		return quarterRange(year, quarter), nil
	case "Current Year":
		return PeriodRange{
			Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		}, nil
	case "Last Year":
		return PeriodRange{
			Start: time.Date(year-1, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year-1, time.December, 31, 0, 0, 0, 0, time.UTC),
		}, nil
	}

	// Explicit quarter label, resolved against the current year.
	for i, label := range quarterLabels {
		if period == label {
			return quarterRange(year, i), nil
		}
	}

	return PeriodRange{}, fmt.Errorf("invalid period: %s", period)
}

func quarterRange(year, quarter int) PeriodRange {
	return PeriodRange{
		Start:        time.Date(year, time.Month(quarter*3+1), 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(year, time.Month(quarter*3+4), 0, 0, 0, 0, 0, time.UTC),
		QuarterLabel: quarterLabels[quarter],
	}
}

// Label combines the period name with the quarter label when present.
func (pr PeriodRange) Label(period string) string {
	if pr.QuarterLabel != "" && period != pr.QuarterLabel {
		return period + " - " + pr.QuarterLabel
	}
	return period
}

// displayNumber rounds an amount to two decimals for export cells.
func displayNumber(v float64) float64 {
	return math.Round(v*100) / 100
}

// ReportTransaction is a transaction prepared for rendering.
type ReportTransaction struct {
	Description     string
	Category        string
	Type            string
	Date            string
	Amount          float64
	AmountFormatted string
}

// ReportTax is a tax estimation prepared for rendering.
type ReportTax struct {
	Title                 string
	Description           string
	Status                string
	DueDate               string
	CurrencySymbol        string
	EstimatedTax          float64
	EstimatedTaxFormatted string
}

// CategoryTotal is a per-category subtotal in first-encounter order.
type CategoryTotal struct {
	Category  string
	Amount    float64
	Formatted string
}

// AmountValue carries a numeric total alongside its locale-formatted form.
type AmountValue struct {
	Raw       float64
	Formatted string
}

// ReportData is the structured payload fed to the PDF/DOCX renderers and
// flattened into export rows for CSV/XLSX.
type ReportData struct {
	ReportType     string
	Period         string
	GeneratedOn    string
	QuarterLabel   string
	Country        string
	CurrencySymbol string

	Income                []ReportTransaction
	Expense               []ReportTransaction
	IncomeCategoryTotals  []CategoryTotal
	ExpenseCategoryTotals []CategoryTotal
	TotalIncome           *AmountValue
	TotalExpense          *AmountValue
	NetProfitLoss         *AmountValue

	TaxEstimations []ReportTax
	PendingTax     AmountValue
	CompletedTax   AmountValue
	OverdueTax     AmountValue
	TotalDueTax    AmountValue
	TotalTax       AmountValue
}

// IsTaxReport reports whether the report draws from tax estimations rather
// than transactions.
func IsTaxReport(reportType string) bool {
	return reportType == models.ReportQuarterlyTax || reportType == models.ReportAnnualTax
}

// ValidReportType reports whether the report type is one the pipeline
// knows how to build.
func ValidReportType(reportType string) bool {
	switch reportType {
	case models.ReportIncomeStatement, models.ReportExpenseBreakdown,
		models.ReportTransactionDetail, models.ReportQuarterlyTax, models.ReportAnnualTax:
		return true
	}
	return false
}

// AggregateTransactions groups transactions by category into subtotals and
// a grand total, formatting every amount for the user's country locale.
func AggregateTransactions(transactions []models.Transaction, country string) ([]ReportTransaction, []CategoryTotal, AmountValue) {
	formatted := make([]ReportTransaction, 0, len(transactions))
	var order []string
	sums := map[string]float64{}
	var grand float64

	for _, tx := range transactions {
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount
		grand += tx.Amount

		formatted = append(formatted, ReportTransaction{
			Description:     tx.Description,
			Category:        tx.Category,
			Type:            tx.Type,
			Date:            tx.Date,
			Amount:          tx.Amount,
			AmountFormatted: utils.FormatAmount(tx.Amount, country),
		})
	}

	totals := make([]CategoryTotal, 0, len(order))
	for _, cat := range order {
		totals = append(totals, CategoryTotal{
			Category:  cat,
			Amount:    sums[cat],
			Formatted: utils.FormatAmount(sums[cat], country),
		})
	}

	return formatted, totals, AmountValue{Raw: grand, Formatted: utils.FormatAmount(grand, country)}
}

// MajorityCurrencySymbol returns the most frequent currency symbol in the
// estimation set. Ties break toward the first symbol encountered with the
// max count; an empty set or empty symbols default to the rupee sign.
func MajorityCurrencySymbol(estimations []models.TaxEstimation) string {
	counts := map[string]int{}
	var order []string
	for _, t := range estimations {
		sym := t.CurrencySymbol
		if sym == "" {
			sym = "₹"
		}
		if _, seen := counts[sym]; !seen {
			order = append(order, sym)
		}
		counts[sym]++
	}

	majority := "₹"
	best := 0
	for _, sym := range order {
		if counts[sym] > best {
			best = counts[sym]
			majority = sym
		}
	}
	return majority
}

// AggregateTaxes computes per-status sums plus combined due/overall totals,
// formatted with the majority currency symbol's locale.
func AggregateTaxes(estimations []models.TaxEstimation, country string, data *ReportData) {
	majority := MajorityCurrencySymbol(estimations)

	var pending, completed, overdue float64
	formatted := make([]ReportTax, 0, len(estimations))
	for _, t := range estimations {
		switch t.Status {
		case models.TaxStatusPending:
			pending += t.EstimatedTax
		case models.TaxStatusCompleted:
			completed += t.EstimatedTax
		case models.TaxStatusOverdue:
			overdue += t.EstimatedTax
		}
		formatted = append(formatted, ReportTax{
			Title:                 t.Title,
			Description:           t.Description,
			Status:                t.Status,
			DueDate:               t.DueDate,
			CurrencySymbol:        t.CurrencySymbol,
			EstimatedTax:          t.EstimatedTax,
			EstimatedTaxFormatted: utils.FormatAmount(t.EstimatedTax, country),
		})
	}

	data.TaxEstimations = formatted
	data.CurrencySymbol = majority
	data.PendingTax = AmountValue{pending, utils.FormatAmountWithSymbol(pending, majority)}
	data.CompletedTax = AmountValue{completed, utils.FormatAmountWithSymbol(completed, majority)}
	data.OverdueTax = AmountValue{overdue, utils.FormatAmountWithSymbol(overdue, majority)}
	data.TotalDueTax = AmountValue{pending + overdue, utils.FormatAmountWithSymbol(pending+overdue, majority)}
	data.TotalTax = AmountValue{pending + completed + overdue, utils.FormatAmountWithSymbol(pending+completed+overdue, majority)}
}

// ExportTable is the format-agnostic tabular shape fed to the CSV and XLSX
// renderers. Cells are strings or float64s; numeric cells stay numeric so
// the XLSX renderer can apply number formats.
type ExportTable struct {
	Headers []string
	Rows    [][]interface{}
}

func blankRow(width int) []interface{} {
	row := make([]interface{}, width)
	for i := range row {
		row[i] = ""
	}
	return row
}

// BuildExportTable flattens structured report data into rows: data rows,
// one blank separator, per-category subtotal rows, then the grand-total
// (or net profit/loss) row.
func BuildExportTable(reportType string, data *ReportData) *ExportTable {
	switch reportType {
	case models.ReportIncomeStatement:
		return transactionTable(data.Income, data.IncomeCategoryTotals,
			"Overall Total Income", data.TotalIncome, data.CurrencySymbol)

	case models.ReportExpenseBreakdown:
		return transactionTable(data.Expense, data.ExpenseCategoryTotals,
			"Overall Total Expense", data.TotalExpense, data.CurrencySymbol)

	case models.ReportTransactionDetail:
		return detailTable(data)

	case models.ReportQuarterlyTax, models.ReportAnnualTax:
		return taxTable(data)
	}
	return &ExportTable{}
}

func transactionTable(transactions []ReportTransaction, totals []CategoryTotal, totalLabel string, total *AmountValue, symbol string) *ExportTable {
	t := &ExportTable{
		Headers: []string{"description", "category", "date", "currencySymbol", "amount"},
	}

	for _, tx := range transactions {
		t.Rows = append(t.Rows, []interface{}{tx.Description, tx.Category, tx.Date, symbol, displayNumber(tx.Amount)})
	}

	t.Rows = append(t.Rows, blankRow(len(t.Headers)))

	for _, ct := range totals {
		t.Rows = append(t.Rows, []interface{}{"", "", ct.Category + " Total", symbol, displayNumber(ct.Amount)})
	}

	var grand float64
	if total != nil {
		grand = total.Raw
	}
	t.Rows = append(t.Rows, []interface{}{"", "", totalLabel, symbol, displayNumber(grand)})
	return t
}

func detailTable(data *ReportData) *ExportTable {
	t := &ExportTable{
		Headers: []string{"description", "category", "type", "date", "currencySymbol", "amount"},
	}

	combined := append(append([]ReportTransaction{}, data.Income...), data.Expense...)
	var order []string
	sums := map[string]float64{}
	for _, tx := range combined {
		key := tx.Type + "-" + tx.Category
		if _, seen := sums[key]; !seen {
			order = append(order, key)
		}
		sums[key] += displayNumber(tx.Amount)
		t.Rows = append(t.Rows, []interface{}{tx.Description, tx.Category, tx.Type, tx.Date, data.CurrencySymbol, displayNumber(tx.Amount)})
	}

	t.Rows = append(t.Rows, blankRow(len(t.Headers)))

	for _, key := range order {
		t.Rows = append(t.Rows, []interface{}{"", "", "", key + " Total", data.CurrencySymbol, displayNumber(sums[key])})
	}

	var net float64
	if data.TotalIncome != nil {
		net += data.TotalIncome.Raw
	}
	if data.TotalExpense != nil {
		net -= data.TotalExpense.Raw
	}
	t.Rows = append(t.Rows, []interface{}{"", "", "", "Net Profit/Loss", data.CurrencySymbol, displayNumber(net)})
	return t
}

func taxTable(data *ReportData) *ExportTable {
	t := &ExportTable{
		Headers: []string{"title", "description", "status", "dueDate", "currencySymbol", "estimatedTax"},
	}

	for _, tax := range data.TaxEstimations {
		t.Rows = append(t.Rows, []interface{}{tax.Title, tax.Description, tax.Status, tax.DueDate, tax.CurrencySymbol, displayNumber(tax.EstimatedTax)})
	}

	t.Rows = append(t.Rows, blankRow(len(t.Headers)))

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
		t.Rows = append(t.Rows, []interface{}{"", "", "", row.label, data.CurrencySymbol, displayNumber(row.value.Raw)})
	}
	return t
}

// ReportService assembles report data from the persistence layer.
type ReportService struct {
	db *sql.DB
}

func NewReportService(db *sql.DB) *ReportService {
	return &ReportService{db: db}
}

// SelectTransactions filters a user's transactions by the period's date
// range and, for statement/breakdown types, by type.
func (s *ReportService) SelectTransactions(ctx context.Context, userID, reportType string, pr PeriodRange) ([]models.Transaction, error) {
	query := `
		SELECT id, description, type, category, date, amount, COALESCE(notes, '')
		FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
	`
	args := []interface{}{userID, pr.Start.Format("2006-01-02"), pr.End.Format("2006-01-02")}

	switch reportType {
	case models.ReportIncomeStatement:
		query += ` AND type = 'INCOME'`
	case models.ReportExpenseBreakdown:
		query += ` AND type = 'EXPENSE'`
	}
	query += ` ORDER BY date`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.Description, &tx.Type, &tx.Category, &tx.Date, &tx.Amount, &tx.Notes); err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	return transactions, rows.Err()
}

// SelectTaxEstimations filters a user's estimations by due-date range,
// newest due date first.
func (s *ReportService) SelectTaxEstimations(ctx context.Context, userID string, pr PeriodRange) ([]models.TaxEstimation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, status, due_date, COALESCE(currency_symbol, ''), estimated_tax
		FROM tax_estimations
		WHERE user_id = $1 AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date DESC
	`, userID, pr.Start.Format("2006-01-02"), pr.End.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var estimations []models.TaxEstimation
	for rows.Next() {
		var t models.TaxEstimation
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.CurrencySymbol, &t.EstimatedTax); err != nil {
			return nil, err
		}
		estimations = append(estimations, t)
	}
	return estimations, rows.Err()
}

// BuildReportData assembles the structured report payload for a
// transaction-backed report type.
func BuildReportData(reportType, period string, pr PeriodRange, country string, transactions []models.Transaction, now time.Time) *ReportData {
	data := &ReportData{
		ReportType:     reportType,
		Period:         pr.Label(period),
		GeneratedOn:    now.Format("1/2/2006"),
		QuarterLabel:   pr.QuarterLabel,
		Country:        country,
		CurrencySymbol: utils.CurrencySymbolForCountry(country),
	}

	var income, expense []models.Transaction
	for _, tx := range transactions {
		if tx.Type == models.TypeIncome {
			income = append(income, tx)
		} else {
			expense = append(expense, tx)
		}
	}

	if len(income) > 0 {
		formatted, totals, total := AggregateTransactions(income, country)
		data.Income = formatted
		data.IncomeCategoryTotals = totals
		data.TotalIncome = &total
	}
	if len(expense) > 0 {
		formatted, totals, total := AggregateTransactions(expense, country)
		data.Expense = formatted
		data.ExpenseCategoryTotals = totals
		data.TotalExpense = &total
	}

	// Net profit/loss only makes sense when both sides are present.
	if data.TotalIncome != nil && data.TotalExpense != nil {
		net := data.TotalIncome.Raw - data.TotalExpense.Raw
		data.NetProfitLoss = &AmountValue{Raw: net, Formatted: utils.FormatAmount(net, country)}
	}

	return data
}

// BuildTaxReportData assembles the structured report payload for a
// tax-backed report type.
func BuildTaxReportData(reportType, period string, pr PeriodRange, country string, estimations []models.TaxEstimation, now time.Time) *ReportData {
	data := &ReportData{
		ReportType:   reportType,
		Period:       pr.Label(period),
		GeneratedOn:  now.Format("1/2/2006"),
		QuarterLabel: pr.QuarterLabel,
		Country:      country,
	}
	AggregateTaxes(estimations, country, data)
	return data
}
