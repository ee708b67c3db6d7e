package services

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/taxpal/taxpal-api/models"
)

func TestRenderXLSX(t *testing.T) {
	table := &ExportTable{
		Headers: []string{"description", "category", "date", "currencySymbol", "amount"},
		Rows: [][]interface{}{
			{"Paycheck", "Salary", "2025-08-01", "₹", 500.0},
			{"", "", "Overall Total Income", "₹", 500.0},
		},
	}

	out, err := RenderXLSX(models.ReportIncomeStatement, table)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{models.ReportIncomeStatement}, f.GetSheetList())

	header, err := f.GetCellValue(models.ReportIncomeStatement, "A1")
	require.NoError(t, err)
	assert.Equal(t, "description", header)

	desc, err := f.GetCellValue(models.ReportIncomeStatement, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Paycheck", desc)

	amount, err := f.GetCellValue(models.ReportIncomeStatement, "E2")
	require.NoError(t, err)
	assert.Equal(t, "500.00", amount)
}

func TestRenderXLSXEmpty(t *testing.T) {
	_, err := RenderXLSX(models.ReportIncomeStatement, &ExportTable{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data available")
}
