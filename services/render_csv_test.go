package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCSV(t *testing.T) {
	table := &ExportTable{
		Headers: []string{"description", "category", "date", "currencySymbol", "amount"},
		Rows: [][]interface{}{
			{"Paycheck", "Salary", "2025-08-01", "₹", 500.0},
			{"", "", "Overall Total Income", "₹", 500.0},
		},
	}

	out, err := RenderCSV(table)
	require.NoError(t, err)

	// UTF-8 BOM so spreadsheet apps read the rupee sign correctly.
	require.True(t, len(out) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, out[:3])

	body := string(out[3:])
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "description,category,date,currencySymbol,amount", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[1], "Paycheck")
	assert.Contains(t, lines[1], "500.00")
	assert.Contains(t, lines[2], "Overall Total Income")
}

func TestRenderCSVEmpty(t *testing.T) {
	_, err := RenderCSV(&ExportTable{Headers: []string{"a"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no data available")

	_, err = RenderCSV(nil)
	require.Error(t, err)
}
