package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/taxpal/taxpal-api/utils"
)

// RenderCSV writes an export table as CSV with a UTF-8 BOM so spreadsheet
// applications pick up the encoding. Numeric cells are written with
// locale grouping and two decimals.
func RenderCSV(table *ExportTable) ([]byte, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, fmt.Errorf("no data available for CSV export")
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(table.Headers); err != nil {
		return nil, err
	}

	for _, row := range table.Rows {
		record := make([]string, len(row))
		for i, cell := range row {
			switch v := cell.(type) {
			case float64:
				// en-IN grouping, matching the XLSX renderer's display.
				record[i] = utils.FormatAmountWithSymbol(v, "₹")
			case string:
				record[i] = v
			default:
				record[i] = fmt.Sprint(v)
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
