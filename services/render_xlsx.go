package services

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const numberFormat = "#,##0.00"

// RenderXLSX writes an export table as a styled workbook: bold
// white-on-dark header row, comma-grouped two-decimal numeric cells, and
// column widths fitted to content.
func RenderXLSX(reportType string, table *ExportTable) ([]byte, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, fmt.Errorf("no data available for XLSX export")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := reportType
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"333333"}},
	})
	if err != nil {
		return nil, err
	}

	numFmt := numberFormat
	numberStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, err
	}

	widths := make([]int, len(table.Headers))
	for col, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
		widths[col] = len(header)
	}

	for rowIdx, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
			if _, ok := value.(float64); ok {
				if err := f.SetCellStyle(sheet, cell, cell, numberStyle); err != nil {
					return nil, err
				}
			}
			if l := len(fmt.Sprint(value)); l > widths[col] {
				widths[col] = l
			}
		}
	}

	for col, width := range widths {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if width < 10 {
			width = 10
		}
		if err := f.SetColWidth(sheet, name, name, float64(width+4)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
