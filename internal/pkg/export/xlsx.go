// Package export renders record tables as an xlsx workbook.
package export

import (
	"fmt"
	"io"

	"github.com/cmlabs-hris/teamdesk-backend-go/internal/domain/record"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is one table of the workbook. Columns fixes the header order; row
// values for other columns are not exported.
type Sheet struct {
	Name    string
	Columns []string
	Rows    []record.Row
}

// WriteWorkbook writes every sheet, in order, to w.
func WriteWorkbook(w io.Writer, sheets ...Sheet) error {
	if len(sheets) == 0 {
		return fmt.Errorf("export: no sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				return err
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return err
		}
		if err := writeSheet(f, sheet); err != nil {
			return fmt.Errorf("export sheet %s: %w", sheet.Name, err)
		}
	}
	f.SetActiveSheet(0)

	_, err := f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet Sheet) error {
	row, err := writeHeader(f, sheet.Name, 0, sheet.Columns)
	if err != nil {
		return err
	}
	if len(sheet.Rows) == 0 {
		return nil
	}

	firstDataRow := row + 1
	for _, r := range sheet.Rows {
		row++
		for col, name := range sheet.Columns {
			value, ok := r[name]
			if !ok || value == "" {
				continue
			}
			if err := writeColumn(f, sheet.Name, col+1, row, value); err != nil {
				return err
			}
		}
	}

	return applyDataCellStyle(f, sheet.Name, 1, firstDataRow, len(sheet.Columns), row)
}

func writeColumn(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		return err
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"DCE6F1"},
		},
	})
	if err != nil {
		return row, err
	}
	cellFirst, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	cellLast, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}

	if err = f.SetCellStyle(sheet, cellFirst, cellLast, style); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}

	if err = f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return row, err
	}

	for idx, value := range headers {
		if err = writeColumn(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Size: 11,
		},
	})
	if err != nil {
		return err
	}
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, style)
}
