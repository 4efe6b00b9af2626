package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/ldg/constants"
	"github.com/joseph-ayodele/ldg/internal/entity"
)

// SheetName is the worksheet XLSX writes mismatches to.
const SheetName = "Mismatches"

// XLSX returns a workbook (as bytes) with one row per mismatch.
func XLSX(mismatches []entity.Mismatch) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}
	activeIndex, _ := f.GetSheetIndex(SheetName)
	f.SetActiveSheet(activeIndex)

	for i, h := range constants.ReportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(SheetName, cell, h)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(SheetName, 1, 1, style)
	}

	for r, m := range mismatches {
		row := r + 2
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(SheetName, cell, v)
		}
		write(1, m.FileName)
		write(2, m.Page)
		write(3, m.FieldName)
		write(4, m.ExpectedText)
		write(5, m.ValidationError)
		write(6, m.OCROutputSnippet)
	}

	_ = f.SetColWidth(SheetName, "A", "A", 28) // file
	_ = f.SetColWidth(SheetName, "B", "B", 8)  // page
	_ = f.SetColWidth(SheetName, "C", "C", 22) // field
	_ = f.SetColWidth(SheetName, "D", "D", 32) // expected
	_ = f.SetColWidth(SheetName, "E", "E", 40) // error
	_ = f.SetColWidth(SheetName, "F", "F", 80) // snippet

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}
