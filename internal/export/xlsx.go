// ABOUTME: Spreadsheet export of metric tables.
// ABOUTME: One sheet with the header row and typed numeric cells.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/harperreed/move/internal/models"
)

// SheetName is the worksheet that holds the exported table.
const SheetName = "Dati"

// WriteXLSX writes t as a single-sheet workbook.
func WriteXLSX(w io.Writer, t *models.Table) error {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", SheetName)

	for ci, name := range t.Names() {
		f.SetCellValue(SheetName, excelize.ToAlphaString(ci)+"1", name)
	}
	for i := 0; i < t.Len(); i++ {
		row := strconv.Itoa(i + 2)
		f.SetCellValue(SheetName, "A"+row, t.FormatDate(i))
		for ci, c := range t.Columns {
			axis := excelize.ToAlphaString(ci+1) + row
			if c.Kind == models.KindCount {
				f.SetCellValue(SheetName, axis, int64(c.Values[i]))
			} else {
				f.SetCellValue(SheetName, axis, c.Values[i])
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
