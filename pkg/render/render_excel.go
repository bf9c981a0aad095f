package render

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/yumyai/planktable/pkg/model"
)

// Excel sheet names cap at 31 characters.
const maxSheetName = 31

func sheetName(name string) string {
	if len(name) > maxSheetName {
		return name[:maxSheetName]
	}
	return name
}

func writeTable(f *excelize.File, table *model.Table) error {

	sheet := sheetName(table.Name)

	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	rowNum := 1

	writeRow := func(cells []string) error {
		ref, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		if err := f.SetSheetRow(sheet, ref, &values); err != nil {
			return err
		}
		rowNum++
		return nil
	}

	// Stacked header rows first, then data.
	for _, h := range table.Header {
		if err := writeRow(h); err != nil {
			return fmt.Errorf("write header of %s: %w", sheet, err)
		}
	}
	for _, r := range table.Rows {
		if err := writeRow(r); err != nil {
			return fmt.Errorf("write row of %s: %w", sheet, err)
		}
	}

	return nil
}

// WriteWorkbook persists the named views as one xlsx workbook, one sheet
// per view in the given order.
func WriteWorkbook(path string, tables []*model.Table) error {

	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, table := range tables {
		if err := writeTable(f, table); err != nil {
			return err
		}
	}

	// Drop the default sheet so the workbook only holds the views.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}

	return nil
}
