package export

import (
	"bytes"
	"fmt"

	"github.com/tealeg/xlsx/v3"

	"github.com/cognicore/seating/pkg/seating/assign"
)

// SheetName is the worksheet that holds the assignment rows
const SheetName = "Assignments"

// XLSX renders tables into an in-memory Excel workbook with the same
// columns as the CSV export.
func XLSX(tables []assign.Table) (*bytes.Buffer, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range []string{"Table", "Name", "Description"} {
		cell := headerRow.AddCell()
		cell.Value = h
	}

	for _, table := range tables {
		for _, person := range table.Members {
			row := sheet.AddRow()

			cell := row.AddCell()
			cell.SetInt(table.ID)

			cell = row.AddCell()
			cell.Value = person.Name

			cell = row.AddCell()
			cell.Value = person.Description
		}
	}

	buf := new(bytes.Buffer)
	if err := file.Write(buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
