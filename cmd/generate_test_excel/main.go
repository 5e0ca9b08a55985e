package main

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Generates a sample ShipsGo-style tracking sheet for manual import testing.
func main() {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Tracking"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		fmt.Printf("Error creating sheet: %v\n", err)
		return
	}

	headers := []string{
		"Reference No", "Container No", "Customer Name", "POL", "POD",
		"Carrier Name", "Vessel Name", "Booking No", "ETA", "Waiting Days",
	}

	for i, header := range headers {
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, fmt.Sprintf("%s1", name), header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	last, _ := excelize.ColumnNumberToName(len(headers))
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", last), headerStyle)

	testData := [][]interface{}{
		{"LOG-2025-0001", "MSKU1234567", "Acme Ltd", "Mersin", "Magusa", "Maersk", "Maersk Elba", "BK-1001", "2025-09-15", 0},
		{"LOG-2025-0002", "MSCU7654321", "Akdeniz Gida", "Istanbul", "Girne", "MSC", "MSC Aurora", "BK-1002", "2025-09-18", 0},
		{"LOG-2025-0003", "", "Unknown Customer", "Izmir", "Magusa", "Arkas", "Arkas Star", "BK-1003", "", 0},
		// Row without a reference: counts as an error in shipments mode
		{"", "HLCU1112223", "Orphan Row", "Mersin", "Girne", "", "", "", "", 0},
		// Long-waiting container for waiting mode
		{"LOG-2025-0004", "CMAU9998887", "Levant Trade", "Mersin", "Magusa", "CMA CGM", "CMA Pegasus", "BK-1004", "2025-08-20", 12},
	}

	for i, row := range testData {
		for j, value := range row {
			name, _ := excelize.ColumnNumberToName(j + 1)
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", name, i+2), value)
		}
	}

	f.SetColWidth(sheetName, "A", last, 18)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	outputPath := "test_tracking.xlsx"
	if err := f.SaveAs(outputPath); err != nil {
		fmt.Printf("Error saving file: %v\n", err)
		return
	}

	fmt.Printf("Sample tracking file written to %s (%d rows)\n", outputPath, len(testData))
}
