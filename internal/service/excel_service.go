package service

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"logistics-web/internal/models"
)

type ExcelService struct{}

func NewExcelService() *ExcelService {
	return &ExcelService{}
}

// Header cells that mark a row as a usable header. Matched after
// normalization, same policy as the row normalizer.
var identifierHeaders = map[string]bool{
	"reference_no":     true,
	"ref_no":           true,
	"shipment_ref":     true,
	"booking_no":       true,
	"container_no":     true,
	"container_number": true,
	"customer_name":    true,
	"notify_party":     true,
	"name":             true,
}

// ParseTrackingFile reads the first sheet of a tracking workbook into an
// ordered list of rows. If no header cell matches a known identifier the
// first column is used positionally as the name column. A file that cannot
// be read at all fails the whole run.
func (s *ExcelService) ParseTrackingFile(filePath string) ([]models.ImportRow, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// First sheet only
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("file contains no rows")
	}

	header := rows[0]
	if hasIdentifierHeader(header) {
		return rowsWithHeader(header, rows[1:]), nil
	}

	// Fallback: no recognizable header, take column A as the name.
	imported := make([]models.ImportRow, 0, len(rows))
	for _, row := range rows {
		imported = append(imported, models.ImportRow{"name": getCellValue(row, 0)})
	}
	return imported, nil
}

func hasIdentifierHeader(header []string) bool {
	for _, cell := range header {
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(cell)), " ", "_")
		if identifierHeaders[key] {
			return true
		}
	}
	return false
}

func rowsWithHeader(header []string, dataRows [][]string) []models.ImportRow {
	imported := make([]models.ImportRow, 0, len(dataRows))
	for _, row := range dataRows {
		imported = append(imported, rowToMap(header, row))
	}
	return imported
}

func rowToMap(header []string, row []string) models.ImportRow {
	m := make(models.ImportRow, len(header))
	for i, name := range header {
		if name == "" {
			continue
		}
		m[name] = getCellValue(row, i)
	}
	return m
}

// GenerateTrackingTemplate writes an empty workbook with the columns the
// importer understands.
func (s *ExcelService) GenerateTrackingTemplate(filePath string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Tracking"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}

	headers := []string{
		"Reference No", "Container No", "Customer Name", "POL", "POD",
		"Carrier Name", "Vessel Name", "Booking No", "ETA", "Waiting Days",
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%s1", getColumnName(i))
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", getColumnName(len(headers)-1)), headerStyle)
	f.SetColWidth(sheetName, "A", getColumnName(len(headers)-1), 18)

	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	return f.SaveAs(filePath)
}

func getCellValue(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}

func getColumnName(index int) string {
	name, _ := excelize.ColumnNumberToName(index + 1)
	return name
}
