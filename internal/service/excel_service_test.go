package service

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		for j, value := range row {
			name, err := excelize.ColumnNumberToName(j + 1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", name+strconv.Itoa(i+1), value))
		}
	}

	path := filepath.Join(t.TempDir(), "tracking.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseTrackingFileWithHeader(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Reference No", "Customer Name", "POL", "POD"},
		{"LOG-1", "Acme Ltd", "Mersin", "Magusa"},
		{"LOG-2", "Levant Trade", "Istanbul", "Girne"},
	})

	svc := NewExcelService()
	rows, err := svc.ParseTrackingFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "LOG-1", rows[0]["Reference No"])
	assert.Equal(t, "Acme Ltd", rows[0]["Customer Name"])
	assert.Equal(t, "Girne", rows[1]["POD"])
}

func TestParseTrackingFileWithoutHeaderFallsBackToColumnA(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Acme Ltd", "irrelevant"},
		{"Levant Trade", ""},
	})

	svc := NewExcelService()
	rows, err := svc.ParseTrackingFile(path)
	require.NoError(t, err)

	// No identifier header: every row, including the first, becomes a name.
	require.Len(t, rows, 2)
	assert.Equal(t, "Acme Ltd", rows[0]["name"])
	assert.Equal(t, "Levant Trade", rows[1]["name"])
}

func TestParseTrackingFileUnreadable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.xlsx")
	require.NoError(t, os.WriteFile(path, []byte("not a workbook"), 0o644))

	svc := NewExcelService()
	_, err := svc.ParseTrackingFile(path)
	assert.Error(t, err)
}

func TestGenerateTrackingTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")

	svc := NewExcelService()
	require.NoError(t, svc.GenerateTrackingTemplate(path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	require.Contains(t, sheets, "Tracking")

	header, err := f.GetRows("Tracking")
	require.NoError(t, err)
	require.NotEmpty(t, header)
	assert.Equal(t, "Reference No", header[0][0])
}
