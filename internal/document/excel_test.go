package document

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelAdapter_WorkbookWideDedup(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "in.xlsx")
	output := filepath.Join(tmp, "out.xlsx")

	src := excelize.NewFile()
	_, err := src.NewSheet("แผ่นสอง")
	require.NoError(t, err)

	// The same Thai value in many cells across both sheets.
	for row := 1; row <= 25; row++ {
		cell, err := excelize.CoordinatesToCellName(1, row)
		require.NoError(t, err)
		require.NoError(t, src.SetCellValue("Sheet1", cell, "สวัสดี"))
		require.NoError(t, src.SetCellValue("แผ่นสอง", cell, "สวัสดี"))
	}
	require.NoError(t, src.SetCellValue("Sheet1", "B1", 42))
	require.NoError(t, src.SetCellValue("Sheet1", "B2", "plain"))
	require.NoError(t, src.SaveAs(input))
	require.NoError(t, src.Close())

	svc, provider := newStubService(t, map[string]string{
		"สวัสดี":  "Hello",
		"แผ่นสอง": "Sheet Two",
	})
	require.NoError(t, ExcelAdapter{}.Translate(context.Background(), input, output, svc))

	// 50 occurrences of the cell value plus the Thai sheet name: exactly
	// two provider calls.
	assert.Equal(t, 2, provider.callCount())

	got, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer got.Close()

	sheets := got.GetSheetList()
	assert.Equal(t, []string{"Sheet1", "Sheet Two"}, sheets)

	for row := 1; row <= 25; row++ {
		cell, err := excelize.CoordinatesToCellName(1, row)
		require.NoError(t, err)
		for _, sheet := range sheets {
			value, err := got.GetCellValue(sheet, cell)
			require.NoError(t, err)
			assert.Equal(t, "Hello", value)
		}
	}

	// Numeric and non-source cells pass through unchanged.
	number, err := got.GetCellValue("Sheet1", "B1")
	require.NoError(t, err)
	assert.Equal(t, "42", number)
	plain, err := got.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "plain", plain)
}

func TestExcelAdapter_UnreadableWorkbookFails(t *testing.T) {
	tmp := t.TempDir()
	input := filepath.Join(tmp, "in.xlsx")
	writeFile(t, input, "not a workbook")

	svc, _ := newStubService(t, nil)
	err := ExcelAdapter{}.Translate(context.Background(), input, filepath.Join(tmp, "out.xlsx"), svc)
	require.Error(t, err)
}
