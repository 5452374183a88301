package document

import (
	"context"
	"encoding/csv"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translateCSV(t *testing.T, content string, mapping map[string]string) ([][]string, *stubProvider) {
	t.Helper()
	tmp := t.TempDir()
	input := filepath.Join(tmp, "in.csv")
	output := filepath.Join(tmp, "out.csv")
	writeFile(t, input, content)

	svc, provider := newStubService(t, mapping)
	require.NoError(t, CSVAdapter{}.Translate(context.Background(), input, output, svc))

	reader := csv.NewReader(strings.NewReader(readFile(t, output)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)
	return records, provider
}

func TestCSVAdapter_TranslatesHeadersAndCells(t *testing.T) {
	records, _ := translateCSV(t,
		"ชื่อ,Age\nสมชาย,30\nสมหญิง,25\n",
		map[string]string{"ชื่อ": "Name", "สมชาย": "Somchai", "สมหญิง": "Somying"})

	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "Age"}, records[0])
	assert.Equal(t, []string{"Somchai", "30"}, records[1])
	assert.Equal(t, []string{"Somying", "25"}, records[2])
}

func TestCSVAdapter_HeaderAndCellShareCacheEntry(t *testing.T) {
	// The same Thai string appears as a header and as a data cell; the
	// cache must serve the second occurrence.
	records, provider := translateCSV(t,
		"สถานะ,Code\nสถานะ,A1\n",
		map[string]string{"สถานะ": "Status"})

	assert.Equal(t, 1, provider.callCount())
	assert.Equal(t, "Status", records[0][0])
	assert.Equal(t, "Status", records[1][0])
}

func TestCSVAdapter_RepeatedCellsOneCall(t *testing.T) {
	var rows []string
	rows = append(rows, "Header")
	for i := 0; i < 20; i++ {
		rows = append(rows, "สวัสดี")
	}
	records, provider := translateCSV(t, strings.Join(rows, "\n")+"\n",
		map[string]string{"สวัสดี": "Hello"})

	assert.Equal(t, 1, provider.callCount())
	for _, record := range records[1:] {
		assert.Equal(t, "Hello", record[0])
	}
}

func TestCSVAdapter_EmptyCellsPreserved(t *testing.T) {
	records, provider := translateCSV(t, "A,B\n,สวัสดี\n", map[string]string{"สวัสดี": "Hello"})

	assert.Equal(t, 1, provider.callCount())
	assert.Equal(t, []string{"", "Hello"}, records[1])
}

func TestCSVAdapter_NonSourceTextPassesThrough(t *testing.T) {
	records, provider := translateCSV(t, "Name,Age\nAlice,30\n", nil)

	assert.Equal(t, 0, provider.callCount())
	assert.Equal(t, []string{"Name", "Age"}, records[0])
	assert.Equal(t, []string{"Alice", "30"}, records[1])
}
