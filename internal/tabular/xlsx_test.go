package tabular

import (
	"path/filepath"
	"testing"

	"chartspec/internal/ir"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, cells map[string]any) string {
	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", map[string]any{
		"A1": "category", "B1": "series", "C1": "value",
		"A2": "A", "B2": "Windows", "C2": 3,
		"A3": "B", "B3": "Mac", "C3": 2.5,
		"A5": "C", "C5": 7,
	})

	rows, err := LoadXLSX(path, "")
	require.NoError(t, err)
	assert.Equal(t, []ir.Row{
		{"category": "A", "series": "Windows", "value": int64(3)},
		{"category": "B", "series": "Mac", "value": 2.5},
		{"category": "C", "value": int64(7)},
	}, rows)
}

func TestLoadXLSX_NamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Usage", map[string]any{
		"A1": "os", "B1": "users",
		"A2": "Linux", "B2": 10,
	})

	rows, err := LoadXLSX(path, "Usage")
	require.NoError(t, err)
	assert.Equal(t, []ir.Row{{"os": "Linux", "users": int64(10)}}, rows)

	_, err = LoadXLSX(path, "Missing")
	assert.Error(t, err)
}

func TestFromCells(t *testing.T) {
	_, err := FromCells([][]string{{"", " "}})
	assert.ErrorIs(t, err, ErrNoHeader)

	rows, err := FromCells([][]string{
		{"flag", "", "name"},
		{"TRUE", "dropped", "x", "extra"},
	})
	require.NoError(t, err)
	assert.Equal(t, []ir.Row{{"flag": true, "name": "x"}}, rows)
}
