package render

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"github.com/yumyai/planktable/pkg/model"
)

func TestWriteWorkbook(t *testing.T) {

	tables := []*model.Table{
		{
			Name:   "totals",
			Header: [][]string{{"Phylum", "Year Total"}},
			Rows:   [][]string{{"Diatom", "1585"}, {"Dinoflagellate", "100"}},
		},
		{
			Name: "pretty",
			Header: [][]string{
				{"", "", "", "January"},
				{"Phylum", "Genus", "Species", "ST1S 01/15"},
			},
			Rows: [][]string{{"Dinoflagellate", "Ceratium", "Ceratium furca", "10"}},
		},
	}

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, WriteWorkbook(path, tables))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"totals", "pretty"}, f.GetSheetList())

	// Header lands on row 1, data follows.
	v, err := f.GetCellValue("totals", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Phylum", v)

	v, err = f.GetCellValue("totals", "B3")
	require.NoError(t, err)
	assert.Equal(t, "100", v)

	// Stacked header keeps both rows.
	v, err = f.GetCellValue("pretty", "D1")
	require.NoError(t, err)
	assert.Equal(t, "January", v)

	v, err = f.GetCellValue("pretty", "D2")
	require.NoError(t, err)
	assert.Equal(t, "ST1S 01/15", v)

	v, err = f.GetCellValue("pretty", "D3")
	require.NoError(t, err)
	assert.Equal(t, "10", v)
}

func TestWriteWorkbookNoTables(t *testing.T) {
	err := WriteWorkbook(filepath.Join(t.TempDir(), "empty.xlsx"), nil)
	assert.Error(t, err)
}

func TestSheetNameCap(t *testing.T) {
	long := "a_really_long_view_name_over_thirty_one_chars"
	assert.Len(t, sheetName(long), 31)
	assert.Equal(t, "totals", sheetName("totals"))
}
