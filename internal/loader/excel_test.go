package loader

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()
	wb := excelize.NewFile()
	defer wb.Close()

	if sheet != "Sheet1" {
		require.NoError(t, wb.SetSheetName("Sheet1", sheet))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "grants.xlsx")
	require.NoError(t, wb.SaveAs(path))
	return path
}

func TestExcelLoaderLoad(t *testing.T) {
	path := writeTempWorkbook(t, "Tilskudd", [][]interface{}{
		{"year", "orgnr", "areal_tilskudd"},
		{2001, 1, 5000},
		{2002, 1, 6000},
	})

	f, err := NewExcelLoader(path, "Tilskudd").Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"year", "orgnr", "areal_tilskudd"}, f.Columns())
	require.Equal(t, 2, f.Len())
	assert.Equal(t, 2001.0, f.Value(0, "year"))
	assert.Equal(t, 6000.0, f.Value(1, "areal_tilskudd"))
}

func TestExcelLoaderDefaultSheet(t *testing.T) {
	path := writeTempWorkbook(t, "Sheet1", [][]interface{}{
		{"year", "orgnr"},
		{2001, 1},
	})

	f, err := NewExcelLoader(path, "").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())
}

func TestExcelLoaderShortRowsPadToNaN(t *testing.T) {
	path := writeTempWorkbook(t, "Sheet1", [][]interface{}{
		{"year", "orgnr", "husdyr_tilskudd"},
		{2001, 1},
	})

	f, err := NewExcelLoader(path, "").Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, f.Len())
	assert.True(t, math.IsNaN(f.Value(0, "husdyr_tilskudd")))
}

func TestExcelLoaderRejectsRowWiderThanHeader(t *testing.T) {
	path := writeTempWorkbook(t, "Sheet1", [][]interface{}{
		{"year", "orgnr"},
		{2001, 1, 5000},
	})

	_, err := NewExcelLoader(path, "").Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row has 3 cells")
}

func TestExcelLoaderMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.xlsx")

	_, err := NewExcelLoader(missing, "").Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestExcelLoaderMissingSheet(t *testing.T) {
	path := writeTempWorkbook(t, "Sheet1", [][]interface{}{
		{"year"},
	})

	_, err := NewExcelLoader(path, "NoSuchSheet").Load(context.Background())
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
}
