package archive

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeArchive(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	file := excelize.NewFile()
	require.NoError(t, file.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "archive.xlsx")
	require.NoError(t, file.SaveAs(path))
	require.NoError(t, file.Close())
	return path
}

func TestReaderProjects(t *testing.T) {
	path := writeArchive(t, "2026", [][]interface{}{
		{
			colCountry, colObjectName, colDesignCode, colObjectType,
			colDirections, colAuthors, colStartDate, colEndDate,
		},
		{
			"Россия", "Школа №5", "2026-02-011", "Школа",
			"4", "Иванов", "05.01.2026", "20.02.2026",
		},
		{"", "", "", "", "", "", "", ""},
		{
			"Россия", "ЦОД", "2026-03-001", "ЦОД",
			"15", "Иванов, Петров", "02.02.2026", "",
		},
	})

	projects, err := NewReader(path).Projects(2026)
	require.NoError(t, err)
	require.Len(t, projects, 2, "blank rows are skipped")

	first := projects[0]
	assert.Equal(t, "Школа №5", first.ObjectName)
	assert.Equal(t, "2026-02-011", first.DesignCode)
	assert.Equal(t, "4", first.DirectionsRaw)
	assert.Equal(t, "Иванов", first.Authors)
	assert.False(t, first.InProgress())

	second := projects[1]
	assert.Equal(t, "Иванов, Петров", second.Authors)
	assert.True(t, second.InProgress())
}

func TestReaderHeaderWhitespaceDrift(t *testing.T) {
	path := writeArchive(t, "2026", [][]interface{}{
		{"Наименование  объекта", "Шифр  (ИСП)"},
		{"Котельная", "2026-01-001"},
	})

	projects, err := NewReader(path).Projects(2026)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Котельная", projects[0].ObjectName)
	assert.Equal(t, "2026-01-001", projects[0].DesignCode)
}

func TestReaderMissingSources(t *testing.T) {
	t.Run("missing workbook", func(t *testing.T) {
		projects, err := NewReader(filepath.Join(t.TempDir(), "nope.xlsx")).Projects(2026)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})

	t.Run("missing year sheet", func(t *testing.T) {
		path := writeArchive(t, "2025", [][]interface{}{{colObjectName}, {"Объект"}})
		projects, err := NewReader(path).Projects(2026)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})
}

func TestOverrideReader(t *testing.T) {
	path := writeArchive(t, "Иванов", [][]interface{}{
		{colDesignCode, colOverride},
		{"2026-02-011", "4"},
		{"2026-03-001", ""},
		{"", "5"},
	})

	overrides, err := NewOverrideReader(path).Overrides("Иванов")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2026-02-011": "4"}, overrides)
}

func TestOverrideReaderMissingSources(t *testing.T) {
	t.Run("missing workbook", func(t *testing.T) {
		overrides, err := NewOverrideReader(filepath.Join(t.TempDir(), "nope.xlsx")).Overrides("Иванов")
		require.NoError(t, err)
		assert.Empty(t, overrides)
	})

	t.Run("missing engineer sheet", func(t *testing.T) {
		path := writeArchive(t, "Петров", [][]interface{}{{colDesignCode, colOverride}, {"2026-01-001", "3"}})
		overrides, err := NewOverrideReader(path).Overrides("Иванов")
		require.NoError(t, err)
		assert.Empty(t, overrides)
	})

	t.Run("missing override column", func(t *testing.T) {
		path := writeArchive(t, "Иванов", [][]interface{}{{colDesignCode}, {"2026-01-001"}})
		overrides, err := NewOverrideReader(path).Overrides("Иванов")
		require.NoError(t, err)
		assert.Empty(t, overrides)
	})
}
