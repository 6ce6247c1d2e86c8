package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/okris/salary-bonus/internal/model"
)

func testReport() model.EngineerReport {
	deadline := time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC)
	return model.EngineerReport{
		Engineer: "Иванов",
		Projects: []model.ScoredProject{
			{
				Project: model.Project{
					Country:      "Россия",
					ObjectName:   "Школа №5",
					DesignCode:   "2026-02-011",
					Authors:      "Иванов",
					StartDateRaw: "05.01.2026",
					EndDateRaw:   "20.02.2026",
				},
				AutoTier: 2,
				Deadline: &deadline,
				Score:    model.FinalScore(7.5),
			},
			{
				Project: model.Project{
					ObjectName:   "ЦОД",
					DesignCode:   "2026-03-001",
					Authors:      "Иванов",
					StartDateRaw: "02.02.2026",
				},
				AutoTier: 3,
				Score:    model.ProvisionalScore(4),
			},
		},
		Months: []model.PeriodTotal{
			{Period: "01-2026", Points: 0},
			{Period: "02-2026", Points: 7.5},
		},
	}
}

func TestGenerate(t *testing.T) {
	plan := []model.PeriodTotal{
		{Period: "01-2026", Points: 3},
		{Period: "02-2026", Points: 5},
	}

	content, err := NewGenerator().Generate(2026, []model.EngineerReport{testReport()}, plan)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	require.Equal(t, []string{"Иванов", "Итоги"}, file.GetSheetList())

	cell := func(sheet, ref string) string {
		value, err := file.GetCellValue(sheet, ref)
		require.NoError(t, err)
		return value
	}

	assert.Equal(t, "Наименование объекта", cell("Иванов", "B1"))
	assert.Equal(t, "Школа №5", cell("Иванов", "B2"))
	assert.Equal(t, "7.5", cell("Иванов", "E2"))
	assert.Equal(t, "27.02.2026", cell("Иванов", "H2"))
	assert.Equal(t, "2", cell("Иванов", "I2"))
	assert.Equal(t, model.MsgInProgress, cell("Иванов", "E3"))
	assert.Equal(t, "", cell("Иванов", "H3"), "no deadline for the unscored row")

	assert.Equal(t, "02-2026", cell("Иванов", "L3"))
	assert.Equal(t, "7.5", cell("Иванов", "M3"))

	assert.Equal(t, "План 2026", cell("Итоги", "A1"))
	assert.Equal(t, "01-2026", cell("Итоги", "A3"))
	assert.Equal(t, "3", cell("Итоги", "B3"))

	assert.Equal(t, "Иванов", cell("Итоги", "D4"))
	assert.Equal(t, "02-2026", cell("Итоги", "E4"))
	assert.Equal(t, "2.5", cell("Итоги", "G4"), "premium above plan")
	assert.Equal(t, "150 %", cell("Итоги", "H4"))
}

func TestGenerateNoReports(t *testing.T) {
	content, err := NewGenerator().Generate(2026, nil, nil)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{"Итоги"}, file.GetSheetList())
}

func TestBuildSheetName(t *testing.T) {
	used := map[string]struct{}{"Итоги": {}}

	first := buildSheetName("Иванов", used)
	assert.Equal(t, "Иванов", first)
	used[first] = struct{}{}

	second := buildSheetName("Иванов", used)
	assert.Equal(t, "Иванов-2", second)

	long := buildSheetName("Инженер с очень длинной фамилией и именем", used)
	assert.LessOrEqual(t, len([]rune(long)), 31)

	assert.Equal(t, "Иванов-Петров", buildSheetName("Иванов/Петров", map[string]struct{}{}))
}
