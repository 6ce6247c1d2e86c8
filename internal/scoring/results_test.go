package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okris/salary-bonus/internal/model"
)

func TestAverageByPeriod(t *testing.T) {
	perEngineer := map[string][]model.PeriodTotal{
		"Иванов": {
			{Period: "01-2026", Points: 10},
			{Period: "02-2026", Points: 4},
		},
		"Петров": {
			{Period: "01-2026", Points: 5},
			{Period: "02-2026", Points: 7},
		},
	}

	plan := AverageByPeriod(perEngineer)
	require.Len(t, plan, 2)

	assert.Equal(t, "01-2026", plan[0].Period)
	assert.Equal(t, 7.0, plan[0].Points, "7.5 truncates to 7")
	assert.Equal(t, "02-2026", plan[1].Period)
	assert.Equal(t, 5.0, plan[1].Points)
}

func TestAverageByPeriodOrdersAcrossYears(t *testing.T) {
	perEngineer := map[string][]model.PeriodTotal{
		"Иванов": {
			{Period: "01-2027", Points: 1},
			{Period: "12-2026", Points: 1},
		},
	}

	plan := AverageByPeriod(perEngineer)
	require.Len(t, plan, 2)
	assert.Equal(t, "12-2026", plan[0].Period)
	assert.Equal(t, "01-2027", plan[1].Period)
}

func TestPlanRows(t *testing.T) {
	totals := []model.PeriodTotal{
		{Period: "01-2026", Points: 10},
		{Period: "02-2026", Points: 5},
		{Period: "03-2026", Points: 5},
		{Period: "04-2026", Points: 2},
	}
	plan := []model.PeriodTotal{
		{Period: "01-2026", Points: 7},
		{Period: "02-2026", Points: 7},
		{Period: "03-2026", Points: 0},
	}

	rows := PlanRows(totals, plan)
	require.Len(t, rows, 4)

	// above plan: the excess is the premium
	require.NotNil(t, rows[0].Premium)
	assert.InDelta(t, 3, *rows[0].Premium, 0.001)
	require.NotNil(t, rows[0].Percent)
	assert.Equal(t, "142 %", *rows[0].Percent)

	// below plan: no premium, percent still reported
	require.NotNil(t, rows[1].Premium)
	assert.Zero(t, *rows[1].Premium)
	require.NotNil(t, rows[1].Percent)
	assert.Equal(t, "71 %", *rows[1].Percent)

	// zero plan: everything above it is premium, percent is undefined
	require.NotNil(t, rows[2].Premium)
	assert.InDelta(t, 5, *rows[2].Premium, 0.001)
	assert.Nil(t, rows[2].Percent)

	// period missing from the plan: no comparison at all
	assert.Nil(t, rows[3].Premium)
	assert.Nil(t, rows[3].Percent)
}
