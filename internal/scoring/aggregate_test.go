package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okris/salary-bonus/internal/model"
)

func finalRow(end, designCode string, points float64) model.ScoredProject {
	return model.ScoredProject{
		Project: model.Project{
			DesignCode:   designCode,
			StartDateRaw: "05.01.2026",
			EndDateRaw:   end,
		},
		Score: model.FinalScore(points),
	}
}

func TestByMonth(t *testing.T) {
	rows := []model.ScoredProject{
		finalRow("15.02.2026", "2026-02-001", 2),
		finalRow("20.02.2026", "2026-02-002", 3),
		finalRow("01.07.2026", "2026-07-003", 4.5),
		// unparsable end date attributes by the design-code period
		finalRow("в работе", "2026-03-004", 1.5),
		// other years are dropped
		finalRow("10.01.2025", "2025-01-005", 9),
		// non-final scores do not contribute
		{Score: model.IncompleteScore()},
	}

	series := ByMonth(rows, 2026)
	require.Len(t, series, 12, "the series is dense even for empty months")

	byPeriod := make(map[string]float64, len(series))
	for _, total := range series {
		byPeriod[total.Period] = total.Points
	}
	assert.InDelta(t, 5, byPeriod["02-2026"], 0.001)
	assert.InDelta(t, 1.5, byPeriod["03-2026"], 0.001)
	assert.InDelta(t, 4.5, byPeriod["07-2026"], 0.001)
	assert.Zero(t, byPeriod["01-2026"])
	assert.Equal(t, "01-2026", series[0].Period)
	assert.Equal(t, "12-2026", series[11].Period)
}

func TestByQuarterProportional(t *testing.T) {
	t.Run("single quarter keeps the full score", func(t *testing.T) {
		rows := []model.ScoredProject{{
			Project: model.Project{
				StartDateRaw: "01.02.2026",
				EndDateRaw:   "28.02.2026",
			},
			Score: model.FinalScore(4),
		}}
		series := ByQuarterProportional(rows, 2026)
		require.Len(t, series, 4)
		assert.Equal(t, "1-2026", series[0].Period)
		assert.InDelta(t, 4, series[0].Points, 0.001)
		assert.Zero(t, series[1].Points)
	})

	t.Run("spanning quarters splits by elapsed days", func(t *testing.T) {
		rows := []model.ScoredProject{{
			Project: model.Project{
				StartDateRaw: "01.03.2026",
				EndDateRaw:   "30.04.2026",
			},
			Score: model.FinalScore(10),
		}}
		series := ByQuarterProportional(rows, 2026)
		require.Len(t, series, 4)

		// 31 days in Q1, 30 in Q2, 61 total
		assert.InDelta(t, 5.08, series[0].Points, 0.001)
		assert.InDelta(t, 4.92, series[1].Points, 0.001)

		sum := 0.0
		for _, total := range series {
			sum += total.Points
		}
		assert.InDelta(t, 10, sum, 0.01, "the split must conserve the score")
	})

	t.Run("reversed dates are swapped", func(t *testing.T) {
		rows := []model.ScoredProject{{
			Project: model.Project{
				StartDateRaw: "28.02.2026",
				EndDateRaw:   "01.02.2026",
			},
			Score: model.FinalScore(2),
		}}
		series := ByQuarterProportional(rows, 2026)
		assert.InDelta(t, 2, series[0].Points, 0.001)
	})

	t.Run("malformed dates fall back to the design code", func(t *testing.T) {
		rows := []model.ScoredProject{{
			Project: model.Project{
				DesignCode:   "2026-05-010",
				StartDateRaw: "??",
				EndDateRaw:   "??",
			},
			Score: model.FinalScore(3),
		}}
		series := ByQuarterProportional(rows, 2026)
		assert.InDelta(t, 3, series[1].Points, 0.001, "May lands in the second quarter")
	})
}

func TestDesignCodePeriod(t *testing.T) {
	tests := []struct {
		code  string
		year  int
		month int
		valid bool
	}{
		{"2026-02-011", 2026, 2, true},
		{"2026-12-001", 2026, 12, true},
		{"1999-02-011", 0, 0, false},
		{"2026-13-011", 0, 0, false},
		{"короткий", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		year, month, ok := designCodePeriod(tt.code)
		assert.Equal(t, tt.valid, ok, "code=%q", tt.code)
		assert.Equal(t, tt.year, year, "code=%q", tt.code)
		assert.Equal(t, tt.month, month, "code=%q", tt.code)
	}
}
