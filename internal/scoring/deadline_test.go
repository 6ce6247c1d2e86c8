package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okris/salary-bonus/internal/model"
)

// weekdays treats Monday through Friday as working days, which keeps the
// deadline arithmetic in tests independent of the holiday calendar.
type weekdays struct{}

func (weekdays) IsWorkday(day time.Time) bool {
	return day.Weekday() != time.Saturday && day.Weekday() != time.Sunday
}

func date(raw string) time.Time {
	t, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		panic(err)
	}
	return t
}

func TestEvaluateDeadline(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("on time keeps full points", func(t *testing.T) {
		p := model.Project{
			StartDateRaw: "05.01.2026", // Monday
			EndDateRaw:   "09.01.2026",
		}
		score, deadline := EvaluateDeadline(weekdays{}, cfg, p, 4, 5)
		require.NotNil(t, deadline)
		assert.Equal(t, date("09.01.2026"), *deadline)
		assert.Equal(t, model.FinalScore(4), score)
	})

	t.Run("weekend does not consume budget", func(t *testing.T) {
		p := model.Project{
			StartDateRaw: "05.01.2026",
			EndDateRaw:   "13.01.2026",
		}
		score, deadline := EvaluateDeadline(weekdays{}, cfg, p, 4, 7)
		require.NotNil(t, deadline)
		assert.Equal(t, date("13.01.2026"), *deadline)
		assert.Equal(t, model.FinalScore(4), score)
	})

	t.Run("overrun is discounted", func(t *testing.T) {
		p := model.Project{
			StartDateRaw: "05.01.2026",
			EndDateRaw:   "12.01.2026",
		}
		score, deadline := EvaluateDeadline(weekdays{}, cfg, p, 4, 5)
		require.NotNil(t, deadline)
		assert.Equal(t, model.FinalScore(3.6), score)
	})

	t.Run("extension pushes the deadline", func(t *testing.T) {
		p := model.Project{
			StartDateRaw: "05.01.2026",
			EndDateRaw:   "14.01.2026",
			ExtensionRaw: "3",
		}
		score, deadline := EvaluateDeadline(weekdays{}, cfg, p, 4, 5)
		require.NotNil(t, deadline)
		assert.Equal(t, date("14.01.2026"), *deadline)
		assert.Equal(t, model.FinalScore(4), score)
	})

	t.Run("in progress is provisional", func(t *testing.T) {
		p := model.Project{StartDateRaw: "05.01.2026"}
		score, deadline := EvaluateDeadline(weekdays{}, cfg, p, 4, 5)
		require.NotNil(t, deadline)
		assert.Equal(t, model.ScoreInProgress, score.Kind)
		assert.Equal(t, 4.0, score.Points)
	})

	t.Run("bad start date", func(t *testing.T) {
		p := model.Project{StartDateRaw: "вчера", EndDateRaw: "09.01.2026"}
		score, deadline := EvaluateDeadline(weekdays{}, cfg, p, 4, 5)
		assert.Nil(t, deadline)
		assert.Equal(t, model.ScoreInvalidDates, score.Kind)
	})

	t.Run("bad end date still records the deadline", func(t *testing.T) {
		p := model.Project{StartDateRaw: "05.01.2026", EndDateRaw: "??"}
		score, deadline := EvaluateDeadline(weekdays{}, cfg, p, 4, 5)
		require.NotNil(t, deadline)
		assert.Equal(t, model.ScoreInvalidDates, score.Kind)
	})
}

func TestAddWorkingDays(t *testing.T) {
	start := date("05.01.2026") // Monday

	assert.Equal(t, start, addWorkingDays(weekdays{}, start, 0))
	assert.Equal(t, start, addWorkingDays(weekdays{}, start, 1))
	assert.Equal(t, date("09.01.2026"), addWorkingDays(weekdays{}, start, 5))
	assert.Equal(t, date("12.01.2026"), addWorkingDays(weekdays{}, start, 6))

	// a start on a weekend does not count toward the budget
	saturday := date("03.01.2026")
	assert.Equal(t, date("05.01.2026"), addWorkingDays(weekdays{}, saturday, 1))
}
