package scoring

import (
	"fmt"
	"time"

	"github.com/okris/salary-bonus/internal/model"
)

// ByMonth attributes each finally-scored project to its completion month and
// sums per month. The result is a dense 12-month series for the reporting
// year; months of other years are dropped. A row whose end date does not
// parse falls back to the period embedded in its design code.
func ByMonth(rows []model.ScoredProject, year int) []model.PeriodTotal {
	totals := make(map[int]float64, 12)

	for _, row := range rows {
		if !row.Score.IsFinal() {
			continue
		}
		y, month, ok := completionPeriod(row.Project)
		if !ok || y != year {
			continue
		}
		totals[month] += row.Score.Points
	}

	series := make([]model.PeriodTotal, 0, 12)
	for month := 1; month <= 12; month++ {
		series = append(series, model.PeriodTotal{
			Period: monthPeriod(month, year),
			Points: round2(totals[month]),
		})
	}
	return series
}

// ByQuarterProportional splits each project's score across every quarter its
// interval touches, proportional to the share of elapsed days, and sums per
// quarter. Kept for cross-period audit reports; the monthly policy above is
// what the pipeline publishes.
func ByQuarterProportional(rows []model.ScoredProject, year int) []model.PeriodTotal {
	totals := make(map[string]float64, 4)

	for _, row := range rows {
		if !row.Score.IsFinal() {
			continue
		}
		start, end, ok := projectInterval(row.Project)
		if !ok {
			continue
		}
		for _, part := range splitByQuarter(start, end, row.Score.Points) {
			totals[part.Period] += part.Points
		}
	}

	series := make([]model.PeriodTotal, 0, 4)
	for quarter := 1; quarter <= 4; quarter++ {
		period := fmt.Sprintf("%d-%d", quarter, year)
		series = append(series, model.PeriodTotal{
			Period: period,
			Points: round2(totals[period]),
		})
	}
	return series
}

func splitByQuarter(start, end time.Time, points float64) []model.PeriodTotal {
	totalDays := daysInclusive(start, end)

	var parts []model.PeriodTotal
	for qStart := quarterStart(start); !qStart.After(end); qStart = qStart.AddDate(0, 3, 0) {
		qEnd := qStart.AddDate(0, 3, -1)

		overlapStart := maxDate(qStart, start)
		overlapEnd := minDate(qEnd, end)
		proportion := float64(daysInclusive(overlapStart, overlapEnd)) / float64(totalDays)

		quarter := (int(qStart.Month())-1)/3 + 1
		parts = append(parts, model.PeriodTotal{
			Period: fmt.Sprintf("%d-%d", quarter, qStart.Year()),
			Points: round2(points * proportion),
		})
	}
	return parts
}

// completionPeriod is the (year, month) a score is attributed to.
func completionPeriod(p model.Project) (int, int, bool) {
	if end, err := p.EndDate(); err == nil {
		return end.Year(), int(end.Month()), true
	}
	return designCodePeriod(p.DesignCode)
}

// projectInterval is the [start, end] range used for proportional splitting,
// with the design-code month standing in when the dates are malformed.
func projectInterval(p model.Project) (time.Time, time.Time, bool) {
	start, startErr := p.StartDate()
	end, endErr := p.EndDate()
	if startErr != nil || endErr != nil {
		year, month, ok := designCodePeriod(p.DesignCode)
		if !ok {
			return time.Time{}, time.Time{}, false
		}
		start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(year, time.Month(month), 28, 0, 0, 0, 0, time.UTC)
	}
	if start.After(end) {
		start, end = end, start
	}
	return start, end, true
}

// designCodePeriod reads the year and month a design code encodes
// ("YYYY-MM-…").
func designCodePeriod(code string) (int, int, bool) {
	if len(code) < 7 {
		return 0, 0, false
	}
	year, ok := parseInt(code[:4])
	if !ok || year < 2000 {
		return 0, 0, false
	}
	month, ok := parseInt(code[5:7])
	if !ok || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month, true
}

func monthPeriod(month, year int) string {
	return fmt.Sprintf("%02d-%d", month, year)
}

func quarterStart(t time.Time) time.Time {
	firstMonth := time.Month((int(t.Month())-1)/3*3 + 1)
	return time.Date(t.Year(), firstMonth, 1, 0, 0, 0, 0, t.Location())
}

func daysInclusive(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
