package scoring

import (
	"time"

	"github.com/okris/salary-bonus/internal/model"
)

// Calendar answers whether a calendar date is a working day for the country
// the projects are executed in.
type Calendar interface {
	IsWorkday(day time.Time) bool
}

// EvaluateDeadline computes the project deadline from the start date and the
// working-day budget, then compares the actual completion date against it.
//
// The returned deadline is always set when the start date parses, so the
// caller can record it even for rows that end up with a status instead of a
// score. The budget is inclusive of the start day when it is a working day;
// a deadline-extension cell on the record adds working days to the budget.
func EvaluateDeadline(cal Calendar, cfg Config, p model.Project, points float64, budget int) (model.Score, *time.Time) {
	start, err := p.StartDate()
	if err != nil {
		return model.InvalidDatesScore(), nil
	}

	if extension, ok := parseInt(p.ExtensionRaw); ok && extension > 0 {
		budget += extension
	}
	deadline := addWorkingDays(cal, start, budget)

	if p.InProgress() {
		return model.ProvisionalScore(points), &deadline
	}

	end, err := p.EndDate()
	if err != nil {
		return model.InvalidDatesScore(), &deadline
	}

	if end.After(deadline) {
		points = round1(points * cfg.OverrunCoefficient)
	}
	return model.FinalScore(points), &deadline
}

// addWorkingDays returns the date of the n-th working day counting from
// start inclusive. A non-positive budget keeps the start date.
func addWorkingDays(cal Calendar, start time.Time, days int) time.Time {
	if days <= 0 {
		return start
	}
	day := start
	remaining := days
	for {
		if cal.IsWorkday(day) {
			remaining--
			if remaining == 0 {
				return day
			}
		}
		day = day.AddDate(0, 0, 1)
	}
}
