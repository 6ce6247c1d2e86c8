package calendar

import (
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/ru"
)

// Workdays answers whether a date is a working day.
type Workdays interface {
	IsWorkday(day time.Time) bool
}

// Russia is the Russian production calendar: Monday–Friday working days
// minus the federal public holidays. Holiday dates are derived per year, so
// intervals spanning several years need no extra handling.
type Russia struct {
	business *cal.BusinessCalendar
}

func NewRussia() *Russia {
	business := cal.NewBusinessCalendar()
	business.AddHoliday(ru.Holidays...)
	return &Russia{business: business}
}

func (c *Russia) IsWorkday(day time.Time) bool {
	return c.business.IsWorkday(day)
}

// CountNonWorking counts the weekend and holiday dates in [start, end],
// inclusive on both sides. Reversed bounds are swapped.
func CountNonWorking(cal Workdays, start, end time.Time) int {
	if start.After(end) {
		start, end = end, start
	}
	count := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !cal.IsWorkday(day) {
			count++
		}
	}
	return count
}
