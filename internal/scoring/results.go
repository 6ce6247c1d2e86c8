package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/okris/salary-bonus/internal/model"
)

// AverageByPeriod computes the company-wide average score per period across
// all engineers' series. Averages are truncated to whole points, matching how
// the plan has always been published.
func AverageByPeriod(perEngineer map[string][]model.PeriodTotal) []model.PeriodTotal {
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, series := range perEngineer {
		for _, total := range series {
			sums[total.Period] += total.Points
			counts[total.Period]++
		}
	}

	averages := make([]model.PeriodTotal, 0, len(sums))
	for period, sum := range sums {
		averages = append(averages, model.PeriodTotal{
			Period: period,
			Points: math.Trunc(sum / float64(counts[period])),
		})
	}
	sort.Slice(averages, func(i, j int) bool {
		return periodLess(averages[i].Period, averages[j].Period)
	})
	return averages
}

// PlanRows compares an engineer's period totals against the plan: premium
// points are whatever exceeds the plan, and percent-of-plan is reported when
// the plan is non-zero.
func PlanRows(totals, plan []model.PeriodTotal) []model.PlanRow {
	planByPeriod := make(map[string]float64, len(plan))
	for _, total := range plan {
		planByPeriod[total.Period] = total.Points
	}

	rows := make([]model.PlanRow, 0, len(totals))
	for _, total := range totals {
		row := model.PlanRow{Period: total.Period, Points: total.Points}

		planValue, ok := planByPeriod[total.Period]
		if !ok {
			rows = append(rows, row)
			continue
		}
		row.Plan = planValue

		premium := 0.0
		if total.Points >= planValue {
			premium = round2(total.Points - planValue)
		}
		row.Premium = &premium

		if planValue != 0 {
			percent := fmt.Sprintf("%d %%", int(total.Points/planValue*100))
			row.Percent = &percent
		}
		rows = append(rows, row)
	}
	return rows
}

// periodLess orders "MM-YYYY" and "Q-YYYY" period labels chronologically.
func periodLess(a, b string) bool {
	aPart, aYear := splitPeriod(a)
	bPart, bYear := splitPeriod(b)
	if aYear != bYear {
		return aYear < bYear
	}
	return aPart < bPart
}

func splitPeriod(period string) (int, int) {
	var part, year int
	fmt.Sscanf(period, "%d-%d", &part, &year)
	return part, year
}
