package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/okris/salary-bonus/internal/model"
)

const yes = "Да"

// DirectionPoints scores the directions count against the tier table. Counts
// beyond the last bucket switch to the continuous formula; a cell that does
// not parse contributes nothing.
func DirectionPoints(tables Tables, tier int, raw string) float64 {
	count, ok := parseInt(raw)
	if !ok {
		return 0
	}
	for _, bucket := range tables.Directions[tier] {
		if float64(count) <= bucket.Max {
			return bucket.Points
		}
	}
	return round1(float64(count)/(8.5-float64(tier)) + float64(tier)/2)
}

// AreaPoints scores the protected area against the tier table and scales the
// looked-up value by the number of present subsystem sections. An unparsable
// area falls into the lowest bucket.
func AreaPoints(tables Tables, tier int, raw string, sections int) float64 {
	area, ok := parseNumber(raw)
	if !ok {
		area = 1
	}

	buckets := tables.Areas[tier]
	if len(buckets) == 0 {
		return 0
	}
	points := buckets[len(buckets)-1].Points
	for _, bucket := range buckets {
		if area <= bucket.Max {
			points = bucket.Points
			break
		}
	}
	return points * float64(sections)
}

// AccessControlPoints scores camera and access point counts independently
// and sums the two contributions.
func AccessControlPoints(camerasRaw, accessPointsRaw string) float64 {
	points := 0.0
	for _, raw := range []string{camerasRaw, accessPointsRaw} {
		count, _ := parseInt(raw)
		switch {
		case count <= 0:
		case count <= 10:
			points += 1
		case count <= 20:
			points += 1.5
		default:
			points += 2
		}
	}
	return points
}

// HeritagePoints grants a flat bonus for cultural heritage objects.
func HeritagePoints(p model.Project) float64 {
	if strings.TrimSpace(p.Heritage) == yes {
		return 3
	}
	return 0
}

// NetworkPoints grants a flat bonus when networks are part of the design.
func NetworkPoints(p model.Project) float64 {
	if strings.TrimSpace(p.Network) == present {
		return 1.5
	}
	return 0
}

// AuthorCount counts the engineers listed in the authors cell, at least one.
func AuthorCount(authors string) int {
	count := 0
	for _, name := range strings.Split(authors, ",") {
		if strings.TrimSpace(name) != "" {
			count++
		}
	}
	if count < 1 {
		return 1
	}
	return count
}

func parseInt(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseNumber reads a spreadsheet numeric cell: spaces and non-breaking
// spaces are thousands separators, a comma is a decimal point.
func parseNumber(raw string) (float64, bool) {
	raw = strings.NewReplacer(" ", "", " ", "", ",", ".").Replace(raw)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
