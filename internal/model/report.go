package model

import (
	"time"

	"github.com/google/uuid"
)

// PeriodTotal is the score accumulated in one reporting period
// ("MM-YYYY" for months, "Q-YYYY" for quarters).
type PeriodTotal struct {
	Period string
	Points float64
}

// PlanRow compares an engineer's period total against the company plan
// (the average across engineers). Premium and Percent are nil when either
// side of the comparison is missing for the period.
type PlanRow struct {
	Period  string
	Points  float64
	Plan    float64
	Premium *float64
	Percent *string
}

// EngineerReport is everything written to one engineer's sheet.
type EngineerReport struct {
	Engineer string
	Projects []ScoredProject
	Months   []PeriodTotal
}

type RunStatus string

const (
	RunStatusRunning  RunStatus = "RUNNING"
	RunStatusFinished RunStatus = "FINISHED"
	RunStatusFailed   RunStatus = "FAILED"
)

// Run is one full scoring pass over the archive.
type Run struct {
	ID         uuid.UUID
	Year       int
	Status     RunStatus
	Error      *string
	StartedAt  time.Time
	FinishedAt *time.Time
	Engineers  []string
}
