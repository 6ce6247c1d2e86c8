package model

import "strconv"

// ScoreKind tags the outcome of scoring a single project row.
type ScoreKind int

const (
	ScoreFinal ScoreKind = iota
	ScoreInProgress
	ScoreIncomplete
	ScoreInvalidDates
	ScoreUnknownComplexity
)

// Row-level anomaly messages written into the score column instead of a
// number. Downstream consumers filter real scores with IsPoint.
const (
	MsgIncomplete        = "Необходимо заполнить данные для расчёта"
	MsgInProgress        = "Проект ещё не сдан"
	MsgInvalidDates      = "Даты заполнены некорректно"
	MsgUnknownComplexity = "Сложность заполнена некорректно"
)

// Score is the tagged result of scoring one project. Points is meaningful for
// ScoreFinal and ScoreInProgress (the provisional value before delivery).
type Score struct {
	Kind   ScoreKind
	Points float64
}

func FinalScore(points float64) Score { return Score{Kind: ScoreFinal, Points: points} }

func ProvisionalScore(points float64) Score { return Score{Kind: ScoreInProgress, Points: points} }

func IncompleteScore() Score { return Score{Kind: ScoreIncomplete} }

func InvalidDatesScore() Score { return Score{Kind: ScoreInvalidDates} }

func UnknownComplexityScore() Score { return Score{Kind: ScoreUnknownComplexity} }

// IsFinal reports whether the score is a settled numeric value.
func (s Score) IsFinal() bool { return s.Kind == ScoreFinal }

// Cell renders the score the way it is written into the report sheet: a plain
// number for a final score, a human-readable status string otherwise.
func (s Score) Cell() string {
	switch s.Kind {
	case ScoreFinal:
		return strconv.FormatFloat(s.Points, 'f', -1, 64)
	case ScoreInProgress:
		return MsgInProgress
	case ScoreInvalidDates:
		return MsgInvalidDates
	case ScoreUnknownComplexity:
		return MsgUnknownComplexity
	default:
		return MsgIncomplete
	}
}

// IsPoint reports whether a score cell holds a real numeric score. This is
// the single predicate consumers use to separate scores from status strings.
func IsPoint(cell string) bool {
	_, err := strconv.ParseFloat(cell, 64)
	return err == nil
}
