package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCell(t *testing.T) {
	assert.Equal(t, "7.5", FinalScore(7.5).Cell())
	assert.Equal(t, "3", FinalScore(3).Cell())
	assert.Equal(t, MsgInProgress, ProvisionalScore(4).Cell())
	assert.Equal(t, MsgIncomplete, IncompleteScore().Cell())
	assert.Equal(t, MsgInvalidDates, InvalidDatesScore().Cell())
	assert.Equal(t, MsgUnknownComplexity, UnknownComplexityScore().Cell())
}

func TestIsPoint(t *testing.T) {
	assert.True(t, IsPoint("7.5"))
	assert.True(t, IsPoint("0"))
	assert.False(t, IsPoint(MsgInProgress))
	assert.False(t, IsPoint(MsgIncomplete))
	assert.False(t, IsPoint(""))
}

func TestProjectDates(t *testing.T) {
	p := Project{StartDateRaw: "05.01.2026", EndDateRaw: ""}
	start, err := p.StartDate()
	assert.NoError(t, err)
	assert.Equal(t, 2026, start.Year())
	assert.True(t, p.InProgress())

	_, err = Project{StartDateRaw: "2026-01-05"}.StartDate()
	assert.Error(t, err, "only the archive date layout is accepted")
}
