package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okris/salary-bonus/internal/config"
	"github.com/okris/salary-bonus/internal/model"
)

func TestSplitAuthors(t *testing.T) {
	assert.Empty(t, splitAuthors(""))
	assert.Equal(t, []string{"Иванов"}, splitAuthors("Иванов"))
	assert.Equal(t, []string{"Иванов", "Петров"}, splitAuthors("Иванов, Петров"))
	assert.Equal(t, []string{"Иванов", "Петров"}, splitAuthors(" Иванов ,, Петров "))
}

func TestAuthoredBy(t *testing.T) {
	p := model.Project{Authors: "Иванов, Петров"}
	assert.True(t, authoredBy(p, "Иванов"))
	assert.True(t, authoredBy(p, "Петров"))
	assert.False(t, authoredBy(p, "Сидоров"))
	assert.False(t, authoredBy(p, "Иван"), "name matching is exact, not substring")
}

func TestEngineers(t *testing.T) {
	s := &BonusService{cfg: &config.Config{
		Bonus: config.BonusConfig{ExcludedEngineers: []string{"Главный инженер"}},
	}}

	projects := []model.Project{
		{Authors: "Петров"},
		{Authors: "Иванов, Петров"},
		{Authors: "Главный инженер, Иванов"},
		{Authors: ""},
	}

	assert.Equal(t, []string{"Иванов", "Петров"}, s.engineers(projects))
}

func TestSanitizeFileName(t *testing.T) {
	assert.Equal(t, "Иванов", sanitizeFileName("Иванов"))
	assert.Equal(t, "Иванов-И-И", sanitizeFileName("Иванов И.И."))
	assert.Equal(t, "report-2026", sanitizeFileName("report 2026!"))
}
