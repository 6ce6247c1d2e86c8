package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/okris/salary-bonus/internal/model"
	"github.com/okris/salary-bonus/internal/scoring"
)

const summarySheet = "Итоги"

// Generator renders the bonus workbook: one sheet per engineer with the
// scored project table and monthly totals, plus a summary sheet with the
// company plan and premium points.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(year int, reports []model.EngineerReport, plan []model.PeriodTotal) ([]byte, error) {
	file := excelize.NewFile()

	usedNames := map[string]struct{}{summarySheet: {}}
	for i, report := range reports {
		sheetName := buildSheetName(report.Engineer, usedNames)
		usedNames[sheetName] = struct{}{}

		if i == 0 {
			file.SetSheetName("Sheet1", sheetName)
		} else {
			file.NewSheet(sheetName)
		}
		if err := g.writeEngineer(file, sheetName, report); err != nil {
			return nil, err
		}
	}

	if len(reports) == 0 {
		file.SetSheetName("Sheet1", summarySheet)
	} else {
		file.NewSheet(summarySheet)
	}
	if err := g.writeSummary(file, year, reports, plan); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeEngineer(file *excelize.File, sheet string, report model.EngineerReport) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	headers := []string{
		"Страна",
		"Наименование объекта",
		"Шифр (ИСП)",
		"Разработал",
		"Баллы",
		"Дата начала проекта",
		"Дата окончания проекта",
		"Дедлайн",
		"Автоматически определенная сложность",
		"Корректировка сложности",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		set(cell, header)
	}

	for i, project := range report.Projects {
		row := i + 2
		set(fmt.Sprintf("A%d", row), project.Country)
		set(fmt.Sprintf("B%d", row), project.ObjectName)
		set(fmt.Sprintf("C%d", row), project.DesignCode)
		set(fmt.Sprintf("D%d", row), project.Authors)
		if project.Score.IsFinal() {
			set(fmt.Sprintf("E%d", row), project.Score.Points)
		} else {
			set(fmt.Sprintf("E%d", row), project.Score.Cell())
		}
		set(fmt.Sprintf("F%d", row), project.StartDateRaw)
		set(fmt.Sprintf("G%d", row), project.EndDateRaw)
		set(fmt.Sprintf("H%d", row), formatDeadline(project.Deadline))
		if project.AutoTier > 0 {
			set(fmt.Sprintf("I%d", row), project.AutoTier)
		}
		set(fmt.Sprintf("J%d", row), project.OverrideRaw)
	}

	// Monthly totals to the right of the project table.
	set("L1", "Месяц")
	set("M1", "Баллы")
	for i, total := range report.Months {
		row := i + 2
		set(fmt.Sprintf("L%d", row), total.Period)
		set(fmt.Sprintf("M%d", row), total.Points)
	}

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "C", 20)
	_ = file.SetColWidth(sheet, "D", "E", 18)
	_ = file.SetColWidth(sheet, "F", "J", 16)
	_ = file.SetColWidth(sheet, "L", "M", 12)
	return nil
}

func (g *Generator) writeSummary(file *excelize.File, year int, reports []model.EngineerReport, plan []model.PeriodTotal) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(summarySheet, cell, value)
	}

	set("A1", fmt.Sprintf("План %d", year))
	set("A2", "Месяц")
	set("B2", "Средний балл")
	for i, total := range plan {
		row := i + 3
		set(fmt.Sprintf("A%d", row), total.Period)
		set(fmt.Sprintf("B%d", row), total.Points)
	}

	set("D2", "Разработал")
	set("E2", "Месяц")
	set("F2", "Баллы")
	set("G2", "Премиальные баллы")
	set("H2", "Процент от плана")

	row := 3
	for _, report := range reports {
		for _, planRow := range scoring.PlanRows(report.Months, plan) {
			set(fmt.Sprintf("D%d", row), report.Engineer)
			set(fmt.Sprintf("E%d", row), planRow.Period)
			set(fmt.Sprintf("F%d", row), planRow.Points)
			if planRow.Premium != nil {
				set(fmt.Sprintf("G%d", row), *planRow.Premium)
			}
			if planRow.Percent != nil {
				set(fmt.Sprintf("H%d", row), *planRow.Percent)
			}
			row++
		}
	}

	_ = file.SetColWidth(summarySheet, "A", "B", 14)
	_ = file.SetColWidth(summarySheet, "D", "H", 18)
	return nil
}

func buildSheetName(engineer string, used map[string]struct{}) string {
	base := sanitizeSheetName(engineer)
	if len([]rune(base)) > 31 {
		base = string([]rune(base)[:31])
	}

	candidate := base
	counter := 2
	for {
		if _, exists := used[candidate]; !exists {
			return candidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := []rune(base)
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		candidate = string(trimmed) + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Лист"
	}

	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = replacer.Replace(value)
	value = strings.TrimSpace(value)
	if value == "" {
		return "Лист"
	}
	return value
}

func formatDeadline(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(model.DateLayout)
}
