package pdf

import (
	"bytes"
	"fmt"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/okris/salary-bonus/internal/model"
	"github.com/okris/salary-bonus/internal/scoring"
)

// Generator renders the per-engineer bonus summary. The report is Cyrillic,
// so a UTF-8 TTF font must be supplied at construction time.
type Generator struct {
	fontName string
	fontPath string
}

func NewGenerator(fontPath string) (*Generator, error) {
	if fontPath == "" {
		return nil, fmt.Errorf("pdf font path is not configured")
	}
	if _, err := os.Stat(fontPath); err != nil {
		return nil, fmt.Errorf("pdf font: %w", err)
	}
	return &Generator{fontName: "Report", fontPath: fontPath}, nil
}

func (g *Generator) Generate(year int, report model.EngineerReport, plan []model.PeriodTotal) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.AddUTF8Font(g.fontName, "", g.fontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.fontPath)

	pdf.SetFont(g.fontName, "B", 14)
	pdf.CellFormat(0, 10, fmt.Sprintf("Премирование %d", year), "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Проектировщик: %s", report.Engineer), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 8, "Баллы по месяцам", "", 1, "L", false, 0, "")

	headers := []string{"Месяц", "Баллы", "План", "Премиальные баллы", "Процент от плана"}
	colWidths := []float64{30, 30, 30, 45, 45}
	drawTableRow(pdf, g.fontName, headers, colWidths, true)

	total := 0.0
	for _, planRow := range scoring.PlanRows(report.Months, plan) {
		total += planRow.Points
		row := []string{
			planRow.Period,
			formatPoints(planRow.Points),
			formatPoints(planRow.Plan),
			formatOptionalPoints(planRow.Premium),
			formatOptional(planRow.Percent),
		}
		drawTableRow(pdf, g.fontName, row, colWidths, false)
	}

	pdf.Ln(2)
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("Итого за год: %s", formatPoints(total)), "", 1, "R", false, 0, "")

	delivered, pending := countProjects(report.Projects)
	pdf.CellFormat(0, 6, fmt.Sprintf("Проектов рассчитано: %d, в работе: %d", delivered, pending), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, fontName string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i > 0 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func countProjects(projects []model.ScoredProject) (delivered, pending int) {
	for _, project := range projects {
		switch project.Score.Kind {
		case model.ScoreFinal:
			delivered++
		case model.ScoreInProgress:
			pending++
		}
	}
	return delivered, pending
}

func formatPoints(value float64) string {
	return fmt.Sprintf("%.1f", value)
}

func formatOptionalPoints(value *float64) string {
	if value == nil {
		return "—"
	}
	return formatPoints(*value)
}

func formatOptional(value *string) string {
	if value == nil {
		return "—"
	}
	return *value
}
