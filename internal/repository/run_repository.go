package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/okris/salary-bonus/internal/model"
)

// Scope values for period_total rows.
const (
	ScopeMonth   = "MONTH"
	ScopeQuarter = "QUARTER"
	ScopePlan    = "PLAN" // company-wide average, engineer is NULL
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) CreateRun(ctx context.Context, run model.Run) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO bonus_run (id, year, status, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Year, run.Status, run.StartedAt).Error
}

func (r *RunRepository) FinishRun(ctx context.Context, id uuid.UUID, status model.RunStatus, runErr *string) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE bonus_run
		SET status = ?, error = ?, finished_at = NOW()
		WHERE id = ?
	`, status, runErr, id).Error
}

func (r *RunRepository) GetRun(ctx context.Context, id uuid.UUID) (*model.Run, error) {
	var row struct {
		ID         uuid.UUID
		Year       int
		Status     string
		Error      *string
		StartedAt  time.Time
		FinishedAt *time.Time
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, year, status, error, started_at, finished_at
		FROM bonus_run
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}

	var engineers []string
	if err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT engineer
		FROM scored_project
		WHERE run_id = ?
		ORDER BY engineer ASC
	`, id).Scan(&engineers).Error; err != nil {
		return nil, err
	}

	return &model.Run{
		ID:         row.ID,
		Year:       row.Year,
		Status:     model.RunStatus(row.Status),
		Error:      row.Error,
		StartedAt:  row.StartedAt,
		FinishedAt: row.FinishedAt,
		Engineers:  engineers,
	}, nil
}

// SaveEngineerResults stores the scored rows and the monthly series for one
// engineer, replacing anything an earlier attempt of the same run left.
func (r *RunRepository) SaveEngineerResults(ctx context.Context, runID uuid.UUID, report model.EngineerReport) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			DELETE FROM scored_project WHERE run_id = ? AND engineer = ?
		`, runID, report.Engineer).Error; err != nil {
			return err
		}
		if err := tx.Exec(`
			DELETE FROM period_total WHERE run_id = ? AND engineer = ?
		`, runID, report.Engineer).Error; err != nil {
			return err
		}

		for i, project := range report.Projects {
			var points *float64
			if project.Score.Kind == model.ScoreFinal || project.Score.Kind == model.ScoreInProgress {
				value := project.Score.Points
				points = &value
			}
			if err := tx.Exec(`
				INSERT INTO scored_project (
					run_id, engineer, row_index, country, object_name, design_code,
					object_type, authors, start_date, end_date, deadline,
					auto_tier, override, score_kind, points
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, runID, report.Engineer, i, project.Country, project.ObjectName,
				project.DesignCode, project.ObjectType, project.Authors,
				project.StartDateRaw, project.EndDateRaw, project.Deadline,
				project.AutoTier, project.OverrideRaw, project.Score.Kind, points,
			).Error; err != nil {
				return err
			}
		}

		for _, total := range report.Months {
			if err := tx.Exec(`
				INSERT INTO period_total (run_id, engineer, scope, period, points)
				VALUES (?, ?, ?, ?, ?)
			`, runID, report.Engineer, ScopeMonth, total.Period, total.Points).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SavePlan stores the company-wide averages for the run.
func (r *RunRepository) SavePlan(ctx context.Context, runID uuid.UUID, plan []model.PeriodTotal) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
			DELETE FROM period_total WHERE run_id = ? AND scope = ?
		`, runID, ScopePlan).Error; err != nil {
			return err
		}
		for _, total := range plan {
			if err := tx.Exec(`
				INSERT INTO period_total (run_id, engineer, scope, period, points)
				VALUES (?, NULL, ?, ?, ?)
			`, runID, ScopePlan, total.Period, total.Points).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *RunRepository) Plan(ctx context.Context, runID uuid.UUID) ([]model.PeriodTotal, error) {
	var totals []model.PeriodTotal
	if err := r.db.WithContext(ctx).Raw(`
		SELECT period, points
		FROM period_total
		WHERE run_id = ? AND scope = ? AND engineer IS NULL
		ORDER BY id ASC
	`, runID, ScopePlan).Scan(&totals).Error; err != nil {
		return nil, err
	}
	return totals, nil
}

// EngineerReport loads one engineer's scored rows and monthly series back
// from storage.
func (r *RunRepository) EngineerReport(ctx context.Context, runID uuid.UUID, engineer string) (*model.EngineerReport, error) {
	var rows []struct {
		Country    string
		ObjectName string
		DesignCode string
		ObjectType string
		Authors    string
		StartDate  string
		EndDate    string
		Deadline   *time.Time
		AutoTier   int
		Override   string
		ScoreKind  int
		Points     *float64
	}
	if err := r.db.WithContext(ctx).Raw(`
		SELECT country, object_name, design_code, object_type, authors,
		       start_date, end_date, deadline, auto_tier, override,
		       score_kind, points
		FROM scored_project
		WHERE run_id = ? AND engineer = ?
		ORDER BY row_index ASC
	`, runID, engineer).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	projects := make([]model.ScoredProject, 0, len(rows))
	for _, row := range rows {
		score := model.Score{Kind: model.ScoreKind(row.ScoreKind)}
		if row.Points != nil {
			score.Points = *row.Points
		}
		projects = append(projects, model.ScoredProject{
			Project: model.Project{
				Country:      row.Country,
				ObjectName:   row.ObjectName,
				DesignCode:   row.DesignCode,
				ObjectType:   row.ObjectType,
				Authors:      row.Authors,
				StartDateRaw: row.StartDate,
				EndDateRaw:   row.EndDate,
			},
			AutoTier:    row.AutoTier,
			OverrideRaw: row.Override,
			Deadline:    row.Deadline,
			Score:       score,
		})
	}

	var months []model.PeriodTotal
	if err := r.db.WithContext(ctx).Raw(`
		SELECT period, points
		FROM period_total
		WHERE run_id = ? AND engineer = ? AND scope = ?
		ORDER BY id ASC
	`, runID, engineer, ScopeMonth).Scan(&months).Error; err != nil {
		return nil, err
	}

	return &model.EngineerReport{
		Engineer: engineer,
		Projects: projects,
		Months:   months,
	}, nil
}
