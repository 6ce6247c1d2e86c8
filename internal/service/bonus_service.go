package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/okris/salary-bonus/internal/archive"
	"github.com/okris/salary-bonus/internal/config"
	"github.com/okris/salary-bonus/internal/model"
	"github.com/okris/salary-bonus/internal/notify"
	"github.com/okris/salary-bonus/internal/repository"
	"github.com/okris/salary-bonus/internal/scoring"
)

type ExcelGenerator interface {
	Generate(year int, reports []model.EngineerReport, plan []model.PeriodTotal) ([]byte, error)
}

type PDFGenerator interface {
	Generate(year int, report model.EngineerReport, plan []model.PeriodTotal) ([]byte, error)
}

type BonusService struct {
	repo      *repository.RunRepository
	archive   *archive.Reader
	overrides *archive.OverrideReader
	scorer    *scoring.Scorer
	excel     ExcelGenerator
	pdf       PDFGenerator
	notifier  notify.Notifier
	cfg       *config.Config
	log       zerolog.Logger

	mu      sync.Mutex
	running bool
}

func NewBonusService(
	repo *repository.RunRepository,
	reader *archive.Reader,
	overrides *archive.OverrideReader,
	scorer *scoring.Scorer,
	excel ExcelGenerator,
	pdf PDFGenerator,
	notifier notify.Notifier,
	cfg *config.Config,
	log zerolog.Logger,
) *BonusService {
	return &BonusService{
		repo:      repo,
		archive:   reader,
		overrides: overrides,
		scorer:    scorer,
		excel:     excel,
		pdf:       pdf,
		notifier:  notifier,
		cfg:       cfg,
		log:       log,
	}
}

type GenerateReportResult struct {
	FileName string
	Content  []byte
}

// StartRun registers a new scoring run for the year and executes it in the
// background. Only one run may be active at a time.
func (s *BonusService) StartRun(ctx context.Context, year int, principal model.Principal) (*model.Run, error) {
	if !principal.CanTriggerRuns() {
		return nil, ErrPermissionDenied
	}
	if year < 2000 || year > 2100 {
		return nil, fmt.Errorf("%w: year out of range", ErrInvalidInput)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil, ErrRunInProgress
	}
	s.running = true
	s.mu.Unlock()

	run := model.Run{
		ID:        uuid.New(),
		Year:      year,
		Status:    model.RunStatusRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateRun(ctx, run); err != nil {
		s.setRunning(false)
		return nil, err
	}

	go s.execute(run.ID, year)

	return &run, nil
}

// RunScheduled is the cron entry point: it scores the current year.
func (s *BonusService) RunScheduled() {
	year := time.Now().Year()
	run, err := s.StartRun(context.Background(), year, model.Principal{Role: "ADMIN"})
	if err != nil {
		if errors.Is(err, ErrRunInProgress) {
			s.log.Warn().Msg("scheduled run skipped, another run is active")
			return
		}
		s.log.Error().Err(err).Msg("scheduled run failed to start")
		return
	}
	s.log.Info().Str("run_id", run.ID.String()).Int("year", year).Msg("scheduled run started")
}

func (s *BonusService) execute(runID uuid.UUID, year int) {
	defer s.setRunning(false)

	ctx := context.Background()
	started := time.Now()

	if err := s.score(ctx, runID, year); err != nil {
		s.log.Error().Err(err).Str("run_id", runID.String()).Msg("run failed")
		message := err.Error()
		if finishErr := s.repo.FinishRun(ctx, runID, model.RunStatusFailed, &message); finishErr != nil {
			s.log.Error().Err(finishErr).Msg("failed to mark run failed")
		}
		s.notify(fmt.Sprintf("Расчёт премирования за %d год завершился с ошибкой: %s", year, message))
		return
	}

	if err := s.repo.FinishRun(ctx, runID, model.RunStatusFinished, nil); err != nil {
		s.log.Error().Err(err).Msg("failed to mark run finished")
	}
	s.log.Info().
		Str("run_id", runID.String()).
		Dur("elapsed", time.Since(started)).
		Msg("run finished")
	s.notify(fmt.Sprintf("Расчёт премирования за %d год завершён", year))
}

func (s *BonusService) score(ctx context.Context, runID uuid.UUID, year int) error {
	projects, err := s.archive.Projects(year)
	if err != nil {
		return fmt.Errorf("read archive: %w", err)
	}
	if len(projects) == 0 {
		return ErrNoProjects
	}

	engineers := s.engineers(projects)
	if len(engineers) == 0 {
		return ErrNoProjects
	}

	totalsByEngineer := make(map[string][]model.PeriodTotal, len(engineers))
	for _, engineer := range engineers {
		report, err := s.scoreEngineer(engineer, projects, year)
		if err != nil {
			return fmt.Errorf("score %s: %w", engineer, err)
		}
		if err := s.repo.SaveEngineerResults(ctx, runID, *report); err != nil {
			return fmt.Errorf("save results for %s: %w", engineer, err)
		}
		totalsByEngineer[engineer] = report.Months
		s.log.Debug().
			Str("engineer", engineer).
			Int("projects", len(report.Projects)).
			Msg("engineer scored")
	}

	plan := scoring.AverageByPeriod(totalsByEngineer)
	if err := s.repo.SavePlan(ctx, runID, plan); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// scoreEngineer scores the engineer's rows in archive order. The whole
// working table is materialized first so block-container rows can find their
// siblings, then each row is scored in sequence.
func (s *BonusService) scoreEngineer(engineer string, projects []model.Project, year int) (*model.EngineerReport, error) {
	overrides, err := s.overrides.Overrides(engineer)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}

	table := make([]*model.ScoredProject, 0)
	for _, project := range projects {
		if !authoredBy(project, engineer) {
			continue
		}
		row := &model.ScoredProject{Project: project}
		row.AutoTier = s.scorer.Classify(project)
		if override, ok := overrides[project.DesignCode]; ok {
			row.OverrideRaw = override
		}
		table = append(table, row)
	}

	blocks := scoring.NewBlockRegistry()
	for _, row := range table {
		row.Score = s.scorer.ScoreRow(row, table, blocks)
	}

	rows := make([]model.ScoredProject, 0, len(table))
	for _, row := range table {
		rows = append(rows, *row)
	}

	return &model.EngineerReport{
		Engineer: engineer,
		Projects: rows,
		Months:   scoring.ByMonth(rows, year),
	}, nil
}

// engineers collects the distinct author names across the archive, minus the
// configured exclusions, sorted for stable processing order.
func (s *BonusService) engineers(projects []model.Project) []string {
	excluded := make(map[string]struct{}, len(s.cfg.Bonus.ExcludedEngineers))
	for _, name := range s.cfg.Bonus.ExcludedEngineers {
		excluded[strings.TrimSpace(name)] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, project := range projects {
		for _, name := range splitAuthors(project.Authors) {
			if _, skip := excluded[name]; skip {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	result := make([]string, 0, len(seen))
	for name := range seen {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func (s *BonusService) GetRun(ctx context.Context, id uuid.UUID) (*model.Run, error) {
	run, err := s.repo.GetRun(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return run, nil
}

// ExportExcel renders the full workbook for a finished run.
func (s *BonusService) ExportExcel(ctx context.Context, runID uuid.UUID) (*GenerateReportResult, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Status != model.RunStatusFinished {
		return nil, fmt.Errorf("%w: run is not finished", ErrInvalidInput)
	}

	plan, err := s.repo.Plan(ctx, runID)
	if err != nil {
		return nil, err
	}

	reports := make([]model.EngineerReport, 0, len(run.Engineers))
	for _, engineer := range run.Engineers {
		report, err := s.repo.EngineerReport(ctx, runID, engineer)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *report)
	}

	content, err := s.excel.Generate(run.Year, reports, plan)
	if err != nil {
		return nil, err
	}

	return &GenerateReportResult{
		FileName: fmt.Sprintf("bonus-%d-%s.xlsx", run.Year, runID.String()[:8]),
		Content:  content,
	}, nil
}

// ExportPDF renders the summary sheet for a single engineer.
func (s *BonusService) ExportPDF(ctx context.Context, runID uuid.UUID, engineer string) (*GenerateReportResult, error) {
	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Status != model.RunStatusFinished {
		return nil, fmt.Errorf("%w: run is not finished", ErrInvalidInput)
	}

	report, err := s.repo.EngineerReport(ctx, runID, engineer)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	plan, err := s.repo.Plan(ctx, runID)
	if err != nil {
		return nil, err
	}

	content, err := s.pdf.Generate(run.Year, *report, plan)
	if err != nil {
		return nil, err
	}

	return &GenerateReportResult{
		FileName: fmt.Sprintf("bonus-%d-%s.pdf", run.Year, sanitizeFileName(engineer)),
		Content:  content,
	}, nil
}

func (s *BonusService) setRunning(value bool) {
	s.mu.Lock()
	s.running = value
	s.mu.Unlock()
}

func (s *BonusService) notify(text string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(text); err != nil {
		s.log.Error().Err(err).Msg("notification failed")
	}
}

// authoredBy reports whether the engineer appears in the row's author list.
func authoredBy(p model.Project, engineer string) bool {
	for _, name := range splitAuthors(p.Authors) {
		if name == engineer {
			return true
		}
	}
	return false
}

func splitAuthors(raw string) []string {
	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			result = append(result, r)
		case r >= 'а' && r <= 'я', r >= 'А' && r <= 'Я', r == 'ё', r == 'Ё':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
