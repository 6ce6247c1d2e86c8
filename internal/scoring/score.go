package scoring

import (
	"math"
	"strings"

	"github.com/okris/salary-bonus/internal/model"
)

// Scorer computes per-project scores. It is stateless across rows except for
// the block registry and the working table the caller threads through the
// pass, so rows must be scored in original sheet order.
type Scorer struct {
	cfg    Config
	rules  RuleSet
	tables Tables
	cal    Calendar
}

func NewScorer(cfg Config, cal Calendar) *Scorer {
	return &Scorer{
		cfg:    cfg,
		rules:  DefaultRules(),
		tables: DefaultTables(),
		cal:    cal,
	}
}

// BlockRegistry remembers which block-container object names were already
// scored in the current engineer's pass.
type BlockRegistry struct {
	seen map[string]struct{}
}

func NewBlockRegistry() *BlockRegistry {
	return &BlockRegistry{seen: make(map[string]struct{})}
}

func (r *BlockRegistry) points(name string, cfg Config) float64 {
	if _, ok := r.seen[name]; ok {
		return cfg.BlockRepeatPoints
	}
	r.seen[name] = struct{}{}
	return cfg.BlockFirstPoints
}

// ScoreRow scores one row of the engineer's table and records the computed
// deadline on the row. table is the engineer's full in-progress table and is
// only consulted for block-container sibling counts.
func (s *Scorer) ScoreRow(row *model.ScoredProject, table []*model.ScoredProject, blocks *BlockRegistry) model.Score {
	if isBlockContainer(row.Project) {
		row.Score = s.scoreBlock(row, table, blocks)
		return row.Score
	}

	if !requiredFilled(row.Project) {
		row.Score = model.IncompleteScore()
		return row.Score
	}

	tier, ok := s.resolveTier(row)
	if !ok {
		row.Score = model.UnknownComplexityScore()
		return row.Score
	}

	points := s.basePoints(row.Project, tier)

	if isCorrection(row.Project) {
		// Corrections are paid a fraction of full value and are not held to
		// the original deadline.
		row.Score = model.FinalScore(round1(points * s.cfg.CorrectionFactor))
		return row.Score
	}

	budget := int(math.Round(points)) * s.cfg.DaysPerPoint
	score, deadline := EvaluateDeadline(s.cal, s.cfg, row.Project, points, budget)
	row.Deadline = deadline
	row.Score = score
	return row.Score
}

// basePoints is the undivided-then-divided point formula shared by regular
// projects and corrections.
func (s *Scorer) basePoints(p model.Project, tier int) float64 {
	sections := SectionCount(p)

	points := DirectionPoints(s.tables, tier, p.DirectionsRaw)
	points += DirectionPoints(s.tables, tier, p.OtherAPTRaw)
	points += AreaPoints(s.tables, tier, p.ProtectedArea, sections)
	points += AccessControlPoints(p.CameraCountRaw, p.AccessPointsRaw)
	points += HeritagePoints(p)
	points += NetworkPoints(p)

	return round1(points / float64(AuthorCount(p.Authors)))
}

// scoreBlock applies the flat block-container rule: full value for the first
// container with a given object name, half for every repeat. The deadline
// budget comes from the count of sibling rows sharing name and dates.
func (s *Scorer) scoreBlock(row *model.ScoredProject, table []*model.ScoredProject, blocks *BlockRegistry) model.Score {
	points := blocks.points(row.ObjectName, s.cfg)

	budget := countBlockSiblings(table, row) + s.cfg.BlockBudgetBase
	score, deadline := EvaluateDeadline(s.cal, s.cfg, row.Project, points, budget)
	row.Deadline = deadline
	return score
}

func countBlockSiblings(table []*model.ScoredProject, row *model.ScoredProject) int {
	count := 0
	for _, other := range table {
		if other.ObjectName == row.ObjectName &&
			other.StartDateRaw == row.StartDateRaw &&
			other.EndDateRaw == row.EndDateRaw {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// resolveTier prefers the manual override from the engineer's sheet over the
// automatically classified tier. An override that is present but does not
// parse to a valid tier is a row-level anomaly.
func (s *Scorer) resolveTier(row *model.ScoredProject) (int, bool) {
	if override := strings.TrimSpace(row.OverrideRaw); override != "" {
		tier, ok := parseInt(override)
		if !ok || tier < 1 || tier > 5 {
			return 0, false
		}
		return tier, true
	}
	if row.AutoTier == 0 {
		row.AutoTier = classify(row.Project, s.rules)
	}
	return row.AutoTier, true
}

func requiredFilled(p model.Project) bool {
	required := []string{p.ObjectName, p.DesignCode, p.ObjectType, p.StartDateRaw}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

func isBlockContainer(p model.Project) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(p.ObjectType)), "блок-контейнер")
}

func isCorrection(p model.Project) bool {
	return strings.TrimSpace(p.Correction) == yes
}
