package scoring

// The classification and point tables below are hand-tuned decision tables
// for one organization's project taxonomy. They are kept as data so threshold
// revisions do not touch the matching algorithm.

// TierRule assigns a tier when every set condition holds. Zero-valued
// conditions are ignored.
type TierRule struct {
	MinDirections int    // effective directions >= MinDirections
	MinTypes      int    // equipment type count >= MinTypes
	NeedSections  bool   // at least one subsystem section present
	NeedPipe      bool   // pipe-routed equipment marker present
	Equipment     string // exact equipment type text
	Tier          int
}

// KeywordGroup matches the object type against a keyword list and resolves
// the tier through its ordered rules. DefaultTier 0 means the group does not
// decide and classification falls through to the direction buckets.
type KeywordGroup struct {
	Name        string
	Keywords    []string
	Rules       []TierRule
	DefaultTier int
}

// DirectionBucket maps an upper bound of effective directions to a tier.
type DirectionBucket struct {
	MaxDirections int
	Tier          int
}

// RuleSet is the full classifier configuration.
type RuleSet struct {
	Groups []KeywordGroup
	// Fallback buckets, ascending. A count on a bucket boundary moves one
	// tier up when the project has active sections or pipe-routed equipment.
	Fallback     []DirectionBucket
	FallbackTier int    // tier when the count exceeds every bucket
	PipeMarker   string // substring of the equipment type marking pipe routing
}

// DefaultRules returns the current classification table.
func DefaultRules() RuleSet {
	return RuleSet{
		Groups: []KeywordGroup{
			{
				Name:     "container",
				Keywords: []string{"блок-контейнер", "контейнер"},
				Rules: []TierRule{
					{NeedSections: true, Tier: 2},
					{NeedPipe: true, Tier: 2},
				},
				DefaultTier: 1,
			},
			{
				Name: "social",
				Keywords: []string{
					"школа", "больница", "поликлин", "медицинские учреждения",
					"мед. учрежд", "цгс", "отделение", "комиссариат", "гараж",
				},
				Rules: []TierRule{
					{NeedSections: true, Tier: 2},
					{NeedPipe: true, Tier: 2},
				},
				DefaultTier: 1,
			},
			{
				Name: "administrative",
				Keywords: []string{
					"адм. здание", "административное здание", "жк", "суд", "универ",
				},
				Rules: []TierRule{
					{MinDirections: 20, Tier: 3},
				},
				DefaultTier: 2,
			},
			{
				Name: "industrial",
				Keywords: []string{
					"производственное здание", "пром. предприятие", "выставка",
					"музей", "нии", "завод",
				},
				Rules: []TierRule{
					{MinDirections: 20, Tier: 5},
					{MinDirections: 18, MinTypes: 2, Tier: 5},
					{MinDirections: 9, Tier: 4},
					{Equipment: "ИСТА", Tier: 4},
				},
				DefaultTier: 3,
			},
			{
				Name:     "heavy",
				Keywords: []string{"цод", "производственное здание", "пром. предприятие"},
				Rules: []TierRule{
					{MinDirections: 20, Tier: 5},
					{MinDirections: 15, MinTypes: 2, Tier: 5},
				},
				// no match: decided by the direction buckets
			},
		},
		Fallback: []DirectionBucket{
			{MaxDirections: 4, Tier: 2},
			{MaxDirections: 14, Tier: 3},
			{MaxDirections: 19, Tier: 4},
		},
		FallbackTier: 5,
		PipeMarker:   "Император",
	}
}

// PointBucket maps an upper bound of a magnitude to a point value.
type PointBucket struct {
	Points float64
	Max    float64
}

// Tables holds the per-tier point lookup tables.
type Tables struct {
	Directions map[int][]PointBucket
	Areas      map[int][]PointBucket
}

// DefaultTables returns the current point tables.
func DefaultTables() Tables {
	return Tables{
		Directions: map[int][]PointBucket{
			1: {{1, 4}, {1.5, 6}, {2, 8}, {2.5, 12}, {3, 20}},
			2: {{1, 2}, {1.5, 4}, {2, 8}, {3, 12}, {3.5, 20}},
			3: {{1.5, 2}, {2, 4}, {2.5, 8}, {3.5, 12}, {4, 20}},
			4: {{2, 2}, {2.5, 4}, {3, 8}, {4, 12}, {5, 20}},
			5: {{4, 6}, {5, 8}, {6, 12}, {8, 20}},
		},
		Areas: map[int][]PointBucket{
			1: {{0, 10000}},
			2: {{2, 400}, {2.5, 1000}, {3, 3000}, {3.5, 10000}, {5, 100000}},
			3: {{2, 400}, {3, 1000}, {3.5, 3000}, {4, 10000}, {8, 100000}},
			4: {{3, 400}, {4, 1000}, {4.5, 3000}, {5, 10000}, {10, 100000}},
			5: {{4, 400}, {4.5, 1000}, {5, 3000}, {5.5, 10000}, {12, 100000}},
		},
	}
}

// Config holds the scoring tunables.
type Config struct {
	DaysPerPoint       int     // working days granted per point
	OverrunCoefficient float64 // multiplier applied on deadline overrun
	CorrectionFactor   float64 // fraction of full value paid for corrections
	BlockFirstPoints   float64 // first block container with a given name
	BlockRepeatPoints  float64 // every repeat of that name
	BlockBudgetBase    int     // added to the sibling count for block deadlines
}

func DefaultConfig() Config {
	return Config{
		DaysPerPoint:       5,
		OverrunCoefficient: 0.9,
		CorrectionFactor:   0.3,
		BlockFirstPoints:   1.0,
		BlockRepeatPoints:  0.5,
		BlockBudgetBase:    4,
	}
}
