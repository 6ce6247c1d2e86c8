package scoring

import (
	"strings"

	"github.com/okris/salary-bonus/internal/model"
)

const present = "Есть"

// features are the derived inputs of the classifier.
type features struct {
	Sections   int  // subsystem sections marked present, 0..4
	Pipe       bool // pipe-routed suppression equipment
	TypeCount  int  // comma-separated equipment type tokens
	Directions int  // directions plus one per 20 suppression modules
}

func deriveFeatures(p model.Project, rs RuleSet) features {
	return features{
		Sections:   SectionCount(p),
		Pipe:       strings.Contains(p.EquipmentType, rs.PipeMarker),
		TypeCount:  equipmentTypeCount(p.EquipmentType),
		Directions: effectiveDirections(p),
	}
}

// SectionCount counts the subsystem flags set to present.
func SectionCount(p model.Project) int {
	count := 0
	for _, flag := range []string{p.FireAlarm, p.SecurityAlarm, p.Evacuation, p.VentAutomation} {
		if strings.TrimSpace(flag) == present {
			count++
		}
	}
	return count
}

func equipmentTypeCount(raw string) int {
	count := 0
	for _, token := range strings.Split(raw, ",") {
		if strings.TrimSpace(token) != "" {
			count++
		}
	}
	return count
}

// moduleTotal parses the module count cell. A plain integer is taken as is;
// newline- or plus-separated sub-quantities are summed; anything else means
// the cell carries no usable quantity.
func moduleTotal(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if n, ok := parseInt(raw); ok {
		return n, true
	}

	sep := ""
	switch {
	case strings.Contains(raw, "\n"):
		sep = "\n"
	case strings.Contains(raw, "+"):
		sep = "+"
	default:
		return 0, false
	}

	total := 0
	for _, part := range strings.Split(raw, sep) {
		n, ok := parseInt(part)
		if !ok {
			return 0, false
		}
		total += n
	}
	return total, true
}

// effectiveDirections is the directions count with every 20 suppression
// modules counted as one extra direction. A malformed directions cell
// contributes zero.
func effectiveDirections(p model.Project) int {
	directions, _ := parseInt(p.DirectionsRaw)
	if modules, ok := moduleTotal(p.ModuleCountRaw); ok {
		directions += modules / 20
	}
	return directions
}

// Classify assigns the project a complexity tier 1..5.
func (s *Scorer) Classify(p model.Project) int {
	return classify(p, s.rules)
}

func classify(p model.Project, rs RuleSet) int {
	f := deriveFeatures(p, rs)
	objectType := strings.ToLower(strings.TrimSpace(p.ObjectType))

	for _, group := range rs.Groups {
		if !matchesKeyword(objectType, group.Keywords) {
			continue
		}
		for _, rule := range group.Rules {
			if ruleMatches(rule, f, p.EquipmentType) {
				return rule.Tier
			}
		}
		if group.DefaultTier > 0 {
			return group.DefaultTier
		}
	}

	return fallbackTier(f, rs)
}

func matchesKeyword(objectType string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(objectType, keyword) {
			return true
		}
	}
	return false
}

func ruleMatches(rule TierRule, f features, equipmentType string) bool {
	if rule.MinDirections > 0 && f.Directions < rule.MinDirections {
		return false
	}
	if rule.MinTypes > 0 && f.TypeCount < rule.MinTypes {
		return false
	}
	if rule.NeedSections && f.Sections == 0 {
		return false
	}
	if rule.NeedPipe && !f.Pipe {
		return false
	}
	if rule.Equipment != "" && strings.TrimSpace(equipmentType) != rule.Equipment {
		return false
	}
	return true
}

// fallbackTier decides purely from the direction buckets. A count sitting on
// a bucket boundary is pushed one tier up when the project carries active
// sections or pipe-routed equipment.
func fallbackTier(f features, rs RuleSet) int {
	for _, bucket := range rs.Fallback {
		if f.Directions > bucket.MaxDirections {
			continue
		}
		tier := bucket.Tier
		if f.Directions == bucket.MaxDirections && (f.Sections > 0 || f.Pipe) && tier < rs.FallbackTier {
			tier++
		}
		return tier
	}
	return rs.FallbackTier
}
