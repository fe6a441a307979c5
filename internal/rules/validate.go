package rules

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Validate checks that a rule configuration is internally consistent. It is
// a deployment-time check: the engine assumes documents are valid and never
// re-validates them on the assessment path.
func Validate(cfg *Config) error {
	var errs []string

	errs = append(errs, validateTiers(cfg.Scoring)...)
	errs = append(errs, validateOutcomes(cfg.Scoring)...)
	errs = append(errs, validateFactors(cfg.Scoring)...)
	errs = append(errs, validateCatalogue(cfg)...)

	if len(errs) > 0 {
		return eris.Errorf("rules: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// validateTiers checks that the thresholds partition the non-negative
// integers: ascending, starting at zero, no gaps or overlaps, last tier
// unbounded.
func validateTiers(sr ScoringRules) []string {
	var errs []string

	if len(sr.Tiers) == 0 {
		return []string{"at least one tier is required"}
	}
	if sr.Tiers[0].Min != 0 {
		errs = append(errs, fmt.Sprintf("first tier %s must start at 0, got %d", sr.Tiers[0].Tier, sr.Tiers[0].Min))
	}
	for i, t := range sr.Tiers {
		last := i == len(sr.Tiers)-1
		if last {
			if t.Max != nil {
				errs = append(errs, fmt.Sprintf("last tier %s must be unbounded", t.Tier))
			}
			continue
		}
		if t.Max == nil {
			errs = append(errs, fmt.Sprintf("tier %s must be bounded", t.Tier))
			continue
		}
		if *t.Max < t.Min {
			errs = append(errs, fmt.Sprintf("tier %s has max %d below min %d", t.Tier, *t.Max, t.Min))
		}
		if next := sr.Tiers[i+1]; next.Min != *t.Max+1 {
			errs = append(errs, fmt.Sprintf("tier %s min %d leaves a gap or overlap after %s max %d", next.Tier, next.Min, t.Tier, *t.Max))
		}
	}

	return errs
}

func validateOutcomes(sr ScoringRules) []string {
	var errs []string

	forcing := 0
	seen := map[string]bool{}
	for _, o := range sr.Outcomes {
		if o.ID == "" {
			errs = append(errs, "outcome with empty id")
		}
		if seen[o.ID] {
			errs = append(errs, fmt.Sprintf("duplicate outcome id %s", o.ID))
		}
		seen[o.ID] = true
		if o.ForcesHighestTier {
			forcing++
		}
	}
	if forcing > 1 {
		errs = append(errs, "at most one outcome may force the highest tier")
	}

	return errs
}

func validateFactors(sr ScoringRules) []string {
	var errs []string

	for category, sections := range sr.Sections {
		factorIDs := map[string]bool{}
		for _, section := range sections {
			for _, f := range section.Factors {
				if factorIDs[f.ID] {
					errs = append(errs, fmt.Sprintf("%s: duplicate factor id %s", category, f.ID))
				}
				factorIDs[f.ID] = true

				for i, opt := range f.Options {
					if opt.Equals == "" && len(opt.AnyOf) == 0 && opt.Prefix == "" {
						errs = append(errs, fmt.Sprintf("%s: factor %s option %d has no match strategy", category, f.ID, i))
					}
					if opt.Value < 0 {
						errs = append(errs, fmt.Sprintf("%s: factor %s option %d has negative value", category, f.ID, i))
					}
					if opt.OutcomeID != "" {
						if _, ok := sr.Outcome(opt.OutcomeID); !ok {
							errs = append(errs, fmt.Sprintf("%s: factor %s references unknown outcome %s", category, f.ID, opt.OutcomeID))
						}
						if opt.Value != 0 {
							errs = append(errs, fmt.Sprintf("%s: factor %s option %d carries both points and an outcome", category, f.ID, i))
						}
					}
				}
			}
		}

		// Trigger factors must be disjoint from scoring factors.
		for _, t := range sr.Triggers[category] {
			if factorIDs[t.ID] {
				errs = append(errs, fmt.Sprintf("%s: trigger %s collides with a scoring factor", category, t.ID))
			}
			for i, opt := range t.Options {
				if opt.Equals == "" && len(opt.AnyOf) == 0 && opt.Prefix == "" {
					errs = append(errs, fmt.Sprintf("%s: trigger %s option %d has no match strategy", category, t.ID, i))
				}
			}
		}
	}

	return errs
}

func validateCatalogue(cfg *Config) []string {
	var errs []string
	cat := cfg.Catalogue

	if cat.DefaultKey == "" {
		errs = append(errs, "catalogue default key is required")
	} else if _, ok := cat.ClientTypes[cat.DefaultKey]; !ok {
		errs = append(errs, fmt.Sprintf("catalogue default key %s has no client type", cat.DefaultKey))
	}
	if _, ok := cat.ClientTypes["individual"]; !ok {
		errs = append(errs, "catalogue must define the individual client type")
	}
	for subtype, key := range cat.EntityKeys {
		if _, ok := cat.ClientTypes[key]; !ok {
			errs = append(errs, fmt.Sprintf("entity subtype %s maps to unknown key %s", subtype, key))
		}
	}

	// The trigger-injected monitoring action must exist in every client
	// type's highest-tier bundle.
	highest := cfg.Scoring.HighestTier()
	if cat.EnhancedMonitoringActionID != "" && highest != "" {
		for key, ct := range cat.ClientTypes {
			found := false
			for _, a := range ct.Bundles[highest].Monitoring {
				if a.ID == cat.EnhancedMonitoringActionID {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Sprintf("client type %s is missing monitoring action %s at tier %s", key, cat.EnhancedMonitoringActionID, highest))
			}
		}
	}

	return errs
}
