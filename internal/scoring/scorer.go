// Package scoring evaluates questionnaire answers against the configured
// scoring factors: it sums factor contributions, classifies the total into a
// risk tier, detects automatic-outcome overrides, and detects
// enhanced-diligence triggers. Every function here is pure.
package scoring

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sells-group/compliance-cli/internal/model"
	"github.com/sells-group/compliance-cli/internal/rules"
)

// Result is the outcome of one scoring run.
type Result struct {
	Score            int
	Tier             model.RiskTier
	TierForced       bool
	Factors          []model.RiskFactorResult
	AutomaticOutcome *model.AutomaticOutcomeResult
}

// Score evaluates every configured factor for the category against the
// answers. Unscored factors and unmatched or absent answers contribute
// nothing and are skipped silently. Within a factor, options are tried in
// declaration order and the first match wins.
func Score(sr rules.ScoringRules, category model.ClientCategory, answers model.Answers) Result {
	var (
		total   int
		factors []model.RiskFactorResult
	)

	for _, section := range sr.Sections[category] {
		for _, factor := range section.Factors {
			if !factor.Scored {
				continue
			}
			answer, ok := answers.Get(factor.FieldID)
			if !ok {
				continue
			}
			opt, matched := matchFactor(factor, answer)
			if !matched {
				continue
			}

			total += opt.Value
			factors = append(factors, model.RiskFactorResult{
				FactorID:  factor.ID,
				Label:     factor.Label,
				FieldID:   factor.FieldID,
				Answer:    answer.String(),
				Score:     opt.Value,
				Rationale: fmt.Sprintf("%s: answer %q scored %d points", factor.Label, answer.String(), opt.Value),
			})
		}
	}

	result := Result{
		Score:   total,
		Tier:    classifyTier(sr, total),
		Factors: factors,
	}

	// Independent pass over the same factor/option space for automatic
	// outcomes. Unscored factors participate here.
	if outcome := detectOutcome(sr, category, answers); outcome != nil {
		result.AutomaticOutcome = outcome
		if o, ok := sr.Outcome(outcome.ID); ok && o.ForcesHighestTier {
			result.Tier = sr.HighestTier()
			result.TierForced = true
		}
	}

	return result
}

// matchFactor returns the first option matching the answer.
func matchFactor(factor rules.ScoringFactor, answer model.AnswerValue) (rules.Option, bool) {
	for _, opt := range factor.Options {
		if opt.Matches(answer) {
			return opt, true
		}
	}
	return rules.Option{}, false
}

// classifyTier walks the tier list in declared order and returns the first
// tier whose threshold range contains the score. A miss falls back to the
// most severe tier; that almost certainly means a threshold authoring gap,
// so it is logged.
func classifyTier(sr rules.ScoringRules, score int) model.RiskTier {
	for _, t := range sr.Tiers {
		if t.Contains(score) {
			return t.Tier
		}
	}

	highest := sr.HighestTier()
	zap.L().Warn("scoring: no tier threshold matched, falling back to most severe",
		zap.Int("score", score),
		zap.String("tier", string(highest)),
	)
	return highest
}

// detectOutcome scans all factors (scored or not) for an option that names
// an automatic outcome and matches the supplied answer.
func detectOutcome(sr rules.ScoringRules, category model.ClientCategory, answers model.Answers) *model.AutomaticOutcomeResult {
	for _, section := range sr.Sections[category] {
		for _, factor := range section.Factors {
			answer, ok := answers.Get(factor.FieldID)
			if !ok {
				continue
			}
			for _, opt := range factor.Options {
				if opt.OutcomeID == "" || !opt.Matches(answer) {
					continue
				}
				outcome, ok := sr.Outcome(opt.OutcomeID)
				if !ok {
					continue
				}
				return &model.AutomaticOutcomeResult{
					ID:          outcome.ID,
					Description: outcome.Description,
					TriggeredBy: fmt.Sprintf("%s = %s", factor.FieldID, answer.String()),
				}
			}
		}
	}
	return nil
}

// CheckTriggers scans the category's trigger factors. Triggers are
// informational: they never feed into the score or tier.
func CheckTriggers(sr rules.ScoringRules, category model.ClientCategory, answers model.Answers) []model.EDDTriggerResult {
	var triggers []model.EDDTriggerResult

	for _, t := range sr.Triggers[category] {
		answer, ok := answers.Get(t.FieldID)
		if !ok {
			continue
		}
		for _, opt := range t.Options {
			if opt.Matches(answer) {
				triggers = append(triggers, model.EDDTriggerResult{
					TriggerID:   t.ID,
					Description: t.Description,
					Authority:   t.Authority,
					TriggeredBy: fmt.Sprintf("%s = %s", t.FieldID, answer.String()),
				})
				break
			}
		}
	}

	return triggers
}
