// Package assessment composes the scorer and the requirements resolver into
// a single assessment run producing the persisted snapshot. Stamping the
// snapshot's timestamp is the only impure step in the whole engine.
package assessment

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/compliance-cli/internal/diligence"
	"github.com/sells-group/compliance-cli/internal/model"
	"github.com/sells-group/compliance-cli/internal/rules"
	"github.com/sells-group/compliance-cli/internal/scoring"
)

// Engine runs assessments against a rule configuration handle.
type Engine struct {
	loader *rules.Loader
	now    func() time.Time
}

// New creates an Engine on the given rule loader.
func New(loader *rules.Loader) *Engine {
	return &Engine{loader: loader, now: time.Now}
}

// Run scores the answers, resolves the mandatory actions, and assembles the
// immutable assessment snapshot. Identical inputs under identical rule
// documents yield identical results except for the timestamp.
func (e *Engine) Run(category model.ClientCategory, answers model.Answers) (*model.AssessmentResult, error) {
	cfg, err := e.loader.Load()
	if err != nil {
		return nil, eris.Wrap(err, "assessment: load rules")
	}

	scored := scoring.Score(cfg.Scoring, category, answers)
	triggers := scoring.CheckTriggers(cfg.Scoring, category, answers)
	resolved := diligence.Resolve(cfg, category, scored.Tier, answers, triggers)

	result := &model.AssessmentResult{
		Category:         category,
		Score:            scored.Score,
		Tier:             scored.Tier,
		AutomaticOutcome: scored.AutomaticOutcome,
		RiskFactors:      scored.Factors,
		Rationale:        buildRationale(cfg.Scoring, scored),
		Actions:          resolved.Actions,
		Triggers:         triggers,
		Warnings:         resolved.Warnings,
		Timestamp:        e.now().UTC(),
	}

	zap.L().Info("assessment: complete",
		zap.String("category", string(category)),
		zap.Int("score", result.Score),
		zap.String("tier", string(result.Tier)),
		zap.Bool("tier_forced", scored.TierForced),
		zap.Int("actions", len(result.Actions)),
		zap.Int("triggers", len(result.Triggers)),
		zap.Int("warnings", len(result.Warnings)),
	)

	return result, nil
}

// buildRationale produces the ordered rationale lines: tier statement,
// threshold statement, automatic-outcome statement if any, then one line per
// contributing non-zero factor.
func buildRationale(sr rules.ScoringRules, scored scoring.Result) []string {
	lines := []string{
		fmt.Sprintf("Overall score %d classifies the client as %s risk.", scored.Score, scored.Tier),
	}

	if th, ok := sr.Threshold(scored.Tier); ok {
		if th.Max != nil {
			lines = append(lines, fmt.Sprintf("The %s tier covers scores %d to %d.", th.Tier, th.Min, *th.Max))
		} else {
			lines = append(lines, fmt.Sprintf("The %s tier covers scores %d and above.", th.Tier, th.Min))
		}
	}

	if o := scored.AutomaticOutcome; o != nil {
		lines = append(lines, fmt.Sprintf("Automatic outcome %s: %s (%s).", o.ID, o.Description, o.TriggeredBy))
	}

	for _, f := range scored.Factors {
		if f.Score > 0 {
			lines = append(lines, f.Rationale)
		}
	}

	return lines
}
