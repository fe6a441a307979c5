// Package diligence resolves the mandatory due-diligence actions for an
// assessed client: the matching tier's catalogue bundle, inherited lower
// tier bundles, new-client declarations, and trigger-injected enhanced
// diligence. Degraded states (out-of-catalogue entities, missing catalogue
// keys) become warnings, never errors.
package diligence

import (
	"fmt"

	"github.com/sells-group/compliance-cli/internal/model"
	"github.com/sells-group/compliance-cli/internal/rules"
)

// Result is the resolved action set plus any escalation warnings.
// An empty action list means "escalate to manual review", not "nothing
// required".
type Result struct {
	Actions  []model.MandatoryAction
	Warnings []model.AssessmentWarning
}

// Resolve derives the full set of mandatory actions for the given tier,
// category, answers, and triggers.
func Resolve(cfg *rules.Config, category model.ClientCategory, tier model.RiskTier, answers model.Answers, triggers []model.EDDTriggerResult) Result {
	cat := cfg.Catalogue

	key, warnings := catalogueKey(cat, category, answers)
	clientType, ok := cat.ClientTypes[key]
	if !ok {
		warnings = append(warnings, model.AssessmentWarning{
			WarningID: "catalogue_missing",
			Message:   fmt.Sprintf("No action catalogue is defined for client type %q; manual review required.", key),
			Authority: "Firm AML Policy s.9",
		})
		return Result{Warnings: warnings}
	}

	rank, ok := cfg.Scoring.TierRank(tier)
	if !ok {
		rank = len(cfg.Scoring.Tiers) - 1
	}
	highestRank := len(cfg.Scoring.Tiers) - 1

	// The resolved tier's bundle first, then every lower tier's bundle
	// (inheritance). Deduplication keeps the first occurrence.
	var actions []model.MandatoryAction
	for r := rank; r >= 0; r-- {
		bundle := clientType.Bundles[cfg.Scoring.Tiers[r].Tier]
		for _, a := range bundle.All() {
			actions = append(actions, a.Resolve())
		}
	}

	// New clients at the lowest tier owe a wealth declaration.
	if clientType.NewClient != nil && rank == 0 {
		if answer, ok := answers.Get(clientType.NewClient.FieldID); ok && firstValue(answer) == clientType.NewClient.Equals {
			actions = append(actions, clientType.NewClient.FormAction.Resolve())
			actions = append(actions, clientType.NewClient.EvidenceAction.Resolve())
		}
	}

	// Triggered cases below the highest tier receive the highest tier's
	// enhanced-diligence obligations without a tier change.
	if len(triggers) > 0 && rank < highestRank {
		highest := clientType.Bundles[cfg.Scoring.HighestTier()]
		for _, a := range highest.EnhancedDiligence {
			actions = append(actions, a.Resolve())
		}
		for _, a := range highest.Monitoring {
			if a.ID == cat.EnhancedMonitoringActionID {
				actions = append(actions, a.Resolve())
			}
		}
	}

	return Result{
		Actions:  dedupeActions(actions),
		Warnings: warnings,
	}
}

// catalogueKey maps the client category and the answer-derived entity
// subtype to a catalogue key. Recognized but out-of-catalogue subtypes emit
// an escalation warning and continue on the default key.
func catalogueKey(cat rules.ActionCatalogue, category model.ClientCategory, answers model.Answers) (string, []model.AssessmentWarning) {
	if category == model.CategoryIndividual {
		return "individual", nil
	}

	answer, ok := answers.Get(cat.EntityField)
	if !ok {
		return cat.DefaultKey, nil
	}
	subtype := firstValue(answer)

	if key, ok := cat.EntityKeys[subtype]; ok {
		return key, nil
	}
	for _, esc := range cat.Escalations {
		if esc.Match == subtype {
			return cat.DefaultKey, []model.AssessmentWarning{{
				WarningID: esc.WarningID,
				Message:   esc.Message,
				Authority: esc.Authority,
			}}
		}
	}
	return cat.DefaultKey, nil
}

// dedupeActions removes duplicate action ids, keeping the first occurrence.
func dedupeActions(actions []model.MandatoryAction) []model.MandatoryAction {
	seen := make(map[string]bool, len(actions))
	out := actions[:0]
	for _, a := range actions {
		if seen[a.ActionID] {
			continue
		}
		seen[a.ActionID] = true
		out = append(out, a)
	}
	return out
}

func firstValue(a model.AnswerValue) string {
	vs := a.Values()
	if len(vs) == 0 {
		return ""
	}
	return vs[0]
}
