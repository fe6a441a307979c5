// Package rules defines the externally versioned rule documents consumed by
// the assessment engine: the scoring rules (tiers, thresholds, automatic
// outcomes, factor sections, triggers) and the due-diligence action
// catalogue. The engine only ever reads these documents.
package rules

import (
	"github.com/sells-group/compliance-cli/internal/model"
)

// Option declares one way a factor can match a supplied answer and what the
// match contributes. Match strategies are evaluated in a fixed priority
// order: exact value, set membership, then prefix. An option carries either
// a non-negative point value or a reference to an automatic outcome.
type Option struct {
	Equals    string   `json:"equals,omitempty" yaml:"equals,omitempty"`
	AnyOf     []string `json:"anyOf,omitempty" yaml:"anyOf,omitempty"`
	Prefix    string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Value     int      `json:"value,omitempty" yaml:"value,omitempty"`
	OutcomeID string   `json:"outcomeId,omitempty" yaml:"outcomeId,omitempty"`
}

// Matches reports whether the option matches any value of the answer.
// Exact match is tried first, then set membership, then prefix.
func (o Option) Matches(answer model.AnswerValue) bool {
	for _, v := range answer.Values() {
		if o.Equals != "" && v == o.Equals {
			return true
		}
	}
	for _, v := range answer.Values() {
		for _, m := range o.AnyOf {
			if v == m {
				return true
			}
		}
	}
	if o.Prefix != "" {
		for _, v := range answer.Values() {
			if len(v) >= len(o.Prefix) && v[:len(o.Prefix)] == o.Prefix {
				return true
			}
		}
	}
	return false
}

// ScoringFactor is one questionnaire field evaluated for risk points.
// Options are tried in declaration order; the first match wins.
type ScoringFactor struct {
	ID      string   `json:"id" yaml:"id"`
	FieldID string   `json:"fieldId" yaml:"fieldId"`
	Label   string   `json:"label" yaml:"label"`
	Scored  bool     `json:"scored" yaml:"scored"`
	Options []Option `json:"options" yaml:"options"`
}

// ScoringSection is a named, ordered group of factors. Sections organize the
// document; they carry no output semantics.
type ScoringSection struct {
	Name    string          `json:"name" yaml:"name"`
	Factors []ScoringFactor `json:"factors" yaml:"factors"`
}

// TierThreshold binds a tier to its closed-open score range. A nil Max means
// the range is unbounded above. Tiers are declared lowest severity first.
type TierThreshold struct {
	Tier model.RiskTier `json:"tier" yaml:"tier"`
	Min  int            `json:"min" yaml:"min"`
	Max  *int           `json:"max,omitempty" yaml:"max,omitempty"`
}

// Contains reports whether the score falls inside the threshold range.
func (t TierThreshold) Contains(score int) bool {
	if score < t.Min {
		return false
	}
	return t.Max == nil || score <= *t.Max
}

// AutomaticOutcome is a catalogued answer condition that overrides the
// score-derived tier. Exactly one outcome in a document may force the
// highest tier.
type AutomaticOutcome struct {
	ID                string `json:"id" yaml:"id"`
	Description       string `json:"description" yaml:"description"`
	PolicyRef         string `json:"policyRef,omitempty" yaml:"policyRef,omitempty"`
	ForcesHighestTier bool   `json:"forcesHighestTier,omitempty" yaml:"forcesHighestTier,omitempty"`
}

// TriggerFactor is a condition that mandates extra enhanced-diligence
// actions without altering the score or tier. Trigger factors are disjoint
// from scoring factors.
type TriggerFactor struct {
	ID          string   `json:"id" yaml:"id"`
	FieldID     string   `json:"fieldId" yaml:"fieldId"`
	Description string   `json:"description" yaml:"description"`
	Authority   string   `json:"authority" yaml:"authority"`
	Options     []Option `json:"options" yaml:"options"`
}

// ScoringRules is the scoring-rules document.
type ScoringRules struct {
	Tiers    []TierThreshold                           `json:"tiers" yaml:"tiers"`
	Outcomes []AutomaticOutcome                        `json:"outcomes" yaml:"outcomes"`
	Sections map[model.ClientCategory][]ScoringSection `json:"sections" yaml:"sections"`
	Triggers map[model.ClientCategory][]TriggerFactor  `json:"triggers" yaml:"triggers"`
}

// Outcome looks up an automatic outcome by id.
func (r ScoringRules) Outcome(id string) (AutomaticOutcome, bool) {
	for _, o := range r.Outcomes {
		if o.ID == id {
			return o, true
		}
	}
	return AutomaticOutcome{}, false
}

// LowestTier returns the least severe configured tier.
func (r ScoringRules) LowestTier() model.RiskTier {
	if len(r.Tiers) == 0 {
		return ""
	}
	return r.Tiers[0].Tier
}

// HighestTier returns the most severe configured tier.
func (r ScoringRules) HighestTier() model.RiskTier {
	if len(r.Tiers) == 0 {
		return ""
	}
	return r.Tiers[len(r.Tiers)-1].Tier
}

// TierRank returns the severity rank of a tier (0 = least severe) and
// whether the tier is configured.
func (r ScoringRules) TierRank(tier model.RiskTier) (int, bool) {
	for i, t := range r.Tiers {
		if t.Tier == tier {
			return i, true
		}
	}
	return 0, false
}

// Threshold returns the threshold declared for a tier.
func (r ScoringRules) Threshold(tier model.RiskTier) (TierThreshold, bool) {
	for _, t := range r.Tiers {
		if t.Tier == tier {
			return t, true
		}
	}
	return TierThreshold{}, false
}

// CatalogueAction is one action definition in the catalogue document.
type CatalogueAction struct {
	ID            string               `json:"id" yaml:"id"`
	Name          string               `json:"name" yaml:"name"`
	Description   string               `json:"description" yaml:"description"`
	DisplayText   string               `json:"displayText,omitempty" yaml:"displayText,omitempty"`
	Category      model.ActionCategory `json:"category" yaml:"category"`
	Priority      model.ActionPriority `json:"priority" yaml:"priority"`
	EvidenceTypes []string             `json:"evidenceTypes,omitempty" yaml:"evidenceTypes,omitempty"`
}

// Resolve converts a catalogue action into the resolved mandatory action.
func (a CatalogueAction) Resolve() model.MandatoryAction {
	return model.MandatoryAction{
		ActionID:      a.ID,
		Name:          a.Name,
		Description:   a.Description,
		DisplayText:   a.DisplayText,
		Category:      a.Category,
		Priority:      a.Priority,
		EvidenceTypes: a.EvidenceTypes,
	}
}

// ActionBundle groups one tier's actions for one client-type key.
type ActionBundle struct {
	Identification      []CatalogueAction `json:"identification,omitempty" yaml:"identification,omitempty"`
	BeneficialOwnership []CatalogueAction `json:"beneficialOwnership,omitempty" yaml:"beneficialOwnership,omitempty"`
	Wealth              []CatalogueAction `json:"wealth,omitempty" yaml:"wealth,omitempty"`
	Funds               []CatalogueAction `json:"funds,omitempty" yaml:"funds,omitempty"`
	Monitoring          []CatalogueAction `json:"monitoring,omitempty" yaml:"monitoring,omitempty"`
	EnhancedDiligence   []CatalogueAction `json:"enhancedDiligence,omitempty" yaml:"enhancedDiligence,omitempty"`
}

// All flattens the bundle's groups in their fixed declaration order.
func (b ActionBundle) All() []CatalogueAction {
	var out []CatalogueAction
	out = append(out, b.Identification...)
	out = append(out, b.BeneficialOwnership...)
	out = append(out, b.Wealth...)
	out = append(out, b.Funds...)
	out = append(out, b.Monitoring...)
	out = append(out, b.EnhancedDiligence...)
	return out
}

// EscalationPattern recognizes an entity subtype the catalogue has no bundle
// for. Matching answers produce a warning and continue on the default key.
type EscalationPattern struct {
	Match     string `json:"match" yaml:"match"`
	WarningID string `json:"warningId" yaml:"warningId"`
	Message   string `json:"message" yaml:"message"`
	Authority string `json:"authority" yaml:"authority"`
}

// NewClientRule injects a wealth-declaration requirement for new clients at
// the lowest tier.
type NewClientRule struct {
	FieldID        string          `json:"fieldId" yaml:"fieldId"`
	Equals         string          `json:"equals" yaml:"equals"`
	FormAction     CatalogueAction `json:"formAction" yaml:"formAction"`
	EvidenceAction CatalogueAction `json:"evidenceAction" yaml:"evidenceAction"`
}

// ClientTypeRules holds the per-tier bundles for one catalogue key.
type ClientTypeRules struct {
	Bundles   map[model.RiskTier]ActionBundle `json:"bundles" yaml:"bundles"`
	NewClient *NewClientRule                  `json:"newClient,omitempty" yaml:"newClient,omitempty"`
}

// ActionCatalogue is the CDD ruleset document.
type ActionCatalogue struct {
	// EntityField names the corporate answer field carrying the entity
	// subtype used for key mapping.
	EntityField string `json:"entityField" yaml:"entityField"`

	// EntityKeys maps entity subtype answers to catalogue keys.
	EntityKeys map[string]string `json:"entityKeys" yaml:"entityKeys"`

	// DefaultKey is used when the subtype is missing or out of catalogue.
	DefaultKey string `json:"defaultKey" yaml:"defaultKey"`

	// Escalations are recognized but out-of-catalogue subtype patterns.
	Escalations []EscalationPattern `json:"escalations,omitempty" yaml:"escalations,omitempty"`

	// EnhancedMonitoringActionID names the highest tier's monitoring action
	// injected verbatim alongside trigger-driven enhanced diligence.
	EnhancedMonitoringActionID string `json:"enhancedMonitoringActionId" yaml:"enhancedMonitoringActionId"`

	// ClientTypes maps catalogue keys to their tiered bundles.
	ClientTypes map[string]ClientTypeRules `json:"clientTypes" yaml:"clientTypes"`
}

// Config bundles both rule documents behind one handle.
type Config struct {
	Scoring   ScoringRules
	Catalogue ActionCatalogue
}
