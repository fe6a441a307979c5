package model

import "time"

// RiskTier is the discrete risk classification derived from the score.
// Tier values and their order come from the scoring rules document.
type RiskTier string

const (
	TierLow    RiskTier = "LOW"
	TierMedium RiskTier = "MEDIUM"
	TierHigh   RiskTier = "HIGH"
)

// ActionCategory tags a mandatory action with the kind of work it requires.
type ActionCategory string

const (
	ActionIdentification    ActionCategory = "identification"
	ActionEnhancedDiligence ActionCategory = "enhanced_diligence"
	ActionWealth            ActionCategory = "wealth"
	ActionFunds             ActionCategory = "funds"
	ActionMonitoring        ActionCategory = "monitoring"
	ActionEscalation        ActionCategory = "escalation"
)

// ActionPriority distinguishes required from recommended actions.
type ActionPriority string

const (
	PriorityRequired    ActionPriority = "required"
	PriorityRecommended ActionPriority = "recommended"
)

// RiskFactorResult records one factor that matched a supplied answer.
// Created once per scoring run and never mutated.
type RiskFactorResult struct {
	FactorID  string `json:"factorId"`
	Label     string `json:"label"`
	FieldID   string `json:"fieldId"`
	Answer    string `json:"answer"`
	Score     int    `json:"score"`
	Rationale string `json:"rationale"`
}

// AutomaticOutcomeResult records an answer condition that overrides the
// score-derived tier outright.
type AutomaticOutcomeResult struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	TriggeredBy string `json:"triggeredBy"`
}

// EDDTriggerResult records a condition mandating extra enhanced-diligence
// actions without altering the tier.
type EDDTriggerResult struct {
	TriggerID   string `json:"triggerId"`
	Description string `json:"description"`
	Authority   string `json:"authority"`
	TriggeredBy string `json:"triggeredBy"`
}

// AssessmentWarning flags an input condition requiring manual escalation.
// Warnings never block computation.
type AssessmentWarning struct {
	WarningID string `json:"warningId"`
	Message   string `json:"message"`
	Authority string `json:"authority"`
}

// MandatoryAction is one resolved, deduplicated unit of due-diligence work.
type MandatoryAction struct {
	ActionID      string         `json:"actionId"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	DisplayText   string         `json:"displayText,omitempty"`
	Category      ActionCategory `json:"category"`
	Priority      ActionPriority `json:"priority"`
	EvidenceTypes []string       `json:"evidenceTypes,omitempty"`
}

// AssessmentResult is the persisted snapshot of one completed assessment.
// It is created once by the orchestrator, stored verbatim, and never
// recomputed: a rendered determination must always reflect what was true at
// assessment time, even after the rule documents change.
type AssessmentResult struct {
	Category         ClientCategory          `json:"category"`
	Score            int                     `json:"score"`
	Tier             RiskTier                `json:"tier"`
	AutomaticOutcome *AutomaticOutcomeResult `json:"automaticOutcome"`
	RiskFactors      []RiskFactorResult      `json:"riskFactors"`
	Rationale        []string                `json:"rationale"`
	Actions          []MandatoryAction       `json:"actions"`
	Triggers         []EDDTriggerResult      `json:"triggers"`
	Warnings         []AssessmentWarning     `json:"warnings"`
	Timestamp        time.Time               `json:"timestamp"`
}
