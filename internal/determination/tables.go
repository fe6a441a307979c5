package determination

import "github.com/sells-group/compliance-cli/internal/model"

// The tables below are presentation-only lookups. They are assumed stable
// across rule-document versions; the renderer never reads the live rule
// configuration for score, tier, or actions.

// factorColumn names one configured factor row in the scoring breakdown.
type factorColumn struct {
	ID    string
	Label string
}

// factorDisplay lists every configured factor per category, in breakdown
// table order. Factors absent from the snapshot render as "not applicable".
var factorDisplay = map[model.ClientCategory][]factorColumn{
	model.CategoryIndividual: {
		{ID: "residency", Label: "Residency status"},
		{ID: "jurisdiction", Label: "Country of residence"},
		{ID: "pep", Label: "PEP status"},
		{ID: "source_of_funds", Label: "Source of funds"},
		{ID: "channel", Label: "Onboarding channel"},
	},
	model.CategoryCorporate: {
		{ID: "entity_type", Label: "Entity type"},
		{ID: "ownership", Label: "Ownership structure"},
		{ID: "ubo_pep", Label: "Beneficial owner PEP status"},
		{ID: "industry", Label: "Industry"},
		{ID: "incorporation", Label: "Country of incorporation"},
	},
}

// thresholdLabels is the static threshold wording per tier.
var thresholdLabels = map[model.RiskTier]string{
	model.TierLow:    "scores 0 to 4",
	model.TierMedium: "scores 5 to 8",
	model.TierHigh:   "scores 9 and above",
}

// mostSevereTier keys the closing risk-appetite statement.
const mostSevereTier = model.TierHigh

const (
	appetiteOutside = "This engagement is outside the firm's standard risk appetite unless approved by the Money Laundering Reporting Officer."
	appetiteWithin  = "This engagement is within the firm's standard risk appetite subject to completion of the actions above."
)

// jurisdictionLabels maps jurisdiction codes to display names. Unknown codes
// render verbatim.
var jurisdictionLabels = map[string]string{
	"GB": "England & Wales",
	"SC": "Scotland",
	"NI": "Northern Ireland",
	"IE": "Ireland",
	"JE": "Jersey",
	"GG": "Guernsey",
	"IM": "Isle of Man",
}

// categoryOrder fixes the requirement group ordering. Enhanced diligence is
// rendered as its own sub-list after these groups.
var categoryOrder = []model.ActionCategory{
	model.ActionIdentification,
	model.ActionWealth,
	model.ActionFunds,
	model.ActionMonitoring,
	model.ActionEscalation,
}

var categoryHeadings = map[model.ActionCategory]string{
	model.ActionIdentification:    "Identification",
	model.ActionWealth:            "Wealth",
	model.ActionFunds:             "Funds",
	model.ActionMonitoring:        "Monitoring",
	model.ActionEscalation:        "Escalation",
	model.ActionEnhancedDiligence: "Enhanced Due Diligence",
}

// Policy citation tables, keyed by tier, action category, and outcome id.
// Trigger citations come verbatim from the snapshot's authority fields.
var tierPolicy = map[model.RiskTier][]string{
	model.TierLow:    {"AML Regulations 2017 reg. 28"},
	model.TierMedium: {"AML Regulations 2017 reg. 28", "LSAG Guidance ch. 4"},
	model.TierHigh:   {"AML Regulations 2017 reg. 33", "LSAG Guidance ch. 4"},
}

var categoryPolicy = map[model.ActionCategory][]string{
	model.ActionIdentification:    {"AML Regulations 2017 reg. 28"},
	model.ActionEnhancedDiligence: {"AML Regulations 2017 reg. 33"},
	model.ActionWealth:            {"Firm AML Policy s.5"},
	model.ActionFunds:             {"Firm AML Policy s.5"},
	model.ActionMonitoring:        {"AML Regulations 2017 reg. 28(11)"},
	model.ActionEscalation:        {"Firm AML Policy s.9"},
}

var outcomePolicy = map[string][]string{
	"pep_match":     {"AML Regulations 2017 reg. 35"},
	"prior_decline": {"Firm AML Policy s.3"},
}
