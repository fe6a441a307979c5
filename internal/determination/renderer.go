// Package determination formats a persisted assessment snapshot into the
// fixed-format determination document. Rendering never recomputes the
// snapshot: identical snapshots yield byte-identical text regardless of when
// or where they are rendered.
package determination

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sells-group/compliance-cli/internal/model"
)

// EvidenceItem summarizes one piece of verification evidence supplied by the
// caller for inclusion in the document.
type EvidenceItem struct {
	Kind      string `json:"kind"` // document, electronic, biometric
	Label     string `json:"label"`
	Reference string `json:"reference,omitempty"`
}

// Options carries the optional presentation inputs.
type Options struct {
	Jurisdiction string
	Evidence     []EvidenceItem
}

// Section is one titled block of the determination document.
type Section struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Document is the rendered determination.
type Document struct {
	Text     string    `json:"text"`
	Sections []Section `json:"sections"`
}

const heading = "CLIENT DUE DILIGENCE RISK DETERMINATION"

// Breakdown table column widths.
const (
	colLabel  = 32
	colAnswer = 24
	colScore  = 5
)

// Render formats a snapshot into the determination document. Section order
// is fixed; optional sections (triggers, warnings, evidence) appear only
// when their inputs are present.
func Render(snapshot *model.AssessmentResult, opts Options) Document {
	sections := []Section{{Title: heading}}

	sections = append(sections, Section{Title: "Assessment Details", Body: metadataBody(snapshot, opts)})
	sections = append(sections, Section{Title: "Risk Determination", Body: determinationBody(snapshot)})
	sections = append(sections, Section{Title: "Scoring Breakdown", Body: breakdownBody(snapshot)})
	sections = append(sections, Section{Title: "Due Diligence Requirements", Body: requirementsBody(snapshot)})

	if len(snapshot.Triggers) > 0 {
		sections = append(sections, Section{Title: "Enhanced Diligence Triggers", Body: triggersBody(snapshot)})
	}
	if len(snapshot.Warnings) > 0 {
		sections = append(sections, Section{Title: "Escalation Warnings", Body: warningsBody(snapshot)})
	}
	if len(opts.Evidence) > 0 {
		sections = append(sections, Section{Title: "Verification Evidence", Body: evidenceBody(opts.Evidence)})
	}

	sections = append(sections, Section{Title: "Contributing Risk Factors", Body: contributingBody(snapshot)})
	sections = append(sections, Section{Title: "Policy References", Body: policyBody(snapshot)})
	sections = append(sections, Section{Title: "Risk Appetite", Body: appetiteBody(snapshot.Tier)})

	return Document{Text: assemble(sections), Sections: sections}
}

// assemble joins the sections into the document text. The heading is
// underlined with "=", every other title with "-".
func assemble(sections []Section) string {
	var b strings.Builder
	for i, s := range sections {
		rule := "-"
		if i == 0 {
			rule = "="
		}
		b.WriteString(s.Title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat(rule, len(s.Title)))
		b.WriteString("\n")
		if s.Body != "" {
			b.WriteString(s.Body)
			b.WriteString("\n")
		}
		if i < len(sections)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func metadataBody(snapshot *model.AssessmentResult, opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Client category: %s\n", snapshot.Category)
	fmt.Fprintf(&b, "Assessed: %s UTC", snapshot.Timestamp.UTC().Format("2006-01-02 15:04"))
	if opts.Jurisdiction != "" {
		label, ok := jurisdictionLabels[opts.Jurisdiction]
		if !ok {
			label = opts.Jurisdiction
		}
		fmt.Fprintf(&b, "\nJurisdiction: %s", label)
	}
	return b.String()
}

func determinationBody(snapshot *model.AssessmentResult) string {
	var b strings.Builder
	if label, ok := thresholdLabels[snapshot.Tier]; ok {
		fmt.Fprintf(&b, "Risk tier: %s (%s)\n", snapshot.Tier, label)
	} else {
		fmt.Fprintf(&b, "Risk tier: %s\n", snapshot.Tier)
	}
	fmt.Fprintf(&b, "Risk score: %d", snapshot.Score)
	if o := snapshot.AutomaticOutcome; o != nil {
		fmt.Fprintf(&b, "\nAutomatic outcome %s: %s (triggered by %s)", o.ID, o.Description, o.TriggeredBy)
	}
	return b.String()
}

// breakdownBody renders one fixed-width row per configured factor for the
// snapshot's category, including factors that were never answered.
func breakdownBody(snapshot *model.AssessmentResult) string {
	matched := make(map[string]model.RiskFactorResult, len(snapshot.RiskFactors))
	for _, f := range snapshot.RiskFactors {
		matched[f.FactorID] = f
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s\n", pad("Factor", colLabel), pad("Answer", colAnswer), fmt.Sprintf("%*s", colScore, "Score"))
	fmt.Fprintf(&b, "%s %s %s", strings.Repeat("-", colLabel), strings.Repeat("-", colAnswer), strings.Repeat("-", colScore))

	for _, col := range factorDisplay[snapshot.Category] {
		answer := "not applicable"
		score := "-"
		if f, ok := matched[col.ID]; ok {
			answer = f.Answer
			score = fmt.Sprintf("%d", f.Score)
		}
		fmt.Fprintf(&b, "\n%s %s %*s", pad(col.Label, colLabel), pad(answer, colAnswer), colScore, score)
	}
	return b.String()
}

// requirementsBody numbers the actions grouped by category in the fixed
// order, then renders enhanced-diligence actions as a distinct sub-list.
func requirementsBody(snapshot *model.AssessmentResult) string {
	var b strings.Builder
	n := 0
	for _, cat := range categoryOrder {
		var group []model.MandatoryAction
		for _, a := range snapshot.Actions {
			if a.Category == cat {
				group = append(group, a)
			}
		}
		if len(group) == 0 {
			continue
		}
		if n > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:", categoryHeadings[cat])
		for _, a := range group {
			n++
			fmt.Fprintf(&b, "\n  %d. %s (%s)", n, a.Name, a.Priority)
			if len(a.EvidenceTypes) > 0 {
				fmt.Fprintf(&b, "\n     Evidence: %s", strings.Join(a.EvidenceTypes, ", "))
			}
		}
		b.WriteString("\n")
	}

	var enhanced []model.MandatoryAction
	for _, a := range snapshot.Actions {
		if a.Category == model.ActionEnhancedDiligence {
			enhanced = append(enhanced, a)
		}
	}
	if len(enhanced) > 0 {
		if n > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s:", categoryHeadings[model.ActionEnhancedDiligence])
		for i, a := range enhanced {
			fmt.Fprintf(&b, "\n  E%d. %s (%s)", i+1, a.Name, a.Priority)
			if len(a.EvidenceTypes) > 0 {
				fmt.Fprintf(&b, "\n      Evidence: %s", strings.Join(a.EvidenceTypes, ", "))
			}
		}
		b.WriteString("\n")
	}

	body := strings.TrimRight(b.String(), "\n")
	if body == "" {
		body = "No catalogue actions resolved. Escalate to manual compliance review."
	}
	return body
}

func triggersBody(snapshot *model.AssessmentResult) string {
	var lines []string
	for _, t := range snapshot.Triggers {
		lines = append(lines, fmt.Sprintf("- %s (%s) [%s]", t.Description, t.TriggeredBy, t.Authority))
	}
	return strings.Join(lines, "\n")
}

func warningsBody(snapshot *model.AssessmentResult) string {
	var lines []string
	for _, w := range snapshot.Warnings {
		lines = append(lines, fmt.Sprintf("- %s [%s]", w.Message, w.Authority))
	}
	return strings.Join(lines, "\n")
}

// evidenceBody formats the supplied evidence summary per evidence kind.
func evidenceBody(items []EvidenceItem) string {
	var lines []string
	for _, e := range items {
		switch e.Kind {
		case "document":
			lines = append(lines, fmt.Sprintf("- Document: %s (ref %s)", e.Label, e.Reference))
		case "electronic":
			lines = append(lines, fmt.Sprintf("- Electronic check: %s, reference %s", e.Label, e.Reference))
		case "biometric":
			lines = append(lines, fmt.Sprintf("- Biometric: %s (ref %s)", e.Label, e.Reference))
		default:
			lines = append(lines, fmt.Sprintf("- %s: %s", e.Kind, e.Label))
		}
	}
	return strings.Join(lines, "\n")
}

// contributingBody lists non-zero factors sorted by descending score, then
// factor id for a deterministic tie-break.
func contributingBody(snapshot *model.AssessmentResult) string {
	var contributing []model.RiskFactorResult
	for _, f := range snapshot.RiskFactors {
		if f.Score > 0 {
			contributing = append(contributing, f)
		}
	}
	sort.SliceStable(contributing, func(i, j int) bool {
		if contributing[i].Score != contributing[j].Score {
			return contributing[i].Score > contributing[j].Score
		}
		return contributing[i].FactorID < contributing[j].FactorID
	})

	if len(contributing) == 0 {
		return "No factors contributed to the score."
	}
	var lines []string
	for _, f := range contributing {
		lines = append(lines, fmt.Sprintf("- %s: %s (+%d)", f.Label, f.Answer, f.Score))
	}
	return strings.Join(lines, "\n")
}

// policyBody collects citations from the tier, the action categories
// present, the automatic outcome, and the triggers, deduplicated and sorted
// alphabetically.
func policyBody(snapshot *model.AssessmentResult) string {
	seen := map[string]bool{}
	var refs []string
	add := func(rs ...string) {
		for _, r := range rs {
			if r != "" && !seen[r] {
				seen[r] = true
				refs = append(refs, r)
			}
		}
	}

	add(tierPolicy[snapshot.Tier]...)
	for _, a := range snapshot.Actions {
		add(categoryPolicy[a.Category]...)
	}
	if snapshot.AutomaticOutcome != nil {
		add(outcomePolicy[snapshot.AutomaticOutcome.ID]...)
	}
	for _, t := range snapshot.Triggers {
		add(t.Authority)
	}

	sort.Strings(refs)
	if len(refs) == 0 {
		return "None."
	}
	var lines []string
	for _, r := range refs {
		lines = append(lines, "- "+r)
	}
	return strings.Join(lines, "\n")
}

func appetiteBody(tier model.RiskTier) string {
	if tier == mostSevereTier {
		return appetiteOutside
	}
	return appetiteWithin
}

// pad left-aligns s in a field of width w, truncating with an ellipsis when
// it overflows.
func pad(s string, w int) string {
	if len(s) > w {
		return s[:w-3] + "..."
	}
	return s + strings.Repeat(" ", w-len(s))
}
