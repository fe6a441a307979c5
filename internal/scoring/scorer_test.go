package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/compliance-cli/internal/model"
	"github.com/sells-group/compliance-cli/internal/rules"
)

func defaultRules() rules.ScoringRules {
	return rules.DefaultScoringRules()
}

func TestScore_TierBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		answers model.Answers
		score   int
		tier    model.RiskTier
	}{
		{
			name: "top of LOW",
			answers: model.Answers{
				"residency_status":   model.Answer("eu_resident"),
				"source_of_funds":    model.Answer("gift"),
				"onboarding_channel": model.Answer("remote_verified"),
			},
			score: 4,
			tier:  model.TierLow,
		},
		{
			name: "bottom of MEDIUM",
			answers: model.Answers{
				"residency_status": model.Answer("non_resident"),
				"source_of_funds":  model.Answer("gift"),
			},
			score: 5,
			tier:  model.TierMedium,
		},
		{
			name: "top of MEDIUM",
			answers: model.Answers{
				"residency_status":   model.Answer("non_resident"),
				"source_of_funds":    model.Answer("crypto_assets"),
				"onboarding_channel": model.Answer("remote_verified"),
			},
			score: 8,
			tier:  model.TierMedium,
		},
		{
			name: "bottom of HIGH",
			answers: model.Answers{
				"residency_status":   model.Answer("non_resident"),
				"source_of_funds":    model.Answer("crypto_assets"),
				"onboarding_channel": model.Answer("remote_unverified"),
			},
			score: 9,
			tier:  model.TierHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Score(defaultRules(), model.CategoryIndividual, tt.answers)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, tt.tier, result.Tier)
			assert.False(t, result.TierForced)
			assert.Nil(t, result.AutomaticOutcome)
		})
	}
}

func TestScore_EmptyAnswers(t *testing.T) {
	result := Score(defaultRules(), model.CategoryIndividual, model.Answers{})

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, model.TierLow, result.Tier)
	assert.Empty(t, result.Factors)
}

func TestScore_UnmatchedAnswerSkippedSilently(t *testing.T) {
	result := Score(defaultRules(), model.CategoryIndividual, model.Answers{
		"residency_status": model.Answer("martian"),
	})

	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Factors)
}

func TestScore_ZeroScoreMatchIsRecorded(t *testing.T) {
	result := Score(defaultRules(), model.CategoryIndividual, model.Answers{
		"residency_status": model.Answer("uk_resident"),
	})

	assert.Equal(t, 0, result.Score)
	require.Len(t, result.Factors, 1)
	assert.Equal(t, "residency", result.Factors[0].FactorID)
	assert.Equal(t, 0, result.Factors[0].Score)
}

func TestScore_FirstMatchWins(t *testing.T) {
	sr := defaultRules()
	sr.Sections[model.CategoryIndividual] = []rules.ScoringSection{{
		Name: "Profile",
		Factors: []rules.ScoringFactor{{
			ID: "channel", FieldID: "onboarding_channel",
			Label: "Onboarding channel", Scored: true,
			Options: []rules.Option{
				{Prefix: "remote_", Value: 1},
				{Equals: "remote_unverified", Value: 2},
			},
		}},
	}}

	result := Score(sr, model.CategoryIndividual, model.Answers{
		"onboarding_channel": model.Answer("remote_unverified"),
	})

	// The prefix option is declared first so it wins despite the later
	// exact option.
	assert.Equal(t, 1, result.Score)
}

func TestScore_MultiValueFirstMatchWins(t *testing.T) {
	result := Score(defaultRules(), model.CategoryIndividual, model.Answers{
		"source_of_funds": model.MultiAnswer("savings", "crypto_assets"),
	})

	// "savings" satisfies the first declared option, so the crypto option
	// never gets tried.
	assert.Equal(t, 0, result.Score)
	require.Len(t, result.Factors, 1)
	assert.Equal(t, "savings, crypto_assets", result.Factors[0].Answer)
}

func TestScore_PrefixMatching(t *testing.T) {
	result := Score(defaultRules(), model.CategoryIndividual, model.Answers{
		"country_of_residence": model.Answer("high_risk_jurisdiction_a"),
	})

	assert.Equal(t, 5, result.Score)
	assert.Equal(t, model.TierMedium, result.Tier)
}

func TestScore_ForcingOutcomeOverridesTier(t *testing.T) {
	result := Score(defaultRules(), model.CategoryIndividual, model.Answers{
		"residency_status": model.Answer("uk_resident"),
		"pep_status":       model.Answer("domestic_pep"),
	})

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, model.TierHigh, result.Tier)
	assert.True(t, result.TierForced)
	require.NotNil(t, result.AutomaticOutcome)
	assert.Equal(t, "pep_match", result.AutomaticOutcome.ID)
	assert.Equal(t, "pep_status = domestic_pep", result.AutomaticOutcome.TriggeredBy)
}

func TestScore_NonForcingOutcomeKeepsTier(t *testing.T) {
	// prior_relationship is unscored: it feeds the outcome scan but never
	// the score.
	result := Score(defaultRules(), model.CategoryIndividual, model.Answers{
		"residency_status":   model.Answer("uk_resident"),
		"prior_relationship": model.Answer("declined_previously"),
	})

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, model.TierLow, result.Tier)
	assert.False(t, result.TierForced)
	require.NotNil(t, result.AutomaticOutcome)
	assert.Equal(t, "prior_decline", result.AutomaticOutcome.ID)
}

func TestScore_UnscoredFactorNeverScores(t *testing.T) {
	result := Score(defaultRules(), model.CategoryIndividual, model.Answers{
		"prior_relationship": model.Answer("declined_previously"),
	})

	assert.Empty(t, result.Factors)
}

func TestScore_TierFallbackToMostSevere(t *testing.T) {
	sr := defaultRules()
	sr.Tiers = []rules.TierThreshold{
		{Tier: model.TierLow, Min: 0, Max: intPtr(2)},
		{Tier: model.TierHigh, Min: 5},
	}

	result := Score(sr, model.CategoryIndividual, model.Answers{
		"residency_status": model.Answer("non_resident"), // 3, inside the gap
	})

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, model.TierHigh, result.Tier)
}

func TestScore_CorporateSections(t *testing.T) {
	result := Score(defaultRules(), model.CategoryCorporate, model.Answers{
		"entity_type":              model.Answer("offshore_company"),
		"ownership_structure":      model.Answer("complex_layered"),
		"industry":                 model.Answer("gambling"),
		"country_of_incorporation": model.Answer("monitored_jurisdiction_b"),
	})

	assert.Equal(t, 14, result.Score)
	assert.Equal(t, model.TierHigh, result.Tier)
	assert.Len(t, result.Factors, 4)
}

func TestCheckTriggers_Matches(t *testing.T) {
	triggers := CheckTriggers(defaultRules(), model.CategoryIndividual, model.Answers{
		"adverse_media":       model.Answer("confirmed"),
		"third_party_funding": model.Answer("yes"),
	})

	require.Len(t, triggers, 2)
	assert.Equal(t, "adverse_media", triggers[0].TriggerID)
	assert.Equal(t, "adverse_media = confirmed", triggers[0].TriggeredBy)
	assert.Equal(t, "LSAG Guidance ch. 5", triggers[0].Authority)
	assert.Equal(t, "third_party_funding", triggers[1].TriggerID)
}

func TestCheckTriggers_NoMatch(t *testing.T) {
	triggers := CheckTriggers(defaultRules(), model.CategoryIndividual, model.Answers{
		"adverse_media":       model.Answer("none"),
		"third_party_funding": model.Answer("no"),
	})

	assert.Empty(t, triggers)
}

func TestCheckTriggers_IndependentOfScore(t *testing.T) {
	answers := model.Answers{
		"residency_status": model.Answer("uk_resident"),
		"adverse_media":    model.Answer("suspected"),
	}

	result := Score(defaultRules(), model.CategoryIndividual, answers)
	triggers := CheckTriggers(defaultRules(), model.CategoryIndividual, answers)

	assert.Equal(t, 0, result.Score)
	assert.Equal(t, model.TierLow, result.Tier)
	assert.Len(t, triggers, 1)
}

func intPtr(v int) *int { return &v }
