package rules

import "github.com/sells-group/compliance-cli/internal/model"

func intPtr(v int) *int { return &v }

// DefaultScoringRules returns the built-in scoring-rules document. It is
// used when no document path is configured and as the reference rule set in
// tests.
func DefaultScoringRules() ScoringRules {
	return ScoringRules{
		Tiers: []TierThreshold{
			{Tier: model.TierLow, Min: 0, Max: intPtr(4)},
			{Tier: model.TierMedium, Min: 5, Max: intPtr(8)},
			{Tier: model.TierHigh, Min: 9},
		},
		Outcomes: []AutomaticOutcome{
			{
				ID:                "pep_match",
				Description:       "Politically exposed person identified",
				PolicyRef:         "AML Regulations 2017 reg. 35",
				ForcesHighestTier: true,
			},
			{
				ID:          "prior_decline",
				Description: "Client previously declined by the firm",
				PolicyRef:   "Firm AML Policy s.3",
			},
		},
		Sections: map[model.ClientCategory][]ScoringSection{
			model.CategoryIndividual: {
				{
					Name: "Client profile",
					Factors: []ScoringFactor{
						{
							ID: "residency", FieldID: "residency_status",
							Label: "Residency status", Scored: true,
							Options: []Option{
								{Equals: "uk_resident", Value: 0},
								{AnyOf: []string{"eu_resident", "us_resident"}, Value: 1},
								{Equals: "non_resident", Value: 3},
							},
						},
						{
							ID: "jurisdiction", FieldID: "country_of_residence",
							Label: "Country of residence", Scored: true,
							Options: []Option{
								{AnyOf: []string{"GB", "IE", "US", "CA", "AU", "NZ"}, Value: 0},
								{Prefix: "monitored_", Value: 2},
								{Prefix: "high_risk_", Value: 5},
							},
						},
						{
							ID: "pep", FieldID: "pep_status",
							Label: "PEP status", Scored: true,
							Options: []Option{
								{Equals: "none", Value: 0},
								{AnyOf: []string{"domestic_pep", "foreign_pep", "pep_family", "pep_associate"}, OutcomeID: "pep_match"},
							},
						},
					},
				},
				{
					Name: "Engagement profile",
					Factors: []ScoringFactor{
						{
							ID: "source_of_funds", FieldID: "source_of_funds",
							Label: "Source of funds", Scored: true,
							Options: []Option{
								{AnyOf: []string{"employment_income", "savings"}, Value: 0},
								{AnyOf: []string{"inheritance", "property_sale"}, Value: 1},
								{Equals: "gift", Value: 2},
								{AnyOf: []string{"crypto_assets", "gambling_winnings"}, Value: 4},
							},
						},
						{
							ID: "channel", FieldID: "onboarding_channel",
							Label: "Onboarding channel", Scored: true,
							Options: []Option{
								{Equals: "in_person", Value: 0},
								{Equals: "remote_verified", Value: 1},
								{Equals: "remote_unverified", Value: 2},
							},
						},
						{
							// Informational only: feeds the automatic-outcome
							// scan but never the score.
							ID: "prior_history", FieldID: "prior_relationship",
							Label: "Prior relationship", Scored: false,
							Options: []Option{
								{Equals: "declined_previously", OutcomeID: "prior_decline"},
							},
						},
					},
				},
			},
			model.CategoryCorporate: {
				{
					Name: "Entity profile",
					Factors: []ScoringFactor{
						{
							ID: "entity_type", FieldID: "entity_type",
							Label: "Entity type", Scored: true,
							Options: []Option{
								{AnyOf: []string{"private_company", "plc"}, Value: 0},
								{AnyOf: []string{"llp", "general_partnership"}, Value: 1},
								{Equals: "offshore_company", Value: 4},
								{Prefix: "foreign_", Value: 2},
							},
						},
						{
							ID: "ownership", FieldID: "ownership_structure",
							Label: "Ownership structure", Scored: true,
							Options: []Option{
								{Equals: "simple", Value: 0},
								{Equals: "nominee_shareholders", Value: 3},
								{Equals: "complex_layered", Value: 4},
							},
						},
						{
							ID: "ubo_pep", FieldID: "ubo_pep_status",
							Label: "Beneficial owner PEP status", Scored: true,
							Options: []Option{
								{Equals: "none", Value: 0},
								{AnyOf: []string{"pep_ubo", "pep_controller"}, OutcomeID: "pep_match"},
							},
						},
					},
				},
				{
					Name: "Business profile",
					Factors: []ScoringFactor{
						{
							ID: "industry", FieldID: "industry",
							Label: "Industry", Scored: true,
							Options: []Option{
								{AnyOf: []string{"professional_services", "manufacturing", "retail"}, Value: 0},
								{AnyOf: []string{"real_estate", "construction"}, Value: 2},
								{Prefix: "cash_intensive_", Value: 3},
								{AnyOf: []string{"gambling", "crypto_exchange", "precious_metals"}, Value: 4},
							},
						},
						{
							ID: "incorporation", FieldID: "country_of_incorporation",
							Label: "Country of incorporation", Scored: true,
							Options: []Option{
								{AnyOf: []string{"GB", "IE"}, Value: 0},
								{Prefix: "monitored_", Value: 2},
								{Prefix: "high_risk_", Value: 5},
							},
						},
					},
				},
			},
		},
		Triggers: map[model.ClientCategory][]TriggerFactor{
			model.CategoryIndividual: {
				{
					ID: "adverse_media", FieldID: "adverse_media",
					Description: "Adverse media coverage reported",
					Authority:   "LSAG Guidance ch. 5",
					Options:     []Option{{AnyOf: []string{"confirmed", "suspected"}}},
				},
				{
					ID: "third_party_funding", FieldID: "third_party_funding",
					Description: "Fees or funds provided by an uninvolved third party",
					Authority:   "Firm AML Policy s.6",
					Options:     []Option{{Equals: "yes"}},
				},
			},
			model.CategoryCorporate: {
				{
					ID: "adverse_media", FieldID: "adverse_media",
					Description: "Adverse media coverage reported",
					Authority:   "LSAG Guidance ch. 5",
					Options:     []Option{{AnyOf: []string{"confirmed", "suspected"}}},
				},
				{
					ID: "cash_intensity", FieldID: "expected_cash_volume",
					Description: "High expected volume of cash transactions",
					Authority:   "AML Regulations 2017 reg. 33",
					Options:     []Option{{AnyOf: []string{"high", "very_high"}}},
				},
			},
		},
	}
}

// DefaultActionCatalogue returns the built-in CDD action catalogue.
func DefaultActionCatalogue() ActionCatalogue {
	newClient := &NewClientRule{
		FieldID: "client_relationship",
		Equals:  "new",
		FormAction: CatalogueAction{
			ID:          "wealth_declaration_form",
			Name:        "Source of wealth declaration",
			Description: "Obtain a completed source of wealth declaration form from the client.",
			DisplayText: "Please complete the source of wealth declaration form.",
			Category:    model.ActionWealth,
			Priority:    model.PriorityRequired,
		},
		EvidenceAction: CatalogueAction{
			ID:            "wealth_supporting_evidence",
			Name:          "Wealth declaration supporting evidence",
			Description:   "Collect documentary evidence supporting the wealth declaration.",
			Category:      model.ActionWealth,
			Priority:      model.PriorityRecommended,
			EvidenceTypes: []string{"bank_statement", "investment_statement"},
		},
	}

	seniorApproval := CatalogueAction{
		ID:          "senior_partner_approval",
		Name:        "Senior partner approval",
		Description: "Obtain written approval from a senior partner before acting.",
		Category:    model.ActionEnhancedDiligence,
		Priority:    model.PriorityRequired,
	}
	wealthCorroboration := CatalogueAction{
		ID:            "corroborate_source_of_wealth",
		Name:          "Corroborate source of wealth",
		Description:   "Independently corroborate the client's declared source of wealth.",
		Category:      model.ActionEnhancedDiligence,
		Priority:      model.PriorityRequired,
		EvidenceTypes: []string{"bank_statement", "asset_register"},
	}
	enhancedMonitoring := CatalogueAction{
		ID:          "enhanced_transaction_monitoring",
		Name:        "Enhanced transaction monitoring",
		Description: "Place the matter under enhanced transaction monitoring for its duration.",
		Category:    model.ActionMonitoring,
		Priority:    model.PriorityRequired,
	}
	mlroNotification := CatalogueAction{
		ID:          "mlro_notification",
		Name:        "Notify the MLRO",
		Description: "Notify the Money Laundering Reporting Officer of the engagement.",
		Category:    model.ActionEscalation,
		Priority:    model.PriorityRequired,
	}
	documentFunds := CatalogueAction{
		ID:            "document_source_of_funds",
		Name:          "Document source of funds",
		Description:   "Record and evidence the source of funds for the engagement.",
		Category:      model.ActionFunds,
		Priority:      model.PriorityRequired,
		EvidenceTypes: []string{"bank_statement", "payslip"},
	}
	review36 := CatalogueAction{
		ID:          "periodic_review_36m",
		Name:        "Periodic review (36 months)",
		Description: "Review the client file at least every 36 months.",
		Category:    model.ActionMonitoring,
		Priority:    model.PriorityRequired,
	}
	review12 := CatalogueAction{
		ID:          "periodic_review_12m",
		Name:        "Periodic review (12 months)",
		Description: "Review the client file at least every 12 months.",
		Category:    model.ActionMonitoring,
		Priority:    model.PriorityRequired,
	}

	return ActionCatalogue{
		EntityField: "entity_type",
		EntityKeys: map[string]string{
			"private_company":     "company",
			"plc":                 "company",
			"offshore_company":    "company",
			"foreign_company":     "company",
			"llp":                 "partnership",
			"general_partnership": "partnership",
		},
		DefaultKey: "company",
		Escalations: []EscalationPattern{
			{
				Match:     "trust",
				WarningID: "entity_trust",
				Message:   "Trusts are outside the standard catalogue and require manual compliance review.",
				Authority: "Firm AML Policy s.9",
			},
			{
				Match:     "unincorporated_association",
				WarningID: "entity_unincorporated",
				Message:   "Unincorporated associations require manual compliance review.",
				Authority: "Firm AML Policy s.9",
			},
			{
				Match:     "foundation",
				WarningID: "entity_foundation",
				Message:   "Foundations are outside the standard catalogue and require manual compliance review.",
				Authority: "Firm AML Policy s.9",
			},
		},
		EnhancedMonitoringActionID: "enhanced_transaction_monitoring",
		ClientTypes: map[string]ClientTypeRules{
			"individual": {
				NewClient: newClient,
				Bundles: map[model.RiskTier]ActionBundle{
					model.TierLow: {
						Identification: []CatalogueAction{
							{
								ID:            "verify_identity_document",
								Name:          "Verify identity document",
								Description:   "Verify the client's identity against an original photographic identity document.",
								DisplayText:   "Please provide photographic identification.",
								Category:      model.ActionIdentification,
								Priority:      model.PriorityRequired,
								EvidenceTypes: []string{"passport", "driving_licence", "national_id"},
							},
							{
								ID:            "verify_current_address",
								Name:          "Verify current address",
								Description:   "Verify the client's current residential address.",
								DisplayText:   "Please provide proof of your current address.",
								Category:      model.ActionIdentification,
								Priority:      model.PriorityRequired,
								EvidenceTypes: []string{"utility_bill", "bank_statement"},
							},
						},
						Monitoring: []CatalogueAction{review36},
					},
					model.TierMedium: {
						Identification: []CatalogueAction{
							{
								ID:            "second_identity_document",
								Name:          "Second identity document",
								Description:   "Obtain a second, independent identity document.",
								Category:      model.ActionIdentification,
								Priority:      model.PriorityRequired,
								EvidenceTypes: []string{"passport", "driving_licence"},
							},
						},
						Funds:      []CatalogueAction{documentFunds},
						Monitoring: []CatalogueAction{review12},
					},
					model.TierHigh: {
						EnhancedDiligence: []CatalogueAction{
							seniorApproval,
							{
								ID:            "independent_identity_verification",
								Name:          "Independent identity verification",
								Description:   "Verify identity through an independent electronic verification provider.",
								Category:      model.ActionEnhancedDiligence,
								Priority:      model.PriorityRequired,
								EvidenceTypes: []string{"certified_copy"},
							},
							wealthCorroboration,
							mlroNotification,
						},
						Monitoring: []CatalogueAction{enhancedMonitoring},
					},
				},
			},
			"company": {
				NewClient: newClient,
				Bundles: map[model.RiskTier]ActionBundle{
					model.TierLow: {
						Identification: []CatalogueAction{
							{
								ID:            "verify_company_registration",
								Name:          "Verify company registration",
								Description:   "Confirm the company's registration with the corporate registry.",
								Category:      model.ActionIdentification,
								Priority:      model.PriorityRequired,
								EvidenceTypes: []string{"registry_extract"},
							},
							{
								ID:          "verify_registered_office",
								Name:        "Verify registered office",
								Description: "Confirm the company's registered office address.",
								Category:    model.ActionIdentification,
								Priority:    model.PriorityRequired,
							},
						},
						BeneficialOwnership: []CatalogueAction{
							{
								ID:            "identify_beneficial_owners",
								Name:          "Identify beneficial owners",
								Description:   "Identify all beneficial owners holding 25% or more.",
								Category:      model.ActionIdentification,
								Priority:      model.PriorityRequired,
								EvidenceTypes: []string{"ownership_chart"},
							},
						},
						Monitoring: []CatalogueAction{review36},
					},
					model.TierMedium: {
						Identification: []CatalogueAction{
							{
								ID:          "verify_directors",
								Name:        "Verify directors",
								Description: "Verify the identity of the directors instructing the firm.",
								Category:    model.ActionIdentification,
								Priority:    model.PriorityRequired,
							},
						},
						BeneficialOwnership: []CatalogueAction{
							{
								ID:            "verify_beneficial_owner_identity",
								Name:          "Verify beneficial owner identity",
								Description:   "Verify the identity of each beneficial owner.",
								Category:      model.ActionIdentification,
								Priority:      model.PriorityRequired,
								EvidenceTypes: []string{"passport", "national_id"},
							},
						},
						Funds:      []CatalogueAction{documentFunds},
						Monitoring: []CatalogueAction{review12},
					},
					model.TierHigh: {
						EnhancedDiligence: []CatalogueAction{
							seniorApproval,
							{
								ID:          "independent_registry_check",
								Name:        "Independent registry check",
								Description: "Cross-check ownership and control against an independent registry source.",
								Category:    model.ActionEnhancedDiligence,
								Priority:    model.PriorityRequired,
							},
							wealthCorroboration,
							mlroNotification,
						},
						Monitoring: []CatalogueAction{enhancedMonitoring},
					},
				},
			},
			"partnership": {
				NewClient: newClient,
				Bundles: map[model.RiskTier]ActionBundle{
					model.TierLow: {
						Identification: []CatalogueAction{
							{
								ID:            "verify_partnership_agreement",
								Name:          "Verify partnership agreement",
								Description:   "Obtain and verify the partnership agreement or deed.",
								Category:      model.ActionIdentification,
								Priority:      model.PriorityRequired,
								EvidenceTypes: []string{"partnership_deed"},
							},
							{
								ID:          "verify_principal_partners",
								Name:        "Verify principal partners",
								Description: "Verify the identity of the principal partners.",
								Category:    model.ActionIdentification,
								Priority:    model.PriorityRequired,
							},
						},
						Monitoring: []CatalogueAction{review36},
					},
					model.TierMedium: {
						BeneficialOwnership: []CatalogueAction{
							{
								ID:          "verify_partner_identities",
								Name:        "Verify partner identities",
								Description: "Verify the identity of every partner with a controlling interest.",
								Category:    model.ActionIdentification,
								Priority:    model.PriorityRequired,
							},
						},
						Funds:      []CatalogueAction{documentFunds},
						Monitoring: []CatalogueAction{review12},
					},
					model.TierHigh: {
						EnhancedDiligence: []CatalogueAction{
							seniorApproval,
							{
								ID:            "independent_identity_verification",
								Name:          "Independent identity verification",
								Description:   "Verify identity through an independent electronic verification provider.",
								Category:      model.ActionEnhancedDiligence,
								Priority:      model.PriorityRequired,
								EvidenceTypes: []string{"certified_copy"},
							},
							wealthCorroboration,
							mlroNotification,
						},
						Monitoring: []CatalogueAction{enhancedMonitoring},
					},
				},
			},
		},
	}
}

// Defaults returns the built-in rule configuration.
func Defaults() *Config {
	return &Config{
		Scoring:   DefaultScoringRules(),
		Catalogue: DefaultActionCatalogue(),
	}
}
