// Package rulestest provides a small rule set for tests that need to
// substitute the built-in rule tables.
package rulestest

import (
	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// Definition returns a minimal, valid rule set definition. Callers may
// modify the returned value before passing it to rules.New.
func Definition() rules.Definition {
	return rules.Definition{
		Name:                   "fixture",
		Version:                "0.1.0",
		Engine:                 ">= 1.0.0",
		FederalBaselineLaws:    []string{"Title VII", "ADEA", "ADA"},
		EmployeeTiers:          []string{"small", "large"},
		AllPartyConsent:        []string{"AA"},
		WiretapFelony:          []string{"AA"},
		BiometricPrivateAction: []string{"AA"},
		PayTransparency:        []string{"BB"},
		MonitoringLaws:         map[string][]string{"BB": {"BB Monitoring Act"}},
		UsageTriggers: []rules.UsageTrigger{
			{Usage: "screening", Categories: []schema.LawCategory{schema.CategoryAISpecific, schema.CategoryDataPrivacy}},
			{Usage: "facial-analysis", Categories: []schema.LawCategory{schema.CategoryLieDetector, schema.CategoryBiometric}},
			{Usage: "video-recording", Categories: []schema.LawCategory{schema.CategoryBiometric, schema.CategoryWiretapping}},
			{Usage: "salary-filtering", Categories: []schema.LawCategory{schema.CategoryPayTransparency}},
			{Usage: "third-party-reports", Categories: []schema.LawCategory{schema.CategoryFCRA}},
		},
		ToolCategoryUsages: map[string][]string{
			schema.ToolCategoryVideoInterview: {"video-recording"},
		},
		Tools: []schema.Tool{
			{ID: "cam", Name: "Cam", Category: schema.ToolCategoryVideoInterview},
			{ID: "check", Name: "Check", Category: schema.ToolCategoryBackgroundCheck},
			{ID: "watch", Name: "Watch", Category: schema.ToolCategoryMonitoring},
			{ID: "ats", Name: "ATS", Category: "ats"},
			{ID: "pen", Name: "Pen", Category: "writing"},
		},
		ToolTiers: rules.ToolTiers{
			High:   []string{"cam", "check"},
			Medium: []string{"watch", "ats"},
		},
		Jurisdictions: []schema.Jurisdiction{
			{
				Code: "AA", Name: "Alpha", LawName: "Alpha AI Act", Laws: []string{"AA AI Act"},
				EffectiveDate: "2020-01-01", IsActive: true,
				Categories: []schema.LawCategory{
					schema.CategoryAISpecific, schema.CategoryBiometric, schema.CategoryWiretapping,
					schema.CategoryAntiDiscrimination, schema.CategoryDisability, schema.CategoryAgeDiscrimination,
				},
				Requirements: []schema.Requirement{
					{ID: "shared-notice", Title: "Notice", Kind: schema.KindDocument, TargetPath: "/n", EstimatedMinutes: 30, Phase: schema.PhaseImmediate, Priority: 2},
					{ID: "aa-consent", Title: "Consent", Kind: schema.KindDocument, TargetPath: "/c", EstimatedMinutes: 20, Phase: schema.PhaseImmediate, Priority: 1},
				},
			},
			{
				Code: "BB", Name: "Beta", LawName: "Beta Pay Act", Laws: []string{"BB Pay Act"},
				EffectiveDate: "2021-01-01", IsActive: true,
				Categories: []schema.LawCategory{
					schema.CategoryPayTransparency, schema.CategoryDataPrivacy,
					schema.CategoryAntiDiscrimination, schema.CategoryDisability, schema.CategoryAgeDiscrimination,
				},
				Requirements: []schema.Requirement{
					{ID: "shared-notice", Title: "Notice", Kind: schema.KindDocument, TargetPath: "/n", EstimatedMinutes: 30, Phase: schema.PhaseImmediate, Priority: 2},
					{ID: "bb-posting", Title: "Posting", Kind: schema.KindAction, TargetPath: "/p", EstimatedMinutes: 45},
				},
			},
			{
				Code: "CC", Name: "Gamma", LawName: "Gamma Future Act", Laws: []string{"CC Future Act"},
				EffectiveDate: "2099-01-01", IsActive: false,
				Categories: []schema.LawCategory{
					schema.CategoryAISpecific, schema.CategoryAntiDiscrimination, schema.CategoryDisability, schema.CategoryAgeDiscrimination,
				},
				Requirements: []schema.Requirement{
					{ID: "cc-prep", Title: "Prepare", Kind: schema.KindAction, TargetPath: "/x", EstimatedMinutes: 15, Phase: schema.PhaseThisWeek, Priority: 1, MinEmployeeTier: "large"},
				},
			},
		},
		GeneralRequirements: []schema.Requirement{
			{ID: "inventory", Title: "Inventory", Kind: schema.KindAction, TargetPath: "/i", EstimatedMinutes: 30, Phase: schema.PhaseImmediate, Priority: 1},
			{ID: "policy", Title: "Policy", Kind: schema.KindDocument, TargetPath: "/pol", EstimatedMinutes: 60, Phase: schema.PhaseThisWeek},
		},
		Actions: []schema.ComplianceAction{
			{ID: "age-review", Category: schema.CategoryAgeDiscrimination, Title: "Age review", Priority: schema.TierLow, EstimatedMinutes: 10, TriggerUsages: []string{"screening"}},
			{ID: "bio-consent", Category: schema.CategoryBiometric, Title: "Bio consent", Priority: schema.TierCritical, EstimatedMinutes: 20, TriggerUsages: []string{"facial-analysis", "video-recording"}, TriggerJurisdictions: []string{"AA"}},
			{ID: "ai-disclosure", Category: schema.CategoryAISpecific, Title: "Disclose", Priority: schema.TierHigh, EstimatedMinutes: 30, TriggerUsages: []string{"screening"}},
			{ID: "pay-fix", Category: schema.CategoryPayTransparency, Title: "Pay fix", Priority: schema.TierHigh, EstimatedMinutes: 15, TriggerUsages: []string{"salary-filtering"}, TriggerJurisdictions: []string{"BB"}},
		},
	}
}

// Ruleset builds the fixture rule set.
func Ruleset() *rules.Ruleset {
	return rules.MustNew(Definition())
}
