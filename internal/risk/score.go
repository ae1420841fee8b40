// Package risk turns declared AI usage and hiring jurisdictions into
// per-category risk tiers, a per-jurisdiction risk map and an overall score.
package risk

import (
	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// Score weights.
const (
	weightCritical     = 25
	weightHigh         = 15
	weightMedium       = 8
	weightJurisdiction = 2
	maxScore           = 100
)

// Compute builds the risk assessment for one organization profile.
// Duplicate jurisdictions are counted once. Codes outside the registry are
// still counted and fall back to the federal baseline categories.
func Compute(rs *rules.Ruleset, toolIDs, jurisdictions, usages []string) schema.RiskAssessment {
	codes := dedup(jurisdictions)
	triggers := Triggers(rs, toolIDs, usages)

	membership := make(map[string][]schema.LawCategory, len(codes))
	for _, code := range codes {
		membership[code] = rs.Membership(code)
	}

	scores := make([]schema.CategoryRiskScore, 0, len(schema.Categories))
	for _, c := range schema.Categories {
		applicable := []string{}
		for _, code := range codes {
			if hasCategory(membership[code], c) {
				applicable = append(applicable, code)
			}
		}
		t, triggered := triggers[c]
		s := schema.CategoryRiskScore{
			Category:                c,
			Label:                   c.Label(),
			Description:             c.Describe(triggered, applicable),
			Tier:                    CategoryTier(rs, c, triggered, codes, applicable),
			Triggered:               triggered,
			ApplicableJurisdictions: applicable,
		}
		if triggered {
			s.TriggeredBy = t.Usages
			s.Tools = t.Tools
		}
		scores = append(scores, s)
	}

	riskMap := make(map[string]schema.JurisdictionRisk, len(codes))
	for _, code := range codes {
		cats := []schema.LawCategory{}
		for _, c := range schema.Categories {
			if _, ok := triggers[c]; ok && hasCategory(membership[code], c) {
				cats = append(cats, c)
			}
		}
		lawCount := 0
		if j, ok := rs.Jurisdiction(code); ok {
			lawCount = len(j.Laws)
		}
		riskMap[code] = schema.JurisdictionRisk{
			Tier:       JurisdictionTier(len(cats)),
			Categories: cats,
			LawCount:   lawCount,
		}
	}

	return schema.RiskAssessment{
		OverallScore:        Overall(scores, len(codes)),
		CategoryScores:      scores,
		JurisdictionRiskMap: riskMap,
	}
}

// CategoryTier assigns the tier of one category. The checks run in a fixed
// order and the first match wins:
//
//  1. not triggered: low
//  2. no applicable jurisdiction: medium
//  3. biometric and any of jurisdictions has a private right of action: critical
//  4. wiretapping and any of jurisdictions makes it a felony: critical
//  5. lie-detector: high
//  6. three or more applicable jurisdictions: high
//  7. otherwise medium
func CategoryTier(rs *rules.Ruleset, c schema.LawCategory, triggered bool, jurisdictions, applicable []string) schema.Tier {
	switch {
	case !triggered:
		return schema.TierLow
	case len(applicable) == 0:
		return schema.TierMedium
	case c == schema.CategoryBiometric && anyOf(jurisdictions, rs.BiometricPrivateAction):
		return schema.TierCritical
	case c == schema.CategoryWiretapping && anyOf(jurisdictions, rs.WiretapFelony):
		return schema.TierCritical
	case c == schema.CategoryLieDetector:
		return schema.TierHigh
	case len(applicable) >= 3:
		return schema.TierHigh
	}
	return schema.TierMedium
}

// JurisdictionTier grades a jurisdiction by the number of triggered
// categories it is a member of.
func JurisdictionTier(n int) schema.JurisdictionTier {
	switch {
	case n >= 6:
		return schema.JurisdictionHigh
	case n >= 4:
		return schema.JurisdictionModerate
	}
	return schema.JurisdictionBaseline
}

// Overall computes the additive overall score:
// 25 per critical, 15 per high, 8 per medium and 2 per jurisdiction,
// capped at 100. It ranks organizations; it is not a probability.
func Overall(scores []schema.CategoryRiskScore, jurisdictionCount int) int {
	critical, high, medium := Counts(scores)
	score := weightCritical*critical + weightHigh*high + weightMedium*medium + weightJurisdiction*jurisdictionCount
	if score > maxScore {
		score = maxScore
	}
	return score
}

// Counts returns the critical, high and medium category counts.
func Counts(scores []schema.CategoryRiskScore) (critical, high, medium int) {
	for _, s := range scores {
		switch s.Tier {
		case schema.TierCritical:
			critical++
		case schema.TierHigh:
			high++
		case schema.TierMedium:
			medium++
		}
	}
	return
}

// Highest returns the most severe category tier.
func Highest(scores []schema.CategoryRiskScore) schema.Tier {
	top := schema.TierLow
	for _, s := range scores {
		if s.Tier.AtLeast(top) {
			top = s.Tier
		}
	}
	return top
}

func hasCategory(cats []schema.LawCategory, c schema.LawCategory) bool {
	for _, x := range cats {
		if x == c {
			return true
		}
	}
	return false
}

func anyOf(codes []string, pred func(string) bool) bool {
	for _, code := range codes {
		if pred(code) {
			return true
		}
	}
	return false
}
