package schema

import "strings"

// LawCategory is one of the fixed legal domains a usage pattern can activate.
type LawCategory string

const (
	CategoryAISpecific         LawCategory = "ai-specific"
	CategoryBiometric          LawCategory = "biometric"
	CategoryWiretapping        LawCategory = "wiretapping"
	CategoryLieDetector        LawCategory = "lie-detector"
	CategoryFCRA               LawCategory = "fcra"
	CategoryPayTransparency    LawCategory = "pay-transparency"
	CategoryDataPrivacy        LawCategory = "data-privacy"
	CategoryAntiDiscrimination LawCategory = "anti-discrimination"
	CategoryDisability         LawCategory = "disability"
	CategoryAgeDiscrimination  LawCategory = "age-discrimination"
)

// Categories lists all ten categories in report order.
var Categories = []LawCategory{
	CategoryAISpecific,
	CategoryBiometric,
	CategoryWiretapping,
	CategoryLieDetector,
	CategoryFCRA,
	CategoryPayTransparency,
	CategoryDataPrivacy,
	CategoryAntiDiscrimination,
	CategoryDisability,
	CategoryAgeDiscrimination,
}

// FederalBaseline holds the categories that apply regardless of jurisdiction.
var FederalBaseline = []LawCategory{
	CategoryAntiDiscrimination,
	CategoryAgeDiscrimination,
	CategoryDisability,
}

var categoryLabels = map[LawCategory]string{
	CategoryAISpecific:         "AI-Specific Hiring Laws",
	CategoryBiometric:          "Biometric Privacy",
	CategoryWiretapping:        "Wiretapping/Recording Consent",
	CategoryLieDetector:        "Lie Detector/Polygraph Laws",
	CategoryFCRA:               "FCRA",
	CategoryPayTransparency:    "Pay Transparency Laws",
	CategoryDataPrivacy:        "Data Privacy",
	CategoryAntiDiscrimination: "Anti-Discrimination (Title VII)",
	CategoryDisability:         "Disability (ADA)",
	CategoryAgeDiscrimination:  "Age Discrimination (ADEA)",
}

var categorySubjects = map[LawCategory]string{
	CategoryAISpecific:         "Automated employment decision tool laws",
	CategoryBiometric:          "Biometric identifier statutes",
	CategoryWiretapping:        "All-party recording consent statutes",
	CategoryLieDetector:        "Lie detector and honesty-test restrictions",
	CategoryFCRA:               "Consumer report disclosure and adverse-action rules",
	CategoryPayTransparency:    "Salary range disclosure and salary-history bans",
	CategoryDataPrivacy:        "Applicant and employee data privacy statutes",
	CategoryAntiDiscrimination: "Disparate impact liability under Title VII",
	CategoryDisability:         "Reasonable accommodation duties under the ADA",
	CategoryAgeDiscrimination:  "Age-based disparate impact under the ADEA",
}

// IsValidCategory reports whether c is one of the ten defined categories.
func IsValidCategory(c LawCategory) bool {
	_, ok := categoryLabels[c]
	return ok
}

// IsFederalBaseline reports whether c applies everywhere.
func IsFederalBaseline(c LawCategory) bool {
	for _, b := range FederalBaseline {
		if b == c {
			return true
		}
	}
	return false
}

// Label returns the fixed human-readable label for c.
func (c LawCategory) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Describe generates the category description for a concrete set of
// applicable jurisdictions.
func (c LawCategory) Describe(triggered bool, jurisdictions []string) string {
	subject, ok := categorySubjects[c]
	if !ok {
		subject = string(c)
	}
	switch {
	case !triggered:
		return subject + " are not triggered by the declared AI usage."
	case len(jurisdictions) == 0 && IsFederalBaseline(c):
		return subject + " apply nationwide through federal law."
	case len(jurisdictions) == 0:
		return subject + " are triggered, but no hiring jurisdiction in scope has a specific statute."
	default:
		return subject + " apply in " + strings.Join(jurisdictions, ", ") + "."
	}
}
