package schema

// Report is the top-level assessment output handed to renderers.
type Report struct {
	ID       string             `json:"id"`
	Tool     string             `json:"tool"`
	Version  string             `json:"version"`
	Input    Input              `json:"input"`
	Ruleset  RulesetInfo        `json:"ruleset"`
	Summary  Summary            `json:"summary"`
	Tools    ToolAnalysisResult `json:"tools"`
	Risk     RiskAssessment     `json:"risk"`
	Phases   []PhaseGroup       `json:"phases"`
	Actions  []ComplianceAction `json:"actions"`
	Upcoming []UpcomingLaw      `json:"upcoming"`
	Warnings []Warning          `json:"warnings"`
}

// Input echoes the normalized organization profile the report was built from.
type Input struct {
	Jurisdictions []string `json:"jurisdictions"`
	Tools         []string `json:"tools"`
	Usages        []string `json:"usages"`
	EmployeeTier  string   `json:"employee_tier,omitempty"`
	ProfileHash   string   `json:"profile_hash"` // "sha256:<hex>" of the normalized profile
}

// RulesetInfo identifies the rule tables used.
type RulesetInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Hash    string `json:"hash"`
}

// Summary holds the headline numbers of a report.
type Summary struct {
	OverallScore  int    `json:"overall_score"`
	HighestTier   Tier   `json:"highest_tier"`
	CriticalCount int    `json:"critical_count"`
	HighCount     int    `json:"high_count"`
	MediumCount   int    `json:"medium_count"`
	HighRiskTools int    `json:"high_risk_tools"`
	TaskCount     int    `json:"task_count"`
	TotalMinutes  int    `json:"total_minutes"`
	TotalEstimate string `json:"total_estimate"`
	ActionCount   int    `json:"action_count"`
	WarningCount  int    `json:"warning_count"`
	Jurisdictions int    `json:"jurisdiction_count"`
}

// UpcomingLaw is a registry jurisdiction in scope whose law is not yet in force.
type UpcomingLaw struct {
	Code          string `json:"code"`
	LawName       string `json:"law_name"`
	EffectiveDate string `json:"effective_date"`
}

// WarningCode classifies an input the engine absorbed instead of rejecting.
type WarningCode string

const (
	WarnUnknownJurisdiction WarningCode = "UNKNOWN_JURISDICTION"
	WarnUnknownTool         WarningCode = "UNKNOWN_TOOL"
	WarnUnknownUsage        WarningCode = "UNKNOWN_USAGE"
	WarnUnknownEmployeeTier WarningCode = "UNKNOWN_EMPLOYEE_TIER"
	WarnDuplicateInput      WarningCode = "DUPLICATE_INPUT"
)

// Warning is a non-fatal notice about an absorbed input. Warnings never
// change scores, buckets or checklists.
type Warning struct {
	Code    WarningCode `json:"code"`
	Subject string      `json:"subject"`
	Message string      `json:"message"`
}
