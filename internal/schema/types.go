package schema

// Jurisdiction is a state, city or region with its own AI-hiring law set.
type Jurisdiction struct {
	Code          string        `yaml:"code" json:"code"`
	Name          string        `yaml:"name" json:"name"`
	LawName       string        `yaml:"law_name" json:"law_name"`
	Laws          []string      `yaml:"laws,omitempty" json:"laws,omitempty"` // short names attached to tool findings
	EffectiveDate string        `yaml:"effective_date" json:"effective_date"` // YYYY-MM-DD
	IsActive      bool          `yaml:"is_active" json:"is_active"`
	Categories    []LawCategory `yaml:"categories" json:"categories"`
	Requirements  []Requirement `yaml:"requirements,omitempty" json:"requirements,omitempty"`
}

// HasCategory reports whether the jurisdiction is a member of c.
func (j *Jurisdiction) HasCategory(c LawCategory) bool {
	for _, jc := range j.Categories {
		if jc == c {
			return true
		}
	}
	return false
}

// Requirement is one concrete compliance task. ID is unique across the
// whole merged requirement universe and is the dedup key.
type Requirement struct {
	ID                  string          `yaml:"id" json:"id"`
	Title               string          `yaml:"title" json:"title"`
	Description         string          `yaml:"description" json:"description"`
	Kind                RequirementKind `yaml:"kind" json:"kind"`
	RelatedDocumentType string          `yaml:"related_document_type,omitempty" json:"related_document_type,omitempty"`
	TargetPath          string          `yaml:"target_path" json:"target_path"`
	EstimatedMinutes    int             `yaml:"estimated_minutes,omitempty" json:"estimated_minutes,omitempty"`
	Phase               Phase           `yaml:"phase,omitempty" json:"phase,omitempty"`
	// Priority orders tasks within a phase, starting at 1; 0 means unset.
	Priority        int    `yaml:"priority,omitempty" json:"priority,omitempty"`
	MinEmployeeTier string `yaml:"min_employee_tier,omitempty" json:"min_employee_tier,omitempty"`
}

// UnsetPriority is the precedence given to requirements without a priority.
const UnsetPriority = 99

// EffectivePriority returns Priority, or UnsetPriority when it is unset.
func (r *Requirement) EffectivePriority() int {
	if r.Priority <= 0 {
		return UnsetPriority
	}
	return r.Priority
}

// Tool categories with behavior attached to them.
const (
	ToolCategoryVideoInterview  = "video-interview"
	ToolCategoryBackgroundCheck = "background-check"
	ToolCategoryMonitoring      = "monitoring"
	ToolCategoryCustom          = "custom"
)

// Tool is an entry of the static AI tool catalog.
type Tool struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
}

// ComplianceAction is a remediation step fired by usage and jurisdiction.
type ComplianceAction struct {
	ID                   string      `yaml:"id" json:"id"`
	Category             LawCategory `yaml:"category" json:"category"`
	Title                string      `yaml:"title" json:"title"`
	Description          string      `yaml:"description" json:"description"`
	Priority             Tier        `yaml:"priority" json:"priority"`
	EstimatedMinutes     int         `yaml:"estimated_minutes" json:"estimated_minutes"`
	TriggerUsages        []string    `yaml:"trigger_usages" json:"trigger_usages"`
	TriggerJurisdictions []string    `yaml:"trigger_jurisdictions,omitempty" json:"trigger_jurisdictions,omitempty"`
}

// ToolFinding is one classified tool.
type ToolFinding struct {
	ToolID   string   `json:"tool_id"`
	ToolName string   `json:"tool_name"`
	Category string   `json:"category"`
	Laws     []string `json:"laws"`
	Reason   string   `json:"reason"`
}

// ToolAnalysisResult buckets classified tools by risk.
type ToolAnalysisResult struct {
	High   []ToolFinding `json:"high"`
	Medium []ToolFinding `json:"medium"`
	Low    []ToolFinding `json:"low"`
}

// Len returns the number of classified tools across all buckets.
func (r *ToolAnalysisResult) Len() int {
	return len(r.High) + len(r.Medium) + len(r.Low)
}

// CategoryRiskScore is the risk tier of one law category.
type CategoryRiskScore struct {
	Category    LawCategory `json:"category"`
	Label       string      `json:"label"`
	Description string      `json:"description"`
	Tier        Tier        `json:"tier"`
	Triggered   bool        `json:"triggered"`
	TriggeredBy []string    `json:"triggered_by,omitempty"`
	// Tools lists declared catalog tools whose category implies one of the
	// usages in TriggeredBy. It never affects Tier.
	Tools                   []string `json:"tools,omitempty"`
	ApplicableJurisdictions []string `json:"applicable_jurisdictions"`
}

// JurisdictionRisk is one entry of the per-jurisdiction risk map.
type JurisdictionRisk struct {
	Tier       JurisdictionTier `json:"tier"`
	Categories []LawCategory    `json:"categories"`
	LawCount   int              `json:"law_count"`
}

// RiskAssessment is the multi-category legal-risk assessment.
type RiskAssessment struct {
	OverallScore        int                         `json:"overall_score"`
	CategoryScores      []CategoryRiskScore         `json:"category_scores"`
	JurisdictionRiskMap map[string]JurisdictionRisk `json:"jurisdiction_risk_map"`
}

// Score returns the category score for c, or false if absent.
func (a *RiskAssessment) Score(c LawCategory) (CategoryRiskScore, bool) {
	for _, s := range a.CategoryScores {
		if s.Category == c {
			return s, true
		}
	}
	return CategoryRiskScore{}, false
}

// JurisdictionRequirements holds the requirements of one known jurisdiction.
type JurisdictionRequirements struct {
	Code         string        `json:"code"`
	Name         string        `json:"name"`
	Requirements []Requirement `json:"requirements"`
}

// PhaseItem is a requirement placed in a phase bucket. Jurisdiction is empty
// for organization-wide requirements.
type PhaseItem struct {
	Requirement  Requirement `json:"requirement"`
	Jurisdiction string      `json:"jurisdiction,omitempty"`
}

// PhaseGroup is one phase of the checklist with its aggregate estimate.
type PhaseGroup struct {
	Phase        Phase       `json:"phase"`
	Label        string      `json:"label"`
	Items        []PhaseItem `json:"items"`
	TotalMinutes int         `json:"total_minutes"`
	Estimate     string      `json:"estimate"`
}
