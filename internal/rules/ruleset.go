// Package rules holds the static rule tables the engine evaluates: the
// jurisdiction–law registry, the tool classification table, the usage
// trigger table and the compliance action table.
//
// A Ruleset is built once, is never mutated afterwards and is safe for
// concurrent use. Every engine entry point takes the *Ruleset explicitly.
package rules

import (
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// Definition is the serialized form of a rule set.
type Definition struct {
	Name    string `yaml:"name" json:"name"`
	Version string `yaml:"version" json:"version"`
	// Engine is a semver constraint the engine version must satisfy.
	Engine                 string              `yaml:"engine,omitempty" json:"engine,omitempty"`
	FederalBaselineLaws    []string            `yaml:"federal_baseline_laws" json:"federal_baseline_laws"`
	EmployeeTiers          []string            `yaml:"employee_tiers,omitempty" json:"employee_tiers,omitempty"`
	AllPartyConsent        []string            `yaml:"all_party_consent,omitempty" json:"all_party_consent,omitempty"`
	WiretapFelony          []string            `yaml:"wiretap_felony,omitempty" json:"wiretap_felony,omitempty"`
	BiometricPrivateAction []string            `yaml:"biometric_private_action,omitempty" json:"biometric_private_action,omitempty"`
	PayTransparency        []string            `yaml:"pay_transparency,omitempty" json:"pay_transparency,omitempty"`
	MonitoringLaws         map[string][]string `yaml:"monitoring_laws,omitempty" json:"monitoring_laws,omitempty"`
	UsageTriggers          []UsageTrigger      `yaml:"usage_triggers" json:"usage_triggers"`
	// ToolCategoryUsages lists the usage tags a tool category implies.
	ToolCategoryUsages  map[string][]string       `yaml:"tool_category_usages,omitempty" json:"tool_category_usages,omitempty"`
	Tools               []schema.Tool             `yaml:"tools" json:"tools"`
	ToolTiers           ToolTiers                 `yaml:"tool_tiers" json:"tool_tiers"`
	Jurisdictions       []schema.Jurisdiction     `yaml:"jurisdictions" json:"jurisdictions"`
	GeneralRequirements []schema.Requirement      `yaml:"general_requirements,omitempty" json:"general_requirements,omitempty"`
	Actions             []schema.ComplianceAction `yaml:"actions,omitempty" json:"actions,omitempty"`
}

// UsageTrigger maps one usage tag to the categories it activates.
type UsageTrigger struct {
	Usage      string               `yaml:"usage" json:"usage"`
	Categories []schema.LawCategory `yaml:"categories" json:"categories"`
}

// ToolTiers partitions catalog tool ids into disjoint risk sets. Tools in
// neither set are low risk.
type ToolTiers struct {
	High   []string `yaml:"high" json:"high"`
	Medium []string `yaml:"medium" json:"medium"`
}

// Ruleset is a validated, indexed rule set.
type Ruleset struct {
	def  Definition
	hash string

	jurisdictions map[string]*schema.Jurisdiction
	tools         map[string]schema.Tool
	toolTiers     map[string]schema.Tier
	triggers      map[string][]schema.LawCategory
	tierIndex     map[string]int

	allParty        map[string]bool
	wiretapFelony   map[string]bool
	biometricAction map[string]bool
	payTransparency map[string]bool
}

// New validates def and builds a Ruleset from it. The Ruleset keeps its own
// copy of def; later changes to def do not affect it.
func New(def Definition) (*Ruleset, error) {
	def = cloneDefinition(def)
	if err := Validate(&def); err != nil {
		return nil, err
	}
	hash, err := fingerprint(&def)
	if err != nil {
		return nil, err
	}

	rs := &Ruleset{
		def:             def,
		hash:            hash,
		jurisdictions:   make(map[string]*schema.Jurisdiction, len(def.Jurisdictions)),
		tools:           make(map[string]schema.Tool, len(def.Tools)),
		toolTiers:       make(map[string]schema.Tier, len(def.ToolTiers.High)+len(def.ToolTiers.Medium)),
		triggers:        make(map[string][]schema.LawCategory, len(def.UsageTriggers)),
		tierIndex:       make(map[string]int, len(def.EmployeeTiers)),
		allParty:        toSet(def.AllPartyConsent),
		wiretapFelony:   toSet(def.WiretapFelony),
		biometricAction: toSet(def.BiometricPrivateAction),
		payTransparency: toSet(def.PayTransparency),
	}
	for i := range rs.def.Jurisdictions {
		j := &rs.def.Jurisdictions[i]
		rs.jurisdictions[j.Code] = j
	}
	for _, t := range def.Tools {
		rs.tools[t.ID] = t
	}
	for _, id := range def.ToolTiers.Medium {
		rs.toolTiers[id] = schema.TierMedium
	}
	for _, id := range def.ToolTiers.High {
		rs.toolTiers[id] = schema.TierHigh
	}
	for _, ut := range def.UsageTriggers {
		rs.triggers[ut.Usage] = ut.Categories
	}
	for i, t := range def.EmployeeTiers {
		rs.tierIndex[t] = i
	}
	return rs, nil
}

// MustNew is New for rule sets known to be valid, such as test fixtures.
func MustNew(def Definition) *Ruleset {
	rs, err := New(def)
	if err != nil {
		panic(err)
	}
	return rs
}

// Name returns the rule set name.
func (rs *Ruleset) Name() string { return rs.def.Name }

// Version returns the rule set's semantic version string.
func (rs *Ruleset) Version() string { return rs.def.Version }

// Hash returns "sha256:<hex>" over the canonical JSON form of the rule set.
func (rs *Ruleset) Hash() string { return rs.hash }

// FederalBaselineLaws returns the law names attached to every tool.
func (rs *Ruleset) FederalBaselineLaws() []string {
	return append([]string(nil), rs.def.FederalBaselineLaws...)
}

// GeneralRequirements returns the organization-wide requirements in table order.
func (rs *Ruleset) GeneralRequirements() []schema.Requirement {
	return append([]schema.Requirement(nil), rs.def.GeneralRequirements...)
}

// Actions returns the action table in table order.
func (rs *Ruleset) Actions() []schema.ComplianceAction {
	out := make([]schema.ComplianceAction, len(rs.def.Actions))
	for i, a := range rs.def.Actions {
		out[i] = cloneAction(a)
	}
	return out
}

// Tools returns the tool catalog in table order.
func (rs *Ruleset) Tools() []schema.Tool {
	return append([]schema.Tool(nil), rs.def.Tools...)
}

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
