package rules

import "github.com/dbartell/employarmor-sub003/internal/schema"

// ToolLookup is the result of looking a tool id up in the catalog. It is
// either Known or Unknown.
type ToolLookup interface {
	toolLookup()
}

// Known is a catalog tool together with its risk tier.
type Known struct {
	Tool schema.Tool
	Tier schema.Tier
}

// Unknown is a tool id absent from the catalog.
type Unknown struct {
	ID string
}

func (Known) toolLookup()   {}
func (Unknown) toolLookup() {}

// LookupTool classifies id against the catalog and the tier sets.
func (rs *Ruleset) LookupTool(id string) ToolLookup {
	t, ok := rs.tools[id]
	if !ok {
		return Unknown{ID: id}
	}
	tier, ok := rs.toolTiers[id]
	if !ok {
		tier = schema.TierLow
	}
	return Known{Tool: t, Tier: tier}
}

// Jurisdiction returns a copy of the registry entry for code.
func (rs *Ruleset) Jurisdiction(code string) (schema.Jurisdiction, bool) {
	j, ok := rs.jurisdictions[code]
	if !ok {
		return schema.Jurisdiction{}, false
	}
	return cloneJurisdiction(*j), true
}

// Codes returns the registry's jurisdiction codes in table order.
func (rs *Ruleset) Codes() []string {
	codes := make([]string, len(rs.def.Jurisdictions))
	for i, j := range rs.def.Jurisdictions {
		codes[i] = j.Code
	}
	return codes
}

// WithCategory returns the codes of registry jurisdictions that are members
// of c, in table order.
func (rs *Ruleset) WithCategory(c schema.LawCategory) []string {
	var codes []string
	for i := range rs.def.Jurisdictions {
		if rs.def.Jurisdictions[i].HasCategory(c) {
			codes = append(codes, rs.def.Jurisdictions[i].Code)
		}
	}
	return codes
}

// Membership returns the static category membership of code. Codes absent
// from the registry default to the federal baseline.
func (rs *Ruleset) Membership(code string) []schema.LawCategory {
	if j, ok := rs.jurisdictions[code]; ok {
		return append([]schema.LawCategory(nil), j.Categories...)
	}
	return append([]schema.LawCategory(nil), schema.FederalBaseline...)
}

// InForceLaws returns the short law names of code when the jurisdiction is
// in the registry and its law is active.
func (rs *Ruleset) InForceLaws(code string) []string {
	j, ok := rs.jurisdictions[code]
	if !ok || !j.IsActive {
		return nil
	}
	return append([]string(nil), j.Laws...)
}

// MonitoringLaws returns the monitoring/privacy law names for code.
func (rs *Ruleset) MonitoringLaws(code string) []string {
	return append([]string(nil), rs.def.MonitoringLaws[code]...)
}

// TriggeredCategories returns the categories activated by usage and whether
// the usage tag is known.
func (rs *Ruleset) TriggeredCategories(usage string) ([]schema.LawCategory, bool) {
	cats, ok := rs.triggers[usage]
	return append([]schema.LawCategory(nil), cats...), ok
}

// ImpliedUsages returns the usage tags implied by the catalog category of
// toolID. Unknown tools imply nothing.
func (rs *Ruleset) ImpliedUsages(toolID string) []string {
	t, ok := rs.tools[toolID]
	if !ok {
		return nil
	}
	return append([]string(nil), rs.def.ToolCategoryUsages[t.Category]...)
}

// IsKnownUsage reports whether usage appears in the trigger table.
func (rs *Ruleset) IsKnownUsage(usage string) bool {
	_, ok := rs.triggers[usage]
	return ok
}

// AllPartyConsent reports whether code requires all-party recording consent.
func (rs *Ruleset) AllPartyConsent(code string) bool { return rs.allParty[code] }

// WiretapFelony reports whether unconsented recording is a felony in code.
func (rs *Ruleset) WiretapFelony(code string) bool { return rs.wiretapFelony[code] }

// BiometricPrivateAction reports whether code has a biometric statute with a
// private right of action.
func (rs *Ruleset) BiometricPrivateAction(code string) bool { return rs.biometricAction[code] }

// PayTransparency reports whether code has a pay transparency law.
func (rs *Ruleset) PayTransparency(code string) bool { return rs.payTransparency[code] }

// EmployeeTierIndex returns the position of tier in the ordered employee
// tier list, or false when the tier is not defined.
func (rs *Ruleset) EmployeeTierIndex(tier string) (int, bool) {
	i, ok := rs.tierIndex[tier]
	return i, ok
}

// EmployeeTiers returns the ordered employee-count tiers.
func (rs *Ruleset) EmployeeTiers() []string {
	return append([]string(nil), rs.def.EmployeeTiers...)
}

// Jurisdictions returns copies of all registry entries in table order.
func (rs *Ruleset) Jurisdictions() []schema.Jurisdiction {
	out := make([]schema.Jurisdiction, len(rs.def.Jurisdictions))
	for i, j := range rs.def.Jurisdictions {
		out[i] = cloneJurisdiction(j)
	}
	return out
}
