package rules

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// fingerprint hashes the JSON form of def. encoding/json emits struct
// fields in declaration order and map keys sorted, so equal definitions
// always hash equally.
func fingerprint(def *Definition) (string, error) {
	data, err := json.Marshal(def)
	if err != nil {
		return "", fmt.Errorf("fingerprinting ruleset: %w", err)
	}
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data)), nil
}

func cloneDefinition(d Definition) Definition {
	out := d
	out.FederalBaselineLaws = cloneStrings(d.FederalBaselineLaws)
	out.EmployeeTiers = cloneStrings(d.EmployeeTiers)
	out.AllPartyConsent = cloneStrings(d.AllPartyConsent)
	out.WiretapFelony = cloneStrings(d.WiretapFelony)
	out.BiometricPrivateAction = cloneStrings(d.BiometricPrivateAction)
	out.PayTransparency = cloneStrings(d.PayTransparency)
	if d.MonitoringLaws != nil {
		out.MonitoringLaws = make(map[string][]string, len(d.MonitoringLaws))
		for k, v := range d.MonitoringLaws {
			out.MonitoringLaws[k] = cloneStrings(v)
		}
	}
	if d.ToolCategoryUsages != nil {
		out.ToolCategoryUsages = make(map[string][]string, len(d.ToolCategoryUsages))
		for k, v := range d.ToolCategoryUsages {
			out.ToolCategoryUsages[k] = cloneStrings(v)
		}
	}
	if d.UsageTriggers != nil {
		out.UsageTriggers = make([]UsageTrigger, len(d.UsageTriggers))
		for i, ut := range d.UsageTriggers {
			out.UsageTriggers[i] = UsageTrigger{
				Usage:      ut.Usage,
				Categories: append([]schema.LawCategory(nil), ut.Categories...),
			}
		}
	}
	out.Tools = append([]schema.Tool(nil), d.Tools...)
	out.ToolTiers = ToolTiers{High: cloneStrings(d.ToolTiers.High), Medium: cloneStrings(d.ToolTiers.Medium)}
	if d.Jurisdictions != nil {
		out.Jurisdictions = make([]schema.Jurisdiction, len(d.Jurisdictions))
		for i, j := range d.Jurisdictions {
			out.Jurisdictions[i] = cloneJurisdiction(j)
		}
	}
	out.GeneralRequirements = append([]schema.Requirement(nil), d.GeneralRequirements...)
	if d.Actions != nil {
		out.Actions = make([]schema.ComplianceAction, len(d.Actions))
		for i, a := range d.Actions {
			out.Actions[i] = cloneAction(a)
		}
	}
	return out
}

func cloneJurisdiction(j schema.Jurisdiction) schema.Jurisdiction {
	out := j
	out.Laws = cloneStrings(j.Laws)
	out.Categories = append([]schema.LawCategory(nil), j.Categories...)
	out.Requirements = append([]schema.Requirement(nil), j.Requirements...)
	return out
}

func cloneAction(a schema.ComplianceAction) schema.ComplianceAction {
	out := a
	out.TriggerUsages = cloneStrings(a.TriggerUsages)
	out.TriggerJurisdictions = cloneStrings(a.TriggerJurisdictions)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
