package engine

import (
	"fmt"
	"strings"

	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// Warnings lists the inputs of p that the engine absorbs rather than
// rejects: unknown jurisdictions, tools, usage tags and employee tier, and
// repeated entries. Order follows p: jurisdictions, tools, usages, tier.
func Warnings(rs *rules.Ruleset, p schema.Profile) []schema.Warning {
	out := []schema.Warning{}

	out = appendChecked(out, "jurisdiction", p.Jurisdictions, func(code string) *schema.Warning {
		if _, ok := rs.Jurisdiction(code); ok {
			return nil
		}
		return &schema.Warning{
			Code:    schema.WarnUnknownJurisdiction,
			Subject: code,
			Message: fmt.Sprintf("jurisdiction %q is not in the registry; only federal baseline categories apply and no jurisdiction requirements were added", code),
		}
	})

	out = appendChecked(out, "tool", p.Tools, func(id string) *schema.Warning {
		if _, ok := rs.LookupTool(id).(rules.Unknown); !ok {
			return nil
		}
		return &schema.Warning{
			Code:    schema.WarnUnknownTool,
			Subject: id,
			Message: fmt.Sprintf("tool %q is not in the catalog; classified as medium risk pending manual review", id),
		}
	})

	out = appendChecked(out, "usage", p.Usages, func(u string) *schema.Warning {
		if rs.IsKnownUsage(u) {
			return nil
		}
		return &schema.Warning{
			Code:    schema.WarnUnknownUsage,
			Subject: u,
			Message: fmt.Sprintf("usage tag %q is not recognized and has no effect", u),
		}
	})

	if p.EmployeeTier != "" {
		if _, ok := rs.EmployeeTierIndex(p.EmployeeTier); !ok {
			out = append(out, schema.Warning{
				Code:    schema.WarnUnknownEmployeeTier,
				Subject: p.EmployeeTier,
				Message: fmt.Sprintf("employee tier %q is not defined (valid: %s); requirements were not filtered by size",
					p.EmployeeTier, strings.Join(rs.EmployeeTiers(), ", ")),
			})
		}
	}
	return out
}

// appendChecked runs check on the first occurrence of each value and adds a
// duplicate warning for every later one.
func appendChecked(out []schema.Warning, kind string, values []string, check func(string) *schema.Warning) []schema.Warning {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			out = append(out, schema.Warning{
				Code:    schema.WarnDuplicateInput,
				Subject: v,
				Message: fmt.Sprintf("%s %q is listed more than once; later entries are ignored", kind, v),
			})
			continue
		}
		seen[v] = true
		if w := check(v); w != nil {
			out = append(out, *w)
		}
	}
	return out
}
