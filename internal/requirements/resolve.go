// Package requirements resolves the compliance tasks for a set of hiring
// jurisdictions and groups them into a phased, deduplicated checklist.
package requirements

import (
	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// Resolved holds the requirements of the known jurisdictions, in caller
// order, and the organization-wide requirements.
type Resolved struct {
	ByJurisdiction []schema.JurisdictionRequirements `json:"by_jurisdiction"`
	General        []schema.Requirement              `json:"general"`
}

// Resolve looks up the requirements of each jurisdiction code. Codes missing
// from the registry are dropped without error and repeated codes are
// resolved once.
func Resolve(rs *rules.Ruleset, codes []string) Resolved {
	return ResolveFor(rs, codes, "")
}

// ResolveFor is Resolve restricted to requirements that apply to an
// organization of the given employee tier. Requirements whose minimum tier
// is above tier are dropped. An empty or undefined tier filters nothing.
func ResolveFor(rs *rules.Ruleset, codes []string, tier string) Resolved {
	keep := tierFilter(rs, tier)

	res := Resolved{
		ByJurisdiction: []schema.JurisdictionRequirements{},
		General:        filter(rs.GeneralRequirements(), keep),
	}
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		j, ok := rs.Jurisdiction(code)
		if !ok {
			continue
		}
		res.ByJurisdiction = append(res.ByJurisdiction, schema.JurisdictionRequirements{
			Code:         j.Code,
			Name:         j.Name,
			Requirements: filter(j.Requirements, keep),
		})
	}
	return res
}

func tierFilter(rs *rules.Ruleset, tier string) func(schema.Requirement) bool {
	org, ok := rs.EmployeeTierIndex(tier)
	if !ok {
		return func(schema.Requirement) bool { return true }
	}
	return func(r schema.Requirement) bool {
		if r.MinEmployeeTier == "" {
			return true
		}
		floor, ok := rs.EmployeeTierIndex(r.MinEmployeeTier)
		return !ok || org >= floor
	}
}

func filter(reqs []schema.Requirement, keep func(schema.Requirement) bool) []schema.Requirement {
	out := make([]schema.Requirement, 0, len(reqs))
	for _, r := range reqs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
