// Package actions selects the remediation actions an organization's AI usage
// and hiring jurisdictions call for.
package actions

import (
	"sort"

	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// Applicable returns the actions from the rule set's action table that fire
// for the given usages and jurisdictions, most urgent first. Actions of the
// same priority keep their table order.
//
// An action fires when one of its trigger usages was declared and it either
// has no trigger jurisdictions or one of them is in jurisdictions.
func Applicable(rs *rules.Ruleset, usages, jurisdictions []string) []schema.ComplianceAction {
	used := toSet(usages)
	where := toSet(jurisdictions)

	out := []schema.ComplianceAction{}
	for _, a := range rs.Actions() {
		if !intersects(a.TriggerUsages, used) {
			continue
		}
		if len(a.TriggerJurisdictions) > 0 && !intersects(a.TriggerJurisdictions, where) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

// TotalMinutes sums the estimates of actions.
func TotalMinutes(actions []schema.ComplianceAction) int {
	n := 0
	for _, a := range actions {
		n += a.EstimatedMinutes
	}
	return n
}

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func intersects(list []string, set map[string]bool) bool {
	for _, v := range list {
		if set[v] {
			return true
		}
	}
	return false
}
