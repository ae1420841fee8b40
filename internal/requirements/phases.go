package requirements

import (
	"fmt"
	"sort"

	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// Phases maps each phase to its checklist group.
type Phases map[schema.Phase]schema.PhaseGroup

// Ordered returns the groups in checklist order. Every phase is present,
// possibly with no items.
func (p Phases) Ordered() []schema.PhaseGroup {
	out := make([]schema.PhaseGroup, 0, len(schema.Phases))
	for _, ph := range schema.Phases {
		g, ok := p[ph]
		if !ok {
			g = newGroup(ph, nil)
		}
		out = append(out, g)
	}
	return out
}

// Items returns the number of items across all phases.
func (p Phases) Items() int {
	n := 0
	for _, g := range p {
		n += len(g.Items)
	}
	return n
}

// TotalMinutes returns the summed estimate across all phases.
func (p Phases) TotalMinutes() int {
	n := 0
	for _, g := range p {
		n += g.TotalMinutes
	}
	return n
}

// Group is GroupByPhase over r.
func (r Resolved) Group() Phases {
	return GroupByPhase(r.ByJurisdiction, r.General)
}

// GroupByPhase places every requirement in its phase bucket (unset phases
// go to setupOnce), jurisdiction requirements first in the given order and
// general requirements after them. Each bucket is then stable-sorted by
// priority, unset priorities last, and deduplicated by requirement id
// keeping the first item. When two jurisdictions share a requirement id the
// surviving item is attributed to whichever came first after sorting.
func GroupByPhase(byJurisdiction []schema.JurisdictionRequirements, general []schema.Requirement) Phases {
	buckets := make(map[schema.Phase][]schema.PhaseItem, len(schema.Phases))
	for _, jr := range byJurisdiction {
		for _, r := range jr.Requirements {
			ph := r.Phase.OrDefault()
			buckets[ph] = append(buckets[ph], schema.PhaseItem{Requirement: r, Jurisdiction: jr.Code})
		}
	}
	for _, r := range general {
		ph := r.Phase.OrDefault()
		buckets[ph] = append(buckets[ph], schema.PhaseItem{Requirement: r})
	}

	out := make(Phases, len(schema.Phases))
	for _, ph := range schema.Phases {
		items := buckets[ph]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Requirement.EffectivePriority() < items[j].Requirement.EffectivePriority()
		})
		out[ph] = newGroup(ph, dedupByID(items))
	}
	return out
}

func dedupByID(items []schema.PhaseItem) []schema.PhaseItem {
	seen := make(map[string]bool, len(items))
	out := make([]schema.PhaseItem, 0, len(items))
	for _, it := range items {
		if seen[it.Requirement.ID] {
			continue
		}
		seen[it.Requirement.ID] = true
		out = append(out, it)
	}
	return out
}

func newGroup(ph schema.Phase, items []schema.PhaseItem) schema.PhaseGroup {
	if items == nil {
		items = []schema.PhaseItem{}
	}
	total := 0
	for _, it := range items {
		total += it.Requirement.EstimatedMinutes
	}
	return schema.PhaseGroup{
		Phase:        ph,
		Label:        ph.Label(),
		Items:        items,
		TotalMinutes: total,
		Estimate:     FormatEstimate(total),
	}
}

// FormatEstimate renders minutes as "~45m" below an hour and "~2h 5m"
// otherwise.
func FormatEstimate(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("~%dm", minutes)
	}
	return fmt.Sprintf("~%dh %dm", minutes/60, minutes%60)
}
