package risk

import (
	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// Trigger records why a category is active.
type Trigger struct {
	Usages []string // declared usage tags that activate the category
	Tools  []string // declared catalog tools whose category implies one of Usages
}

// Triggers resolves declared usages to the categories they activate. The
// federal baseline categories are always present, with no usages attached.
// Unknown usage tags activate nothing. Tools never activate a category on
// their own; they are only attributed to categories their implied usages
// already activate.
func Triggers(rs *rules.Ruleset, toolIDs, usages []string) map[schema.LawCategory]*Trigger {
	out := make(map[schema.LawCategory]*Trigger, len(schema.Categories))
	for _, c := range schema.FederalBaseline {
		out[c] = &Trigger{}
	}

	declared := make(map[string]bool, len(usages))
	for _, u := range dedup(usages) {
		declared[u] = true
		cats, _ := rs.TriggeredCategories(u)
		for _, c := range cats {
			t, ok := out[c]
			if !ok {
				t = &Trigger{}
				out[c] = t
			}
			t.Usages = append(t.Usages, u)
		}
	}

	for _, id := range dedup(toolIDs) {
		for _, u := range rs.ImpliedUsages(id) {
			if !declared[u] {
				continue
			}
			cats, _ := rs.TriggeredCategories(u)
			for _, c := range cats {
				if t := out[c]; !contains(t.Tools, id) {
					t.Tools = append(t.Tools, id)
				}
			}
		}
	}
	return out
}

func dedup(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
