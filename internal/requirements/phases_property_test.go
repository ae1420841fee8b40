package requirements

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dbartell/employarmor-sub003/internal/rules"
)

var codePool = []string{"IL", "CA", "NYC", "CO", "MD", "TX", "WA", "MA", "NY", "FL", "PA", "NJ", "ZZ", "il"}

func pickCodes(idx []int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = codePool[n%len(codePool)]
	}
	return out
}

// Property: no phase bucket holds two items with the same requirement id,
// and each bucket's total equals the sum of its items.
func TestGroupByPhaseDedup(t *testing.T) {
	rs, err := rules.Default()
	if err != nil {
		t.Fatal(err)
	}
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("phase buckets are deduplicated", prop.ForAll(
		func(idx []int) bool {
			for _, g := range Resolve(rs, pickCodes(idx)).Group() {
				seen := map[string]bool{}
				sum := 0
				for _, it := range g.Items {
					if seen[it.Requirement.ID] {
						return false
					}
					seen[it.Requirement.ID] = true
					sum += it.Requirement.EstimatedMinutes
				}
				if sum != g.TotalMinutes || g.Estimate != FormatEstimate(sum) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, len(codePool)-1)),
	))

	properties.Property("grouping is deterministic", prop.ForAll(
		func(idx []int, tier int) bool {
			codes := pickCodes(idx)
			tiers := []string{"", "1-14", "15-99", "100-499", "500+"}
			a := ResolveFor(rs, codes, tiers[tier]).Group().Ordered()
			b := ResolveFor(rs, codes, tiers[tier]).Group().Ordered()
			return reflect.DeepEqual(a, b)
		},
		gen.SliceOf(gen.IntRange(0, len(codePool)-1)),
		gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}
