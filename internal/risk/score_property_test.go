package risk

import (
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dbartell/employarmor-sub003/internal/rules"
)

var (
	jurisdictionPool = []string{"IL", "CA", "NYC", "CO", "MD", "TX", "WA", "MA", "NY", "FL", "PA", "NJ", "ZZ"}
	usagePool        = []string{"screening", "ranking", "facial-analysis", "integrity-scoring", "voice-analysis", "video-recording", "third-party-reports", "salary-filtering", "sourcing", "bogus"}
	toolPool         = []string{"hirevue", "checkr", "greenhouse", "chatgpt", "unlisted"}
)

func pick(pool []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = pool[n%len(pool)]
	}
	return out
}

func indexes(pool []string) gopter.Gen {
	return gen.SliceOf(gen.IntRange(0, len(pool)-1))
}

// Property: adding a jurisdiction never lowers the overall score and never
// untriggers a category.
func TestComputeMonotonicity(t *testing.T) {
	rs, err := rules.Default()
	if err != nil {
		t.Fatal(err)
	}
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("extra jurisdiction is monotone", prop.ForAll(
		func(ji, ui, ti []int, extra int) bool {
			juris, usages, tools := pick(jurisdictionPool, ji), pick(usagePool, ui), pick(toolPool, ti)
			before := Compute(rs, tools, juris, usages)
			after := Compute(rs, tools, append(juris, jurisdictionPool[extra]), usages)

			if after.OverallScore < before.OverallScore {
				return false
			}
			for i, s := range before.CategoryScores {
				if s.Triggered && !after.CategoryScores[i].Triggered {
					return false
				}
				if after.CategoryScores[i].Tier < s.Tier {
					return false
				}
			}
			return true
		},
		indexes(jurisdictionPool), indexes(usagePool), indexes(toolPool),
		gen.IntRange(0, len(jurisdictionPool)-1),
	))

	properties.TestingRun(t)
}

// Property: Compute(x) == Compute(x), and the score stays within 0..100.
func TestComputeDeterminism(t *testing.T) {
	rs, err := rules.Default()
	if err != nil {
		t.Fatal(err)
	}
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("assessment is deterministic and bounded", prop.ForAll(
		func(ji, ui, ti []int) bool {
			juris, usages, tools := pick(jurisdictionPool, ji), pick(usagePool, ui), pick(toolPool, ti)
			a := Compute(rs, tools, juris, usages)
			b := Compute(rs, tools, juris, usages)
			return reflect.DeepEqual(a, b) && a.OverallScore >= 0 && a.OverallScore <= 100
		},
		indexes(jurisdictionPool), indexes(usagePool), indexes(toolPool),
	))

	properties.TestingRun(t)
}
