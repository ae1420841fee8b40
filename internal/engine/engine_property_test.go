package engine

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

var (
	jurisdictionPool = []string{"IL", "CA", "NYC", "CO", "TX", "NJ", "QQ"}
	toolPool         = []string{"hirevue", "checkr", "teramind", "greenhouse", "chatgpt", "unknown-tool"}
	usagePool        = []string{"screening", "facial-analysis", "video-recording", "third-party-reports", "salary-filtering", "nonsense"}
	tierPool         = []string{"", "1-14", "15-99", "100-499", "500+", "bogus"}
)

func pick(pool []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = pool[n%len(pool)]
	}
	return out
}

// Property: Assess(p) renders to the same JSON on every call, and a report's
// warnings never exceed the number of inputs plus one for the tier.
func TestAssessDeterminism(t *testing.T) {
	rs, err := rules.Default()
	if err != nil {
		t.Fatal(err)
	}
	e := New(rs)
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("reports are reproducible", prop.ForAll(
		func(ji, ti, ui []int, tier int) bool {
			p := schema.Profile{
				Jurisdictions: pick(jurisdictionPool, ji),
				Tools:         pick(toolPool, ti),
				Usages:        pick(usagePool, ui),
				EmployeeTier:  tierPool[tier],
			}
			a, errA := json.Marshal(e.Assess(p))
			b, errB := json.Marshal(e.Assess(p))
			if errA != nil || errB != nil || string(a) != string(b) {
				return false
			}
			r := e.Assess(p)
			return len(r.Warnings) <= len(ji)+len(ti)+len(ui)+1
		},
		gen.SliceOf(gen.IntRange(0, len(jurisdictionPool)-1)),
		gen.SliceOf(gen.IntRange(0, len(toolPool)-1)),
		gen.SliceOf(gen.IntRange(0, len(usagePool)-1)),
		gen.IntRange(0, len(tierPool)-1),
	))

	properties.TestingRun(t)
}
