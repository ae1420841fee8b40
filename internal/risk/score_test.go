package risk

import (
	"reflect"
	"testing"

	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/rules/rulestest"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

func defaultRules(t *testing.T) *rules.Ruleset {
	t.Helper()
	rs, err := rules.Default()
	if err != nil {
		t.Fatalf("rules.Default: %v", err)
	}
	return rs
}

func mustScore(t *testing.T, a schema.RiskAssessment, c schema.LawCategory) schema.CategoryRiskScore {
	t.Helper()
	s, ok := a.Score(c)
	if !ok {
		t.Fatalf("no score for category %q", c)
	}
	return s
}

// --- Compute tests ---

func TestCompute_IllinoisVideoInterview(t *testing.T) {
	rs := defaultRules(t)
	a := Compute(rs, []string{"hirevue"}, []string{"IL"}, []string{"video-recording", "facial-analysis"})

	want := map[schema.LawCategory]schema.Tier{
		schema.CategoryAISpecific:         schema.TierLow,
		schema.CategoryBiometric:          schema.TierCritical,
		schema.CategoryWiretapping:        schema.TierCritical,
		schema.CategoryLieDetector:        schema.TierMedium, // IL has no lie-detector membership
		schema.CategoryFCRA:               schema.TierLow,
		schema.CategoryPayTransparency:    schema.TierLow,
		schema.CategoryDataPrivacy:        schema.TierLow,
		schema.CategoryAntiDiscrimination: schema.TierMedium,
		schema.CategoryDisability:         schema.TierMedium,
		schema.CategoryAgeDiscrimination:  schema.TierMedium,
	}
	for c, tier := range want {
		if got := mustScore(t, a, c).Tier; got != tier {
			t.Errorf("%s tier = %s, want %s", c, got, tier)
		}
	}

	// 2 critical(50) + 4 medium(32) + 1 jurisdiction(2)
	if a.OverallScore != 84 {
		t.Errorf("OverallScore = %d, want 84", a.OverallScore)
	}

	il := a.JurisdictionRiskMap["IL"]
	if il.Tier != schema.JurisdictionModerate {
		t.Errorf("IL tier = %s, want moderate", il.Tier)
	}
	if il.LawCount != 3 {
		t.Errorf("IL LawCount = %d, want 3", il.LawCount)
	}

	bio := mustScore(t, a, schema.CategoryBiometric)
	if !reflect.DeepEqual(bio.TriggeredBy, []string{"video-recording", "facial-analysis"}) {
		t.Errorf("biometric TriggeredBy = %v", bio.TriggeredBy)
	}
	if !reflect.DeepEqual(bio.Tools, []string{"hirevue"}) {
		t.Errorf("biometric Tools = %v, want [hirevue]", bio.Tools)
	}
}

func TestCompute_NoJurisdictionsBaselineOnly(t *testing.T) {
	rs := defaultRules(t)
	a := Compute(rs, []string{"chatgpt"}, nil, nil)

	// 3 baseline categories at medium, nothing else.
	if a.OverallScore != 24 {
		t.Errorf("OverallScore = %d, want 24", a.OverallScore)
	}
	if len(a.JurisdictionRiskMap) != 0 {
		t.Errorf("JurisdictionRiskMap = %v, want empty", a.JurisdictionRiskMap)
	}
}

func TestCompute_BaselineFloor(t *testing.T) {
	a := Compute(rulestest.Ruleset(), nil, nil, nil)

	if len(a.CategoryScores) != len(schema.Categories) {
		t.Fatalf("len(CategoryScores) = %d, want %d", len(a.CategoryScores), len(schema.Categories))
	}
	for i, s := range a.CategoryScores {
		if s.Category != schema.Categories[i] {
			t.Errorf("CategoryScores[%d] = %s, want %s", i, s.Category, schema.Categories[i])
		}
		if schema.IsFederalBaseline(s.Category) {
			if !s.Triggered || s.Tier != schema.TierMedium {
				t.Errorf("%s: triggered=%v tier=%s, want triggered medium", s.Category, s.Triggered, s.Tier)
			}
			continue
		}
		if s.Triggered || s.Tier != schema.TierLow {
			t.Errorf("%s: triggered=%v tier=%s, want untriggered low", s.Category, s.Triggered, s.Tier)
		}
	}
}

func TestCompute_ToolsDoNotTriggerCategories(t *testing.T) {
	a := Compute(rulestest.Ruleset(), []string{"cam"}, []string{"AA"}, nil)
	if s := mustScore(t, a, schema.CategoryBiometric); s.Triggered || len(s.Tools) != 0 {
		t.Errorf("biometric triggered=%v tools=%v, want untriggered", s.Triggered, s.Tools)
	}
}

func TestCompute_UnknownJurisdictionCountsAndDefaults(t *testing.T) {
	rs := rulestest.Ruleset()
	a := Compute(rs, nil, []string{"ZZ"}, nil)

	// baseline categories apply in ZZ: 1 applicable → medium; +2 for ZZ.
	if a.OverallScore != 26 {
		t.Errorf("OverallScore = %d, want 26", a.OverallScore)
	}
	zz, ok := a.JurisdictionRiskMap["ZZ"]
	if !ok {
		t.Fatal("ZZ missing from risk map")
	}
	if zz.LawCount != 0 || len(zz.Categories) != 3 {
		t.Errorf("ZZ = %+v, want 3 baseline categories and no laws", zz)
	}
}

func TestCompute_DuplicateJurisdictionsCountedOnce(t *testing.T) {
	rs := rulestest.Ruleset()
	once := Compute(rs, nil, []string{"AA"}, []string{"screening"})
	twice := Compute(rs, nil, []string{"AA", "AA"}, []string{"screening"})
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("duplicate jurisdiction changed the assessment:\n%+v\n%+v", once, twice)
	}
}

func TestCompute_UnknownUsageIsInert(t *testing.T) {
	rs := rulestest.Ruleset()
	base := Compute(rs, nil, []string{"AA"}, nil)
	got := Compute(rs, nil, []string{"AA"}, []string{"telepathy"})
	if !reflect.DeepEqual(base, got) {
		t.Error("unknown usage tag changed the assessment")
	}
}

func TestCompute_ScoreCapsAt100(t *testing.T) {
	rs := defaultRules(t)
	a := Compute(rs, nil,
		[]string{"IL", "CA", "NYC", "CO", "MD", "TX", "WA", "MA", "NY", "FL", "PA"},
		[]string{"screening", "facial-analysis", "video-recording", "third-party-reports", "salary-filtering"})
	if a.OverallScore != 100 {
		t.Errorf("OverallScore = %d, want 100", a.OverallScore)
	}
}

// --- CategoryTier precedence tests ---

func TestCategoryTier_Precedence(t *testing.T) {
	rs := rulestest.Ruleset()
	tests := []struct {
		name       string
		c          schema.LawCategory
		triggered  bool
		codes      []string
		applicable []string
		want       schema.Tier
	}{
		{"not triggered wins over everything", schema.CategoryBiometric, false, []string{"AA"}, []string{"AA"}, schema.TierLow},
		{"no applicable jurisdiction", schema.CategoryBiometric, true, []string{"AA"}, nil, schema.TierMedium},
		{"biometric private action", schema.CategoryBiometric, true, []string{"AA"}, []string{"AA"}, schema.TierCritical},
		{"biometric elsewhere", schema.CategoryBiometric, true, []string{"BB"}, []string{"BB"}, schema.TierMedium},
		{"wiretap felony", schema.CategoryWiretapping, true, []string{"AA"}, []string{"AA"}, schema.TierCritical},
		{"lie detector", schema.CategoryLieDetector, true, []string{"BB"}, []string{"BB"}, schema.TierHigh},
		{"three applicable", schema.CategoryDataPrivacy, true, []string{"X", "Y", "Z"}, []string{"X", "Y", "Z"}, schema.TierHigh},
		{"two applicable", schema.CategoryDataPrivacy, true, []string{"X", "Y"}, []string{"X", "Y"}, schema.TierMedium},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := CategoryTier(rs, tc.c, tc.triggered, tc.codes, tc.applicable); got != tc.want {
				t.Errorf("CategoryTier = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestJurisdictionTier(t *testing.T) {
	for n, want := range map[int]schema.JurisdictionTier{
		0: schema.JurisdictionBaseline,
		3: schema.JurisdictionBaseline,
		4: schema.JurisdictionModerate,
		5: schema.JurisdictionModerate,
		6: schema.JurisdictionHigh,
		9: schema.JurisdictionHigh,
	} {
		if got := JurisdictionTier(n); got != want {
			t.Errorf("JurisdictionTier(%d) = %s, want %s", n, got, want)
		}
	}
}

// --- Overall / Counts tests ---

func makeScores(tiers ...schema.Tier) []schema.CategoryRiskScore {
	out := make([]schema.CategoryRiskScore, len(tiers))
	for i, tier := range tiers {
		out[i] = schema.CategoryRiskScore{Tier: tier}
	}
	return out
}

func TestOverall_Mixed(t *testing.T) {
	// 1 critical(25) + 1 high(15) + 2 medium(16) + 3 jurisdictions(6) = 62
	scores := makeScores(schema.TierCritical, schema.TierHigh, schema.TierMedium, schema.TierMedium, schema.TierLow)
	if got := Overall(scores, 3); got != 62 {
		t.Errorf("Overall = %d, want 62", got)
	}
}

func TestOverall_Clamps(t *testing.T) {
	scores := makeScores(schema.TierCritical, schema.TierCritical, schema.TierCritical, schema.TierCritical, schema.TierHigh)
	if got := Overall(scores, 0); got != 100 {
		t.Errorf("Overall = %d, want 100 (clamped)", got)
	}
}

func TestHighest(t *testing.T) {
	if got := Highest(makeScores(schema.TierLow, schema.TierHigh, schema.TierMedium)); got != schema.TierHigh {
		t.Errorf("Highest = %s, want high", got)
	}
	if got := Highest(nil); got != schema.TierLow {
		t.Errorf("Highest(nil) = %s, want low", got)
	}
}

// --- Triggers tests ---

func TestTriggers_SeedsBaseline(t *testing.T) {
	got := Triggers(rulestest.Ruleset(), nil, nil)
	if len(got) != len(schema.FederalBaseline) {
		t.Fatalf("len = %d, want %d", len(got), len(schema.FederalBaseline))
	}
	for _, c := range schema.FederalBaseline {
		if _, ok := got[c]; !ok {
			t.Errorf("baseline category %s missing", c)
		}
	}
}

func TestTriggers_UsageAttribution(t *testing.T) {
	got := Triggers(rulestest.Ruleset(), []string{"cam", "pen"}, []string{"video-recording", "facial-analysis", "video-recording"})
	bio := got[schema.CategoryBiometric]
	if bio == nil {
		t.Fatal("biometric not triggered")
	}
	if !reflect.DeepEqual(bio.Usages, []string{"video-recording", "facial-analysis"}) {
		t.Errorf("biometric usages = %v", bio.Usages)
	}
	if !reflect.DeepEqual(bio.Tools, []string{"cam"}) {
		t.Errorf("biometric tools = %v, want [cam]", bio.Tools)
	}
	if lie := got[schema.CategoryLieDetector]; lie == nil || len(lie.Tools) != 0 {
		t.Errorf("lie-detector = %+v, want triggered without tools", lie)
	}
}
