package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/rules/rulestest"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

var baseline = []string{"Title VII (Anti-Discrimination)", "ADEA (Age Discrimination)", "ADA (Disability)"}

func defaultRules(t *testing.T) *rules.Ruleset {
	t.Helper()
	rs, err := rules.Default()
	require.NoError(t, err)
	return rs
}

func TestTools_VideoInterviewInIllinois(t *testing.T) {
	rs := defaultRules(t)
	res := Tools(rs, []string{"hirevue"}, []string{"IL"}, []string{"video-recording", "facial-analysis"})

	require.Len(t, res.High, 1)
	assert.Empty(t, res.Medium)
	assert.Empty(t, res.Low)

	f := res.High[0]
	assert.Equal(t, "hirevue", f.ToolID)
	assert.Equal(t, "HireVue", f.ToolName)
	assert.Equal(t, []string{
		"IL AI Video Interview Act", "IL BIPA", "IL HB 3773",
		"Biometric Privacy", "Wiretapping/Recording Consent", "Lie Detector/Polygraph Laws",
		"Title VII (Anti-Discrimination)", "ADEA (Age Discrimination)", "ADA (Disability)",
	}, f.Laws)
	assert.Contains(t, f.Reason, "IL")
}

func TestTools_LowRiskWithoutJurisdictions(t *testing.T) {
	rs := defaultRules(t)
	res := Tools(rs, []string{"chatgpt"}, nil, nil)

	require.Len(t, res.Low, 1)
	assert.Equal(t, baseline, res.Low[0].Laws)
	assert.Empty(t, res.High)
	assert.Empty(t, res.Medium)
}

func TestTools_UnknownToolGoesToMedium(t *testing.T) {
	rs := defaultRules(t)
	res := Tools(rs, []string{"in-house-ranker"}, []string{"IL"}, []string{"third-party-reports", "salary-filtering"})

	require.Len(t, res.Medium, 1)
	f := res.Medium[0]
	assert.Equal(t, schema.ToolCategoryCustom, f.Category)
	assert.Equal(t, "in-house-ranker", f.ToolName)
	assert.Equal(t, baseline, f.Laws)
	assert.Contains(t, f.Reason, "manual review")
}

func TestTools_HighSetWithoutLawInForceIsLow(t *testing.T) {
	rs := rulestest.Ruleset()
	// CC is registered but not yet active.
	res := Tools(rs, []string{"cam"}, []string{"CC"}, []string{"video-recording"})

	assert.Empty(t, res.High)
	assert.Empty(t, res.Medium)
	require.Len(t, res.Low, 1)
	assert.Equal(t, []string{"Title VII", "ADEA", "ADA"}, res.Low[0].Laws)
	assert.Contains(t, res.Low[0].Reason, "no hiring AI law is in force")
}

func TestTools_HighSetWithoutJurisdictionsIsLow(t *testing.T) {
	res := Tools(defaultRules(t), []string{"hirevue"}, nil, nil)

	assert.Empty(t, res.High)
	assert.Empty(t, res.Medium)
	require.Len(t, res.Low, 1)
	assert.Equal(t, "hirevue", res.Low[0].ToolID)
	assert.Equal(t, baseline, res.Low[0].Laws)
}

func TestTools_HighSetWithoutLawStillForcedByFCRA(t *testing.T) {
	res := Tools(rulestest.Ruleset(), []string{"cam"}, nil, []string{"third-party-reports"})

	require.Len(t, res.High, 1)
	assert.Equal(t, []string{"FCRA", "Title VII", "ADEA", "ADA"}, res.High[0].Laws)
}

func TestTools_ThirdPartyReportsForcesHigh(t *testing.T) {
	rs := rulestest.Ruleset()
	res := Tools(rs, []string{"pen"}, nil, []string{"third-party-reports"})

	require.Len(t, res.High, 1)
	assert.Equal(t, []string{"FCRA", "Title VII", "ADEA", "ADA"}, res.High[0].Laws)
}

func TestTools_BackgroundCheckCategoryIsAlwaysHigh(t *testing.T) {
	rs := rulestest.Ruleset()
	res := Tools(rs, []string{"check"}, nil, nil)

	require.Len(t, res.High, 1)
	assert.Contains(t, res.High[0].Laws, "FCRA")
}

func TestTools_SalaryFilteringNeedsPayTransparencyJurisdiction(t *testing.T) {
	rs := rulestest.Ruleset()

	res := Tools(rs, []string{"ats"}, []string{"AA"}, []string{"salary-filtering"})
	require.Len(t, res.Medium, 1)
	assert.NotContains(t, res.Medium[0].Laws, "Pay Transparency Laws")

	res = Tools(rs, []string{"ats"}, []string{"AA", "BB"}, []string{"salary-filtering"})
	require.Len(t, res.High, 1)
	assert.Equal(t, []string{"Pay Transparency Laws", "Title VII", "ADEA", "ADA"}, res.High[0].Laws)
}

func TestTools_MonitoringToolAddsMonitoringLaws(t *testing.T) {
	rs := rulestest.Ruleset()
	res := Tools(rs, []string{"watch"}, []string{"AA", "BB"}, nil)

	require.Len(t, res.Medium, 1)
	assert.Equal(t, []string{"BB Monitoring Act", "Title VII", "ADEA", "ADA"}, res.Medium[0].Laws)
}

func TestTools_WiretapLawOnlyWithAllPartyConsent(t *testing.T) {
	rs := rulestest.Ruleset()
	def := rulestest.Definition()
	def.AllPartyConsent = nil
	noConsent := rules.MustNew(def)

	with := Tools(rs, []string{"cam"}, []string{"AA"}, nil)
	without := Tools(noConsent, []string{"cam"}, []string{"AA"}, nil)

	require.Len(t, with.High, 1)
	require.Len(t, without.High, 1)
	assert.Contains(t, with.High[0].Laws, "Wiretapping/Recording Consent")
	assert.NotContains(t, without.High[0].Laws, "Wiretapping/Recording Consent")
	assert.NotContains(t, with.High[0].Laws, "Lie Detector/Polygraph Laws")
}

func TestTools_DuplicateIDsClassifiedOnce(t *testing.T) {
	rs := rulestest.Ruleset()
	res := Tools(rs, []string{"pen", "ats", "pen", "ghost", "ghost"}, nil, nil)

	assert.Equal(t, 3, res.Len())
	require.Len(t, res.Medium, 2)
	assert.Equal(t, "ats", res.Medium[0].ToolID)
	assert.Equal(t, "ghost", res.Medium[1].ToolID)
}

func TestTools_EmptyInputHasEmptyBuckets(t *testing.T) {
	res := Tools(rulestest.Ruleset(), nil, nil, nil)
	assert.NotNil(t, res.High)
	assert.NotNil(t, res.Medium)
	assert.NotNil(t, res.Low)
	assert.Zero(t, res.Len())
}

func ids(fs []schema.ToolFinding) []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.ToolID
	}
	return out
}

func lawsOf(fs []schema.ToolFinding) [][]string {
	out := make([][]string, len(fs))
	for i, f := range fs {
		out[i] = f.Laws
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
