// Package classify buckets an organization's AI tools into high, medium and
// low risk and attaches the law names each tool brings into play.
package classify

import (
	"fmt"
	"strings"

	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// Usage tags with tool-level consequences.
const (
	UsageThirdPartyReports = "third-party-reports"
	UsageSalaryFiltering   = "salary-filtering"
)

// Tools classifies every tool id against rs. Duplicate ids are classified
// once, at their first position. Unknown ids are never dropped: they land in
// the medium bucket for manual review.
//
// Bucket order follows the order of toolIDs and the laws of each finding
// follow a fixed order, so equal inputs give equal results.
func Tools(rs *rules.Ruleset, toolIDs, jurisdictions, usages []string) schema.ToolAnalysisResult {
	c := newClassifier(rs, jurisdictions, usages)
	res := schema.ToolAnalysisResult{
		High:   []schema.ToolFinding{},
		Medium: []schema.ToolFinding{},
		Low:    []schema.ToolFinding{},
	}
	for _, id := range dedup(toolIDs) {
		tier, f := c.classify(id)
		switch tier {
		case schema.TierHigh:
			res.High = append(res.High, f)
		case schema.TierMedium:
			res.Medium = append(res.Medium, f)
		default:
			res.Low = append(res.Low, f)
		}
	}
	return res
}

type classifier struct {
	rs            *rules.Ruleset
	jurisdictions []string
	usages        map[string]bool

	allPartyConsent bool
	payTransparency bool
	lieDetector     bool
}

func newClassifier(rs *rules.Ruleset, jurisdictions, usages []string) *classifier {
	c := &classifier{
		rs:            rs,
		jurisdictions: dedup(jurisdictions),
		usages:        make(map[string]bool, len(usages)),
	}
	for _, u := range usages {
		c.usages[u] = true
		cats, _ := rs.TriggeredCategories(u)
		for _, cat := range cats {
			if cat == schema.CategoryLieDetector {
				c.lieDetector = true
			}
		}
	}
	for _, code := range c.jurisdictions {
		if rs.AllPartyConsent(code) {
			c.allPartyConsent = true
		}
		if rs.PayTransparency(code) {
			c.payTransparency = true
		}
	}
	return c
}

func (c *classifier) classify(id string) (schema.Tier, schema.ToolFinding) {
	known, ok := c.rs.LookupTool(id).(rules.Known)
	if !ok {
		laws := &lawSet{}
		laws.add(c.rs.FederalBaselineLaws()...)
		return schema.TierMedium, schema.ToolFinding{
			ToolID:   id,
			ToolName: id,
			Category: schema.ToolCategoryCustom,
			Laws:     laws.list(),
			Reason:   "Tool is not in the catalog; manual review required",
		}
	}

	tool := known.Tool
	tier := known.Tier
	laws := &lawSet{}
	var reasons []string

	if known.Tier == schema.TierHigh {
		var inForce []string
		for _, code := range c.jurisdictions {
			if l := c.rs.InForceLaws(code); len(l) > 0 {
				inForce = append(inForce, code)
				laws.add(l...)
			}
		}
		if len(inForce) > 0 {
			reasons = append(reasons, fmt.Sprintf("High-risk AI tool used where hiring AI laws are in force (%s)", strings.Join(inForce, ", ")))
			if tool.Category == schema.ToolCategoryVideoInterview {
				laws.add(schema.CategoryBiometric.Label())
				if c.allPartyConsent {
					laws.add(schema.CategoryWiretapping.Label())
				}
				if c.lieDetector {
					laws.add(schema.CategoryLieDetector.Label())
				}
			}
		} else {
			tier = schema.TierLow
			reasons = append(reasons, "High-risk AI tool, but no hiring AI law is in force in the declared jurisdictions; federal baseline only")
		}
	}

	if tool.Category == schema.ToolCategoryBackgroundCheck || c.usages[UsageThirdPartyReports] {
		tier = schema.TierHigh
		laws.add(schema.CategoryFCRA.Label())
		reasons = append(reasons, "Consumer reports are involved; FCRA disclosure and adverse-action rules apply")
	}

	if c.usages[UsageSalaryFiltering] && c.payTransparency {
		tier = schema.TierHigh
		laws.add(schema.CategoryPayTransparency.Label())
		reasons = append(reasons, "Salary filtering in a pay transparency jurisdiction")
	}

	switch tier {
	case schema.TierMedium:
		if tool.Category == schema.ToolCategoryMonitoring {
			for _, code := range c.jurisdictions {
				laws.add(c.rs.MonitoringLaws(code)...)
			}
		}
		if known.Tier == schema.TierMedium {
			reasons = append(reasons, "Assists hiring decisions; bias audit and disclosure recommended")
		}
	case schema.TierLow:
		if known.Tier == schema.TierLow {
			reasons = append(reasons, "Not used to make or assist hiring decisions; federal baseline only")
		}
	}

	laws.add(c.rs.FederalBaselineLaws()...)
	return tier, schema.ToolFinding{
		ToolID:   tool.ID,
		ToolName: tool.Name,
		Category: tool.Category,
		Laws:     laws.list(),
		Reason:   strings.Join(reasons, "; "),
	}
}

// lawSet is an insertion-ordered set of law names.
type lawSet struct {
	seen  map[string]bool
	names []string
}

func (s *lawSet) add(names ...string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, n := range names {
		if !s.seen[n] {
			s.seen[n] = true
			s.names = append(s.names, n)
		}
	}
}

func (s *lawSet) list() []string {
	if s.names == nil {
		return []string{}
	}
	return s.names
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
