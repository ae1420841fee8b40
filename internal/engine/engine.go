// Package engine assembles the tool classification, risk assessment,
// phased checklist and remediation actions for one organization profile
// into a single report.
//
// An Engine holds only its rule set and logger. Assess has no side effects
// besides debug logging and may be called from many goroutines at once.
package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/dbartell/employarmor-sub003/internal/actions"
	"github.com/dbartell/employarmor-sub003/internal/classify"
	"github.com/dbartell/employarmor-sub003/internal/requirements"
	"github.com/dbartell/employarmor-sub003/internal/risk"
	"github.com/dbartell/employarmor-sub003/internal/rules"
	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// ToolName is reported in every Report.
const ToolName = "hirerisk"

// reportNamespace scopes the name-based report ids.
var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://employarmor.local/hirerisk/report"))

// Engine evaluates profiles against one rule set.
type Engine struct {
	rules *rules.Ruleset
	log   *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output about absorbed inputs.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New returns an Engine for rs. Without WithLogger it logs nothing.
func New(rs *rules.Ruleset, opts ...Option) *Engine {
	e := &Engine{
		rules: rs,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() *rules.Ruleset { return e.rules }

// Assess evaluates p. It never fails: unknown or repeated inputs are
// absorbed and reported as warnings, which do not affect any score, bucket
// or checklist.
func (e *Engine) Assess(p schema.Profile) *schema.Report {
	rs := e.rules
	warnings := Warnings(rs, p)
	for _, w := range warnings {
		e.log.Debug("absorbed input", "code", w.Code, "subject", w.Subject)
	}

	tools := classify.Tools(rs, p.Tools, p.Jurisdictions, p.Usages)
	assessment := risk.Compute(rs, p.Tools, p.Jurisdictions, p.Usages)
	phases := requirements.ResolveFor(rs, p.Jurisdictions, p.EmployeeTier).Group()
	acts := actions.Applicable(rs, p.Usages, p.Jurisdictions)
	codes := distinct(p.Jurisdictions)

	critical, high, medium := risk.Counts(assessment.CategoryScores)
	profileHash := p.Fingerprint()

	r := &schema.Report{
		ID:      ReportID(rs.Hash(), profileHash),
		Tool:    ToolName,
		Version: rules.EngineVersion,
		Input: schema.Input{
			Jurisdictions: orEmpty(p.Jurisdictions),
			Tools:         orEmpty(p.Tools),
			Usages:        orEmpty(p.Usages),
			EmployeeTier:  p.EmployeeTier,
			ProfileHash:   profileHash,
		},
		Ruleset: schema.RulesetInfo{
			Name:    rs.Name(),
			Version: rs.Version(),
			Hash:    rs.Hash(),
		},
		Summary: schema.Summary{
			OverallScore:  assessment.OverallScore,
			HighestTier:   risk.Highest(assessment.CategoryScores),
			CriticalCount: critical,
			HighCount:     high,
			MediumCount:   medium,
			HighRiskTools: len(tools.High),
			TaskCount:     phases.Items(),
			TotalMinutes:  phases.TotalMinutes(),
			TotalEstimate: requirements.FormatEstimate(phases.TotalMinutes()),
			ActionCount:   len(acts),
			WarningCount:  len(warnings),
			Jurisdictions: len(codes),
		},
		Tools:    tools,
		Risk:     assessment,
		Phases:   phases.Ordered(),
		Actions:  acts,
		Upcoming: Upcoming(rs, codes),
		Warnings: warnings,
	}

	e.log.Debug("assessment complete",
		"report", r.ID,
		"score", r.Summary.OverallScore,
		"highest_tier", r.Summary.HighestTier,
		"tasks", r.Summary.TaskCount,
		"actions", r.Summary.ActionCount,
	)
	return r
}

// ReportID derives the report id from the rule set and profile fingerprints,
// so the same inputs always yield the same id.
func ReportID(rulesetHash, profileHash string) string {
	return uuid.NewSHA1(reportNamespace, []byte(rulesetHash+"\n"+profileHash)).String()
}

// Upcoming lists the registry jurisdictions among codes whose law is not yet
// in force.
func Upcoming(rs *rules.Ruleset, codes []string) []schema.UpcomingLaw {
	out := []schema.UpcomingLaw{}
	for _, code := range distinct(codes) {
		j, ok := rs.Jurisdiction(code)
		if !ok || j.IsActive {
			continue
		}
		out = append(out, schema.UpcomingLaw{
			Code:          j.Code,
			LawName:       j.LawName,
			EffectiveDate: j.EffectiveDate,
		})
	}
	return out
}

func distinct(ids []string) []string {
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

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return append([]string(nil), s...)
}
