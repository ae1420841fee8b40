package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/dbartell/employarmor-sub003/internal/schema"
)

type markdownRenderer struct{}

var mdFuncs = template.FuncMap{
	"join":   strings.Join,
	"upper":  upper,
	"orNone": orNone,
}

func upper(v fmt.Stringer) string { return strings.ToUpper(v.String()) }

func orNone(s []string) string {
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, ", ")
}

var mdTemplate = template.Must(template.New("report").Funcs(mdFuncs).Parse(`# AI Hiring Compliance Report

**Overall risk score:** {{ .Summary.OverallScore }}/100 (highest tier: {{ upper .Summary.HighestTier }})
**Critical:** {{ .Summary.CriticalCount }} | **High:** {{ .Summary.HighCount }} | **Medium:** {{ .Summary.MediumCount }}
**Jurisdictions:** {{ orNone .Input.Jurisdictions }}
**Tasks:** {{ .Summary.TaskCount }} ({{ .Summary.TotalEstimate }}) | **Actions:** {{ .Summary.ActionCount }}
{{ if .Warnings }}
> **Input warnings ({{ .Summary.WarningCount }})**: these inputs were absorbed and did not affect the results.
{{ range .Warnings }}> - ` + "`{{ .Code }}`" + ` {{ .Message }}
{{ end }}{{ end }}
---

## AI Tools
{{ if .Tools.High }}
### High risk
{{ range .Tools.High }}- **{{ .ToolName }}** ({{ .Category }}): {{ .Reason }}
  - Laws: {{ join .Laws ", " }}
{{ end }}{{ end }}{{ if .Tools.Medium }}
### Medium risk
{{ range .Tools.Medium }}- **{{ .ToolName }}** ({{ .Category }}): {{ .Reason }}
  - Laws: {{ join .Laws ", " }}
{{ end }}{{ end }}{{ if .Tools.Low }}
### Low risk
{{ range .Tools.Low }}- **{{ .ToolName }}** ({{ .Category }}): {{ .Reason }}
  - Laws: {{ join .Laws ", " }}
{{ end }}{{ end }}{{ if not (or .Tools.High .Tools.Medium .Tools.Low) }}
No AI tools declared.
{{ end }}
---

## Legal Risk by Category

| Category | Tier | Jurisdictions | Triggered by |
|---|---|---|---|
{{ range .Risk.CategoryScores }}| {{ .Label }} | {{ upper .Tier }} | {{ orNone .ApplicableJurisdictions }} | {{ orNone .TriggeredBy }} |
{{ end }}{{ range .Risk.CategoryScores }}{{ if .Triggered }}
- **{{ .Label }}:** {{ .Description }}{{ end }}{{ end }}
{{ if .Upcoming }}
---

## Upcoming Laws
{{ range .Upcoming }}- **{{ .Code }}** {{ .LawName }}, effective {{ .EffectiveDate }}
{{ end }}{{ end }}
---

## Compliance Checklist
{{ range .Phases }}{{ if .Items }}
### {{ .Label }} ({{ .Estimate }})
{{ range .Items }}- [ ] {{ .Requirement.Title }}{{ if .Jurisdiction }} [{{ .Jurisdiction }}]{{ end }}{{ if .Requirement.EstimatedMinutes }} · {{ .Requirement.EstimatedMinutes }} min{{ end }}
{{ end }}{{ end }}{{ end }}{{ if .Actions }}
---

## Remediation Actions
{{ range .Actions }}
### {{ upper .Priority }} · {{ .Title }}
{{ .Description }}
{{ end }}{{ end }}
---
*{{ .Tool }} {{ .Version }} | Rules: {{ .Ruleset.Name }} {{ .Ruleset.Version }} | Report: {{ .ID }}*
`))

func (r *markdownRenderer) Render(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
