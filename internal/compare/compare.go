// Package compare explains how an assessment changes when the organization
// profile changes, for "what if we also hired in X" questions.
package compare

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/dbartell/employarmor-sub003/internal/schema"
)

// ChangeKind classifies one difference between two reports.
type ChangeKind string

const (
	ChangeCategory ChangeKind = "category" // category tier changed
	ChangeTool     ChangeKind = "tool"     // tool moved bucket or appeared
	ChangeTask     ChangeKind = "task"     // checklist task added or removed
	ChangeAction   ChangeKind = "action"   // remediation action added or removed
)

// Change is one difference between two reports. Before or After is empty
// when the subject is absent on that side.
type Change struct {
	Kind    ChangeKind `json:"kind"`
	Subject string     `json:"subject"`
	Before  string     `json:"before,omitempty"`
	After   string     `json:"after,omitempty"`
}

func (c Change) String() string {
	switch {
	case c.Before == "":
		return fmt.Sprintf("+ %s %s: %s", c.Kind, c.Subject, c.After)
	case c.After == "":
		return fmt.Sprintf("- %s %s: %s", c.Kind, c.Subject, c.Before)
	}
	return fmt.Sprintf("~ %s %s: %s -> %s", c.Kind, c.Subject, c.Before, c.After)
}

// Delta summarizes the difference between two reports.
type Delta struct {
	ScoreBefore int      `json:"score_before"`
	ScoreAfter  int      `json:"score_after"`
	Changes     []Change `json:"changes"`
}

// ScoreChange returns ScoreAfter - ScoreBefore.
func (d Delta) ScoreChange() int { return d.ScoreAfter - d.ScoreBefore }

// Reports compares two reports. Changes are listed by kind in a fixed order
// (categories, tools, tasks, actions) and within a kind in report order.
func Reports(before, after *schema.Report) Delta {
	d := Delta{
		ScoreBefore: before.Summary.OverallScore,
		ScoreAfter:  after.Summary.OverallScore,
		Changes:     []Change{},
	}

	for _, a := range after.Risk.CategoryScores {
		b, ok := before.Risk.Score(a.Category)
		if ok && b.Tier != a.Tier {
			d.Changes = append(d.Changes, Change{Kind: ChangeCategory, Subject: string(a.Category), Before: b.Tier.String(), After: a.Tier.String()})
		}
	}

	d.Changes = append(d.Changes, diffKeyed(ChangeTool, toolBuckets(before), toolBuckets(after))...)
	d.Changes = append(d.Changes, diffKeyed(ChangeTask, tasks(before), tasks(after))...)
	d.Changes = append(d.Changes, diffKeyed(ChangeAction, actionTiers(before), actionTiers(after))...)
	return d
}

// keyed is an ordered key/value list.
type keyed struct {
	keys   []string
	values map[string]string
}

func (k *keyed) put(key, value string) {
	if k.values == nil {
		k.values = make(map[string]string)
	}
	if _, ok := k.values[key]; !ok {
		k.keys = append(k.keys, key)
	}
	k.values[key] = value
}

func diffKeyed(kind ChangeKind, before, after keyed) []Change {
	var out []Change
	for _, key := range after.keys {
		b, ok := before.values[key]
		a := after.values[key]
		switch {
		case !ok:
			out = append(out, Change{Kind: kind, Subject: key, After: a})
		case b != a:
			out = append(out, Change{Kind: kind, Subject: key, Before: b, After: a})
		}
	}
	for _, key := range before.keys {
		if _, ok := after.values[key]; !ok {
			out = append(out, Change{Kind: kind, Subject: key, Before: before.values[key]})
		}
	}
	return out
}

func toolBuckets(r *schema.Report) keyed {
	var k keyed
	for _, f := range r.Tools.High {
		k.put(f.ToolID, schema.TierHigh.String())
	}
	for _, f := range r.Tools.Medium {
		k.put(f.ToolID, schema.TierMedium.String())
	}
	for _, f := range r.Tools.Low {
		k.put(f.ToolID, schema.TierLow.String())
	}
	return k
}

func tasks(r *schema.Report) keyed {
	var k keyed
	for _, g := range r.Phases {
		for _, it := range g.Items {
			k.put(it.Requirement.ID, g.Phase.String())
		}
	}
	return k
}

func actionTiers(r *schema.Report) keyed {
	var k keyed
	for _, a := range r.Actions {
		k.put(a.ID, a.Priority.String())
	}
	return k
}

// LineDiff returns a line-oriented diff of two rendered reports. Unchanged
// lines are omitted; added lines start with "+ " and removed lines with "- ".
// It returns "" when the texts are equal.
func LineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(normalize(before), normalize(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(strings.TrimSuffix(line, "\n"))
			out.WriteString("\n")
		}
	}
	return out.String()
}

// Patch returns a diff-match-patch patch that turns before into after, or ""
// when they are equal.
func Patch(before, after string) string {
	dmp := diffmatchpatch.New()
	before, after = normalize(before), normalize(after)
	diffs := dmp.DiffMain(before, after, false)
	return dmp.PatchToText(dmp.PatchMake(before, diffs))
}

// normalize trims trailing whitespace from each line and converts CRLF to LF.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
