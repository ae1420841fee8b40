package rules

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dbartell/employarmor-sub003/internal/schema"
)

const dateLayout = "2006-01-02"

// Validate checks the semantic invariants of a rule set that the JSON Schema
// cannot express: unique identifiers, disjoint tool tiers, known categories
// and consistent shared requirement ids. All problems are reported together.
func Validate(def *Definition) error {
	v := &validator{}

	if def.Name == "" {
		v.addf("name is required")
	}
	if err := checkVersion(def.Version, def.Engine); err != nil {
		v.add(err)
	}
	if len(def.FederalBaselineLaws) == 0 {
		v.addf("federal_baseline_laws must not be empty")
	}
	v.unique("employee_tiers", def.EmployeeTiers)
	tiers := toSet(def.EmployeeTiers)

	v.validateTriggers(def.UsageTriggers)
	v.validateImpliedUsages(def)
	v.validateTools(def)

	reqs := make(map[string]schema.Requirement)
	codes := make(map[string]bool, len(def.Jurisdictions))
	for i, j := range def.Jurisdictions {
		prefix := fmt.Sprintf("jurisdictions[%d]", i)
		if j.Code == "" {
			v.addf("%s: code is required", prefix)
		} else if codes[j.Code] {
			v.addf("%s: duplicate jurisdiction code %q", prefix, j.Code)
		}
		codes[j.Code] = true
		if j.Name == "" {
			v.addf("%s: name is required", prefix)
		}
		if _, err := time.Parse(dateLayout, j.EffectiveDate); err != nil {
			v.addf("%s: effective_date %q is not YYYY-MM-DD", prefix, j.EffectiveDate)
		}
		for _, c := range j.Categories {
			if !schema.IsValidCategory(c) {
				v.addf("%s: unknown category %q", prefix, c)
			}
		}
		for k, r := range j.Requirements {
			v.validateRequirement(r, fmt.Sprintf("%s.requirements[%d]", prefix, k), tiers, reqs)
		}
	}
	for k, r := range def.GeneralRequirements {
		v.validateRequirement(r, fmt.Sprintf("general_requirements[%d]", k), tiers, reqs)
	}

	actions := make(map[string]bool, len(def.Actions))
	for i, a := range def.Actions {
		prefix := fmt.Sprintf("actions[%d]", i)
		if a.ID == "" {
			v.addf("%s: id is required", prefix)
		} else if actions[a.ID] {
			v.addf("%s: duplicate action id %q", prefix, a.ID)
		}
		actions[a.ID] = true
		if !schema.IsValidCategory(a.Category) {
			v.addf("%s: unknown category %q", prefix, a.Category)
		}
		if len(a.TriggerUsages) == 0 {
			v.addf("%s: trigger_usages must not be empty", prefix)
		}
		if a.EstimatedMinutes < 0 {
			v.addf("%s: estimated_minutes must be >= 0", prefix)
		}
	}

	return v.err()
}

type validator struct {
	errs []error
}

func (v *validator) add(err error) { v.errs = append(v.errs, err) }

func (v *validator) addf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid ruleset: %w", errors.Join(v.errs...))
}

func (v *validator) unique(field string, ids []string) {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			v.addf("%s: duplicate entry %q", field, id)
		}
		seen[id] = true
	}
}

func (v *validator) validateTriggers(triggers []UsageTrigger) {
	seen := make(map[string]bool, len(triggers))
	for i, ut := range triggers {
		prefix := fmt.Sprintf("usage_triggers[%d]", i)
		if ut.Usage == "" {
			v.addf("%s: usage is required", prefix)
		} else if seen[ut.Usage] {
			v.addf("%s: duplicate usage %q", prefix, ut.Usage)
		}
		seen[ut.Usage] = true
		for _, c := range ut.Categories {
			if !schema.IsValidCategory(c) {
				v.addf("%s: unknown category %q", prefix, c)
			}
		}
	}
}

func (v *validator) validateImpliedUsages(def *Definition) {
	known := make(map[string]bool, len(def.UsageTriggers))
	for _, ut := range def.UsageTriggers {
		known[ut.Usage] = true
	}
	categories := make([]string, 0, len(def.ToolCategoryUsages))
	for c := range def.ToolCategoryUsages {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	for _, category := range categories {
		for _, u := range def.ToolCategoryUsages[category] {
			if !known[u] {
				v.addf("tool_category_usages[%s]: usage %q has no trigger entry", category, u)
			}
		}
	}
}

func (v *validator) validateTools(def *Definition) {
	catalog := make(map[string]bool, len(def.Tools))
	for i, t := range def.Tools {
		prefix := fmt.Sprintf("tools[%d]", i)
		if t.ID == "" {
			v.addf("%s: id is required", prefix)
		} else if catalog[t.ID] {
			v.addf("%s: duplicate tool id %q", prefix, t.ID)
		}
		catalog[t.ID] = true
		if t.Category == schema.ToolCategoryCustom {
			v.addf("%s: category %q is reserved for tools outside the catalog", prefix, t.Category)
		}
	}
	v.unique("tool_tiers.high", def.ToolTiers.High)
	v.unique("tool_tiers.medium", def.ToolTiers.Medium)
	high := toSet(def.ToolTiers.High)
	for _, id := range def.ToolTiers.Medium {
		if high[id] {
			v.addf("tool_tiers: %q is in both high and medium", id)
		}
	}
	for _, id := range append(append([]string(nil), def.ToolTiers.High...), def.ToolTiers.Medium...) {
		if !catalog[id] {
			v.addf("tool_tiers: %q is not in the tool catalog", id)
		}
	}
}

// validateRequirement checks r and records it in seen. A requirement id may
// be shared between jurisdictions only when it names the same task.
func (v *validator) validateRequirement(r schema.Requirement, prefix string, tiers map[string]bool, seen map[string]schema.Requirement) {
	if r.ID == "" {
		v.addf("%s: id is required", prefix)
		return
	}
	if r.Title == "" {
		v.addf("%s: title is required", prefix)
	}
	if !schema.IsValidKind(r.Kind) {
		v.addf("%s: invalid kind %q (must be document, action, or ongoing)", prefix, r.Kind)
	}
	if r.EstimatedMinutes < 0 {
		v.addf("%s: estimated_minutes must be >= 0", prefix)
	}
	if r.Priority < 0 {
		v.addf("%s: priority must be >= 1, or omitted when unset", prefix)
	}
	if r.MinEmployeeTier != "" && !tiers[r.MinEmployeeTier] {
		v.addf("%s: min_employee_tier %q is not a defined employee tier", prefix, r.MinEmployeeTier)
	}
	if prev, ok := seen[r.ID]; ok {
		if prev.Title != r.Title || prev.Kind != r.Kind {
			v.addf("%s: requirement id %q collides with an unrelated requirement %q", prefix, r.ID, prev.Title)
		}
		return
	}
	seen[r.ID] = r
}
