package rules

import (
	"errors"
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// EngineVersion is the version of the evaluation logic. Rule sets declare
// which engine versions they were written against.
const EngineVersion = "1.0.0"

// ErrIncompatible is returned when a rule set's engine constraint rejects
// EngineVersion.
var ErrIncompatible = errors.New("ruleset is incompatible with this engine")

// checkVersion validates the rule set version and its engine constraint.
func checkVersion(version, constraint string) error {
	if _, err := semver.NewVersion(version); err != nil {
		return fmt.Errorf("version %q is not a semantic version: %w", version, err)
	}
	if constraint == "" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("engine constraint %q: %w", constraint, err)
	}
	engine := semver.MustParse(EngineVersion)
	if ok, errs := c.Validate(engine); !ok {
		return fmt.Errorf("%w: engine %s does not satisfy %q: %v", ErrIncompatible, EngineVersion, constraint, errors.Join(errs...))
	}
	return nil
}

// NewerThan reports whether rule set version a is newer than b. Unparsable
// versions are never newer.
func NewerThan(a, b string) bool {
	va, err := semver.NewVersion(a)
	if err != nil {
		return false
	}
	vb, err := semver.NewVersion(b)
	if err != nil {
		return true
	}
	return va.GreaterThan(vb)
}
