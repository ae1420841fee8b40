package schema

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// Profile is an organization's declared hiring footprint.
type Profile struct {
	Jurisdictions []string `yaml:"jurisdictions" json:"jurisdictions"`
	Tools         []string `yaml:"tools" json:"tools"`
	Usages        []string `yaml:"usages" json:"usages"`
	EmployeeTier  string   `yaml:"employee_tier,omitempty" json:"employee_tier,omitempty"`
}

// Fingerprint returns "sha256:<hex>" over the JSON form of p. Profiles that
// differ only in nil versus empty lists hash equally.
func (p Profile) Fingerprint() string {
	c := Profile{
		Jurisdictions: nonNil(p.Jurisdictions),
		Tools:         nonNil(p.Tools),
		Usages:        nonNil(p.Usages),
		EmployeeTier:  p.EmployeeTier,
	}
	data, _ := json.Marshal(c) // string fields only; cannot fail
	return fmt.Sprintf("sha256:%x", sha256.Sum256(data))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
