package schema

import "fmt"

// Tier is the coarse severity bucket shared by tool buckets, law categories
// and action priorities. The zero value is TierLow.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
	TierCritical
)

var tierNames = [...]string{"low", "medium", "high", "critical"}

func (t Tier) String() string {
	if t < TierLow || t > TierCritical {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// Rank orders tiers for display and priority sorting: critical(0) < high(1)
// < medium(2) < low(3). Lower rank comes first.
func (t Tier) Rank() int {
	return int(TierCritical - t)
}

// AtLeast reports whether t is as severe as or more severe than other.
func (t Tier) AtLeast(other Tier) bool {
	return t >= other
}

// ParseTier converts a tier name to a Tier.
func ParseTier(s string) (Tier, error) {
	for i, name := range tierNames {
		if name == s {
			return Tier(i), nil
		}
	}
	return TierLow, fmt.Errorf("unknown tier %q: valid tiers are low, medium, high, critical", s)
}

func (t Tier) MarshalText() ([]byte, error) {
	if t < TierLow || t > TierCritical {
		return nil, fmt.Errorf("invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(b []byte) error {
	v, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Phase is the scheduling bucket of a checklist task. The zero value means
// "not set" and resolves to PhaseSetupOnce.
type Phase int

const (
	PhaseUnset Phase = iota
	PhaseImmediate
	PhaseThisWeek
	PhaseSetupOnce
)

// Phases lists the phases in checklist order.
var Phases = []Phase{PhaseImmediate, PhaseThisWeek, PhaseSetupOnce}

func (p Phase) String() string {
	switch p {
	case PhaseImmediate:
		return "immediate"
	case PhaseThisWeek:
		return "thisWeek"
	case PhaseSetupOnce:
		return "setupOnce"
	case PhaseUnset:
		return ""
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Label is the checklist heading for the phase.
func (p Phase) Label() string {
	switch p.OrDefault() {
	case PhaseImmediate:
		return "Do immediately"
	case PhaseThisWeek:
		return "This week"
	default:
		return "One-time setup"
	}
}

// OrDefault returns PhaseSetupOnce for an unset phase.
func (p Phase) OrDefault() Phase {
	if p == PhaseUnset {
		return PhaseSetupOnce
	}
	return p
}

// ParsePhase converts a phase name to a Phase. The empty string is PhaseUnset.
func ParsePhase(s string) (Phase, error) {
	switch s {
	case "":
		return PhaseUnset, nil
	case "immediate":
		return PhaseImmediate, nil
	case "thisWeek":
		return PhaseThisWeek, nil
	case "setupOnce":
		return PhaseSetupOnce, nil
	}
	return PhaseUnset, fmt.Errorf("unknown phase %q: valid phases are immediate, thisWeek, setupOnce", s)
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(b []byte) error {
	v, err := ParsePhase(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// JurisdictionTier grades a single jurisdiction by how many triggered
// categories it carries.
type JurisdictionTier string

const (
	JurisdictionBaseline JurisdictionTier = "baseline"
	JurisdictionModerate JurisdictionTier = "moderate"
	JurisdictionHigh     JurisdictionTier = "high"
)

// RequirementKind says what completing a requirement involves.
type RequirementKind string

const (
	KindDocument RequirementKind = "document"
	KindAction   RequirementKind = "action"
	KindOngoing  RequirementKind = "ongoing"
)

// IsValidKind reports whether k is one of the three requirement kinds.
func IsValidKind(k RequirementKind) bool {
	switch k {
	case KindDocument, KindAction, KindOngoing:
		return true
	}
	return false
}
