// Package domain contains core business entities and types for medication
// risk scoring and drug-drug interaction detection.
//
// Severity semantics follow the three-tier green/yellow/red escalation scale
// used by the patient-facing application for single-medication risk, and the
// separate minor/moderate/major scale authored on interaction rules. The two
// scales are not numerically related.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// RiskLevel represents the engine's three-tier escalation scale for
// single-medication risk. Levels form a total order: GREEN < YELLOW < RED.
type RiskLevel string

const (
	GREEN  RiskLevel = "green"
	YELLOW RiskLevel = "yellow"
	RED    RiskLevel = "red"
)

// InteractionSeverity is the rule-authored severity scale for cross-medication
// interactions. It is independent of RiskLevel.
type InteractionSeverity string

const (
	MINOR    InteractionSeverity = "minor"
	MODERATE InteractionSeverity = "moderate"
	MAJOR    InteractionSeverity = "major"
)

// ReasonKind tags a threshold-breach reason with its structural severity.
// DANGER reasons escalate the overall risk level to RED.
type ReasonKind string

const (
	WARNING ReasonKind = "warning"
	DANGER  ReasonKind = "danger"
)

// Sex represents the patient's recorded sex.
type Sex string

const (
	MALE    Sex = "male"
	FEMALE  Sex = "female"
	OTHER   Sex = "other"
	UNKNOWN Sex = "unknown"
)

// DrugClass is a coarse pharmacological category used to match interaction
// rules across many individual medications without enumerating each one.
type DrugClass string

const (
	ACE_INHIBITOR              DrugClass = "ACE_INHIBITOR"
	NSAID                      DrugClass = "NSAID"
	SSRI                       DrugClass = "SSRI"
	ANTICOAGULANT              DrugClass = "ANTICOAGULANT"
	ANTIPLATELET               DrugClass = "ANTIPLATELET"
	BETA_BLOCKER               DrugClass = "BETA_BLOCKER"
	BIGUANIDE                  DrugClass = "BIGUANIDE"
	CALCIUM_CHANNEL_BLOCKER    DrugClass = "CALCIUM_CHANNEL_BLOCKER"
	STATIN                     DrugClass = "STATIN"
	PROTON_PUMP_INHIBITOR      DrugClass = "PROTON_PUMP_INHIBITOR"
	POTASSIUM_SPARING_DIURETIC DrugClass = "POTASSIUM_SPARING_DIURETIC"
	THYROID_HORMONE            DrugClass = "THYROID_HORMONE"
	OPIOID                     DrugClass = "OPIOID"
	TRIPTAN                    DrugClass = "TRIPTAN"
)

// Validation errors for catalog and patient data integrity
var (
	ErrNotFound                   = errors.New("not found")
	ErrInvalidRiskLevel           = errors.New("invalid risk level")
	ErrInvalidInteractionSeverity = errors.New("invalid interaction severity")
	ErrInvalidReasonKind          = errors.New("invalid reason kind")
	ErrInvalidSex                 = errors.New("invalid sex")
	ErrInvalidThresholdRule       = errors.New("invalid threshold rule")
	ErrInvalidInteractionRule     = errors.New("invalid interaction rule")
	ErrInvalidMedicationRule      = errors.New("invalid medication rule")
)

// IsValid validates the risk level.
func (l RiskLevel) IsValid() bool {
	switch l {
	case GREEN, YELLOW, RED:
		return true
	default:
		return false
	}
}

// String returns the string representation of the risk level.
func (l RiskLevel) String() string {
	return string(l)
}

// Rank maps the risk level onto its position in the GREEN < YELLOW < RED
// total order. Unknown levels rank below GREEN so they never win a Max.
func (l RiskLevel) Rank() int {
	switch l {
	case GREEN:
		return 0
	case YELLOW:
		return 1
	case RED:
		return 2
	default:
		return -1
	}
}

// Max returns the higher of the two risk levels, used for overall-patient
// severity aggregation across per-medication results.
func (l RiskLevel) Max(other RiskLevel) RiskLevel {
	if other.Rank() > l.Rank() {
		return other
	}
	return l
}

// LogFields returns structured logging fields for audit trails.
func (l RiskLevel) LogFields() map[string]any {
	return map[string]any{
		"risk_level":      string(l),
		"risk_rank":       l.Rank(),
		"is_valid":        l.IsValid(),
		"requires_review": l.RequiresReview(),
	}
}

// RequiresReview determines if the level should surface to the care team.
func (l RiskLevel) RequiresReview() bool {
	switch l {
	case YELLOW, RED:
		return true
	case GREEN:
		return false
	default:
		return true // conservative default for unknown levels
	}
}

// IsValid validates the interaction severity.
func (s InteractionSeverity) IsValid() bool {
	switch s {
	case MINOR, MODERATE, MAJOR:
		return true
	default:
		return false
	}
}

// String returns the string representation of the interaction severity.
func (s InteractionSeverity) String() string {
	return string(s)
}

// IsValid validates the reason kind.
func (k ReasonKind) IsValid() bool {
	switch k {
	case WARNING, DANGER:
		return true
	default:
		return false
	}
}

// IsValid validates the patient sex value.
func (s Sex) IsValid() bool {
	switch s {
	case MALE, FEMALE, OTHER, UNKNOWN:
		return true
	default:
		return false
	}
}

// Reason is a single threshold-breach finding. Kind carries the structural
// severity; Message is the human-readable text shown to the patient. The
// message for DANGER reasons always contains the word "critically" so that
// consumers doing text-based triage of historical payloads keep working.
type Reason struct {
	Kind    ReasonKind `json:"kind"`
	Message string     `json:"message"`
}

// MedicationIdentity identifies one entry on a patient's medication list.
// GenericName is the join key into the rule catalog; lookups lower-case it
// before comparison. Immutable for the duration of an evaluation call.
type MedicationIdentity struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	GenericName  string  `json:"generic_name"`
	DoseMgPerDay float64 `json:"dose_mg_per_day,omitempty"`
}

// DisplayLabel returns the name shown in user-facing messages, falling back
// to the generic name when no brand name was recorded.
func (m MedicationIdentity) DisplayLabel() string {
	if m.Name != "" {
		return m.Name
	}
	return m.GenericName
}

// Key returns the identity used for de-duplicating involved medications.
// Falls back to the lower-cased generic name when the caller supplied no ID.
func (m MedicationIdentity) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return strings.ToLower(strings.TrimSpace(m.GenericName))
}

// Validate ensures the medication identity can participate in an evaluation.
func (m *MedicationIdentity) Validate() error {
	if strings.TrimSpace(m.GenericName) == "" {
		return fmt.Errorf("medication validation: %w", errors.New("generic name is required"))
	}
	return nil
}

// PatientSnapshot is a read-only, point-in-time view of the patient assembled
// by the caller. The engine never mutates it.
type PatientSnapshot struct {
	ID         string   `json:"id"`
	Age        int      `json:"age"`
	Sex        Sex      `json:"sex"`
	Conditions []string `json:"conditions"`
}

// Validate ensures the snapshot meets the evaluation contract.
func (p *PatientSnapshot) Validate() error {
	if p.Sex != "" && !p.Sex.IsValid() {
		return fmt.Errorf("patient validation: %w", ErrInvalidSex)
	}
	if p.Age < 0 {
		return fmt.Errorf("patient validation: %w", errors.New("age must not be negative"))
	}
	return nil
}

// VitalSnapshot is one recorded vital sign. Callers supplying multiple
// snapshots of the same type must order most-relevant-first; the evaluator
// uses the first matching entry per type and does not sort by recency.
type VitalSnapshot struct {
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit,omitempty"`
	RecordedAt string  `json:"recorded_at,omitempty"`
}

// LabSnapshot is one recorded lab result, with the same ordering contract as
// VitalSnapshot.
type LabSnapshot struct {
	Type       string  `json:"type"`
	Value      float64 `json:"value"`
	Unit       string  `json:"unit,omitempty"`
	RecordedAt string  `json:"recorded_at,omitempty"`
}

// Measurement is the flattened {type, value} pair consumed by the threshold
// evaluator.
type Measurement struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// Measurement converts the vital snapshot to its evaluator input form.
func (v VitalSnapshot) Measurement() Measurement {
	return Measurement{Type: v.Type, Value: v.Value}
}

// Measurement converts the lab snapshot to its evaluator input form.
func (l LabSnapshot) Measurement() Measurement {
	return Measurement{Type: l.Type, Value: l.Value}
}

// ThresholdRule pairs optional warning/danger bounds with human-readable
// rationale text for one vital or lab type. A nil bound means no check in
// that direction. Catalog authoring invariant: when both low bounds are set,
// LowDanger < LowWarning; when both high bounds are set,
// HighDanger > HighWarning. The runtime evaluator does not validate this;
// the catalog asserts it at load time.
type ThresholdRule struct {
	Type        string   `json:"type"`
	Rationale   string   `json:"rationale"`
	LowWarning  *float64 `json:"low_warning,omitempty"`
	LowDanger   *float64 `json:"low_danger,omitempty"`
	HighWarning *float64 `json:"high_warning,omitempty"`
	HighDanger  *float64 `json:"high_danger,omitempty"`
}

// Validate asserts the catalog authoring invariant on bound ordering.
func (r *ThresholdRule) Validate() error {
	if r.Type == "" {
		return fmt.Errorf("threshold rule validation: %w", errors.New("type is required"))
	}
	if r.LowWarning != nil && r.LowDanger != nil && *r.LowDanger >= *r.LowWarning {
		return fmt.Errorf("threshold rule validation %q: %w", r.Type, ErrInvalidThresholdRule)
	}
	if r.HighWarning != nil && r.HighDanger != nil && *r.HighDanger <= *r.HighWarning {
		return fmt.Errorf("threshold rule validation %q: %w", r.Type, ErrInvalidThresholdRule)
	}
	return nil
}

// DoseRange is the catalog-authored daily dose band for a medication.
type DoseRange struct {
	MinMgPerDay float64 `json:"min_mg_per_day"`
	MaxMgPerDay float64 `json:"max_mg_per_day"`
}

// Contraindication declares a condition under which the medication should be
// flagged, with the red/yellow severity of the flag.
type Contraindication struct {
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	Severity    RiskLevel `json:"severity"`
}

// Monitoring groups the per-vital and per-lab threshold rules attached to a
// medication rule.
type Monitoring struct {
	Vitals []ThresholdRule `json:"vitals,omitempty"`
	Labs   []ThresholdRule `json:"labs,omitempty"`
}

// MedicationRule is the catalog entry for one known generic name.
type MedicationRule struct {
	GenericName       string             `json:"generic_name"`
	DisplayName       string             `json:"display_name"`
	Classes           []DrugClass        `json:"classes"`
	DoseRange         *DoseRange         `json:"dose_range,omitempty"`
	Monitoring        Monitoring         `json:"monitoring"`
	Contraindications []Contraindication `json:"contraindications,omitempty"`
	Notes             string             `json:"notes,omitempty"`
}

// HasClass reports whether the medication belongs to the given drug class.
func (r *MedicationRule) HasClass(class DrugClass) bool {
	for _, c := range r.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// Validate ensures the rule is well-formed for catalog loading.
func (r *MedicationRule) Validate() error {
	if strings.TrimSpace(r.GenericName) == "" {
		return fmt.Errorf("medication rule validation: %w", errors.New("generic name is required"))
	}
	if r.DisplayName == "" {
		return fmt.Errorf("medication rule validation %q: %w", r.GenericName, errors.New("display name is required"))
	}
	for i := range r.Monitoring.Vitals {
		if err := r.Monitoring.Vitals[i].Validate(); err != nil {
			return fmt.Errorf("medication rule %q vitals: %w", r.GenericName, err)
		}
	}
	for i := range r.Monitoring.Labs {
		if err := r.Monitoring.Labs[i].Validate(); err != nil {
			return fmt.Errorf("medication rule %q labs: %w", r.GenericName, err)
		}
	}
	for _, c := range r.Contraindications {
		if c.Severity != RED && c.Severity != YELLOW {
			return fmt.Errorf("medication rule %q contraindication %q: %w", r.GenericName, c.Condition, ErrInvalidMedicationRule)
		}
	}
	return nil
}

// AgentMatcher is one of the two asymmetric slots of an interaction rule.
// Exactly one of GenericName or MedicationClass is set: a medication matches
// a name-based agent by lower-cased generic name, and a class-based agent by
// its catalog-declared class membership.
type AgentMatcher struct {
	GenericName     string    `json:"generic_name,omitempty"`
	MedicationClass DrugClass `json:"medication_class,omitempty"`
}

// Validate ensures exactly one matcher dimension is set.
func (a *AgentMatcher) Validate() error {
	if (a.GenericName == "") == (a.MedicationClass == "") {
		return fmt.Errorf("agent matcher validation: %w", ErrInvalidInteractionRule)
	}
	return nil
}

// InteractionRule is one pairwise clinical interaction. Agents are two
// asymmetric slots; the rule fires when at least one active medication
// matches each slot and the union of involved medications has at least two
// distinct entries.
type InteractionRule struct {
	ID         string              `json:"id"`
	Label      string              `json:"label"`
	Severity   InteractionSeverity `json:"severity"`
	Agents     [2]AgentMatcher     `json:"agents"`
	Summary    string              `json:"summary"`
	Details    string              `json:"details"`
	Monitoring []string            `json:"monitoring,omitempty"`
}

// Validate ensures the rule is well-formed for catalog loading.
func (r *InteractionRule) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("interaction rule validation: %w", errors.New("id is required"))
	}
	if !r.Severity.IsValid() {
		return fmt.Errorf("interaction rule validation %q: %w", r.ID, ErrInvalidInteractionSeverity)
	}
	for i := range r.Agents {
		if err := r.Agents[i].Validate(); err != nil {
			return fmt.Errorf("interaction rule %q agent %d: %w", r.ID, i, err)
		}
	}
	return nil
}
