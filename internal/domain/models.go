package domain

import (
	"encoding/json"
	"time"
)

// MedicationRiskResult is the outcome of evaluating a single medication
// against the patient's vitals and labs. Computed fresh on every call and
// never persisted by the engine itself.
type MedicationRiskResult struct {
	Level       RiskLevel `json:"level"`
	Summary     string    `json:"summary"`
	Detail      string    `json:"detail"`
	Reasons     []Reason  `json:"reasons"`
	Suggestions []string  `json:"suggestions"`
}

// ReasonMessages returns the reason texts in evaluation order.
func (r *MedicationRiskResult) ReasonMessages() []string {
	msgs := make([]string, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		msgs = append(msgs, reason.Message)
	}
	return msgs
}

// DetectedInteraction is one fired interaction rule with the medications
// involved, de-duplicated by identity. Emitted in catalog order.
type DetectedInteraction struct {
	RuleID              string               `json:"rule_id"`
	Severity            InteractionSeverity  `json:"severity"`
	Summary             string               `json:"summary"`
	Details             string               `json:"details"`
	MedicationsInvolved []MedicationIdentity `json:"medications_involved"`
	Monitoring          []string             `json:"monitoring,omitempty"`
}

// ContraindicationHit records a contraindication whose condition key matched
// one of the patient's free-text conditions under the loose bidirectional
// substring policy.
type ContraindicationHit struct {
	Condition        string    `json:"condition"`
	MatchedCondition string    `json:"matched_condition"`
	Description      string    `json:"description"`
	Severity         RiskLevel `json:"severity"`
}

// AssessmentKind distinguishes stored evaluation records.
type AssessmentKind string

const (
	RiskAssessment        AssessmentKind = "risk"
	InteractionAssessment AssessmentKind = "interactions"
)

// AssessmentRecord is a persisted evaluation: the caller-side audit trail the
// engine's lifecycle contract leaves to the surrounding application.
type AssessmentRecord struct {
	ID            string          `json:"id"`
	Kind          AssessmentKind  `json:"kind"`
	PatientID     string          `json:"patient_id,omitempty"`
	RequestDigest string          `json:"request_digest"`
	RiskLevel     string          `json:"risk_level,omitempty"`
	Result        json.RawMessage `json:"result"`
	CreatedAt     time.Time       `json:"created_at"`
}
