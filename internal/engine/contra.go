package engine

import (
	"strings"

	"github.com/medrisk-server/internal/domain"
)

// ConditionMatches reports whether a patient's free-text condition matches a
// rule's contraindication condition key. Both strings are trimmed and
// lower-cased; they match when equal or when either contains the other as a
// substring.
//
// The looseness is deliberate, to tolerate free-text condition entry, and is
// a known source of false positives ("diabetes" matches "gestational
// diabetes"). Callers wanting stricter matching must filter the hits.
func ConditionMatches(patientCondition, ruleCondition string) bool {
	p := strings.ToLower(strings.TrimSpace(patientCondition))
	r := strings.ToLower(strings.TrimSpace(ruleCondition))
	if p == "" || r == "" {
		return false
	}
	return p == r || strings.Contains(p, r) || strings.Contains(r, p)
}

// CheckContraindications cross-references a medication's catalog-declared
// contraindications against the patient's condition list. Hits are returned
// in rule order, one per contraindication, recording the first patient
// condition that matched. A medication with no catalog rule produces no
// hits.
func (e *Engine) CheckContraindications(med domain.MedicationIdentity, conditions []string) []domain.ContraindicationHit {
	hits := []domain.ContraindicationHit{}

	rule, ok := e.catalog.Rule(med.GenericName)
	if !ok {
		return hits
	}

	for _, contra := range rule.Contraindications {
		for _, condition := range conditions {
			if ConditionMatches(condition, contra.Condition) {
				hits = append(hits, domain.ContraindicationHit{
					Condition:        contra.Condition,
					MatchedCondition: condition,
					Description:      contra.Description,
					Severity:         contra.Severity,
				})
				break
			}
		}
	}

	return hits
}
