package engine

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/medrisk-server/internal/domain"
)

// EvaluateRisk scores a single medication against the patient's most recent
// vitals and labs.
//
// A medication with no catalog rule returns a GREEN result with an explicit
// "no rule found" summary: unknown medications are never flagged as risky by
// default. Otherwise, vitals reasons come first, then labs reasons; the level
// is GREEN with no reasons, RED when any reason is a danger-kind breach, and
// YELLOW otherwise. Suggestions are always-shown monitoring guidance for the
// medication, independent of whether any threshold fired.
func (e *Engine) EvaluateRisk(med domain.MedicationIdentity, vitals []domain.VitalSnapshot, labs []domain.LabSnapshot) domain.MedicationRiskResult {
	rule, ok := e.catalog.Rule(med.GenericName)
	if !ok {
		e.log.WithFields(logrus.Fields{
			"medication": med.DisplayLabel(),
			"generic":    med.GenericName,
		}).Debug("No medication rule found, returning fail-open result")

		return domain.MedicationRiskResult{
			Level:       domain.GREEN,
			Summary:     fmt.Sprintf("No rule found for %s.", med.DisplayLabel()),
			Detail:      "",
			Reasons:     []domain.Reason{},
			Suggestions: []string{},
		}
	}

	reasons := EvaluateThresholds(rule.Monitoring.Vitals, vitalMeasurements(vitals))
	reasons = append(reasons, EvaluateThresholds(rule.Monitoring.Labs, labMeasurements(labs))...)

	result := domain.MedicationRiskResult{
		Level:       deriveLevel(reasons),
		Summary:     fmt.Sprintf("Risk assessment for %s.", rule.DisplayName),
		Detail:      rule.Notes,
		Reasons:     reasons,
		Suggestions: buildSuggestions(rule),
	}

	e.log.WithFields(logrus.Fields{
		"medication": rule.DisplayName,
		"level":      result.Level.String(),
		"reasons":    len(result.Reasons),
	}).Info("Completed medication risk evaluation")

	return result
}

// deriveLevel maps the reason list onto the three-tier scale: empty is
// GREEN, any danger-kind reason is RED, anything else is YELLOW. Danger
// reasons are exactly the ones whose message contains "critically", so the
// outcome matches consumers that triage on that text.
func deriveLevel(reasons []domain.Reason) domain.RiskLevel {
	if len(reasons) == 0 {
		return domain.GREEN
	}
	for _, r := range reasons {
		if r.Kind == domain.DANGER {
			return domain.RED
		}
	}
	return domain.YELLOW
}

// buildSuggestions assembles the always-shown monitoring guidance: one line
// per vital rule, one per lab rule, then the catalog notes verbatim.
func buildSuggestions(rule *domain.MedicationRule) []string {
	suggestions := []string{}

	for _, v := range rule.Monitoring.Vitals {
		label := strings.ReplaceAll(v.Type, "_", " ")
		suggestions = append(suggestions, fmt.Sprintf("Monitor %s (%s)", label, v.Rationale))
	}
	for _, l := range rule.Monitoring.Labs {
		suggestions = append(suggestions, fmt.Sprintf("Check %s (%s)", strings.ToUpper(l.Type), l.Rationale))
	}
	if rule.Notes != "" {
		suggestions = append(suggestions, rule.Notes)
	}

	return suggestions
}

func vitalMeasurements(vitals []domain.VitalSnapshot) []domain.Measurement {
	values := make([]domain.Measurement, 0, len(vitals))
	for _, v := range vitals {
		values = append(values, v.Measurement())
	}
	return values
}

func labMeasurements(labs []domain.LabSnapshot) []domain.Measurement {
	values := make([]domain.Measurement, 0, len(labs))
	for _, l := range labs {
		values = append(values, l.Measurement())
	}
	return values
}
