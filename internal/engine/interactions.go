package engine

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/medrisk-server/internal/domain"
)

// EvaluateInteractions cross-references the active medication list against
// every interaction rule and returns one detected interaction per rule with
// at least one match in each agent slot.
//
// Output preserves catalog order and is never de-duplicated across rules:
// the same medication pair appears once per independently matching rule,
// since each rule carries a distinct clinical rationale. A list of fewer
// than two medications returns an empty slice immediately.
func (e *Engine) EvaluateInteractions(meds []domain.MedicationIdentity) []domain.DetectedInteraction {
	detected := []domain.DetectedInteraction{}
	if len(meds) < 2 {
		return detected
	}

	for _, rule := range e.catalog.InteractionRules() {
		groupA := e.matchAgent(meds, rule.Agents[0])
		groupB := e.matchAgent(meds, rule.Agents[1])
		if len(groupA) == 0 || len(groupB) == 0 {
			continue
		}

		involved := unionByKey(groupA, groupB)
		// A single medication matching both agent slots (for example a rule
		// whose two class agents overlap) is not an interaction with itself.
		if len(involved) < 2 {
			continue
		}

		detected = append(detected, domain.DetectedInteraction{
			RuleID:              rule.ID,
			Severity:            rule.Severity,
			Summary:             rule.Summary,
			Details:             rule.Details,
			MedicationsInvolved: involved,
			Monitoring:          rule.Monitoring,
		})
	}

	e.log.WithFields(logrus.Fields{
		"medications":  len(meds),
		"interactions": len(detected),
	}).Info("Completed interaction evaluation")

	return detected
}

// matchAgent partitions the medication list into matches for one agent slot.
// A name-based agent matches on lower-cased generic name. A class-based
// agent matches through the medication's own catalog rule; a medication with
// no rule has no class memberships and cannot match a class-based agent.
func (e *Engine) matchAgent(meds []domain.MedicationIdentity, agent domain.AgentMatcher) []domain.MedicationIdentity {
	var matches []domain.MedicationIdentity

	for _, med := range meds {
		generic := strings.ToLower(strings.TrimSpace(med.GenericName))
		if generic == "" {
			continue
		}

		if agent.GenericName != "" {
			if generic == strings.ToLower(strings.TrimSpace(agent.GenericName)) {
				matches = append(matches, med)
			}
			continue
		}

		if rule, ok := e.catalog.Rule(generic); ok && rule.HasClass(agent.MedicationClass) {
			matches = append(matches, med)
		}
	}

	return matches
}

// unionByKey merges the two agent groups preserving group-A-first order,
// de-duplicating by medication identity.
func unionByKey(groupA, groupB []domain.MedicationIdentity) []domain.MedicationIdentity {
	seen := make(map[string]bool, len(groupA)+len(groupB))
	involved := make([]domain.MedicationIdentity, 0, len(groupA)+len(groupB))

	for _, med := range append(append([]domain.MedicationIdentity{}, groupA...), groupB...) {
		key := med.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		involved = append(involved, med)
	}

	return involved
}
