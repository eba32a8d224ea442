package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/medrisk-server/internal/domain"
)

// EvaluateThresholds applies each threshold rule to the first supplied value
// of its type and returns human-readable breach reasons in rule order.
//
// Per rule, bounds apply in fixed precedence: a value below LowDanger emits
// only the "critically low" reason (danger supersedes warning on the low
// side); otherwise a value below LowWarning emits "low". The high side is
// checked independently with the same danger-over-warning precedence. A rule
// whose type has no supplied value is skipped silently; missing data is not
// an error.
//
// Callers supplying several values of one type must order most-relevant
// first: the evaluator takes the first match per type and never sorts.
func EvaluateThresholds(rules []domain.ThresholdRule, values []domain.Measurement) []domain.Reason {
	reasons := []domain.Reason{}

	for _, rule := range rules {
		value, ok := firstValue(values, rule.Type)
		if !ok {
			continue
		}

		label := strings.ReplaceAll(rule.Type, "_", " ")

		if rule.LowDanger != nil && value < *rule.LowDanger {
			reasons = append(reasons, domain.Reason{
				Kind:    domain.DANGER,
				Message: fmt.Sprintf("%s critically low (%s).", label, formatValue(value)),
			})
		} else if rule.LowWarning != nil && value < *rule.LowWarning {
			reasons = append(reasons, domain.Reason{
				Kind:    domain.WARNING,
				Message: fmt.Sprintf("%s low (%s).", label, formatValue(value)),
			})
		}

		if rule.HighDanger != nil && value > *rule.HighDanger {
			reasons = append(reasons, domain.Reason{
				Kind:    domain.DANGER,
				Message: fmt.Sprintf("%s critically high (%s).", label, formatValue(value)),
			})
		} else if rule.HighWarning != nil && value > *rule.HighWarning {
			reasons = append(reasons, domain.Reason{
				Kind:    domain.WARNING,
				Message: fmt.Sprintf("%s high (%s).", label, formatValue(value)),
			})
		}
	}

	return reasons
}

// firstValue returns the first supplied value of the given type.
func firstValue(values []domain.Measurement, typ string) (float64, bool) {
	for _, v := range values {
		if v.Type == typ {
			return v.Value, true
		}
	}
	return 0, false
}

// formatValue renders a measurement without trailing zeros: 85 not 85.0,
// but 5.2 stays 5.2.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
