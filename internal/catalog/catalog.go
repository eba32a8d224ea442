// Package catalog holds the static medication and interaction rule registries.
// The catalog is built once at process start and treated as immutable for the
// process lifetime; evaluators receive it by reference and never modify it.
package catalog

import (
	"fmt"
	"strings"

	"github.com/medrisk-server/internal/domain"
)

// Catalog is the immutable, process-wide rule registry.
type Catalog struct {
	medications  map[string]*domain.MedicationRule
	order        []string
	interactions []domain.InteractionRule
}

// New builds a catalog from explicit rule sets, validating the authoring
// invariants (bound ordering, agent matcher shape) up front so malformed
// rules surface at load time instead of as undefined evaluator behavior.
func New(medications []domain.MedicationRule, interactions []domain.InteractionRule) (*Catalog, error) {
	c := &Catalog{
		medications:  make(map[string]*domain.MedicationRule, len(medications)),
		order:        make([]string, 0, len(medications)),
		interactions: interactions,
	}

	for i := range medications {
		rule := medications[i]
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("loading medication rules: %w", err)
		}
		key := strings.ToLower(strings.TrimSpace(rule.GenericName))
		if _, dup := c.medications[key]; dup {
			return nil, fmt.Errorf("loading medication rules: duplicate generic name %q", key)
		}
		c.medications[key] = &rule
		c.order = append(c.order, key)
	}

	for i := range interactions {
		if err := interactions[i].Validate(); err != nil {
			return nil, fmt.Errorf("loading interaction rules: %w", err)
		}
	}

	return c, nil
}

// Default returns the built-in catalog. The data is compiled in, so a
// validation failure is an authoring bug and panics at startup.
func Default() *Catalog {
	c, err := New(medicationRules(), interactionRules())
	if err != nil {
		panic(fmt.Sprintf("built-in rule catalog is malformed: %v", err))
	}
	return c
}

// Rule looks up the medication rule for a generic name. Lookups are
// case-insensitive; the name is lower-cased and trimmed before comparison.
func (c *Catalog) Rule(genericName string) (*domain.MedicationRule, bool) {
	rule, ok := c.medications[strings.ToLower(strings.TrimSpace(genericName))]
	return rule, ok
}

// Classes returns the drug-class memberships for a generic name. A
// medication with no rule has no class memberships.
func (c *Catalog) Classes(genericName string) []domain.DrugClass {
	rule, ok := c.Rule(genericName)
	if !ok {
		return nil
	}
	return rule.Classes
}

// InteractionRules returns the interaction rules in catalog order. The
// returned slice is shared and must not be mutated.
func (c *Catalog) InteractionRules() []domain.InteractionRule {
	return c.interactions
}

// MedicationRules returns the medication rules in catalog order. The
// returned entries are shared and must not be mutated.
func (c *Catalog) MedicationRules() []*domain.MedicationRule {
	rules := make([]*domain.MedicationRule, 0, len(c.order))
	for _, key := range c.order {
		rules = append(rules, c.medications[key])
	}
	return rules
}

// Len returns the number of medication rules.
func (c *Catalog) Len() int {
	return len(c.medications)
}

// ptr is a helper for authoring optional threshold bounds.
func ptr(v float64) *float64 {
	return &v
}
