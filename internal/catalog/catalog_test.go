package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medrisk-server/internal/domain"
)

func TestDefault_Builds(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Greater(t, c.Len(), 10)
	assert.NotEmpty(t, c.InteractionRules())
}

func TestCatalog_LookupIsCaseInsensitive(t *testing.T) {
	c := Default()

	for _, name := range []string{"lisinopril", "Lisinopril", "LISINOPRIL", "  lisinopril "} {
		rule, ok := c.Rule(name)
		require.True(t, ok, "lookup failed for %q", name)
		assert.Equal(t, "Lisinopril", rule.DisplayName)
	}

	_, ok := c.Rule("no-such-drug")
	assert.False(t, ok)
}

func TestCatalog_LisinoprilThresholds(t *testing.T) {
	c := Default()
	rule, ok := c.Rule("lisinopril")
	require.True(t, ok)

	require.Len(t, rule.Monitoring.Vitals, 1)
	bp := rule.Monitoring.Vitals[0]
	assert.Equal(t, "systolic_bp", bp.Type)
	require.NotNil(t, bp.LowDanger)
	assert.Equal(t, 90.0, *bp.LowDanger)

	var potassium *domain.ThresholdRule
	for i := range rule.Monitoring.Labs {
		if rule.Monitoring.Labs[i].Type == "potassium" {
			potassium = &rule.Monitoring.Labs[i]
		}
	}
	require.NotNil(t, potassium)
	assert.Equal(t, 5.0, *potassium.HighWarning)
	assert.Equal(t, 5.5, *potassium.HighDanger)
}

func TestCatalog_Classes(t *testing.T) {
	c := Default()
	assert.Contains(t, c.Classes("lisinopril"), domain.ACE_INHIBITOR)
	assert.Contains(t, c.Classes("Ibuprofen"), domain.NSAID)
	assert.Nil(t, c.Classes("unknown-med"))
}

func TestCatalog_InteractionAgentsResolve(t *testing.T) {
	c := Default()

	// Every class referenced by an interaction agent must belong to at least
	// one catalog medication, and every name-based agent must be a known
	// generic, otherwise the rule can never fire.
	classes := map[domain.DrugClass]bool{}
	for _, rule := range c.MedicationRules() {
		for _, class := range rule.Classes {
			classes[class] = true
		}
	}

	for _, rule := range c.InteractionRules() {
		for _, agent := range rule.Agents {
			if agent.MedicationClass != "" {
				assert.True(t, classes[agent.MedicationClass],
					"rule %s references class %s with no member", rule.ID, agent.MedicationClass)
			}
			if agent.GenericName != "" {
				_, ok := c.Rule(agent.GenericName)
				assert.True(t, ok, "rule %s references unknown generic %s", rule.ID, agent.GenericName)
			}
		}
	}
}

func TestCatalog_MedicationRulesPreserveOrder(t *testing.T) {
	c := Default()
	rules := c.MedicationRules()
	require.Equal(t, c.Len(), len(rules))
	assert.Equal(t, "lisinopril", strings.ToLower(rules[0].GenericName))
}

func TestNew_RejectsInvertedBounds(t *testing.T) {
	bad := []domain.MedicationRule{
		{
			GenericName: "badmed",
			DisplayName: "Badmed",
			Monitoring: domain.Monitoring{
				Labs: []domain.ThresholdRule{
					// danger must be strictly above warning on the high side
					{Type: "potassium", HighWarning: ptr(5.5), HighDanger: ptr(5.0)},
				},
			},
		},
	}

	_, err := New(bad, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidThresholdRule)
}

func TestNew_RejectsDuplicateGenerics(t *testing.T) {
	dup := []domain.MedicationRule{
		{GenericName: "samedrug", DisplayName: "Samedrug"},
		{GenericName: "SameDrug", DisplayName: "Samedrug Again"},
	}

	_, err := New(dup, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate generic name")
}

func TestNew_RejectsMalformedAgents(t *testing.T) {
	rules := []domain.InteractionRule{
		{
			ID:       "broken",
			Severity: domain.MINOR,
			Agents: [2]domain.AgentMatcher{
				{MedicationClass: domain.NSAID},
				{}, // neither name nor class
			},
		},
	}

	_, err := New(nil, rules)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInteractionRule)
}
