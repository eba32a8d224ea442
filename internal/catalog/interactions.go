package catalog

import (
	"github.com/medrisk-server/internal/domain"
)

// interactionRules returns the built-in pairwise interaction rules. Catalog
// order here is the output order of interaction evaluation; rules are not
// re-sorted by severity.
func interactionRules() []domain.InteractionRule {
	return []domain.InteractionRule{
		{
			ID:       "acei_nsaid_kidney",
			Label:    "ACE inhibitor + NSAID",
			Severity: domain.MAJOR,
			Agents: [2]domain.AgentMatcher{
				{MedicationClass: domain.ACE_INHIBITOR},
				{MedicationClass: domain.NSAID},
			},
			Summary: "Combining an ACE inhibitor with an NSAID can sharply reduce kidney function.",
			Details: "NSAIDs constrict the afferent arteriole while ACE inhibitors dilate the efferent arteriole; together they can drop glomerular filtration, particularly when the patient is also volume depleted.",
			Monitoring: []string{
				"Check creatinine and potassium within one to two weeks of starting the combination.",
				"Watch for reduced urine output, swelling, or rapid weight gain.",
			},
		},
		{
			ID:       "acei_potassium_sparing_hyperkalemia",
			Label:    "ACE inhibitor + potassium-sparing diuretic",
			Severity: domain.MAJOR,
			Agents: [2]domain.AgentMatcher{
				{MedicationClass: domain.ACE_INHIBITOR},
				{MedicationClass: domain.POTASSIUM_SPARING_DIURETIC},
			},
			Summary: "Both agents raise serum potassium; together they can cause dangerous hyperkalemia.",
			Details: "ACE inhibitors blunt aldosterone-mediated potassium excretion and potassium-sparing diuretics block distal potassium secretion directly. The combined effect is additive and can be arrhythmogenic.",
			Monitoring: []string{
				"Check potassium within one week of starting or changing either dose.",
				"Avoid potassium supplements and salt substitutes.",
			},
		},
		{
			ID:       "warfarin_nsaid_bleed",
			Label:    "Warfarin + NSAID",
			Severity: domain.MAJOR,
			Agents: [2]domain.AgentMatcher{
				{MedicationClass: domain.ANTICOAGULANT},
				{MedicationClass: domain.NSAID},
			},
			Summary: "NSAIDs substantially raise the bleeding risk of anticoagulation.",
			Details: "NSAIDs injure gastric mucosa and impair platelet function on top of therapeutic anticoagulation; gastrointestinal bleeding risk rises several-fold.",
			Monitoring: []string{
				"Check INR more frequently while the NSAID is taken.",
				"Report black stools, unusual bruising, or prolonged bleeding immediately.",
			},
		},
		{
			ID:       "warfarin_ssri_bleed",
			Label:    "Warfarin + SSRI",
			Severity: domain.MODERATE,
			Agents: [2]domain.AgentMatcher{
				{MedicationClass: domain.ANTICOAGULANT},
				{MedicationClass: domain.SSRI},
			},
			Summary: "SSRIs add platelet impairment on top of anticoagulation.",
			Details: "SSRIs deplete platelet serotonin and impair aggregation, increasing bleeding risk when combined with warfarin, particularly gastrointestinal bleeding.",
			Monitoring: []string{
				"Watch for bruising and gastrointestinal symptoms.",
				"Review INR after SSRI initiation or dose changes.",
			},
		},
		{
			ID:       "ssri_nsaid_bleed",
			Label:    "SSRI + NSAID",
			Severity: domain.MODERATE,
			Agents: [2]domain.AgentMatcher{
				{MedicationClass: domain.SSRI},
				{MedicationClass: domain.NSAID},
			},
			Summary: "SSRIs and NSAIDs each raise gastrointestinal bleeding risk; together the risk multiplies.",
			Details: "Platelet serotonin depletion from the SSRI compounds NSAID mucosal injury. Consider gastroprotection if the combination is unavoidable.",
			Monitoring: []string{
				"Watch for dark stools or abdominal pain.",
				"Consider a proton pump inhibitor for gastroprotection if use is prolonged.",
			},
		},
		{
			ID:       "ssri_triptan_serotonin",
			Label:    "SSRI + triptan",
			Severity: domain.MODERATE,
			Agents: [2]domain.AgentMatcher{
				{MedicationClass: domain.SSRI},
				{MedicationClass: domain.TRIPTAN},
			},
			Summary: "Combined serotonergic activity can precipitate serotonin syndrome.",
			Details: "Triptans are serotonin receptor agonists; added to SSRI reuptake inhibition they can push serotonergic tone into toxicity, though the absolute risk is low.",
			Monitoring: []string{
				"Watch for agitation, tremor, sweating, or fever after triptan use.",
			},
		},
		{
			ID:       "ssri_tramadol_serotonin",
			Label:    "SSRI + tramadol",
			Severity: domain.MAJOR,
			Agents: [2]domain.AgentMatcher{
				{MedicationClass: domain.SSRI},
				{GenericName: "tramadol"},
			},
			Summary: "Tramadol with an SSRI carries a real risk of serotonin syndrome and seizures.",
			Details: "Tramadol inhibits serotonin reuptake in addition to its opioid activity and independently lowers the seizure threshold; SSRIs compound both effects.",
			Monitoring: []string{
				"Watch for confusion, muscle twitching, fever, or seizures.",
				"Prefer a non-serotonergic analgesic where possible.",
			},
		},
		{
			ID:       "levothyroxine_ppi_absorption",
			Label:    "Levothyroxine + proton pump inhibitor",
			Severity: domain.MINOR,
			Agents: [2]domain.AgentMatcher{
				{GenericName: "levothyroxine"},
				{MedicationClass: domain.PROTON_PUMP_INHIBITOR},
			},
			Summary: "Acid suppression reduces levothyroxine absorption.",
			Details: "Levothyroxine dissolution requires gastric acid; chronic acid suppression can lower free thyroxine and raise TSH over weeks.",
			Monitoring: []string{
				"Recheck TSH six to eight weeks after starting or stopping the acid suppressant.",
				"Separate dosing times as far as practical.",
			},
		},
		{
			ID:       "nsaid_duplicate_therapy",
			Label:    "Duplicate NSAID therapy",
			Severity: domain.MODERATE,
			Agents: [2]domain.AgentMatcher{
				{MedicationClass: domain.NSAID},
				{MedicationClass: domain.NSAID},
			},
			Summary: "Two NSAIDs together add gastrointestinal and renal toxicity without added benefit.",
			Details: "NSAID toxicity is dose-dependent and class-wide; combining agents stacks ulcer and kidney injury risk with no analgesic gain.",
			Monitoring: []string{
				"Consolidate to a single NSAID at the lowest effective dose.",
			},
		},
	}
}
