package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medrisk-server/internal/domain"
)

func TestEvaluateInteractions_FewerThanTwoMedications(t *testing.T) {
	e := newTestEngine(t)

	assert.Empty(t, e.EvaluateInteractions(nil))
	assert.Empty(t, e.EvaluateInteractions([]domain.MedicationIdentity{}))
	assert.Empty(t, e.EvaluateInteractions([]domain.MedicationIdentity{
		{GenericName: "sertraline"},
	}))
}

func TestEvaluateInteractions_ACEInhibitorPlusNSAID(t *testing.T) {
	e := newTestEngine(t)

	meds := []domain.MedicationIdentity{
		{ID: "m1", GenericName: "lisinopril"},
		{ID: "m2", GenericName: "ibuprofen"},
	}

	detected := e.EvaluateInteractions(meds)

	require.Len(t, detected, 1)
	hit := detected[0]
	assert.Equal(t, "acei_nsaid_kidney", hit.RuleID)
	assert.Equal(t, domain.MAJOR, hit.Severity)
	require.Len(t, hit.MedicationsInvolved, 2)
	assert.Equal(t, "m1", hit.MedicationsInvolved[0].ID)
	assert.Equal(t, "m2", hit.MedicationsInvolved[1].ID)
	assert.NotEmpty(t, hit.Monitoring)
}

func TestEvaluateInteractions_WorksWithoutCallerIDs(t *testing.T) {
	e := newTestEngine(t)

	// Identity falls back to the generic name when no ID is supplied.
	meds := []domain.MedicationIdentity{
		{GenericName: "lisinopril"},
		{GenericName: "ibuprofen"},
	}

	detected := e.EvaluateInteractions(meds)

	require.Len(t, detected, 1)
	assert.Equal(t, "acei_nsaid_kidney", detected[0].RuleID)
	assert.Len(t, detected[0].MedicationsInvolved, 2)
}

func TestEvaluateInteractions_SingleMedicationMatchingBothSlotsIsSuppressed(t *testing.T) {
	e := newTestEngine(t)

	// Ibuprofen alone matches both NSAID slots of the duplicate-therapy
	// rule; the involved<2 guard suppresses the self-pair. Sertraline is
	// present so the list clears the two-medication precondition, and the
	// SSRI+NSAID rule still fires for the real pair.
	meds := []domain.MedicationIdentity{
		{ID: "m1", GenericName: "ibuprofen"},
		{ID: "m2", GenericName: "sertraline"},
	}

	detected := e.EvaluateInteractions(meds)

	ids := ruleIDs(detected)
	assert.Contains(t, ids, "ssri_nsaid_bleed")
	assert.NotContains(t, ids, "nsaid_duplicate_therapy")
}

func TestEvaluateInteractions_DuplicateClassTherapyFiresForDistinctMedications(t *testing.T) {
	e := newTestEngine(t)

	meds := []domain.MedicationIdentity{
		{ID: "m1", GenericName: "ibuprofen"},
		{ID: "m2", GenericName: "naproxen"},
	}

	detected := e.EvaluateInteractions(meds)

	require.Len(t, detected, 1)
	assert.Equal(t, "nsaid_duplicate_therapy", detected[0].RuleID)
	assert.Len(t, detected[0].MedicationsInvolved, 2)
}

func TestEvaluateInteractions_NameBasedAgent(t *testing.T) {
	e := newTestEngine(t)

	meds := []domain.MedicationIdentity{
		{ID: "m1", GenericName: "levothyroxine"},
		{ID: "m2", GenericName: "omeprazole"},
	}

	detected := e.EvaluateInteractions(meds)

	require.Len(t, detected, 1)
	assert.Equal(t, "levothyroxine_ppi_absorption", detected[0].RuleID)
	assert.Equal(t, domain.MINOR, detected[0].Severity)
}

func TestEvaluateInteractions_UnknownMedicationCannotMatchClassAgent(t *testing.T) {
	e := newTestEngine(t)

	// "mysterydrug" has no catalog rule, so it has no class memberships and
	// the class-based NSAID slot cannot match it.
	meds := []domain.MedicationIdentity{
		{ID: "m1", GenericName: "lisinopril"},
		{ID: "m2", GenericName: "mysterydrug"},
	}

	assert.Empty(t, e.EvaluateInteractions(meds))
}

func TestEvaluateInteractions_SameMedicationInMultipleRules(t *testing.T) {
	e := newTestEngine(t)

	// Warfarin + ibuprofen + sertraline: ibuprofen participates in the
	// warfarin rule and the SSRI rule; output keeps one record per rule, in
	// catalog order, never de-duplicated across rules.
	meds := []domain.MedicationIdentity{
		{ID: "m1", GenericName: "warfarin"},
		{ID: "m2", GenericName: "ibuprofen"},
		{ID: "m3", GenericName: "sertraline"},
	}

	detected := e.EvaluateInteractions(meds)

	assert.Equal(t, []string{"warfarin_nsaid_bleed", "warfarin_ssri_bleed", "ssri_nsaid_bleed"}, ruleIDs(detected))
}

func TestEvaluateInteractions_InvolvedDeduplication(t *testing.T) {
	e := newTestEngine(t)

	// Aspirin is both NSAID and ANTIPLATELET; with warfarin it appears in
	// exactly one involved slot of the bleed rule, not twice.
	meds := []domain.MedicationIdentity{
		{ID: "m1", GenericName: "warfarin"},
		{ID: "m2", GenericName: "aspirin"},
	}

	detected := e.EvaluateInteractions(meds)

	require.NotEmpty(t, detected)
	for _, d := range detected {
		seen := map[string]int{}
		for _, med := range d.MedicationsInvolved {
			seen[med.ID]++
		}
		for id, count := range seen {
			assert.Equal(t, 1, count, "medication %s duplicated in rule %s", id, d.RuleID)
		}
	}
}

func TestEvaluateInteractions_Idempotent(t *testing.T) {
	e := newTestEngine(t)

	meds := []domain.MedicationIdentity{
		{ID: "m1", GenericName: "warfarin"},
		{ID: "m2", GenericName: "ibuprofen"},
		{ID: "m3", GenericName: "sertraline"},
	}

	first := e.EvaluateInteractions(meds)
	second := e.EvaluateInteractions(meds)

	assert.Equal(t, first, second)
}

func ruleIDs(detected []domain.DetectedInteraction) []string {
	ids := make([]string, 0, len(detected))
	for _, d := range detected {
		ids = append(ids, d.RuleID)
	}
	return ids
}
