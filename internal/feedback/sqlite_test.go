package feedback

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSQLiteStore(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "feedback-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	dbPath := filepath.Join(tmpDir, "test.db")

	// Act
	store, err := NewSQLiteStore(dbPath)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	// Verify database file was created
	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "Database file should exist")
}

func TestSQLiteStore_Save(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	feedback := &Feedback{
		RuleID:      "acei_nsaid_kidney",
		PatientID:   "pat-001",
		Medications: "lisinopril, ibuprofen",
		Severity:    "MAJOR",
		Helpful:     true,
		Notes:       "Caught a real problem before refill",
	}

	// Act
	err := store.Save(ctx, feedback)

	// Assert
	require.NoError(t, err)
	assert.NotZero(t, feedback.ID, "ID should be assigned")
	assert.False(t, feedback.CreatedAt.IsZero(), "CreatedAt should be set")
	assert.False(t, feedback.UpdatedAt.IsZero(), "UpdatedAt should be set")
}

func TestSQLiteStore_Save_Update(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	// Save initial feedback
	feedback := &Feedback{
		RuleID:      "warfarin_nsaid_bleed",
		PatientID:   "pat-002",
		Medications: "warfarin, naproxen",
		Severity:    "MAJOR",
		Helpful:     false,
	}
	err := store.Save(ctx, feedback)
	require.NoError(t, err)
	originalID := feedback.ID

	// Update with same rule + patient
	feedback.Helpful = true
	feedback.Notes = "Changed mind after pharmacist review"

	err = store.Save(ctx, feedback)
	require.NoError(t, err)

	// Assert - should update, not create new
	assert.Equal(t, originalID, feedback.ID, "Should update existing record")

	// Verify update
	retrieved, err := store.Get(ctx, "warfarin_nsaid_bleed", "pat-002")
	require.NoError(t, err)
	assert.True(t, retrieved.Helpful)
	assert.Equal(t, "Changed mind after pharmacist review", retrieved.Notes)
}

func TestSQLiteStore_Get(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	feedback := &Feedback{
		RuleID:      "ssri_nsaid_bleed",
		PatientID:   "",
		Medications: "sertraline, ibuprofen",
		Severity:    "MODERATE",
		Helpful:     true,
	}
	err := store.Save(ctx, feedback)
	require.NoError(t, err)

	// Act
	retrieved, err := store.Get(ctx, "ssri_nsaid_bleed", "")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, feedback.RuleID, retrieved.RuleID)
	assert.Equal(t, feedback.Medications, retrieved.Medications)
	assert.True(t, retrieved.Helpful)
}

func TestSQLiteStore_Get_PerPatient(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	// Same rule flagged for two different patients
	feedback1 := &Feedback{
		RuleID:    "acei_nsaid_kidney",
		PatientID: "pat-lung",
		Severity:  "MAJOR",
		Helpful:   true,
	}
	err := store.Save(ctx, feedback1)
	require.NoError(t, err)

	feedback2 := &Feedback{
		RuleID:    "acei_nsaid_kidney",
		PatientID: "pat-renal",
		Severity:  "MAJOR",
		Helpful:   false,
		Notes:     "Already monitored by nephrology",
	}
	err = store.Save(ctx, feedback2)
	require.NoError(t, err)

	// Act - get per patient
	first, err := store.Get(ctx, "acei_nsaid_kidney", "pat-lung")
	require.NoError(t, err)
	assert.True(t, first.Helpful)

	second, err := store.Get(ctx, "acei_nsaid_kidney", "pat-renal")
	require.NoError(t, err)
	assert.False(t, second.Helpful)
	assert.Equal(t, "Already monitored by nephrology", second.Notes)
}

func TestSQLiteStore_Get_NotFound(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	// Act
	retrieved, err := store.Get(ctx, "no_such_rule", "")

	// Assert
	assert.NoError(t, err)
	assert.Nil(t, retrieved, "Should return nil for not found")
}

func TestSQLiteStore_List(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	rules := []string{
		"acei_nsaid_kidney",
		"warfarin_nsaid_bleed",
		"ssri_triptan_serotonin",
	}

	for i, r := range rules {
		feedback := &Feedback{
			RuleID:   r,
			Severity: "MAJOR",
			Helpful:  true,
		}
		err := store.Save(ctx, feedback)
		require.NoError(t, err, "Failed to save feedback %d", i)
	}

	// Act
	list, err := store.List(ctx, 10, 0)

	// Assert
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestSQLiteStore_List_Pagination(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	// Save 5 entries
	for i := 0; i < 5; i++ {
		feedback := &Feedback{
			RuleID:   "rule_" + string(rune('a'+i)),
			Severity: "MODERATE",
			Helpful:  true,
		}
		err := store.Save(ctx, feedback)
		require.NoError(t, err)
		time.Sleep(10 * time.Millisecond) // Ensure different timestamps
	}

	// Act - get first page
	page1, err := store.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page1, 2)

	// Act - get second page
	page2, err := store.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page2, 2)

	// Act - get third page
	page3, err := store.List(ctx, 2, 4)
	require.NoError(t, err)
	assert.Len(t, page3, 1)
}

func TestSQLiteStore_Count(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		feedback := &Feedback{
			RuleID:  "rule_" + string(rune('a'+i)),
			Helpful: true,
		}
		err := store.Save(ctx, feedback)
		require.NoError(t, err)
	}

	// Act
	count, err := store.Count(ctx)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestSQLiteStore_Delete(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	feedback := &Feedback{
		RuleID:    "levothyroxine_ppi_absorption",
		PatientID: "pat-003",
		Severity:  "MINOR",
		Helpful:   false,
	}
	err := store.Save(ctx, feedback)
	require.NoError(t, err)

	// Act
	err = store.Delete(ctx, feedback.ID)

	// Assert
	require.NoError(t, err)

	// Verify deletion
	retrieved, err := store.Get(ctx, "levothyroxine_ppi_absorption", "pat-003")
	assert.NoError(t, err)
	assert.Nil(t, retrieved)
}

func TestSQLiteStore_ExportJSON(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	feedback := &Feedback{
		RuleID:      "acei_nsaid_kidney",
		PatientID:   "pat-004",
		Medications: "lisinopril, ibuprofen",
		Severity:    "MAJOR",
		Helpful:     true,
		Notes:       "Dose was adjusted the same day",
	}
	err := store.Save(ctx, feedback)
	require.NoError(t, err)

	// Act
	var buf bytes.Buffer
	err = store.ExportJSON(ctx, &buf)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "acei_nsaid_kidney")
	assert.Contains(t, buf.String(), "Dose was adjusted the same day")
	assert.Contains(t, buf.String(), `"version"`)
	assert.Contains(t, buf.String(), `"count"`)
}

func TestSQLiteStore_ImportJSON(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	jsonData := `{
		"version": "1.0",
		"exported_at": "2026-01-17T10:00:00Z",
		"count": 2,
		"feedback": [
			{
				"rule_id": "acei_nsaid_kidney",
				"patient_id": "pat-005",
				"medications": "lisinopril, naproxen",
				"severity": "MAJOR",
				"helpful": true
			},
			{
				"rule_id": "ssri_tramadol_serotonin",
				"patient_id": "pat-006",
				"severity": "MAJOR",
				"helpful": false,
				"notes": "Patient already off tramadol"
			}
		]
	}`

	// Act
	imported, skipped, err := store.ImportJSON(ctx, bytes.NewReader([]byte(jsonData)))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Equal(t, 0, skipped)

	// Verify imports
	count, _ := store.Count(ctx)
	assert.Equal(t, int64(2), count)

	first, err := store.Get(ctx, "acei_nsaid_kidney", "pat-005")
	require.NoError(t, err)
	assert.True(t, first.Helpful)

	second, err := store.Get(ctx, "ssri_tramadol_serotonin", "pat-006")
	require.NoError(t, err)
	assert.False(t, second.Helpful)
	assert.Equal(t, "Patient already off tramadol", second.Notes)
}

func TestSQLiteStore_ImportJSON_SkipDuplicates(t *testing.T) {
	store := createTestStore(t)
	defer store.Close()

	ctx := context.Background()

	// Save existing feedback
	existing := &Feedback{
		RuleID:    "warfarin_ssri_bleed",
		PatientID: "pat-007",
		Severity:  "MAJOR",
		Helpful:   true,
	}
	err := store.Save(ctx, existing)
	require.NoError(t, err)

	// Import with duplicate
	jsonData := `{
		"version": "1.0",
		"count": 2,
		"feedback": [
			{
				"rule_id": "warfarin_ssri_bleed",
				"patient_id": "pat-007",
				"severity": "MAJOR",
				"helpful": false
			},
			{
				"rule_id": "nsaid_duplicate_therapy",
				"patient_id": "pat-007",
				"severity": "MODERATE",
				"helpful": true
			}
		]
	}`

	// Act
	imported, skipped, err := store.ImportJSON(ctx, bytes.NewReader([]byte(jsonData)))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, skipped)

	// Verify existing wasn't overwritten
	kept, _ := store.Get(ctx, "warfarin_ssri_bleed", "pat-007")
	assert.True(t, kept.Helpful, "Existing should not be overwritten")
}

// Helper function to create a test store
func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "feedback-test-*")
	require.NoError(t, err)

	t.Cleanup(func() {
		os.RemoveAll(tmpDir)
	})

	dbPath := filepath.Join(tmpDir, "test.db")
	store, err := NewSQLiteStore(dbPath)
	require.NoError(t, err)

	return store
}
