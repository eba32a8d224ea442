package feedback

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

var feedbackColumns = []string{
	"id", "rule_id", "patient_id", "medications",
	"severity", "helpful", "notes", "created_at", "updated_at",
}

func TestNewPostgresStore_NilDB(t *testing.T) {
	store, err := NewPostgresStore(nil)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestPostgresStore_Save(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	store, err := NewPostgresStore(db)
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO feedback`).
		WithArgs("acei_nsaid_kidney", "pat-001", "lisinopril, ibuprofen",
			"MAJOR", true, "Dose adjusted", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	fb := &Feedback{
		RuleID:      "acei_nsaid_kidney",
		PatientID:   "pat-001",
		Medications: "lisinopril, ibuprofen",
		Severity:    "MAJOR",
		Helpful:     true,
		Notes:       "Dose adjusted",
	}

	err = store.Save(context.Background(), fb)
	require.NoError(t, err)
	assert.Equal(t, int64(7), fb.ID)
	assert.False(t, fb.UpdatedAt.IsZero())

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	store, err := NewPostgresStore(db)
	require.NoError(t, err)

	now := time.Now()
	rows := sqlmock.NewRows(feedbackColumns).
		AddRow(int64(3), "warfarin_nsaid_bleed", "pat-002", "warfarin, naproxen",
			"MAJOR", false, "", now, now)

	mock.ExpectQuery(`SELECT (.+) FROM feedback`).
		WithArgs("warfarin_nsaid_bleed", "pat-002").
		WillReturnRows(rows)

	fb, err := store.Get(context.Background(), "warfarin_nsaid_bleed", "pat-002")
	require.NoError(t, err)
	require.NotNil(t, fb)
	assert.Equal(t, int64(3), fb.ID)
	assert.Equal(t, "warfarin, naproxen", fb.Medications)
	assert.False(t, fb.Helpful)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	store, err := NewPostgresStore(db)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT (.+) FROM feedback`).
		WithArgs("no_such_rule", "").
		WillReturnError(sql.ErrNoRows)

	fb, err := store.Get(context.Background(), "no_such_rule", "")
	assert.NoError(t, err)
	assert.Nil(t, fb)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_List(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	store, err := NewPostgresStore(db)
	require.NoError(t, err)

	now := time.Now()
	rows := sqlmock.NewRows(feedbackColumns).
		AddRow(int64(2), "ssri_nsaid_bleed", "", "", "MODERATE", true, "", now, now).
		AddRow(int64(1), "acei_nsaid_kidney", "", "", "MAJOR", false, "", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery(`SELECT (.+) FROM feedback`).
		WithArgs(10, 0).
		WillReturnRows(rows)

	list, err := store.List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "ssri_nsaid_bleed", list[0].RuleID)
	assert.Equal(t, "acei_nsaid_kidney", list[1].RuleID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	store, err := NewPostgresStore(db)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM feedback`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	defer db.Close()

	store, err := NewPostgresStore(db)
	require.NoError(t, err)

	mock.ExpectExec(`DELETE FROM feedback`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = store.Delete(context.Background(), 5)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
