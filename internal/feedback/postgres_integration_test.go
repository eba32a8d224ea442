package feedback

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/medrisk-server/internal/database"
)

func generateIntegrationPassword() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "test_fallback_password_123"
	}
	return "test_" + hex.EncodeToString(bytes)
}

// setupMigratedStore starts a Postgres container, applies the repository
// migrations to it, and opens a PostgresStore against the migrated schema.
// The store must work without any schema setup of its own.
func setupMigratedStore(t *testing.T) (*PostgresStore, func()) {
	if testing.Short() {
		t.Skip("skipping container-backed feedback test in short mode")
	}

	ctx := context.Background()
	testPassword := generateIntegrationPassword()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword(testPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	databaseURL := fmt.Sprintf("postgres://testuser:%s@%s:%d/testdb?sslmode=disable",
		testPassword, host, port.Int())

	migrationsPath, err := filepath.Abs(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	runner, err := database.NewMigrationRunner(databaseURL, migrationsPath, logger)
	require.NoError(t, err)
	require.NoError(t, runner.Up(ctx))
	require.NoError(t, runner.Close())

	store, err := NewPostgresStoreFromURL(databaseURL)
	require.NoError(t, err)

	cleanup := func() {
		store.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL container: %v", err)
		}
	}

	return store, cleanup
}

func TestPostgresStore_MigratedSchema_SaveAndGet(t *testing.T) {
	store, cleanup := setupMigratedStore(t)
	defer cleanup()

	ctx := context.Background()

	fb := &Feedback{
		RuleID:      "acei_nsaid_kidney",
		PatientID:   "pat-migrated",
		Medications: "lisinopril, ibuprofen",
		Severity:    "major",
		Helpful:     true,
		Notes:       "Flagged before refill",
	}

	require.NoError(t, store.Save(ctx, fb))
	assert.NotZero(t, fb.ID)

	got, err := store.Get(ctx, "acei_nsaid_kidney", "pat-migrated")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fb.ID, got.ID)
	assert.Equal(t, "lisinopril, ibuprofen", got.Medications)
	assert.True(t, got.Helpful)
}

func TestPostgresStore_MigratedSchema_UpsertAndList(t *testing.T) {
	store, cleanup := setupMigratedStore(t)
	defer cleanup()

	ctx := context.Background()

	fb := &Feedback{
		RuleID:    "warfarin_nsaid_bleed",
		PatientID: "pat-migrated",
		Severity:  "major",
		Helpful:   false,
	}
	require.NoError(t, store.Save(ctx, fb))
	originalID := fb.ID

	// Same rule + patient updates in place under the migrated unique constraint
	fb.Helpful = true
	fb.Notes = "Confirmed by pharmacist"
	require.NoError(t, store.Save(ctx, fb))
	assert.Equal(t, originalID, fb.ID)

	list, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Helpful)
	assert.Equal(t, "Confirmed by pharmacist", list[0].Notes)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
