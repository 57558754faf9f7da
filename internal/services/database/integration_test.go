package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compatibility-engine/internal/config"
	"compatibility-engine/internal/models"
)

// openTestDB connects to DATABASE_URL, skipping when it is not set. The
// schema from scripts/schema.sql must already be applied.
func openTestDB(t *testing.T) *DB {
	t.Helper()
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestIntegration_HealthCheck(t *testing.T) {
	db := openTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.NoError(t, db.HealthCheck(ctx))
}

func TestIntegration_UnknownUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	unknown := uuid.NewString()

	interests, err := NewInterestRepository(db).GetUserInterests(ctx, unknown)
	require.NoError(t, err)
	assert.Empty(t, interests)

	prefs, err := NewPreferenceRepository(db).GetPreferences(ctx, unknown)
	require.NoError(t, err)
	assert.Nil(t, prefs, "absent preference row is not an error")

	profiles, err := NewProfileRepository(db).GetProfilesByIDs(ctx, []string{unknown})
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestIntegration_MalformedIDIsAbsent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	interests, err := NewInterestRepository(db).GetUserInterests(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Empty(t, interests)

	prefs, err := NewPreferenceRepository(db).GetPreferences(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, prefs)

	profiles, err := NewProfileRepository(db).GetProfilesByIDs(ctx, []string{"not-a-uuid"})
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestIntegration_ScanExcludesUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewInterestRepository(db)

	var excluded string
	err := repo.ScanOtherInterests(ctx, uuid.NewString(), func(ui models.UserInterest) error {
		if excluded == "" {
			excluded = ui.UserID
		}
		return nil
	})
	require.NoError(t, err)
	if excluded == "" {
		t.Skip("no interest rows seeded")
	}

	err = repo.ScanOtherInterests(ctx, excluded, func(ui models.UserInterest) error {
		assert.NotEqual(t, excluded, ui.UserID)
		assert.True(t, ui.Value.IsValid())
		return nil
	})
	require.NoError(t, err)
}
