package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"compatibility-engine/internal/models"
	"compatibility-engine/internal/utils"
)

// PreferenceRepository reads stored match preferences.
type PreferenceRepository struct {
	db *DB
}

// NewPreferenceRepository creates a new preference repository.
func NewPreferenceRepository(db *DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetPreferences returns the user's filter, or nil when none is stored.
func (r *PreferenceRepository) GetPreferences(ctx context.Context, userID string) (*models.PreferenceFilter, error) {
	id, ok := canonicalID(userID)
	if !ok {
		return nil, nil
	}

	query := `
		SELECT preferred_genders, age_min, age_max, min_match_percent::float8
		FROM user_preferences
		WHERE user_id = $1::uuid`

	var f models.PreferenceFilter
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&f.PreferredGenders,
		&f.AgeMin,
		&f.AgeMax,
		&f.MinMatchPercent,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return checkPreferences(userID, &f), nil
}

// checkPreferences logs a stored filter that fails validation and returns it
// unchanged. An inverted age range or a threshold above 100 simply matches
// nobody.
func checkPreferences(userID string, f *models.PreferenceFilter) *models.PreferenceFilter {
	if err := f.Validate(); err != nil {
		utils.GetLogger().Warn("Stored preferences are invalid, applying as stored",
			zap.String("user_id", userID),
			zap.Error(err))
	}
	return f
}
