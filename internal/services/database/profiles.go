package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"compatibility-engine/internal/models"
)

const profileColumns = `id::text, display_name, age, gender, bio, location_city, location_country, avatar_url, created_at, updated_at`

// ProfileRepository handles profile lookups.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetProfilesByIDs retrieves the profiles that exist among ids.
func (r *ProfileRepository) GetProfilesByIDs(ctx context.Context, ids []string) ([]*models.Profile, error) {
	return r.GetFilteredProfiles(ctx, ids, nil)
}

// GetFilteredProfiles retrieves the profiles among ids that satisfy the
// gender and age constraints of filter. The match threshold is not applied here.
// Malformed ids are treated as absent.
func (r *ProfileRepository) GetFilteredProfiles(ctx context.Context, ids []string, filter *models.PreferenceFilter) ([]*models.Profile, error) {
	ids = canonicalIDs(ids)
	if len(ids) == 0 {
		return []*models.Profile{}, nil
	}

	query, args := buildProfileQuery(ids, filter)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	return scanProfiles(rows)
}

// buildProfileQuery assembles the profile lookup with the filter pushed down.
func buildProfileQuery(ids []string, filter *models.PreferenceFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("SELECT " + profileColumns + " FROM profiles WHERE id = ANY($1::uuid[])")
	args := []interface{}{ids}

	if filter != nil {
		if len(filter.PreferredGenders) > 0 {
			args = append(args, filter.PreferredGenders)
			fmt.Fprintf(&sb, " AND gender = ANY($%d)", len(args))
		}
		if filter.AgeMin != nil && *filter.AgeMin > 0 {
			args = append(args, *filter.AgeMin)
			fmt.Fprintf(&sb, " AND age >= $%d", len(args))
		}
		if filter.AgeMax != nil && *filter.AgeMax > 0 {
			args = append(args, *filter.AgeMax)
			fmt.Fprintf(&sb, " AND age <= $%d", len(args))
		}
	}

	return sb.String(), args
}

func scanProfiles(rows pgx.Rows) ([]*models.Profile, error) {
	profiles := make([]*models.Profile, 0)
	for rows.Next() {
		var p models.Profile
		if err := rows.Scan(
			&p.ID,
			&p.DisplayName,
			&p.Age,
			&p.Gender,
			&p.Bio,
			&p.LocationCity,
			&p.LocationCountry,
			&p.AvatarURL,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}

	return profiles, nil
}
