// Package models defines the data structures for the compatibility engine.
package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Profile represents a row of the profiles table.
type Profile struct {
	ID              string    `json:"id" db:"id"`
	DisplayName     string    `json:"display_name" db:"display_name"`
	Age             *int      `json:"age" db:"age"`
	Gender          *string   `json:"gender" db:"gender"`
	Bio             *string   `json:"bio" db:"bio"`
	LocationCity    *string   `json:"location_city" db:"location_city"`
	LocationCountry *string   `json:"location_country" db:"location_country"`
	AvatarURL       *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileSummary is the trimmed projection returned to API callers.
type ProfileSummary struct {
	ID              string  `json:"id"`
	DisplayName     string  `json:"display_name"`
	Age             *int    `json:"age"`
	Gender          *string `json:"gender"`
	Bio             *string `json:"bio"`
	LocationCity    *string `json:"location_city"`
	LocationCountry *string `json:"location_country"`
}

// ToSummary converts a Profile to ProfileSummary.
func (p *Profile) ToSummary() ProfileSummary {
	return ProfileSummary{
		ID:              p.ID,
		DisplayName:     p.DisplayName,
		Age:             p.Age,
		Gender:          p.Gender,
		Bio:             p.Bio,
		LocationCity:    p.LocationCity,
		LocationCountry: p.LocationCountry,
	}
}

// PreferenceFilter is a user's stored match filter (user_preferences row).
// Nil pointers mean "not set".
type PreferenceFilter struct {
	PreferredGenders []string `json:"preferred_genders,omitempty"`
	AgeMin           *int     `json:"age_min,omitempty" validate:"omitempty,gte=0,lte=150"`
	AgeMax           *int     `json:"age_max,omitempty" validate:"omitempty,gte=0,lte=150"`
	MinMatchPercent  *float64 `json:"min_match_percent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

var filterValidator = validator.New()

// Validate checks field bounds and that the age range is not inverted.
func (f *PreferenceFilter) Validate() error {
	if err := filterValidator.Struct(f); err != nil {
		return err
	}
	if f.AgeMin != nil && f.AgeMax != nil && *f.AgeMin > *f.AgeMax {
		return ErrInvertedAgeRange
	}
	return nil
}

// IsZero reports whether the filter constrains nothing.
func (f *PreferenceFilter) IsZero() bool {
	return f == nil ||
		(len(f.PreferredGenders) == 0 && f.AgeMin == nil && f.AgeMax == nil && f.MinMatchPercent == nil)
}

// HasProfileConstraints reports whether any gender/age constraint is set.
func (f *PreferenceFilter) HasProfileConstraints() bool {
	return f != nil && (len(f.PreferredGenders) > 0 || f.AgeMin != nil || f.AgeMax != nil)
}

// MinMatch returns the threshold as a fraction in [0,1], or false when unset.
// A stored zero is treated as unset.
func (f *PreferenceFilter) MinMatch() (float64, bool) {
	if f == nil || f.MinMatchPercent == nil || *f.MinMatchPercent == 0 {
		return 0, false
	}
	return *f.MinMatchPercent / 100, true
}
