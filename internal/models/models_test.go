package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestInterestValue_IsValid(t *testing.T) {
	assert.True(t, Like.IsValid())
	assert.True(t, Dislike.IsValid())
	assert.False(t, InterestValue(0).IsValid())
	assert.False(t, InterestValue(2).IsValid())
}

func TestNewInterestSet(t *testing.T) {
	rows := []UserInterest{
		{UserID: "a", ItemID: 1, Value: Like, Item: InterestItem{ID: 1, Label: "Jazz", ListCodes: []string{"music"}}},
		{UserID: "a", ItemID: 2, Value: Dislike, Item: InterestItem{ID: 2, Label: "Opera", ListCodes: []string{"music", "theatre"}}},
	}

	set := NewInterestSet(rows)

	require.Len(t, set, 2)
	assert.Equal(t, InterestEntry{Value: Like, Label: "Jazz", ListCodes: []string{"music"}}, set[1])
	assert.Equal(t, []string{"music", "theatre"}, set[2].ListCodes)
}

func TestNewInterestSet_SkipsUnusableRows(t *testing.T) {
	rows := []UserInterest{
		{UserID: "a", ItemID: 1, Value: Like, Item: InterestItem{ID: 1, Label: "Jazz", ListCodes: []string{"music"}}},
		{UserID: "a", ItemID: 2, Value: Like, MissingItem: true},
		{UserID: "a", ItemID: 3, Value: InterestValue(0), Item: InterestItem{ID: 3, Label: "Golf", ListCodes: []string{"sports"}}},
	}

	assert.True(t, rows[0].Usable())
	assert.False(t, rows[1].Usable())
	assert.False(t, rows[2].Usable())

	set := NewInterestSet(rows)

	require.Len(t, set, 1)
	assert.Contains(t, set, int64(1))
}

func TestProfile_ToSummary(t *testing.T) {
	p := &Profile{
		ID:              "u1",
		DisplayName:     "Ana",
		Age:             intPtr(29),
		Gender:          strPtr("female"),
		Bio:             strPtr("hi"),
		LocationCity:    strPtr("Lisbon"),
		LocationCountry: strPtr("PT"),
		AvatarURL:       strPtr("https://example.com/a.png"),
	}

	s := p.ToSummary()

	assert.Equal(t, "u1", s.ID)
	assert.Equal(t, "Ana", s.DisplayName)
	assert.Equal(t, 29, *s.Age)
	assert.Equal(t, "Lisbon", *s.LocationCity)
}

func TestPreferenceFilter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		filter  PreferenceFilter
		wantErr bool
	}{
		{name: "empty", filter: PreferenceFilter{}},
		{name: "valid range", filter: PreferenceFilter{AgeMin: intPtr(21), AgeMax: intPtr(35), MinMatchPercent: floatPtr(40)}},
		{name: "inverted range", filter: PreferenceFilter{AgeMin: intPtr(40), AgeMax: intPtr(30)}, wantErr: true},
		{name: "percent above 100", filter: PreferenceFilter{MinMatchPercent: floatPtr(120)}, wantErr: true},
		{name: "negative age", filter: PreferenceFilter{AgeMin: intPtr(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPreferenceFilter_MinMatch(t *testing.T) {
	var nilFilter *PreferenceFilter
	_, ok := nilFilter.MinMatch()
	assert.False(t, ok)

	_, ok = (&PreferenceFilter{MinMatchPercent: floatPtr(0)}).MinMatch()
	assert.False(t, ok, "zero threshold is treated as unset")

	v, ok := (&PreferenceFilter{MinMatchPercent: floatPtr(35)}).MinMatch()
	assert.True(t, ok)
	assert.InDelta(t, 0.35, v, 1e-9)
}

func TestPreferenceFilter_IsZero(t *testing.T) {
	var nilFilter *PreferenceFilter
	assert.True(t, nilFilter.IsZero())
	assert.True(t, (&PreferenceFilter{}).IsZero())
	assert.False(t, (&PreferenceFilter{PreferredGenders: []string{"male"}}).IsZero())
	assert.True(t, (&PreferenceFilter{AgeMax: intPtr(50)}).HasProfileConstraints())
	assert.False(t, (&PreferenceFilter{MinMatchPercent: floatPtr(10)}).HasProfileConstraints())
}

func TestErrors(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewMissingParameterError("user_id", "other_user_id"))
	assert.True(t, IsValidationError(err))
	assert.False(t, IsNotFoundError(err))
	assert.Contains(t, err.Error(), "user_id and other_user_id are required")

	nf := NewProfilesNotFoundError("b")
	assert.True(t, IsNotFoundError(nf))
	assert.Equal(t, []string{"b"}, nf.MissingIDs)
	assert.Equal(t, ErrCodeProfilesNotFound, nf.Code)

	assert.Equal(t, ErrCodeInvalidPair, NewInvalidPairError().Code)
	assert.False(t, IsValidationError(errors.New("plain")))
}
