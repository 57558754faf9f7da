package matcher

import (
	"context"
	"sort"

	"compatibility-engine/internal/models"
)

// fakeStore is an in-memory implementation of the three sources.
type fakeStore struct {
	interests   []models.UserInterest
	profiles    map[string]*models.Profile
	preferences map[string]*models.PreferenceFilter

	interestErr error
	scanErr     error
	profileErr  error
	prefErr     error

	scanCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles:    make(map[string]*models.Profile),
		preferences: make(map[string]*models.PreferenceFilter),
	}
}

func (f *fakeStore) addProfile(id string, age int, gender string) *fakeStore {
	f.profiles[id] = &models.Profile{ID: id, DisplayName: "User " + id, Age: &age, Gender: &gender}
	return f
}

func (f *fakeStore) like(userID string, itemID int64, label string, codes ...string) *fakeStore {
	return f.add(userID, itemID, models.Like, label, codes...)
}

func (f *fakeStore) dislike(userID string, itemID int64, label string, codes ...string) *fakeStore {
	return f.add(userID, itemID, models.Dislike, label, codes...)
}

func (f *fakeStore) add(userID string, itemID int64, v models.InterestValue, label string, codes ...string) *fakeStore {
	f.interests = append(f.interests, models.UserInterest{
		UserID: userID,
		ItemID: itemID,
		Value:  v,
		Item:   models.InterestItem{ID: itemID, Label: label, ListCodes: codes},
	})
	return f
}

func (f *fakeStore) GetUserInterests(_ context.Context, userID string) ([]models.UserInterest, error) {
	if f.interestErr != nil {
		return nil, f.interestErr
	}
	var rows []models.UserInterest
	for _, r := range f.interests {
		if r.UserID == userID {
			rows = append(rows, r)
		}
	}
	return rows, nil
}

func (f *fakeStore) ScanOtherInterests(ctx context.Context, excludeUserID string, fn func(models.UserInterest) error) error {
	f.scanCalls++
	if f.scanErr != nil {
		return f.scanErr
	}
	for _, r := range f.interests {
		if r.UserID == excludeUserID {
			continue
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) GetProfilesByIDs(_ context.Context, ids []string) ([]*models.Profile, error) {
	return f.GetFilteredProfiles(context.Background(), ids, nil)
}

func (f *fakeStore) GetFilteredProfiles(_ context.Context, ids []string, filter *models.PreferenceFilter) ([]*models.Profile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	var out []*models.Profile
	for _, id := range ids {
		p, ok := f.profiles[id]
		if !ok || !matchesFilter(p, filter) {
			continue
		}
		out = append(out, p)
	}
	// Mimic a database that returns rows in its own order.
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func matchesFilter(p *models.Profile, filter *models.PreferenceFilter) bool {
	if filter == nil {
		return true
	}
	if len(filter.PreferredGenders) > 0 {
		if p.Gender == nil {
			return false
		}
		found := false
		for _, g := range filter.PreferredGenders {
			if g == *p.Gender {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.AgeMin != nil && (p.Age == nil || *p.Age < *filter.AgeMin) {
		return false
	}
	if filter.AgeMax != nil && (p.Age == nil || *p.Age > *filter.AgeMax) {
		return false
	}
	return true
}

func (f *fakeStore) GetPreferences(_ context.Context, userID string) (*models.PreferenceFilter, error) {
	if f.prefErr != nil {
		return nil, f.prefErr
	}
	return f.preferences[userID], nil
}

func (f *fakeStore) service() *MatcherService {
	return NewMatcherService(f, f, f)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
