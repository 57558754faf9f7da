// Package matcher implements interest-based compatibility scoring between users.
package matcher

import (
	"context"
	"time"

	"go.uber.org/zap"

	"compatibility-engine/internal/models"
	"compatibility-engine/internal/services/metrics"
	"compatibility-engine/internal/utils"
)

// InterestSource reads users' interest rows joined with their catalog items.
type InterestSource interface {
	// GetUserInterests returns every interest row of one user.
	GetUserInterests(ctx context.Context, userID string) ([]models.UserInterest, error)

	// ScanOtherInterests streams every interest row not owned by
	// excludeUserID. Returning an error from fn stops the scan and is
	// returned to the caller.
	ScanOtherInterests(ctx context.Context, excludeUserID string, fn func(models.UserInterest) error) error
}

// ProfileSource reads user profiles.
type ProfileSource interface {
	GetProfilesByIDs(ctx context.Context, ids []string) ([]*models.Profile, error)

	// GetFilteredProfiles returns the profiles among ids that satisfy the
	// gender and age constraints of filter. A nil filter constrains nothing.
	GetFilteredProfiles(ctx context.Context, ids []string, filter *models.PreferenceFilter) ([]*models.Profile, error)
}

// PreferenceSource reads stored match preferences.
type PreferenceSource interface {
	// GetPreferences returns nil, nil when the user has no stored filter.
	GetPreferences(ctx context.Context, userID string) (*models.PreferenceFilter, error)
}

// MatcherService computes match details and ranked match lists.
type MatcherService struct {
	interests   InterestSource
	profiles    ProfileSource
	preferences PreferenceSource
}

// NewMatcherService creates a new matcher service.
func NewMatcherService(interests InterestSource, profiles ProfileSource, preferences PreferenceSource) *MatcherService {
	return &MatcherService{
		interests:   interests,
		profiles:    profiles,
		preferences: preferences,
	}
}

// observe records the outcome and duration of one request.
func observe(operation string, start time.Time, err error) {
	metrics.ScoringDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	metrics.ScoringRequests.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case models.IsValidationError(err):
		return metrics.OutcomeValidation
	case models.IsNotFoundError(err):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}

func logger() *zap.Logger {
	return utils.GetLogger()
}
