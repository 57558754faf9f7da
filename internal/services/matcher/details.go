package matcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"compatibility-engine/internal/models"
)

const operationMatchDetails = "get_match_details"

// GetMatchDetails returns the full per-category comparison between two users.
func (m *MatcherService) GetMatchDetails(ctx context.Context, userID, otherUserID string) (details *models.MatchDetails, err error) {
	start := time.Now()
	defer func() { observe(operationMatchDetails, start, err) }()

	userID, otherUserID = strings.TrimSpace(userID), strings.TrimSpace(otherUserID)
	if userID == "" || otherUserID == "" {
		return nil, models.NewMissingParameterError("user_id", "other_user_id")
	}
	if strings.EqualFold(userID, otherUserID) {
		return nil, models.NewInvalidPairError()
	}

	userProfile, otherProfile, err := m.resolvePair(ctx, userID, otherUserID)
	if err != nil {
		return nil, err
	}

	var userRows, otherRows []models.UserInterest
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := m.interests.GetUserInterests(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get interests for %s: %w", userID, err)
		}
		userRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := m.interests.GetUserInterests(gctx, otherUserID)
		if err != nil {
			return fmt.Errorf("failed to get interests for %s: %w", otherUserID, err)
		}
		otherRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	breakdown := CompareByCategory(models.NewInterestSet(userRows), models.NewInterestSet(otherRows))
	sortByMatchRatio(breakdown.Categories)
	result := Aggregate(breakdown.Ratios(), breakdown.TotalOverlap)

	logger().Debug("Match details computed",
		zap.String("user_id", userID),
		zap.String("other_user_id", otherUserID),
		zap.Int("categories", len(breakdown.Categories)),
		zap.Int("total_overlap", breakdown.TotalOverlap),
		zap.Float64("final_match", result.FinalMatch),
	)

	return &models.MatchDetails{
		UserID:       userID,
		OtherUserID:  otherUserID,
		UserProfile:  userProfile.ToSummary(),
		OtherProfile: otherProfile.ToSummary(),
		Categories:   breakdown.Categories,
		Overall: models.OverallScore{
			CompatibilityResult: result,
			TotalInterestsUser:  len(userRows),
			TotalInterestsOther: len(otherRows),
		},
	}, nil
}

// resolvePair fetches both profiles and reports whichever side is missing.
// Ids are UUIDs, which the store may return in a different case.
func (m *MatcherService) resolvePair(ctx context.Context, userID, otherUserID string) (*models.Profile, *models.Profile, error) {
	profiles, err := m.profiles.GetProfilesByIDs(ctx, []string{userID, otherUserID})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get profiles: %w", err)
	}

	var userProfile, otherProfile *models.Profile
	for _, p := range profiles {
		switch {
		case strings.EqualFold(p.ID, userID):
			userProfile = p
		case strings.EqualFold(p.ID, otherUserID):
			otherProfile = p
		}
	}

	var missing []string
	if userProfile == nil {
		missing = append(missing, userID)
	}
	if otherProfile == nil {
		missing = append(missing, otherUserID)
	}
	if len(missing) > 0 {
		return nil, nil, models.NewProfilesNotFoundError(missing...)
	}

	return userProfile, otherProfile, nil
}
