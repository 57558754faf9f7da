package matcher

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"compatibility-engine/internal/models"
	"compatibility-engine/internal/services/metrics"
)

const (
	operationMatches = "get_matches"

	// cancelCheckInterval is how many scanned rows pass between context checks.
	cancelCheckInterval = 1024
)

// candidate accumulates one other user's shared items during the scan.
type candidate struct {
	categories map[string]*categoryTally
	order      []string
	overlap    int
}

func (c *candidate) tally(code string) *categoryTally {
	t, ok := c.categories[code]
	if !ok {
		t = &categoryTally{}
		c.categories[code] = t
		c.order = append(c.order, code)
	}
	return t
}

// populationScan holds the request-local state of one ranking pass.
type populationScan struct {
	own        models.InterestSet
	candidates map[string]*candidate
	order      []string
	rows       int
}

func newPopulationScan(own models.InterestSet) *populationScan {
	return &populationScan{
		own:        own,
		candidates: make(map[string]*candidate),
	}
}

// add folds one other-user row into that user's accumulators. Unusable rows,
// rows for items the acting user doesn't hold, and rows whose categories don't
// intersect are skipped.
func (s *populationScan) add(row models.UserInterest) {
	s.rows++
	if !row.Usable() {
		return
	}

	mine, ok := s.own[row.ItemID]
	if !ok {
		return
	}
	common := commonCategories(mine.ListCodes, row.Item.ListCodes)
	if len(common) == 0 {
		return
	}

	c, ok := s.candidates[row.UserID]
	if !ok {
		c = &candidate{categories: make(map[string]*categoryTally)}
		s.candidates[row.UserID] = c
		s.order = append(s.order, row.UserID)
	}
	c.overlap++

	agree := mine.Value == row.Value
	for _, code := range common {
		c.tally(code).add(agree)
	}
}

// result scores one candidate. The overlap used for confidence is the count
// of qualifying rows, not the per-category item count.
func (c *candidate) result() (models.CompatibilityResult, []models.CategoryScore) {
	scores := make([]models.CategoryScore, 0, len(c.order))
	ratios := make([]float64, 0, len(c.order))
	for _, code := range c.order {
		r := c.categories[code].ratio()
		scores = append(scores, models.CategoryScore{Category: code, MatchRatio: r})
		ratios = append(ratios, r)
	}
	return Aggregate(ratios, c.overlap), scores
}

// GetMatches ranks every other user sharing at least one categorized item
// with userID, applies the user's stored preference filter and returns at
// most MaxMatches results ordered by final match.
func (m *MatcherService) GetMatches(ctx context.Context, userID string) (matches []models.MatchResult, err error) {
	start := time.Now()
	defer func() { observe(operationMatches, start, err) }()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, models.NewMissingParameterError("user_id")
	}

	var (
		filter  *models.PreferenceFilter
		ownRows []models.UserInterest
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := m.preferences.GetPreferences(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get preferences: %w", err)
		}
		filter = f
		return nil
	})
	g.Go(func() error {
		rows, err := m.interests.GetUserInterests(gctx, userID)
		if err != nil {
			return fmt.Errorf("failed to get user interests: %w", err)
		}
		ownRows = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	own := models.NewInterestSet(ownRows)
	if len(own) == 0 {
		return []models.MatchResult{}, nil
	}

	scan := newPopulationScan(own)
	err = m.interests.ScanOtherInterests(ctx, userID, func(row models.UserInterest) error {
		if scan.rows%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		scan.add(row)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan population interests: %w", err)
	}

	metrics.RowsScanned.Observe(float64(scan.rows))
	metrics.CandidatesScored.Observe(float64(len(scan.order)))

	if len(scan.order) == 0 {
		return []models.MatchResult{}, nil
	}

	var profileFilter *models.PreferenceFilter
	if filter.HasProfileConstraints() {
		profileFilter = filter
	}
	profiles, err := m.profiles.GetFilteredProfiles(ctx, scan.order, profileFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate profiles: %w", err)
	}

	minMatch, hasMin := filter.MinMatch()
	results := make([]models.MatchResult, 0, len(profiles))
	for _, p := range profiles {
		c, ok := scan.candidates[p.ID]
		if !ok {
			continue
		}

		score, categories := c.result()
		if hasMin && score.FinalMatch < minMatch {
			continue
		}

		results = append(results, models.MatchResult{
			UserID:            p.ID,
			DisplayName:       p.DisplayName,
			Age:               p.Age,
			Gender:            p.Gender,
			Bio:               p.Bio,
			LocationCity:      p.LocationCity,
			LocationCountry:   p.LocationCountry,
			BaseMatch:         score.BaseMatch,
			Confidence:        score.Confidence,
			FinalMatch:        score.FinalMatch,
			OverlapCount:      c.overlap,
			MatchedCategories: categories,
		})
	}

	rankResults(results)
	if len(results) > MaxMatches {
		results = results[:MaxMatches]
	}

	logger().Info("Matches ranked",
		zap.String("user_id", userID),
		zap.Int("rows_scanned", scan.rows),
		zap.Int("candidates", len(scan.order)),
		zap.Int("after_filters", len(results)),
		zap.Bool("filtered", !filter.IsZero()),
	)

	return results, nil
}

// rankResults orders by final match descending, then user id ascending.
func rankResults(results []models.MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FinalMatch != results[j].FinalMatch {
			return results[i].FinalMatch > results[j].FinalMatch
		}
		return results[i].UserID < results[j].UserID
	})
}
