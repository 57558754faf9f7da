package matcher

import (
	"sort"

	"compatibility-engine/internal/models"
)

// categoryTally accumulates the signed score of one category.
type categoryTally struct {
	score    float64
	maxScore float64
	items    int
}

// add records one shared item. Agreement adds 2*weight, disagreement
// subtracts it; the ceiling always grows by 2*weight.
func (t *categoryTally) add(agree bool) {
	t.maxScore += 2 * ItemWeight
	if agree {
		t.score += 2 * ItemWeight
	} else {
		t.score -= 2 * ItemWeight
	}
	t.items++
}

// ratio returns score/maxScore in [-1,1], or 0 for an empty tally.
func (t *categoryTally) ratio() float64 {
	if t.maxScore <= 0 {
		return 0
	}
	return t.score / t.maxScore
}

// commonCategories returns the list codes present on both sides, in the
// order of the first slice, without duplicates.
func commonCategories(codes, otherCodes []string) []string {
	if len(codes) == 0 || len(otherCodes) == 0 {
		return nil
	}
	other := make(map[string]struct{}, len(otherCodes))
	for _, c := range otherCodes {
		other[c] = struct{}{}
	}

	var common []string
	seen := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if _, ok := other[c]; ok {
			common = append(common, c)
		}
	}
	return common
}

// CategoryBreakdown is the result of comparing two interest sets.
type CategoryBreakdown struct {
	// Categories in discovery order. Categories with no contributing item
	// never appear.
	Categories []models.CategoryComparison

	// TotalOverlap counts items held by both users, whether or not their
	// category memberships intersect.
	TotalOverlap int
}

// Ratios returns the match ratio of every category in discovery order.
func (b CategoryBreakdown) Ratios() []float64 {
	ratios := make([]float64, len(b.Categories))
	for i, c := range b.Categories {
		ratios[i] = c.MatchRatio
	}
	return ratios
}

// CompareByCategory groups the items both users hold by shared category and
// classifies each as agreed-liked, agreed-disliked or conflicting.
//
// Category membership is read from each side independently and intersected
// per item, so catalog drift between the two reads only narrows what counts.
// Items are visited in ascending id order.
func CompareByCategory(user, other models.InterestSet) CategoryBreakdown {
	itemIDs := make([]int64, 0, len(user))
	for id := range user {
		if _, ok := other[id]; ok {
			itemIDs = append(itemIDs, id)
		}
	}
	sort.Slice(itemIDs, func(i, j int) bool { return itemIDs[i] < itemIDs[j] })

	type bucket struct {
		tally      categoryTally
		comparison models.CategoryComparison
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, id := range itemIDs {
		mine, theirs := user[id], other[id]

		for _, code := range commonCategories(mine.ListCodes, theirs.ListCodes) {
			b, ok := buckets[code]
			if !ok {
				b = &bucket{comparison: models.CategoryComparison{
					Category:     code,
					BothLiked:    []string{},
					BothDisliked: []string{},
					Conflicts:    []models.Conflict{},
				}}
				buckets[code] = b
				order = append(order, code)
			}

			agree := mine.Value == theirs.Value
			b.tally.add(agree)

			switch {
			case agree && mine.Value == models.Like:
				b.comparison.BothLiked = append(b.comparison.BothLiked, mine.Label)
			case agree:
				b.comparison.BothDisliked = append(b.comparison.BothDisliked, mine.Label)
			default:
				b.comparison.Conflicts = append(b.comparison.Conflicts, models.Conflict{
					Interest:   mine.Label,
					UserValue:  mine.Value,
					OtherValue: theirs.Value,
				})
			}
		}
	}

	categories := make([]models.CategoryComparison, 0, len(order))
	for _, code := range order {
		b := buckets[code]
		b.comparison.MatchRatio = b.tally.ratio()
		b.comparison.OverlapCount = b.tally.items
		categories = append(categories, b.comparison)
	}

	return CategoryBreakdown{
		Categories:   categories,
		TotalOverlap: len(itemIDs),
	}
}

// sortByMatchRatio orders categories by ratio descending, then code ascending.
func sortByMatchRatio(categories []models.CategoryComparison) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].MatchRatio != categories[j].MatchRatio {
			return categories[i].MatchRatio > categories[j].MatchRatio
		}
		return categories[i].Category < categories[j].Category
	})
}
