package matcher

import "compatibility-engine/internal/models"

// Aggregate reduces per-category match ratios and an overlap count to a
// single compatibility score. Empty input yields zero scores, not an error.
func Aggregate(ratios []float64, overlap int) models.CompatibilityResult {
	base := 0.0
	if len(ratios) > 0 {
		sum := 0.0
		for _, r := range ratios {
			sum += r
		}
		base = sum / float64(len(ratios))
	}

	confidence := Confidence(overlap)

	return models.CompatibilityResult{
		BaseMatch:    base,
		Confidence:   confidence,
		FinalMatch:   FinalMatch(base, confidence),
		TotalOverlap: overlap,
	}
}
