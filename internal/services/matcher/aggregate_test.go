package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate_NoCategories(t *testing.T) {
	r := Aggregate(nil, 0)

	assert.Equal(t, 0.0, r.BaseMatch)
	assert.Equal(t, 0.0, r.Confidence)
	assert.Equal(t, 0.0, r.FinalMatch)
	assert.Equal(t, 0, r.TotalOverlap)
}

func TestAggregate_ZeroOverlapHalvesBase(t *testing.T) {
	r := Aggregate([]float64{0.8}, 0)

	assert.Equal(t, 0.0, r.Confidence)
	assert.InDelta(t, 0.4, r.FinalMatch, 1e-9)
}

func TestAggregate_FullAgreementSaturates(t *testing.T) {
	r := Aggregate([]float64{1}, 25)

	assert.Equal(t, 1.0, r.BaseMatch)
	assert.Equal(t, 1.0, r.Confidence)
	assert.Equal(t, 1.0, r.FinalMatch)
	assert.Equal(t, 25, r.TotalOverlap)
}

func TestAggregate_MeanOfRatios(t *testing.T) {
	r := Aggregate([]float64{1, 0, -0.5}, 10)

	assert.InDelta(t, 0.5/3, r.BaseMatch, 1e-9)
	assert.InDelta(t, 0.5, r.Confidence, 1e-9)
	assert.InDelta(t, (0.5/3)*0.75, r.FinalMatch, 1e-9)
}

func TestAggregate_ConfidenceMonotonic(t *testing.T) {
	prev := Aggregate([]float64{0.6}, 0).FinalMatch
	for overlap := 1; overlap <= 40; overlap++ {
		cur := Aggregate([]float64{0.6}, overlap).FinalMatch
		assert.GreaterOrEqual(t, cur, prev, "overlap %d", overlap)
		if overlap > ConfidenceSaturation {
			assert.Equal(t, prev, cur, "constant beyond saturation at %d", overlap)
		}
		prev = cur
	}
}

func TestFinalMatch_NeverInvertsSign(t *testing.T) {
	for _, c := range []float64{0, 0.25, 0.5, 1} {
		assert.LessOrEqual(t, FinalMatch(-0.7, c), 0.0)
		assert.GreaterOrEqual(t, FinalMatch(-0.7, c), -0.7)
		assert.GreaterOrEqual(t, FinalMatch(0.7, c), 0.0)
		assert.LessOrEqual(t, FinalMatch(0.7, c), 0.7)
	}
}

func TestConfidence(t *testing.T) {
	assert.Equal(t, 0.0, Confidence(-3))
	assert.Equal(t, 0.0, Confidence(0))
	assert.InDelta(t, 0.05, Confidence(1), 1e-9)
	assert.Equal(t, 1.0, Confidence(20))
	assert.Equal(t, 1.0, Confidence(1000))
}
