package matcher

// Scoring policy. These are calibration values, not derived quantities.
const (
	// ItemWeight is the weight every shared item carries. There is no
	// popularity or magnitude scaling.
	ItemWeight = 1.0

	// ConfidenceSaturation is the overlap count at which confidence reaches 1.
	// Below it, overlap is considered statistically thin.
	ConfidenceSaturation = 20

	// ConfidenceFloor is the fraction of the base match kept at zero
	// confidence. final = base * (floor + (1-floor) * confidence).
	ConfidenceFloor = 0.5

	// MaxMatches caps the ranked match list.
	MaxMatches = 50
)

// Confidence maps an overlap count to [0,1].
func Confidence(overlap int) float64 {
	if overlap <= 0 {
		return 0
	}
	c := float64(overlap) / ConfidenceSaturation
	if c > 1 {
		return 1
	}
	return c
}

// FinalMatch damps base toward zero by the missing confidence. It never
// changes the sign of base.
func FinalMatch(base, confidence float64) float64 {
	return base * (ConfidenceFloor + (1-ConfidenceFloor)*confidence)
}
