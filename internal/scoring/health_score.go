// Package scoring computes the deterministic property health score used by
// the pricing calculator. It is the canonical scoring oracle: the insight
// generator falls back to it whenever the external backend is unavailable,
// and clamps externally generated scores to the same range.
package scoring

import "math"

// Base score by current track condition, the primary factor.
var conditionScores = map[string]float64{
	"clean":     90,
	"dusty":     70,
	"dirty":     45,
	"neglected": 20,
}

// Penalty by maintenance history.
var maintenanceScores = map[string]float64{
	"recent":  0,
	"1-2yr":   -15,
	"over2yr": -30,
	"never":   -45,
}

// Penalty by property size: more surface area, harder to maintain.
var sizeComplexity = map[string]float64{
	"small":  0,
	"medium": -5,
	"large":  -10,
	"xl":     -15,
}

// Penalty by stories: height means difficulty and exposure.
var storiesComplexity = map[string]float64{
	"1":  0,
	"2":  -8,
	"3+": -15,
}

// HealthScore computes a 0-100 property-condition score from the four
// categorical assessment answers. Pure and total: unknown values fall back
// to mid-range defaults instead of panicking, so the function is defined for
// any input, not just validated enums.
func HealthScore(trackCondition, lastCleaned, homeSize, stories string) int {
	condition, ok := conditionScores[trackCondition]
	if !ok {
		condition = 60
	}

	maintenance, ok := maintenanceScores[lastCleaned]
	if !ok {
		maintenance = -20
	}

	size, ok := sizeComplexity[homeSize]
	if !ok {
		size = -5
	}

	height, ok := storiesComplexity[stories]
	if !ok {
		height = -8
	}

	raw := condition + maintenance + size + height

	// Recent maintenance earns a small resilience bonus
	if lastCleaned == "recent" {
		raw += 5
	}

	return clamp(int(math.Round(raw)))
}

// Clamp bounds an externally produced score to the valid range. Used to
// sanity-bound scores returned by the generative backend.
func Clamp(score int) int {
	return clamp(score)
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Status buckets a score into the label used by fallback narrative text.
func Status(score int) string {
	switch {
	case score > 85:
		return "excellent"
	case score > 70:
		return "good"
	case score > 50:
		return "maintenance required"
	default:
		return "urgent attention needed"
	}
}
