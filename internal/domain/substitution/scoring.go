// Package substitution implements the meal substitution engine: scoring
// candidate recipes against the meal being replaced, selecting and
// ranking alternatives within nutritional tolerance, and classifying the
// impact of a swap. The package is pure: it performs no I/O and holds no
// state, operating on snapshots handed in by the application layer.
package substitution

import (
	"math"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/domain/user"
)

// Sub-score weights for the total score. Tunable constants; they must
// sum to 1.0 and are deliberately not user-configurable.
const (
	WeightNutritionalSimilarity = 0.35
	WeightUserPreference        = 0.25
	WeightCostEfficiency        = 0.20
	WeightPrepTimeMatch         = 0.20
)

// Per-nutrient weights for nutritional similarity, calories dominant.
const (
	nutrientWeightCalories = 0.40
	nutrientWeightProtein  = 0.20
	nutrientWeightCarbs    = 0.20
	nutrientWeightFat      = 0.20
)

// User preference scoring constants.
const (
	preferenceBaseline    = 0.5
	cuisineBonusMax       = 0.3 // scaled by the user's 1-5 cuisine rating
	likedIngredientBonus  = 0.1
	dislikedIngredientHit = 0.2
)

// Prep-time match constants. A candidate landing in the original meal's
// bucket, but not the user's preferred one, earns partial credit; any
// other bucket decays with the minute distance from the original.
const (
	prepTimeOriginalBucketCredit = 0.7
	prepTimeDecayBase            = 0.5
	prepTimeDecayWindowMinutes   = 60.0
)

// Time bucket boundaries in total minutes (prep + cook).
const (
	quickBucketMaxMinutes    = 20
	moderateBucketMaxMinutes = 45
)

// epsilon guards relative deviations against zero-valued originals.
const epsilon = 1e-6

// Scores holds the four normalized sub-scores and their weighted
// combination, all in [0,1].
type Scores struct {
	NutritionalSimilarity float64 `json:"nutritional_similarity"`
	UserPreference        float64 `json:"user_preference"`
	CostEfficiency        float64 `json:"cost_efficiency"`
	PrepTimeMatch         float64 `json:"prep_time_match"`
	TotalScore            float64 `json:"total_score"`
}

// Score computes the sub-scores for a candidate against the meal being
// replaced. Callers are expected to have applied the calorie tolerance
// pre-filter first (WithinTolerance); Score itself never excludes.
func Score(original, candidate recipe.Profile, prefs *user.PreferenceProfile) Scores {
	s := Scores{
		NutritionalSimilarity: nutritionalSimilarity(original.Nutrition, candidate.Nutrition),
		UserPreference:        userPreference(candidate, prefs),
		CostEfficiency:        costEfficiency(original.EstimatedCostCents, candidate.EstimatedCostCents),
		PrepTimeMatch:         prepTimeMatch(original, candidate, prefs),
	}
	s.TotalScore = WeightNutritionalSimilarity*s.NutritionalSimilarity +
		WeightUserPreference*s.UserPreference +
		WeightCostEfficiency*s.CostEfficiency +
		WeightPrepTimeMatch*s.PrepTimeMatch
	return s
}

// WithinTolerance reports whether the candidate's calorie count lies
// within the given relative tolerance of the original. Candidates
// outside tolerance on the dominant nutrient are excluded before
// scoring, not merely penalized.
func WithinTolerance(original, candidate recipe.Profile, tolerance float64) bool {
	return relativeDeviation(original.Nutrition.Calories, candidate.Nutrition.Calories) <= tolerance
}

// nutritionalSimilarity is 1 minus the capped weighted average of
// per-nutrient relative deviations, calories weighted highest.
func nutritionalSimilarity(original, candidate recipe.Nutrition) float64 {
	weighted := nutrientWeightCalories*relativeDeviation(original.Calories, candidate.Calories) +
		nutrientWeightProtein*relativeDeviation(original.Protein, candidate.Protein) +
		nutrientWeightCarbs*relativeDeviation(original.Carbs, candidate.Carbs) +
		nutrientWeightFat*relativeDeviation(original.Fat, candidate.Fat)
	return 1 - math.Min(1, weighted)
}

// userPreference starts neutral and moves with cuisine and ingredient
// signals, clamped to [0,1].
func userPreference(candidate recipe.Profile, prefs *user.PreferenceProfile) float64 {
	score := preferenceBaseline
	if prefs == nil {
		return score
	}

	if rating, ok := prefs.PrefersCuisine(candidate.Cuisine); ok {
		score += cuisineBonusMax * (rating / 5.0)
	}

	for _, ingredient := range candidate.Ingredients {
		if prefs.Dislikes(ingredient) {
			score -= dislikedIngredientHit
		} else if prefs.Likes(ingredient) {
			score += likedIngredientBonus
		}
	}

	return clamp01(score)
}

// costEfficiency rewards savings: cheaper-or-equal candidates score the
// full 1.0, more expensive ones decay with the relative overrun.
func costEfficiency(originalCents, candidateCents int) float64 {
	if candidateCents <= originalCents {
		return 1.0
	}
	overrun := float64(candidateCents-originalCents) / math.Max(float64(originalCents), epsilon)
	return 1 - math.Min(1, overrun)
}

// prepTimeMatch compares the candidate's total-time bucket against the
// user's stated preference and the original meal's bucket.
func prepTimeMatch(original, candidate recipe.Profile, prefs *user.PreferenceProfile) float64 {
	candidateBucket := timeBucket(candidate.TotalTimeMinutes())

	if prefs != nil && candidateBucket == prefs.TimePreference {
		return 1.0
	}
	if candidateBucket == timeBucket(original.TotalTimeMinutes()) {
		return prepTimeOriginalBucketCredit
	}

	diff := math.Abs(float64(candidate.TotalTimeMinutes() - original.TotalTimeMinutes()))
	return prepTimeDecayBase * (1 - math.Min(1, diff/prepTimeDecayWindowMinutes))
}

// timeBucket maps total minutes onto the user-facing preference buckets
func timeBucket(totalMinutes int) user.TimePreference {
	switch {
	case totalMinutes < quickBucketMaxMinutes:
		return user.TimePreferenceQuick
	case totalMinutes <= moderateBucketMaxMinutes:
		return user.TimePreferenceModerate
	default:
		return user.TimePreferenceLong
	}
}

func relativeDeviation(original, candidate float64) float64 {
	return math.Abs(candidate-original) / math.Max(original, epsilon)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
