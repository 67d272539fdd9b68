package substitution

import (
	"math"

	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/domain/recipe"
)

// Impact classification thresholds on the largest relative change.
const (
	impactMinimalThreshold  = 0.05
	impactModerateThreshold = 0.15
)

// Level is the coarse classification of how much a substitution moves
// the plan's nutrition and cost.
type Level string

const (
	LevelMinimal     Level = "minimal"
	LevelModerate    Level = "moderate"
	LevelSignificant Level = "significant"
)

// Impact describes what applying a candidate would do to the plan:
// per-field deltas, the resulting plan totals and a coarse level.
type Impact struct {
	// Changes maps tracked nutrient/cost names to candidate-minus-original
	// deltas. Cost deltas are in cents under the cost_cents key.
	Changes map[string]float64 `json:"changes"`
	// NewTotals is the plan aggregate with the original meal's
	// contribution removed and the candidate's added.
	NewTotals map[string]float64 `json:"new_totals"`
	Level     Level              `json:"impact_level"`
	// CostChangeUSD converts the cent delta to currency units at the
	// boundary; everywhere else cost stays in integer cents.
	CostChangeUSD float64 `json:"cost_change_usd"`
}

// ComputeImpact computes the nutrient/cost deltas of swapping original
// for candidate, the plan's resulting totals, and the impact level
// derived from the magnitude of the largest relative change.
func ComputeImpact(totals mealplan.Totals, original, candidate recipe.Profile) Impact {
	originalFields := original.Nutrition.Fields()
	candidateFields := candidate.Nutrition.Fields()
	originalFields[recipe.FieldCost] = float64(original.EstimatedCostCents)
	candidateFields[recipe.FieldCost] = float64(candidate.EstimatedCostCents)

	changes := make(map[string]float64, len(originalFields))
	largestRelative := 0.0
	for name, originalValue := range originalFields {
		delta := candidateFields[name] - originalValue
		changes[name] = delta
		// A cheaper candidate never raises the impact level; only cost
		// increases count toward classification.
		if name == recipe.FieldCost && delta < 0 {
			continue
		}
		relative := math.Abs(delta) / math.Max(math.Abs(originalValue), epsilon)
		if relative > largestRelative {
			largestRelative = relative
		}
	}
	// Fields the candidate introduces that the original lacks.
	for name, candidateValue := range candidateFields {
		if _, seen := changes[name]; !seen {
			changes[name] = candidateValue
			if candidateValue != 0 {
				largestRelative = math.Max(largestRelative, 1)
			}
		}
	}

	newTotals := totals.Fields()
	for name, delta := range changes {
		newTotals[name] += delta
	}

	return Impact{
		Changes:       changes,
		NewTotals:     newTotals,
		Level:         classify(largestRelative),
		CostChangeUSD: float64(candidate.EstimatedCostCents-original.EstimatedCostCents) / 100,
	}
}

// classify maps the largest relative change onto the fixed thresholds:
// all changes within 5% is minimal, largest within 15% is moderate,
// anything beyond is significant.
func classify(largestRelative float64) Level {
	switch {
	case largestRelative <= impactMinimalThreshold:
		return LevelMinimal
	case largestRelative <= impactModerateThreshold:
		return LevelModerate
	default:
		return LevelSignificant
	}
}
