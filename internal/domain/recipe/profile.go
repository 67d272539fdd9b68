// Package recipe contains the read-side catalog model consumed by the
// substitution engine. Profiles are immutable snapshots fetched per
// request and never mutated by this module.
package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Profile is an immutable snapshot of a catalog recipe: everything the
// substitution engine needs to score a candidate against a meal slot.
type Profile struct {
	ID                 uuid.UUID
	Name               string
	Cuisine            CuisineType
	PrepTimeMinutes    int
	CookTimeMinutes    int
	Nutrition          Nutrition
	EstimatedCostCents int
	Difficulty         DifficultyLevel
	Ingredients        []string
	CreatedAt          time.Time
}

// TotalTimeMinutes returns prep plus cook time
func (p Profile) TotalTimeMinutes() int {
	return p.PrepTimeMinutes + p.CookTimeMinutes
}

// Nutrition is a tagged nutrient record. The tracked macros are fixed
// fields; Extra carries forward-compatible nutrient keys (fiber, sodium,
// micronutrients) without reverting to an open-ended map for the core set.
type Nutrition struct {
	Calories float64
	Protein  float64 // grams
	Carbs    float64 // grams
	Fat      float64 // grams
	Extra    map[string]float64
}

// Tracked field names used in impact change sets and aggregate totals.
const (
	FieldCalories = "calories"
	FieldProtein  = "protein"
	FieldCarbs    = "carbs"
	FieldFat      = "fat"
	FieldCost     = "cost_cents"
)

// Fields returns the tracked macros as a name-to-value mapping,
// including any extension nutrients.
func (n Nutrition) Fields() map[string]float64 {
	fields := map[string]float64{
		FieldCalories: n.Calories,
		FieldProtein:  n.Protein,
		FieldCarbs:    n.Carbs,
		FieldFat:      n.Fat,
	}
	for k, v := range n.Extra {
		fields[k] = v
	}
	return fields
}

// Add returns the element-wise sum of two nutrient records
func (n Nutrition) Add(other Nutrition) Nutrition {
	out := Nutrition{
		Calories: n.Calories + other.Calories,
		Protein:  n.Protein + other.Protein,
		Carbs:    n.Carbs + other.Carbs,
		Fat:      n.Fat + other.Fat,
	}
	if len(n.Extra) > 0 || len(other.Extra) > 0 {
		out.Extra = make(map[string]float64, len(n.Extra)+len(other.Extra))
		for k, v := range n.Extra {
			out.Extra[k] += v
		}
		for k, v := range other.Extra {
			out.Extra[k] += v
		}
	}
	return out
}

// Sub returns the element-wise difference of two nutrient records
func (n Nutrition) Sub(other Nutrition) Nutrition {
	out := Nutrition{
		Calories: n.Calories - other.Calories,
		Protein:  n.Protein - other.Protein,
		Carbs:    n.Carbs - other.Carbs,
		Fat:      n.Fat - other.Fat,
	}
	if len(n.Extra) > 0 || len(other.Extra) > 0 {
		out.Extra = make(map[string]float64, len(n.Extra)+len(other.Extra))
		for k, v := range n.Extra {
			out.Extra[k] += v
		}
		for k, v := range other.Extra {
			out.Extra[k] -= v
		}
	}
	return out
}

// CuisineType represents different cuisine types
type CuisineType string

const (
	CuisineTypeItalian       CuisineType = "italian"
	CuisineTypeFrench        CuisineType = "french"
	CuisineTypeChinese       CuisineType = "chinese"
	CuisineTypeJapanese      CuisineType = "japanese"
	CuisineTypeIndian        CuisineType = "indian"
	CuisineTypeMexican       CuisineType = "mexican"
	CuisineTypeAmerican      CuisineType = "american"
	CuisineTypeMediterranean CuisineType = "mediterranean"
	CuisineTypeThai          CuisineType = "thai"
	CuisineTypeOther         CuisineType = "other"
)

// DifficultyLevel represents recipe difficulty
type DifficultyLevel string

const (
	DifficultyLevelEasy   DifficultyLevel = "easy"
	DifficultyLevelMedium DifficultyLevel = "medium"
	DifficultyLevelHard   DifficultyLevel = "hard"
	DifficultyLevelExpert DifficultyLevel = "expert"
)
