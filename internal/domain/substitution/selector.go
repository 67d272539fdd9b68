package substitution

import (
	"errors"
	"sort"
	"strings"

	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/domain/user"
	"github.com/google/uuid"
)

// Bounds and defaults for the candidate search parameters.
const (
	MinAlternatives     = 1
	MaxAlternatives     = 10
	DefaultAlternatives = 5

	MinTolerance     = 0.05
	MaxTolerance     = 0.30
	DefaultTolerance = 0.15
)

// Selector parameter errors
var (
	ErrMaxAlternativesOutOfRange = errors.New("max alternatives must be between 1 and 10")
	ErrToleranceOutOfRange       = errors.New("nutritional tolerance must be between 0.05 and 0.30")
)

// Candidate is a catalog recipe considered as a replacement for a meal
// slot, with its sub-scores and the impact applying it would have.
type Candidate struct {
	Profile recipe.Profile
	Scores  Scores
	Impact  Impact
}

// SearchOptions carries the tunable parameters of a candidate search.
// Rejected holds recipe ids the user already dismissed this session;
// they are excluded alongside the original recipe.
type SearchOptions struct {
	MaxAlternatives int
	Tolerance       float64
	Rejected        map[uuid.UUID]struct{}
}

// DefaultSearchOptions returns the documented defaults
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxAlternatives: DefaultAlternatives,
		Tolerance:       DefaultTolerance,
	}
}

// Validate checks the options against their documented bounds
func (o SearchOptions) Validate() error {
	if o.MaxAlternatives < MinAlternatives || o.MaxAlternatives > MaxAlternatives {
		return ErrMaxAlternativesOutOfRange
	}
	if o.Tolerance < MinTolerance || o.Tolerance > MaxTolerance {
		return ErrToleranceOutOfRange
	}
	return nil
}

// FindCandidates filters the catalog snapshot to recipes within
// nutritional tolerance of the meal at mealIndex, scores the survivors
// against the user's preferences, and returns them ranked best-first
// with the pre-truncation survivor count. Pure read: neither the plan
// nor the catalog is touched.
//
// Ranking is deterministic: total score descending, ties broken by
// nutritional similarity descending, then recipe id ascending.
func FindCandidates(plan *mealplan.MealPlan, mealIndex int, catalog []recipe.Profile, prefs *user.PreferenceProfile, opts SearchOptions) ([]Candidate, int, error) {
	if err := opts.Validate(); err != nil {
		return nil, 0, err
	}

	meal, err := plan.MealAt(mealIndex)
	if err != nil {
		return nil, 0, err
	}

	original, ok := lookup(catalog, meal.RecipeID)
	if !ok {
		return nil, 0, recipe.ErrRecipeNotFound
	}

	totals := plan.Totals()
	candidates := make([]Candidate, 0, len(catalog))
	for _, profile := range catalog {
		if profile.ID == original.ID {
			continue
		}
		if _, rejected := opts.Rejected[profile.ID]; rejected {
			continue
		}
		if !WithinTolerance(original, profile, opts.Tolerance) {
			continue
		}
		candidates = append(candidates, Candidate{
			Profile: profile,
			Scores:  Score(original, profile, prefs),
			Impact:  ComputeImpact(totals, original, profile),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Scores.TotalScore != b.Scores.TotalScore {
			return a.Scores.TotalScore > b.Scores.TotalScore
		}
		if a.Scores.NutritionalSimilarity != b.Scores.NutritionalSimilarity {
			return a.Scores.NutritionalSimilarity > b.Scores.NutritionalSimilarity
		}
		return strings.Compare(a.Profile.ID.String(), b.Profile.ID.String()) < 0
	})

	totalFound := len(candidates)
	if totalFound > opts.MaxAlternatives {
		candidates = candidates[:opts.MaxAlternatives]
	}

	return candidates, totalFound, nil
}

func lookup(catalog []recipe.Profile, id uuid.UUID) (recipe.Profile, bool) {
	for _, profile := range catalog {
		if profile.ID == id {
			return profile, true
		}
	}
	return recipe.Profile{}, false
}
