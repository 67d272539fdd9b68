package substitution

import (
	"strings"
	"testing"

	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SelectorTestSuite provides a test suite for the candidate selector
type SelectorTestSuite struct {
	suite.Suite
	ownerID uuid.UUID
}

// SetupSuite initializes shared identifiers
func (suite *SelectorTestSuite) SetupSuite() {
	suite.ownerID = uuid.New()
}

// singleMealPlan builds a one-day plan around the given original profile
func (suite *SelectorTestSuite) singleMealPlan(original recipe.Profile) *mealplan.MealPlan {
	plan, err := testutils.PlanWithMeals(suite.ownerID, 1, original)
	require.NoError(suite.T(), err)
	return plan
}

func baseProfile() *testutils.ProfileBuilder {
	return testutils.NewProfileBuilder().
		WithCuisine(recipe.CuisineTypeItalian).
		WithNutrition(500, 30, 50, 20).
		WithCostCents(800).
		WithIngredients()
}

// TestOptionValidation tests the documented parameter bounds
func (suite *SelectorTestSuite) TestOptionValidation() {
	original := baseProfile().Build()
	plan := suite.singleMealPlan(original)
	catalog := []recipe.Profile{original}

	suite.Run("MaxAlternativesBelowMinimum_ShouldReturnError", func() {
		// Arrange
		opts := DefaultSearchOptions()
		opts.MaxAlternatives = 0

		// Act
		candidates, totalFound, err := FindCandidates(plan, 0, catalog, nil, opts)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrMaxAlternativesOutOfRange)
		assert.Nil(suite.T(), candidates)
		assert.Zero(suite.T(), totalFound)
	})

	suite.Run("MaxAlternativesAboveMaximum_ShouldReturnError", func() {
		// Arrange
		opts := DefaultSearchOptions()
		opts.MaxAlternatives = 11

		// Act
		_, _, err := FindCandidates(plan, 0, catalog, nil, opts)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrMaxAlternativesOutOfRange)
	})

	suite.Run("ToleranceBelowMinimum_ShouldReturnError", func() {
		// Arrange
		opts := DefaultSearchOptions()
		opts.Tolerance = 0.04

		// Act
		_, _, err := FindCandidates(plan, 0, catalog, nil, opts)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrToleranceOutOfRange)
	})

	suite.Run("ToleranceAboveMaximum_ShouldReturnError", func() {
		// Arrange
		opts := DefaultSearchOptions()
		opts.Tolerance = 0.31

		// Act
		_, _, err := FindCandidates(plan, 0, catalog, nil, opts)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrToleranceOutOfRange)
	})

	suite.Run("BoundaryValues_ShouldPassValidation", func() {
		// Arrange
		opts := SearchOptions{MaxAlternatives: 10, Tolerance: 0.30}

		// Act
		_, _, err := FindCandidates(plan, 0, catalog, nil, opts)

		// Assert
		assert.NoError(suite.T(), err)
	})

	suite.Run("Defaults_ShouldMatchDocumentedValues", func() {
		// Act
		opts := DefaultSearchOptions()

		// Assert
		assert.Equal(suite.T(), 5, opts.MaxAlternatives)
		assert.Equal(suite.T(), 0.15, opts.Tolerance)
		assert.NoError(suite.T(), opts.Validate())
	})
}

// TestMealResolution tests index and catalog lookup failures
func (suite *SelectorTestSuite) TestMealResolution() {
	suite.Run("IndexBeyondMealList_ShouldReturnOutOfRange", func() {
		// Arrange
		profiles := make([]recipe.Profile, 9)
		for i := range profiles {
			profiles[i] = baseProfile().Build()
		}
		plan, err := testutils.PlanWithMeals(suite.ownerID, 3, profiles...)
		require.NoError(suite.T(), err)

		// Act
		_, _, err = FindCandidates(plan, 10, profiles, nil, DefaultSearchOptions())

		// Assert
		assert.ErrorIs(suite.T(), err, mealplan.ErrMealIndexOutOfRange)
	})

	suite.Run("NegativeIndex_ShouldReturnOutOfRange", func() {
		// Arrange
		original := baseProfile().Build()
		plan := suite.singleMealPlan(original)

		// Act
		_, _, err := FindCandidates(plan, -1, []recipe.Profile{original}, nil, DefaultSearchOptions())

		// Assert
		assert.ErrorIs(suite.T(), err, mealplan.ErrMealIndexOutOfRange)
	})

	suite.Run("OriginalMissingFromCatalog_ShouldReturnNotFound", func() {
		// Arrange
		original := baseProfile().Build()
		plan := suite.singleMealPlan(original)
		catalog := []recipe.Profile{baseProfile().Build()}

		// Act
		_, _, err := FindCandidates(plan, 0, catalog, nil, DefaultSearchOptions())

		// Assert
		assert.ErrorIs(suite.T(), err, recipe.ErrRecipeNotFound)
	})
}

// TestFiltering tests exclusion of the original, rejected ids and
// out-of-tolerance recipes
func (suite *SelectorTestSuite) TestFiltering() {
	suite.Run("OriginalRecipe_ShouldNeverAppearAsCandidate", func() {
		// Arrange
		original := baseProfile().Build()
		other := baseProfile().WithCalories(510).Build()
		plan := suite.singleMealPlan(original)

		// Act
		candidates, totalFound, err := FindCandidates(plan, 0, []recipe.Profile{original, other}, nil, DefaultSearchOptions())

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, totalFound)
		require.Len(suite.T(), candidates, 1)
		assert.Equal(suite.T(), other.ID, candidates[0].Profile.ID)
	})

	suite.Run("RejectedRecipes_ShouldBeExcluded", func() {
		// Arrange
		original := baseProfile().Build()
		kept := baseProfile().WithCalories(505).Build()
		rejected := baseProfile().WithCalories(495).Build()
		plan := suite.singleMealPlan(original)
		opts := DefaultSearchOptions()
		opts.Rejected = map[uuid.UUID]struct{}{rejected.ID: {}}

		// Act
		candidates, totalFound, err := FindCandidates(plan, 0, []recipe.Profile{original, kept, rejected}, nil, opts)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, totalFound)
		require.Len(suite.T(), candidates, 1)
		assert.Equal(suite.T(), kept.ID, candidates[0].Profile.ID)
	})

	suite.Run("CandidatesOutsideTolerance_ShouldNeverAppear", func() {
		// Arrange
		original := baseProfile().Build() // 500 calories
		within := baseProfile().WithCalories(560).Build()
		outside := baseProfile().WithCalories(620).Build()
		plan := suite.singleMealPlan(original)

		// Act
		candidates, totalFound, err := FindCandidates(plan, 0, []recipe.Profile{original, within, outside}, nil, DefaultSearchOptions())

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 1, totalFound)
		require.Len(suite.T(), candidates, 1)
		assert.Equal(suite.T(), within.ID, candidates[0].Profile.ID)
	})

	suite.Run("WiderTolerance_ShouldAdmitMoreCandidates", func() {
		// Arrange
		original := baseProfile().Build()
		near := baseProfile().WithCalories(560).Build()
		far := baseProfile().WithCalories(620).Build() // 24% off, inside 0.30
		plan := suite.singleMealPlan(original)
		opts := DefaultSearchOptions()
		opts.Tolerance = 0.30

		// Act
		_, totalFound, err := FindCandidates(plan, 0, []recipe.Profile{original, near, far}, nil, opts)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 2, totalFound)
	})

	suite.Run("EmptySurvivorSet_ShouldReturnEmptyNotError", func() {
		// Arrange
		original := baseProfile().Build()
		plan := suite.singleMealPlan(original)

		// Act
		candidates, totalFound, err := FindCandidates(plan, 0, []recipe.Profile{original}, nil, DefaultSearchOptions())

		// Assert
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), candidates)
		assert.Zero(suite.T(), totalFound)
	})
}

// TestRanking tests the deterministic three-level ordering
func (suite *SelectorTestSuite) TestRanking() {
	suite.Run("HigherTotalScore_ShouldRankFirst", func() {
		// Arrange
		original := baseProfile().Build()
		near := baseProfile().WithCalories(505).Build()
		far := baseProfile().WithCalories(570).Build()
		plan := suite.singleMealPlan(original)

		// Act
		candidates, _, err := FindCandidates(plan, 0, []recipe.Profile{original, far, near}, nil, DefaultSearchOptions())

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), candidates, 2)
		assert.Equal(suite.T(), near.ID, candidates[0].Profile.ID)
		assert.Equal(suite.T(), far.ID, candidates[1].Profile.ID)
		assert.Greater(suite.T(), candidates[0].Scores.TotalScore, candidates[1].Scores.TotalScore)
	})

	suite.Run("IdenticalScores_ShouldBreakTiesByIDAscending", func() {
		// Arrange
		original := baseProfile().Build()
		twinA := baseProfile().Build()
		twinB := baseProfile().WithNutrition(twinA.Nutrition.Calories, twinA.Nutrition.Protein, twinA.Nutrition.Carbs, twinA.Nutrition.Fat).Build()
		plan := suite.singleMealPlan(original)

		// Act
		candidates, _, err := FindCandidates(plan, 0, []recipe.Profile{original, twinB, twinA}, nil, DefaultSearchOptions())

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), candidates, 2)
		first, second := candidates[0].Profile.ID.String(), candidates[1].Profile.ID.String()
		assert.Negative(suite.T(), strings.Compare(first, second))
	})

	suite.Run("RepeatedSearch_ShouldYieldIdenticalOrdering", func() {
		// Arrange
		original := baseProfile().Build()
		catalog := []recipe.Profile{original}
		for i := 0; i < 8; i++ {
			catalog = append(catalog, baseProfile().WithCalories(480+float64(i*10)).Build())
		}
		plan := suite.singleMealPlan(original)
		opts := DefaultSearchOptions()
		opts.MaxAlternatives = 10

		// Act
		first, _, err := FindCandidates(plan, 0, catalog, nil, opts)
		require.NoError(suite.T(), err)
		second, _, err := FindCandidates(plan, 0, catalog, nil, opts)
		require.NoError(suite.T(), err)

		// Assert
		require.Equal(suite.T(), len(first), len(second))
		for i := range first {
			assert.Equal(suite.T(), first[i].Profile.ID, second[i].Profile.ID)
		}
	})
}

// TestTruncation tests the top-N cut and the pre-truncation count
func (suite *SelectorTestSuite) TestTruncation() {
	suite.Run("SurvivorsBeyondLimit_ShouldTruncateButReportAll", func() {
		// Arrange
		original := baseProfile().Build()
		catalog := []recipe.Profile{original}
		for i := 0; i < 7; i++ {
			catalog = append(catalog, baseProfile().WithCalories(470+float64(i*10)).Build())
		}
		plan := suite.singleMealPlan(original)

		// Act
		candidates, totalFound, err := FindCandidates(plan, 0, catalog, nil, DefaultSearchOptions())

		// Assert
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), candidates, 5)
		assert.Equal(suite.T(), 7, totalFound)
	})

	suite.Run("FewerSurvivorsThanLimit_ShouldReturnAll", func() {
		// Arrange
		original := baseProfile().Build()
		catalog := []recipe.Profile{original, baseProfile().WithCalories(510).Build(), baseProfile().WithCalories(490).Build()}
		plan := suite.singleMealPlan(original)

		// Act
		candidates, totalFound, err := FindCandidates(plan, 0, catalog, nil, DefaultSearchOptions())

		// Assert
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), candidates, 2)
		assert.Equal(suite.T(), 2, totalFound)
	})
}

// TestSearchPurity tests that a search never mutates its inputs
func (suite *SelectorTestSuite) TestSearchPurity() {
	suite.Run("Search_ShouldLeavePlanUntouched", func() {
		// Arrange
		original := baseProfile().Build()
		candidate := baseProfile().WithCalories(510).Build()
		plan := suite.singleMealPlan(original)
		mealsBefore := plan.Meals()
		totalsBefore := plan.Totals()
		versionBefore := plan.Version()

		// Act
		_, _, err := FindCandidates(plan, 0, []recipe.Profile{original, candidate}, nil, DefaultSearchOptions())

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), mealsBefore, plan.Meals())
		assert.Equal(suite.T(), totalsBefore, plan.Totals())
		assert.Equal(suite.T(), versionBefore, plan.Version())
		_, canUndo := plan.History()
		assert.False(suite.T(), canUndo)
	})
}

// TestSelectorTestSuite runs the selector test suite
func TestSelectorTestSuite(t *testing.T) {
	suite.Run(t, new(SelectorTestSuite))
}
