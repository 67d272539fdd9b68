package mealplan

import (
	"testing"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// MealPlanTestSuite provides a test suite for the meal plan aggregate
type MealPlanTestSuite struct {
	suite.Suite
	ownerID uuid.UUID
}

// SetupSuite initializes shared identifiers
func (suite *MealPlanTestSuite) SetupSuite() {
	suite.ownerID = uuid.New()
}

func profile(calories, protein, carbs, fat float64, costCents int) recipe.Profile {
	return recipe.Profile{
		ID:                 uuid.New(),
		Name:               "Test Recipe",
		Cuisine:            recipe.CuisineTypeItalian,
		PrepTimeMinutes:    15,
		CookTimeMinutes:    30,
		Nutrition:          recipe.Nutrition{Calories: calories, Protein: protein, Carbs: carbs, Fat: fat},
		EstimatedCostCents: costCents,
		Difficulty:         recipe.DifficultyLevelMedium,
	}
}

// planWithOneMeal builds a one-day plan holding the given profile at index 0
func (suite *MealPlanTestSuite) planWithOneMeal(p recipe.Profile) *MealPlan {
	plan, err := NewMealPlan("Week One", suite.ownerID, 1)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), plan.AddMeal(Meal{MealType: MealTypeDinner, RecipeID: p.ID, Day: 1}, p))
	plan.Events() // drain creation event
	return plan
}

// TestMealPlanCreation tests creation validation and the initial state
func (suite *MealPlanTestSuite) TestMealPlanCreation() {
	suite.Run("ValidPlan_ShouldCreateSuccessfully", func() {
		// Arrange
		name := "Cutting Week"

		// Act
		plan, err := NewMealPlan(name, suite.ownerID, 7)

		// Assert
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), plan)

		assert.Equal(suite.T(), name, plan.Name())
		assert.NotEqual(suite.T(), uuid.Nil, plan.ID())
		assert.Equal(suite.T(), suite.ownerID, plan.OwnerID())
		assert.Equal(suite.T(), 7, plan.DurationDays())
		assert.Equal(suite.T(), int64(1), plan.version)
		assert.Empty(suite.T(), plan.Meals())
		assert.Zero(suite.T(), plan.Totals().CostCents)
		assert.NotZero(suite.T(), plan.createdAt)

		// Check domain events
		events := plan.Events()
		require.Len(suite.T(), events, 1)

		created, ok := events[0].(PlanCreatedEvent)
		assert.True(suite.T(), ok, "Should emit PlanCreatedEvent")
		assert.Equal(suite.T(), plan.ID(), created.PlanID)
		assert.Equal(suite.T(), suite.ownerID, created.OwnerID)
		assert.Equal(suite.T(), 7, created.Days)
	})

	suite.Run("NameTooShort_ShouldReturnError", func() {
		// Act
		plan, err := NewMealPlan("AB", suite.ownerID, 3)

		// Assert
		assert.Nil(suite.T(), plan)
		assert.ErrorIs(suite.T(), err, ErrNameTooShort)
	})

	suite.Run("ZeroDuration_ShouldReturnError", func() {
		// Act
		plan, err := NewMealPlan("Valid Name", suite.ownerID, 0)

		// Assert
		assert.Nil(suite.T(), plan)
		assert.ErrorIs(suite.T(), err, ErrInvalidDuration)
	})

	suite.Run("DurationBeyondSevenDays_ShouldReturnError", func() {
		// Act
		plan, err := NewMealPlan("Valid Name", suite.ownerID, 8)

		// Assert
		assert.Nil(suite.T(), plan)
		assert.ErrorIs(suite.T(), err, ErrInvalidDuration)
	})
}

// TestAddMeal tests meal validation and totals accumulation
func (suite *MealPlanTestSuite) TestAddMeal() {
	suite.Run("ValidMeals_ShouldAccumulateTotals", func() {
		// Arrange
		plan, err := NewMealPlan("Bulk Week", suite.ownerID, 2)
		require.NoError(suite.T(), err)
		breakfast := profile(400, 20, 60, 10, 500)
		dinner := profile(700, 45, 70, 25, 1100)

		// Act
		require.NoError(suite.T(), plan.AddMeal(Meal{MealType: MealTypeBreakfast, RecipeID: breakfast.ID, Day: 1}, breakfast))
		require.NoError(suite.T(), plan.AddMeal(Meal{MealType: MealTypeDinner, RecipeID: dinner.ID, Day: 2}, dinner))

		// Assert
		assert.Len(suite.T(), plan.Meals(), 2)
		totals := plan.Totals()
		assert.Equal(suite.T(), 1100.0, totals.Nutrition.Calories)
		assert.Equal(suite.T(), 65.0, totals.Nutrition.Protein)
		assert.Equal(suite.T(), 130.0, totals.Nutrition.Carbs)
		assert.Equal(suite.T(), 35.0, totals.Nutrition.Fat)
		assert.Equal(suite.T(), 1600, totals.CostCents)
	})

	suite.Run("UnknownMealType_ShouldReturnError", func() {
		// Arrange
		plan, err := NewMealPlan("Valid Name", suite.ownerID, 1)
		require.NoError(suite.T(), err)
		p := profile(500, 30, 50, 20, 800)

		// Act
		err = plan.AddMeal(Meal{MealType: "brunch", RecipeID: p.ID, Day: 1}, p)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrInvalidMealType)
		assert.Empty(suite.T(), plan.Meals())
	})

	suite.Run("DayBeyondDuration_ShouldReturnError", func() {
		// Arrange
		plan, err := NewMealPlan("Valid Name", suite.ownerID, 3)
		require.NoError(suite.T(), err)
		p := profile(500, 30, 50, 20, 800)

		// Act
		err = plan.AddMeal(Meal{MealType: MealTypeLunch, RecipeID: p.ID, Day: 4}, p)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrMealDayOutOfRange)
		assert.Zero(suite.T(), plan.Totals().CostCents, "totals must not move on rejected meals")
	})
}

// TestMealAt tests index bounds on the meal list
func (suite *MealPlanTestSuite) TestMealAt() {
	suite.Run("ValidIndex_ShouldReturnMeal", func() {
		// Arrange
		p := profile(500, 30, 50, 20, 800)
		plan := suite.planWithOneMeal(p)

		// Act
		meal, err := plan.MealAt(0)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), p.ID, meal.RecipeID)
	})

	suite.Run("IndexPastEnd_ShouldReturnOutOfRange", func() {
		// Arrange
		plan := suite.planWithOneMeal(profile(500, 30, 50, 20, 800))

		// Act
		_, err := plan.MealAt(1)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrMealIndexOutOfRange)
	})

	suite.Run("NegativeIndex_ShouldReturnOutOfRange", func() {
		// Arrange
		plan := suite.planWithOneMeal(profile(500, 30, 50, 20, 800))

		// Act
		_, err := plan.MealAt(-1)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrMealIndexOutOfRange)
	})
}

// TestSubstitute tests the apply side of the ledger
func (suite *MealPlanTestSuite) TestSubstitute() {
	suite.Run("ValidSubstitution_ShouldSwapRecipeAndAdjustTotals", func() {
		// Arrange
		original := profile(500, 30, 50, 20, 800)
		replacement := profile(520, 28, 55, 18, 750)
		plan := suite.planWithOneMeal(original)
		userID := uuid.New()

		// Act
		err := plan.Substitute(0, original, replacement, userID)

		// Assert
		require.NoError(suite.T(), err)

		meal, err := plan.MealAt(0)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), replacement.ID, meal.RecipeID)

		totals := plan.Totals()
		assert.Equal(suite.T(), 520.0, totals.Nutrition.Calories)
		assert.Equal(suite.T(), 28.0, totals.Nutrition.Protein)
		assert.Equal(suite.T(), 750, totals.CostCents)

		history, canUndo := plan.History()
		assert.True(suite.T(), canUndo)
		require.Len(suite.T(), history, 1)
		assert.Equal(suite.T(), 0, history[0].MealIndex)
		assert.Equal(suite.T(), original.ID, history[0].OriginalRecipeID)
		assert.Equal(suite.T(), replacement.ID, history[0].NewRecipeID)
		assert.Equal(suite.T(), userID, history[0].UserID)

		// Check domain events
		events := plan.Events()
		require.Len(suite.T(), events, 1)
		substituted, ok := events[0].(MealSubstitutedEvent)
		assert.True(suite.T(), ok, "Should emit MealSubstitutedEvent")
		assert.Equal(suite.T(), plan.ID(), substituted.PlanID)
		assert.Equal(suite.T(), original.ID, substituted.OriginalRecipeID)
		assert.Equal(suite.T(), replacement.ID, substituted.NewRecipeID)
	})

	suite.Run("IndexOutOfRange_ShouldRejectWithoutMutation", func() {
		// Arrange
		original := profile(500, 30, 50, 20, 800)
		replacement := profile(520, 28, 55, 18, 750)
		plan := suite.planWithOneMeal(original)
		totalsBefore := plan.Totals()

		// Act
		err := plan.Substitute(5, original, replacement, uuid.New())

		// Assert
		assert.ErrorIs(suite.T(), err, ErrMealIndexOutOfRange)
		assert.Equal(suite.T(), totalsBefore, plan.Totals())
		_, canUndo := plan.History()
		assert.False(suite.T(), canUndo)
		assert.Empty(suite.T(), plan.Events())
	})

	suite.Run("RepeatedSubstitutions_ShouldAppendHistoryInOrder", func() {
		// Arrange
		original := profile(500, 30, 50, 20, 800)
		second := profile(510, 30, 50, 20, 780)
		third := profile(490, 30, 50, 20, 820)
		plan := suite.planWithOneMeal(original)
		userID := uuid.New()

		// Act
		require.NoError(suite.T(), plan.Substitute(0, original, second, userID))
		require.NoError(suite.T(), plan.Substitute(0, second, third, userID))

		// Assert
		history, _ := plan.History()
		require.Len(suite.T(), history, 2)
		assert.Equal(suite.T(), original.ID, history[0].OriginalRecipeID)
		assert.Equal(suite.T(), second.ID, history[0].NewRecipeID)
		assert.Equal(suite.T(), second.ID, history[1].OriginalRecipeID)
		assert.Equal(suite.T(), third.ID, history[1].NewRecipeID)
		assert.False(suite.T(), history[1].Timestamp.Before(history[0].Timestamp))

		last, ok := plan.LastSubstitution()
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), third.ID, last.NewRecipeID)
	})
}

// TestUndoSubstitution tests the one-level undo contract
func (suite *MealPlanTestSuite) TestUndoSubstitution() {
	suite.Run("ApplyThenUndo_ShouldRestoreMealAndTotalsExactly", func() {
		// Arrange
		original := profile(500, 30, 50, 20, 800)
		replacement := profile(520, 28, 55, 18, 750)
		plan := suite.planWithOneMeal(original)
		userID := uuid.New()
		mealsBefore := plan.Meals()
		totalsBefore := plan.Totals()

		// Act
		require.NoError(suite.T(), plan.Substitute(0, original, replacement, userID))
		entry, err := plan.UndoSubstitution(replacement, original, userID)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), original.ID, entry.OriginalRecipeID)
		assert.Equal(suite.T(), mealsBefore, plan.Meals())
		assert.Equal(suite.T(), totalsBefore, plan.Totals())
		assert.False(suite.T(), plan.CanUndo())

		// Check domain events
		events := plan.Events()
		require.Len(suite.T(), events, 2)
		undone, ok := events[1].(SubstitutionUndoneEvent)
		assert.True(suite.T(), ok, "Should emit SubstitutionUndoneEvent")
		assert.Equal(suite.T(), original.ID, undone.RestoredRecipeID)
		assert.Equal(suite.T(), 0, undone.MealIndex)
	})

	suite.Run("EmptyHistory_ShouldReturnNothingToUndo", func() {
		// Arrange
		original := profile(500, 30, 50, 20, 800)
		plan := suite.planWithOneMeal(original)

		// Act
		_, err := plan.UndoSubstitution(original, original, uuid.New())

		// Assert
		assert.ErrorIs(suite.T(), err, ErrNothingToUndo)
	})

	suite.Run("SecondConsecutiveUndo_ShouldFail", func() {
		// Arrange
		original := profile(500, 30, 50, 20, 800)
		replacement := profile(520, 28, 55, 18, 750)
		plan := suite.planWithOneMeal(original)
		userID := uuid.New()
		require.NoError(suite.T(), plan.Substitute(0, original, replacement, userID))
		_, err := plan.UndoSubstitution(replacement, original, userID)
		require.NoError(suite.T(), err)

		// Act
		_, err = plan.UndoSubstitution(replacement, original, userID)

		// Assert
		assert.ErrorIs(suite.T(), err, ErrNothingToUndo)
	})

	suite.Run("UndoAfterTwoApplies_ShouldPopMostRecentOnly", func() {
		// Arrange
		original := profile(500, 30, 50, 20, 800)
		second := profile(510, 30, 50, 20, 780)
		third := profile(490, 30, 50, 20, 820)
		plan := suite.planWithOneMeal(original)
		userID := uuid.New()
		require.NoError(suite.T(), plan.Substitute(0, original, second, userID))
		require.NoError(suite.T(), plan.Substitute(0, second, third, userID))

		// Act
		entry, err := plan.UndoSubstitution(third, second, userID)

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), second.ID, entry.OriginalRecipeID)

		meal, err := plan.MealAt(0)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), second.ID, meal.RecipeID)

		history, canUndo := plan.History()
		assert.True(suite.T(), canUndo)
		require.Len(suite.T(), history, 1)
		assert.Equal(suite.T(), original.ID, history[0].OriginalRecipeID)
	})

	suite.Run("SubstituteAfterUndo_ShouldStartFreshUndoSlot", func() {
		// Arrange
		original := profile(500, 30, 50, 20, 800)
		replacement := profile(520, 28, 55, 18, 750)
		another := profile(480, 32, 48, 22, 850)
		plan := suite.planWithOneMeal(original)
		userID := uuid.New()
		require.NoError(suite.T(), plan.Substitute(0, original, replacement, userID))
		_, err := plan.UndoSubstitution(replacement, original, userID)
		require.NoError(suite.T(), err)

		// Act
		err = plan.Substitute(0, original, another, userID)

		// Assert
		require.NoError(suite.T(), err)
		assert.True(suite.T(), plan.CanUndo())
		last, ok := plan.LastSubstitution()
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), another.ID, last.NewRecipeID)
	})
}

// TestHistoryIsolation tests that History returns a defensive copy
func (suite *MealPlanTestSuite) TestHistoryIsolation() {
	suite.Run("MutatingReturnedHistory_ShouldNotAffectPlan", func() {
		// Arrange
		original := profile(500, 30, 50, 20, 800)
		replacement := profile(520, 28, 55, 18, 750)
		plan := suite.planWithOneMeal(original)
		require.NoError(suite.T(), plan.Substitute(0, original, replacement, uuid.New()))

		// Act
		history, _ := plan.History()
		history[0].NewRecipeID = uuid.New()

		// Assert
		fresh, _ := plan.History()
		assert.Equal(suite.T(), replacement.ID, fresh[0].NewRecipeID)
	})
}

// TestEvents tests event draining semantics
func (suite *MealPlanTestSuite) TestEvents() {
	suite.Run("Events_ShouldDrainOnRead", func() {
		// Arrange
		plan, err := NewMealPlan("Valid Name", suite.ownerID, 1)
		require.NoError(suite.T(), err)

		// Act
		first := plan.Events()
		second := plan.Events()

		// Assert
		assert.Len(suite.T(), first, 1)
		assert.Empty(suite.T(), second)
	})
}

// TestVersioning tests the optimistic lock counter
func (suite *MealPlanTestSuite) TestVersioning() {
	suite.Run("IncrementVersion_ShouldBumpByOne", func() {
		// Arrange
		plan, err := NewMealPlan("Valid Name", suite.ownerID, 1)
		require.NoError(suite.T(), err)

		// Act
		plan.IncrementVersion()

		// Assert
		assert.Equal(suite.T(), int64(2), plan.Version())
	})
}

// TestMealPlanTestSuite runs the meal plan test suite
func TestMealPlanTestSuite(t *testing.T) {
	suite.Run(t, new(MealPlanTestSuite))
}
