package substitution

import (
	"context"
	"testing"

	domainplan "github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	domainsub "github.com/alchemorsel/mealplan/internal/domain/substitution"
	"github.com/alchemorsel/mealplan/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/alchemorsel/mealplan/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// SubstitutionServiceTestSuite provides a test suite for the
// substitution application service backed by in-memory adapters
type SubstitutionServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	planRepo outbound.MealPlanRepository
	catalog  *memory.RecipeCatalog
	service  inbound.SubstitutionService

	ownerID     uuid.UUID
	original    recipe.Profile
	replacement recipe.Profile
	plan        *domainplan.MealPlan
}

// SetupTest builds a fresh service with one stored plan per test
func (suite *SubstitutionServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.ownerID = uuid.New()

	suite.original = testutils.NewProfileBuilder().
		WithNutrition(500, 30, 50, 20).
		WithCostCents(800).
		Build()
	suite.replacement = testutils.NewProfileBuilder().
		WithNutrition(520, 30, 50, 20).
		WithCostCents(750).
		Build()

	suite.planRepo = memory.NewMealPlanRepository()
	suite.catalog = memory.NewRecipeCatalog(suite.original, suite.replacement)
	suite.service = NewService(
		suite.planRepo,
		suite.catalog,
		memory.NewUserRepository(),
		memory.NewPlanArena(),
		zap.NewNop(),
	)

	plan, err := testutils.PlanWithMeals(suite.ownerID, 1, suite.original)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), suite.planRepo.Create(suite.ctx, plan))
	suite.plan = plan
}

// TestFindAlternatives tests the candidate search use case
func (suite *SubstitutionServiceTestSuite) TestFindAlternatives() {
	suite.Run("RankedCandidates_ShouldCarryScoresAndImpact", func() {
		// Act
		result, err := suite.service.FindAlternatives(suite.ctx, inbound.FindAlternativesQuery{
			PlanID:    suite.plan.ID(),
			MealIndex: 0,
		})

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), result.Candidates, 1)
		candidate := result.Candidates[0]
		assert.Equal(suite.T(), suite.replacement.ID, candidate.RecipeID)
		assert.GreaterOrEqual(suite.T(), candidate.Scores.NutritionalSimilarity, 0.9)
		assert.Equal(suite.T(), 1.0, candidate.Scores.CostEfficiency)
		assert.Equal(suite.T(), domainsub.LevelMinimal, candidate.Impact.Level)
	})

	suite.Run("RejectedRecipes_ShouldBeExcluded", func() {
		// Act
		result, err := suite.service.FindAlternatives(suite.ctx, inbound.FindAlternativesQuery{
			PlanID:            suite.plan.ID(),
			MealIndex:         0,
			RejectedRecipeIDs: []uuid.UUID{suite.replacement.ID},
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), result.Candidates)
		assert.Zero(suite.T(), result.TotalFound)
	})

	suite.Run("IndexBeyondMealList_ShouldReturnOutOfRange", func() {
		// Act
		_, err := suite.service.FindAlternatives(suite.ctx, inbound.FindAlternativesQuery{
			PlanID:    suite.plan.ID(),
			MealIndex: 10,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeOutOfRange, errors.GetCode(err))
		appErr, ok := err.(*errors.AppError)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), 400, appErr.StatusCode())
	})

	suite.Run("ToleranceOutOfBounds_ShouldReturnOutOfRange", func() {
		// Act
		_, err := suite.service.FindAlternatives(suite.ctx, inbound.FindAlternativesQuery{
			PlanID:    suite.plan.ID(),
			MealIndex: 0,
			Tolerance: 0.50,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeOutOfRange, errors.GetCode(err))
	})

	suite.Run("UnknownPlan_ShouldReturnNotFound", func() {
		// Act
		_, err := suite.service.FindAlternatives(suite.ctx, inbound.FindAlternativesQuery{
			PlanID:    uuid.New(),
			MealIndex: 0,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeMealPlanNotFound, errors.GetCode(err))
	})

	// Mutates the catalog, so it runs after the subtests that assume the
	// two seeded recipes.
	suite.Run("ZeroOptions_ShouldApplyDefaults", func() {
		// Arrange
		for i := 0; i < 7; i++ {
			suite.catalog.Add(testutils.NewProfileBuilder().
				WithNutrition(480+float64(i*5), 30, 50, 20).
				WithCostCents(800).
				Build())
		}

		// Act
		result, err := suite.service.FindAlternatives(suite.ctx, inbound.FindAlternativesQuery{
			PlanID:    suite.plan.ID(),
			MealIndex: 0,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), result.Candidates, 5, "default max alternatives is 5")
		assert.Equal(suite.T(), 8, result.TotalFound)
	})
}

// TestApplySubstitution tests the apply use case end to end
func (suite *SubstitutionServiceTestSuite) TestApplySubstitution() {
	suite.Run("ValidApply_ShouldPersistSwapAndHistory", func() {
		// Act
		result, err := suite.service.ApplySubstitution(suite.ctx, inbound.ApplySubstitutionCommand{
			PlanID:      suite.plan.ID(),
			MealIndex:   0,
			NewRecipeID: suite.replacement.ID,
			UserID:      suite.ownerID,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 0, result.MealIndex)
		assert.Equal(suite.T(), suite.original.ID, result.OriginalRecipeID)
		assert.Equal(suite.T(), suite.replacement.ID, result.NewRecipeID)
		assert.Equal(suite.T(), domainsub.LevelMinimal, result.Impact.Level)
		assert.False(suite.T(), result.Undone)

		stored, err := suite.planRepo.FindByID(suite.ctx, suite.plan.ID())
		require.NoError(suite.T(), err)
		require.NotNil(suite.T(), stored)
		meal, err := stored.MealAt(0)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), suite.replacement.ID, meal.RecipeID)
		assert.Equal(suite.T(), 520.0, stored.Totals().Nutrition.Calories)
		assert.Equal(suite.T(), 750, stored.Totals().CostCents)
		assert.Equal(suite.T(), int64(2), stored.Version(), "persisted mutation bumps the optimistic lock")
		assert.True(suite.T(), stored.CanUndo())
	})

	suite.Run("UnknownRecipe_ShouldReturnRecipeNotFound", func() {
		// Act
		_, err := suite.service.ApplySubstitution(suite.ctx, inbound.ApplySubstitutionCommand{
			PlanID:      suite.plan.ID(),
			MealIndex:   0,
			NewRecipeID: uuid.New(),
			UserID:      suite.ownerID,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeRecipeNotFound, errors.GetCode(err))
	})

	suite.Run("IndexBeyondMealList_ShouldReturnOutOfRange", func() {
		// Act
		_, err := suite.service.ApplySubstitution(suite.ctx, inbound.ApplySubstitutionCommand{
			PlanID:      suite.plan.ID(),
			MealIndex:   3,
			NewRecipeID: suite.replacement.ID,
			UserID:      suite.ownerID,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeOutOfRange, errors.GetCode(err))
	})

	suite.Run("UnknownPlan_ShouldReturnNotFound", func() {
		// Act
		_, err := suite.service.ApplySubstitution(suite.ctx, inbound.ApplySubstitutionCommand{
			PlanID:      uuid.New(),
			MealIndex:   0,
			NewRecipeID: suite.replacement.ID,
			UserID:      suite.ownerID,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeMealPlanNotFound, errors.GetCode(err))
	})
}

// TestUndoSubstitution tests the undo use case and its single-level
// contract
func (suite *SubstitutionServiceTestSuite) TestUndoSubstitution() {
	suite.Run("ApplyThenUndo_ShouldRestorePlanExactly", func() {
		// Arrange
		_, err := suite.service.ApplySubstitution(suite.ctx, inbound.ApplySubstitutionCommand{
			PlanID:      suite.plan.ID(),
			MealIndex:   0,
			NewRecipeID: suite.replacement.ID,
			UserID:      suite.ownerID,
		})
		require.NoError(suite.T(), err)

		// Act
		result, err := suite.service.UndoSubstitution(suite.ctx, inbound.UndoSubstitutionCommand{
			PlanID: suite.plan.ID(),
			UserID: suite.ownerID,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.True(suite.T(), result.Undone)
		assert.Equal(suite.T(), 0, result.MealIndex)
		assert.Equal(suite.T(), suite.replacement.ID, result.OriginalRecipeID)
		assert.Equal(suite.T(), suite.original.ID, result.NewRecipeID)

		stored, err := suite.planRepo.FindByID(suite.ctx, suite.plan.ID())
		require.NoError(suite.T(), err)
		meal, err := stored.MealAt(0)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), suite.original.ID, meal.RecipeID)
		assert.Equal(suite.T(), 500.0, stored.Totals().Nutrition.Calories)
		assert.Equal(suite.T(), 800, stored.Totals().CostCents)
		assert.False(suite.T(), stored.CanUndo())
	})

	suite.Run("EmptyHistory_ShouldReturnInvalidState", func() {
		// Act
		_, err := suite.service.UndoSubstitution(suite.ctx, inbound.UndoSubstitutionCommand{
			PlanID: suite.plan.ID(),
			UserID: suite.ownerID,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeInvalidState, errors.GetCode(err))
		appErr, ok := err.(*errors.AppError)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), 409, appErr.StatusCode())
	})

	suite.Run("SecondConsecutiveUndo_ShouldReturnInvalidState", func() {
		// Arrange
		_, err := suite.service.ApplySubstitution(suite.ctx, inbound.ApplySubstitutionCommand{
			PlanID:      suite.plan.ID(),
			MealIndex:   0,
			NewRecipeID: suite.replacement.ID,
			UserID:      suite.ownerID,
		})
		require.NoError(suite.T(), err)
		_, err = suite.service.UndoSubstitution(suite.ctx, inbound.UndoSubstitutionCommand{
			PlanID: suite.plan.ID(),
			UserID: suite.ownerID,
		})
		require.NoError(suite.T(), err)

		// Act
		_, err = suite.service.UndoSubstitution(suite.ctx, inbound.UndoSubstitutionCommand{
			PlanID: suite.plan.ID(),
			UserID: suite.ownerID,
		})

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeInvalidState, errors.GetCode(err))
	})
}

// TestGetHistory tests the history read model
func (suite *SubstitutionServiceTestSuite) TestGetHistory() {
	suite.Run("FreshPlan_ShouldHaveEmptyHistory", func() {
		// Act
		result, err := suite.service.GetHistory(suite.ctx, suite.plan.ID())

		// Assert
		require.NoError(suite.T(), err)
		assert.Empty(suite.T(), result.Entries)
		assert.False(suite.T(), result.CanUndo)
	})

	suite.Run("AfterApply_ShouldListEntryAndAllowUndo", func() {
		// Arrange
		_, err := suite.service.ApplySubstitution(suite.ctx, inbound.ApplySubstitutionCommand{
			PlanID:      suite.plan.ID(),
			MealIndex:   0,
			NewRecipeID: suite.replacement.ID,
			UserID:      suite.ownerID,
		})
		require.NoError(suite.T(), err)

		// Act
		result, err := suite.service.GetHistory(suite.ctx, suite.plan.ID())

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), result.Entries, 1)
		assert.True(suite.T(), result.CanUndo)
		entry := result.Entries[0]
		assert.Equal(suite.T(), 0, entry.MealIndex)
		assert.Equal(suite.T(), suite.original.ID, entry.OriginalRecipeID)
		assert.Equal(suite.T(), suite.replacement.ID, entry.NewRecipeID)
		assert.Equal(suite.T(), suite.ownerID, entry.UserID)
		assert.False(suite.T(), entry.Timestamp.IsZero())
	})

	suite.Run("UnknownPlan_ShouldReturnNotFound", func() {
		// Act
		_, err := suite.service.GetHistory(suite.ctx, uuid.New())

		// Assert
		require.Error(suite.T(), err)
		assert.Equal(suite.T(), errors.CodeMealPlanNotFound, errors.GetCode(err))
	})
}

// TestSubstitutionServiceTestSuite runs the substitution service suite
func TestSubstitutionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SubstitutionServiceTestSuite))
}
