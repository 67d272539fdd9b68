// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/domain/user"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// ProfileBuilder provides a fluent interface for building test recipe profiles
type ProfileBuilder struct {
	profile recipe.Profile
}

// NewProfileBuilder creates a new profile builder with default values
func NewProfileBuilder() *ProfileBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &ProfileBuilder{
		profile: recipe.Profile{
			ID:              uuid.New(),
			Name:            faker.Dinner(),
			Cuisine:         recipe.CuisineTypeItalian,
			PrepTimeMinutes: 15,
			CookTimeMinutes: 30,
			Nutrition: recipe.Nutrition{
				Calories: 500,
				Protein:  30,
				Carbs:    50,
				Fat:      20,
			},
			EstimatedCostCents: 800,
			Difficulty:         recipe.DifficultyLevelMedium,
			Ingredients:        []string{"chicken", "rice", "olive oil"},
			CreatedAt:          time.Now(),
		},
	}
}

// WithID sets the profile id
func (b *ProfileBuilder) WithID(id uuid.UUID) *ProfileBuilder {
	b.profile.ID = id
	return b
}

// WithName sets the profile name
func (b *ProfileBuilder) WithName(name string) *ProfileBuilder {
	b.profile.Name = name
	return b
}

// WithCuisine sets the cuisine
func (b *ProfileBuilder) WithCuisine(cuisine recipe.CuisineType) *ProfileBuilder {
	b.profile.Cuisine = cuisine
	return b
}

// WithCalories sets only the calorie value
func (b *ProfileBuilder) WithCalories(calories float64) *ProfileBuilder {
	b.profile.Nutrition.Calories = calories
	return b
}

// WithNutrition sets the full nutrition record
func (b *ProfileBuilder) WithNutrition(calories, protein, carbs, fat float64) *ProfileBuilder {
	b.profile.Nutrition = recipe.Nutrition{
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
	}
	return b
}

// WithCostCents sets the estimated cost
func (b *ProfileBuilder) WithCostCents(cents int) *ProfileBuilder {
	b.profile.EstimatedCostCents = cents
	return b
}

// WithPrepTime sets the prep time in minutes
func (b *ProfileBuilder) WithPrepTime(minutes int) *ProfileBuilder {
	b.profile.PrepTimeMinutes = minutes
	return b
}

// WithIngredients sets the ingredient list
func (b *ProfileBuilder) WithIngredients(ingredients ...string) *ProfileBuilder {
	b.profile.Ingredients = ingredients
	return b
}

// Build returns the constructed profile
func (b *ProfileBuilder) Build() recipe.Profile {
	return b.profile
}

// PlanWithMeals builds a plan owned by ownerID whose meals use the
// given profiles in order, one meal per slot spread across days.
func PlanWithMeals(ownerID uuid.UUID, durationDays int, profiles ...recipe.Profile) (*mealplan.MealPlan, error) {
	plan, err := mealplan.NewMealPlan("Test Plan", ownerID, durationDays)
	if err != nil {
		return nil, err
	}

	mealTypes := []mealplan.MealType{
		mealplan.MealTypeBreakfast,
		mealplan.MealTypeLunch,
		mealplan.MealTypeDinner,
	}
	for i, profile := range profiles {
		meal := mealplan.Meal{
			MealType: mealTypes[i%len(mealTypes)],
			RecipeID: profile.ID,
			Day:      (i / len(mealTypes) % durationDays) + 1,
		}
		if err := plan.AddMeal(meal, profile); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// DefaultPreferences returns a neutral preference profile
func DefaultPreferences() *user.PreferenceProfile {
	return user.DefaultPreferences()
}

// PreferencesWithCuisine returns preferences rating a single cuisine
func PreferencesWithCuisine(cuisine recipe.CuisineType, rating float64) *user.PreferenceProfile {
	prefs := user.DefaultPreferences()
	prefs.CuisineRatings[cuisine] = rating
	return prefs
}
