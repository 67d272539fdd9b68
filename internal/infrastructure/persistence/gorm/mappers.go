package gorm

import (
	"encoding/json"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/grocery"
	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/domain/user"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
)

func timeFromUnixNano(ns int64) time.Time {
	return time.Unix(0, ns)
}

// JSON column shapes. Kept separate from the domain types so the
// stored layout can evolve independently of the aggregates.

type mealJSON struct {
	MealType string    `json:"meal_type"`
	RecipeID uuid.UUID `json:"recipe_id"`
	Day      int       `json:"day"`
}

type totalsJSON struct {
	Calories  float64            `json:"calories"`
	Protein   float64            `json:"protein"`
	Carbs     float64            `json:"carbs"`
	Fat       float64            `json:"fat"`
	Extra     map[string]float64 `json:"extra,omitempty"`
	CostCents int                `json:"cost_cents"`
}

type historyEntryJSON struct {
	MealIndex        int       `json:"meal_index"`
	OriginalRecipeID uuid.UUID `json:"original_recipe_id"`
	NewRecipeID      uuid.UUID `json:"new_recipe_id"`
	Timestamp        int64     `json:"timestamp"`
	UserID           uuid.UUID `json:"user_id"`
}

type nutritionJSON struct {
	Calories float64            `json:"calories"`
	Protein  float64            `json:"protein"`
	Carbs    float64            `json:"carbs"`
	Fat      float64            `json:"fat"`
	Extra    map[string]float64 `json:"extra,omitempty"`
}

type preferencesJSON struct {
	LikedIngredients    []string           `json:"liked_ingredients,omitempty"`
	DislikedIngredients []string           `json:"disliked_ingredients,omitempty"`
	CuisineRatings      map[string]float64 `json:"cuisine_ratings,omitempty"`
	TimePreference      string             `json:"time_preference"`
	DietaryProfiles     []string           `json:"dietary_profiles,omitempty"`
}

type groceryItemJSON struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
	Checked  bool      `json:"checked"`
}

// mealPlanToModel converts a meal plan aggregate to its GORM model
func mealPlanToModel(plan *mealplan.MealPlan) (*MealPlanModel, error) {
	meals := make([]mealJSON, 0, len(plan.Meals()))
	for _, m := range plan.Meals() {
		meals = append(meals, mealJSON{
			MealType: string(m.MealType),
			RecipeID: m.RecipeID,
			Day:      m.Day,
		})
	}
	mealsRaw, err := json.Marshal(meals)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal meals")
	}

	totals := plan.Totals()
	totalsRaw, err := json.Marshal(totalsJSON{
		Calories:  totals.Nutrition.Calories,
		Protein:   totals.Nutrition.Protein,
		Carbs:     totals.Nutrition.Carbs,
		Fat:       totals.Nutrition.Fat,
		Extra:     totals.Nutrition.Extra,
		CostCents: totals.CostCents,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal totals")
	}

	records, _ := plan.History()
	history := make([]historyEntryJSON, 0, len(records))
	for _, rec := range records {
		history = append(history, historyEntryJSON{
			MealIndex:        rec.MealIndex,
			OriginalRecipeID: rec.OriginalRecipeID,
			NewRecipeID:      rec.NewRecipeID,
			Timestamp:        rec.Timestamp.UnixNano(),
			UserID:           rec.UserID,
		})
	}
	historyRaw, err := json.Marshal(history)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal history")
	}

	return &MealPlanModel{
		ID:           plan.ID(),
		Version:      plan.Version(),
		Name:         plan.Name(),
		OwnerID:      plan.OwnerID(),
		DurationDays: plan.DurationDays(),
		Meals:        mealsRaw,
		Totals:       totalsRaw,
		History:      historyRaw,
		CreatedAt:    plan.CreatedAt(),
		UpdatedAt:    plan.UpdatedAt(),
	}, nil
}

// mealPlanToDomain converts a GORM model to a meal plan aggregate
func mealPlanToDomain(model *MealPlanModel) (*mealplan.MealPlan, error) {
	var mealsRaw []mealJSON
	if len(model.Meals) > 0 {
		if err := json.Unmarshal(model.Meals, &mealsRaw); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal meals")
		}
	}
	meals := make([]mealplan.Meal, 0, len(mealsRaw))
	for _, m := range mealsRaw {
		meals = append(meals, mealplan.Meal{
			MealType: mealplan.MealType(m.MealType),
			RecipeID: m.RecipeID,
			Day:      m.Day,
		})
	}

	var totalsRaw totalsJSON
	if len(model.Totals) > 0 {
		if err := json.Unmarshal(model.Totals, &totalsRaw); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal totals")
		}
	}
	totals := mealplan.Totals{
		Nutrition: recipe.Nutrition{
			Calories: totalsRaw.Calories,
			Protein:  totalsRaw.Protein,
			Carbs:    totalsRaw.Carbs,
			Fat:      totalsRaw.Fat,
			Extra:    totalsRaw.Extra,
		},
		CostCents: totalsRaw.CostCents,
	}

	var historyRaw []historyEntryJSON
	if len(model.History) > 0 {
		if err := json.Unmarshal(model.History, &historyRaw); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal history")
		}
	}
	history := make([]mealplan.SubstitutionRecord, 0, len(historyRaw))
	for _, h := range historyRaw {
		history = append(history, mealplan.SubstitutionRecord{
			MealIndex:        h.MealIndex,
			OriginalRecipeID: h.OriginalRecipeID,
			NewRecipeID:      h.NewRecipeID,
			Timestamp:        timeFromUnixNano(h.Timestamp),
			UserID:           h.UserID,
		})
	}

	return mealplan.Reconstruct(
		model.ID,
		model.Version,
		model.Name,
		model.OwnerID,
		model.DurationDays,
		meals,
		totals,
		history,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}

// recipeToModel converts a recipe profile to its GORM model
func recipeToModel(profile recipe.Profile) (*RecipeModel, error) {
	nutritionRaw, err := json.Marshal(nutritionJSON{
		Calories: profile.Nutrition.Calories,
		Protein:  profile.Nutrition.Protein,
		Carbs:    profile.Nutrition.Carbs,
		Fat:      profile.Nutrition.Fat,
		Extra:    profile.Nutrition.Extra,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal nutrition")
	}
	ingredientsRaw, err := json.Marshal(profile.Ingredients)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal ingredients")
	}
	return &RecipeModel{
		ID:                 profile.ID,
		Name:               profile.Name,
		Cuisine:            string(profile.Cuisine),
		PrepTimeMinutes:    profile.PrepTimeMinutes,
		CookTimeMinutes:    profile.CookTimeMinutes,
		Nutrition:          nutritionRaw,
		EstimatedCostCents: profile.EstimatedCostCents,
		Difficulty:         string(profile.Difficulty),
		Ingredients:        ingredientsRaw,
		CreatedAt:          profile.CreatedAt,
	}, nil
}

// recipeToDomain converts a GORM model to a recipe profile
func recipeToDomain(model *RecipeModel) (recipe.Profile, error) {
	var nutritionRaw nutritionJSON
	if len(model.Nutrition) > 0 {
		if err := json.Unmarshal(model.Nutrition, &nutritionRaw); err != nil {
			return recipe.Profile{}, errors.Wrap(err, "failed to unmarshal nutrition")
		}
	}
	var ingredients []string
	if len(model.Ingredients) > 0 {
		if err := json.Unmarshal(model.Ingredients, &ingredients); err != nil {
			return recipe.Profile{}, errors.Wrap(err, "failed to unmarshal ingredients")
		}
	}
	return recipe.Profile{
		ID:              model.ID,
		Name:            model.Name,
		Cuisine:         recipe.CuisineType(model.Cuisine),
		PrepTimeMinutes: model.PrepTimeMinutes,
		CookTimeMinutes: model.CookTimeMinutes,
		Nutrition: recipe.Nutrition{
			Calories: nutritionRaw.Calories,
			Protein:  nutritionRaw.Protein,
			Carbs:    nutritionRaw.Carbs,
			Fat:      nutritionRaw.Fat,
			Extra:    nutritionRaw.Extra,
		},
		EstimatedCostCents: model.EstimatedCostCents,
		Difficulty:         recipe.DifficultyLevel(model.Difficulty),
		Ingredients:        ingredients,
		CreatedAt:          model.CreatedAt,
	}, nil
}

// userToModel converts a user aggregate to its GORM model
func userToModel(u *user.User) (*UserModel, error) {
	prefs := u.Preferences()
	ratings := make(map[string]float64, len(prefs.CuisineRatings))
	for cuisine, rating := range prefs.CuisineRatings {
		ratings[string(cuisine)] = rating
	}
	prefsRaw, err := json.Marshal(preferencesJSON{
		LikedIngredients:    prefs.LikedIngredients,
		DislikedIngredients: prefs.DislikedIngredients,
		CuisineRatings:      ratings,
		TimePreference:      string(prefs.TimePreference),
		DietaryProfiles:     prefs.DietaryProfiles,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal preferences")
	}

	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		Name:         u.Name(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		Preferences:  prefsRaw,
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
		LastLoginAt:  u.LastLoginAt(),
	}, nil
}

// userToDomain converts a GORM model to a user aggregate
func userToDomain(model *UserModel) (*user.User, error) {
	var prefsRaw preferencesJSON
	if len(model.Preferences) > 0 {
		if err := json.Unmarshal(model.Preferences, &prefsRaw); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal preferences")
		}
	}

	prefs := user.DefaultPreferences()
	if prefsRaw.TimePreference != "" {
		ratings := make(map[recipe.CuisineType]float64, len(prefsRaw.CuisineRatings))
		for cuisine, rating := range prefsRaw.CuisineRatings {
			ratings[recipe.CuisineType(cuisine)] = rating
		}
		prefs = &user.PreferenceProfile{
			LikedIngredients:    prefsRaw.LikedIngredients,
			DislikedIngredients: prefsRaw.DislikedIngredients,
			CuisineRatings:      ratings,
			TimePreference:      user.TimePreference(prefsRaw.TimePreference),
			DietaryProfiles:     prefsRaw.DietaryProfiles,
		}
	}

	return user.Reconstruct(
		model.ID,
		model.Email,
		model.Name,
		model.PasswordHash,
		model.IsActive,
		prefs,
		model.CreatedAt,
		model.UpdatedAt,
		model.LastLoginAt,
	), nil
}

// groceryToModel converts a grocery list to its GORM model
func groceryToModel(list *grocery.List) (*GroceryListModel, error) {
	items := make([]groceryItemJSON, 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, groceryItemJSON{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Checked:  item.Checked,
		})
	}
	itemsRaw, err := json.Marshal(items)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal grocery items")
	}
	return &GroceryListModel{
		ID:         list.ID,
		UserID:     list.UserID,
		MealPlanID: list.MealPlanID,
		Name:       list.Name,
		Items:      itemsRaw,
		CreatedAt:  list.CreatedAt,
		UpdatedAt:  list.UpdatedAt,
	}, nil
}

// groceryToDomain converts a GORM model to a grocery list
func groceryToDomain(model *GroceryListModel) (*grocery.List, error) {
	var itemsRaw []groceryItemJSON
	if len(model.Items) > 0 {
		if err := json.Unmarshal(model.Items, &itemsRaw); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal grocery items")
		}
	}
	items := make([]grocery.Item, 0, len(itemsRaw))
	for _, item := range itemsRaw {
		items = append(items, grocery.Item{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Checked:  item.Checked,
		})
	}
	return &grocery.List{
		ID:         model.ID,
		UserID:     model.UserID,
		MealPlanID: model.MealPlanID,
		Name:       model.Name,
		Items:      items,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}, nil
}
