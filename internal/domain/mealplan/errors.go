package mealplan

import "errors"

// Domain errors for meal plan operations

var (
	// Entity validation errors
	ErrNameTooShort      = errors.New("meal plan name must be at least 3 characters")
	ErrInvalidDuration   = errors.New("meal plan duration must be between 1 and 7 days")
	ErrInvalidMealType   = errors.New("meal type must be breakfast, lunch, dinner or snack")
	ErrMealDayOutOfRange = errors.New("meal day is outside the plan duration")
	ErrNoMeals           = errors.New("meal plan must contain at least one meal")

	// Substitution ledger errors
	ErrMealIndexOutOfRange = errors.New("meal index is outside the plan's meal list")
	ErrNothingToUndo       = errors.New("substitution history is empty, nothing to undo")

	// Lookup and persistence errors
	ErrPlanNotFound    = errors.New("meal plan not found")
	ErrVersionConflict = errors.New("meal plan version conflict, concurrent mutation detected")
)
