package mealplan

import (
	"errors"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/google/uuid"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Meal is one slot in a plan's ordered meal list. A meal is identified
// by its position in the list; day and meal type are descriptive.
type Meal struct {
	MealType MealType
	RecipeID uuid.UUID
	Day      int // 1-based day within the plan
}

// Validate checks the meal against the plan's duration
func (m Meal) Validate(durationDays int) error {
	if err := m.MealType.Validate(); err != nil {
		return err
	}
	if m.Day < 1 || m.Day > durationDays {
		return ErrMealDayOutOfRange
	}
	if m.RecipeID == uuid.Nil {
		return errors.New("meal recipe id is required")
	}
	return nil
}

// MealType represents the slot a meal occupies in a day
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

// Validate checks the meal type against the enumerated values
func (t MealType) Validate() error {
	switch t {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack:
		return nil
	default:
		return ErrInvalidMealType
	}
}

// Totals is the plan's running nutrition and cost aggregate. It is
// recomputed inside apply/undo so the plan and its summary never drift.
type Totals struct {
	Nutrition recipe.Nutrition
	CostCents int
}

// Fields returns the aggregate as a name-to-value mapping, cost included
func (t Totals) Fields() map[string]float64 {
	fields := t.Nutrition.Fields()
	fields[recipe.FieldCost] = float64(t.CostCents)
	return fields
}

// SubstitutionRecord is one undoable history entry. The history is
// append-only except for the single most-recent entry, which undo
// removes permanently.
type SubstitutionRecord struct {
	MealIndex        int
	OriginalRecipeID uuid.UUID
	NewRecipeID      uuid.UUID
	Timestamp        time.Time
	UserID           uuid.UUID
}
