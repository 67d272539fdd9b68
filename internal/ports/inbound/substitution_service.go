// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/domain/substitution"
	"github.com/google/uuid"
)

// SubstitutionService defines the use cases of the meal substitution
// engine. Inputs are assumed validated at the transport boundary except
// for the documented parameter bounds, which the engine re-checks.
type SubstitutionService interface {
	// FindAlternatives ranks replacement candidates for one meal slot.
	// Read-only.
	FindAlternatives(ctx context.Context, q FindAlternativesQuery) (*AlternativesResult, error)

	// ApplySubstitution swaps the recipe at a meal slot and records an
	// undoable history entry.
	ApplySubstitution(ctx context.Context, cmd ApplySubstitutionCommand) (*SubstitutionResult, error)

	// UndoSubstitution rolls back the plan's most recent substitution.
	UndoSubstitution(ctx context.Context, cmd UndoSubstitutionCommand) (*SubstitutionResult, error)

	// GetHistory returns the plan's substitution history oldest-first.
	GetHistory(ctx context.Context, planID uuid.UUID) (*HistoryResult, error)
}

// FindAlternativesQuery parameterizes a candidate search
type FindAlternativesQuery struct {
	PlanID    uuid.UUID
	MealIndex int
	// MaxAlternatives bounds the returned list (1-10); zero means the
	// default of 5.
	MaxAlternatives int
	// Tolerance is the maximum relative calorie deviation (0.05-0.30);
	// zero means the default of 0.15.
	Tolerance float64
	// RejectedRecipeIDs are recipes the user dismissed this session.
	RejectedRecipeIDs []uuid.UUID
}

// ApplySubstitutionCommand applies a chosen candidate to a meal slot
type ApplySubstitutionCommand struct {
	PlanID      uuid.UUID
	MealIndex   int
	NewRecipeID uuid.UUID
	UserID      uuid.UUID
}

// UndoSubstitutionCommand undoes a plan's most recent substitution
type UndoSubstitutionCommand struct {
	PlanID uuid.UUID
	UserID uuid.UUID
}

// CandidateDTO is one ranked alternative with its scores and impact
type CandidateDTO struct {
	RecipeID        uuid.UUID           `json:"recipe_id"`
	Name            string              `json:"name"`
	Cuisine         recipe.CuisineType  `json:"cuisine_type"`
	PrepTimeMinutes int                 `json:"prep_time_minutes"`
	CookTimeMinutes int                 `json:"cook_time_minutes"`
	CostCents       int                 `json:"estimated_cost_cents"`
	Difficulty      string              `json:"difficulty_level"`
	Scores          substitution.Scores `json:"scores"`
	Impact          substitution.Impact `json:"impact"`
}

// AlternativesResult is the ranked candidate list plus the
// pre-truncation survivor count
type AlternativesResult struct {
	Candidates []CandidateDTO `json:"alternatives"`
	TotalFound int            `json:"total_found"`
}

// SubstitutionResult describes an applied or undone substitution and
// the updated plan
type SubstitutionResult struct {
	Plan             *MealPlanDTO        `json:"meal_plan"`
	MealIndex        int                 `json:"meal_index"`
	OriginalRecipeID uuid.UUID           `json:"original_recipe_id"`
	NewRecipeID      uuid.UUID           `json:"new_recipe_id"`
	Impact           substitution.Impact `json:"impact"`
	Undone           bool                `json:"undone"`
}

// HistoryEntryDTO is one substitution record in a plan's history
type HistoryEntryDTO struct {
	MealIndex        int       `json:"meal_index"`
	OriginalRecipeID uuid.UUID `json:"original_recipe_id"`
	NewRecipeID      uuid.UUID `json:"new_recipe_id"`
	Timestamp        time.Time `json:"timestamp"`
	UserID           uuid.UUID `json:"user_id"`
}

// HistoryResult is the ordered history plus the undo availability flag
type HistoryResult struct {
	Entries []HistoryEntryDTO `json:"history"`
	CanUndo bool              `json:"can_undo"`
}
