package inbound

import (
	"context"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/google/uuid"
)

// MealPlanService defines the meal plan CRUD use cases
type MealPlanService interface {
	CreatePlan(ctx context.Context, cmd CreatePlanCommand) (*MealPlanDTO, error)
	GetPlan(ctx context.Context, planID uuid.UUID) (*MealPlanDTO, error)
	ListPlans(ctx context.Context, userID uuid.UUID, params PaginationParams) (*MealPlanList, error)
	DeletePlan(ctx context.Context, planID, userID uuid.UUID) error
}

// CreatePlanCommand contains data for creating a new meal plan
type CreatePlanCommand struct {
	Name         string
	OwnerID      uuid.UUID
	DurationDays int
	Meals        []CreateMealCommand
}

// CreateMealCommand is one slot in a new plan
type CreateMealCommand struct {
	MealType mealplan.MealType
	RecipeID uuid.UUID
	Day      int
}

// PaginationParams carries offset pagination
type PaginationParams struct {
	Page     int
	PageSize int
}

// MealPlanDTO is the external representation of a plan
type MealPlanDTO struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	OwnerID      uuid.UUID          `json:"owner_id"`
	DurationDays int                `json:"duration_days"`
	Meals        []MealDTO          `json:"meals"`
	Totals       map[string]float64 `json:"totals"`
	TotalCostUSD float64            `json:"total_cost_usd"`
	CanUndo      bool               `json:"can_undo"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// MealDTO is one meal slot
type MealDTO struct {
	Index    int               `json:"index"`
	MealType mealplan.MealType `json:"meal_type"`
	RecipeID uuid.UUID         `json:"recipe_id"`
	Day      int               `json:"day"`
}

// MealPlanList is a paginated plan listing
type MealPlanList struct {
	Plans      []MealPlanDTO `json:"plans"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}
