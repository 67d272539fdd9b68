// Package mealplan provides the application layer for meal plan management
package mealplan

import (
	"context"

	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the meal plan use cases
type Service struct {
	planRepo outbound.MealPlanRepository
	catalog  outbound.RecipeCatalog
	userRepo outbound.UserRepository
	logger   *zap.Logger
}

// NewService creates a new meal plan service
func NewService(
	planRepo outbound.MealPlanRepository,
	catalog outbound.RecipeCatalog,
	userRepo outbound.UserRepository,
	logger *zap.Logger,
) inbound.MealPlanService {
	return &Service{
		planRepo: planRepo,
		catalog:  catalog,
		userRepo: userRepo,
		logger:   logger.Named("mealplan-service"),
	}
}

// CreatePlan creates a new meal plan with its meals and seeds the
// aggregate totals from the catalog
func (s *Service) CreatePlan(ctx context.Context, cmd inbound.CreatePlanCommand) (*inbound.MealPlanDTO, error) {
	s.logger.Info("Creating meal plan",
		zap.String("name", cmd.Name),
		zap.String("owner_id", cmd.OwnerID.String()),
		zap.Int("duration_days", cmd.DurationDays),
	)

	exists, err := s.userRepo.Exists(ctx, cmd.OwnerID)
	if err != nil {
		return nil, errors.NewDatabaseError("check user existence", err)
	}
	if !exists {
		return nil, errors.NewUserNotFoundError(cmd.OwnerID.String())
	}

	plan, err := mealplan.NewMealPlan(cmd.Name, cmd.OwnerID, cmd.DurationDays)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if len(cmd.Meals) == 0 {
		return nil, errors.NewValidationError(mealplan.ErrNoMeals.Error())
	}

	for _, mealCmd := range cmd.Meals {
		profile, err := s.catalog.FindByID(ctx, mealCmd.RecipeID)
		if err != nil {
			return nil, errors.NewRecipeNotFoundError(mealCmd.RecipeID.String()).WithCause(err)
		}

		meal := mealplan.Meal{
			MealType: mealCmd.MealType,
			RecipeID: mealCmd.RecipeID,
			Day:      mealCmd.Day,
		}
		if err := plan.AddMeal(meal, profile); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, errors.NewDatabaseError("create meal plan", err)
	}

	for _, event := range plan.Events() {
		s.logger.Debug("Domain event", zap.String("event", event.EventName()))
	}

	dto := ToDTO(plan)

	s.logger.Info("Meal plan created successfully",
		zap.String("plan_id", dto.ID.String()),
		zap.Int("meals", len(dto.Meals)),
	)

	return dto, nil
}

// GetPlan retrieves a meal plan by ID
func (s *Service) GetPlan(ctx context.Context, planID uuid.UUID) (*inbound.MealPlanDTO, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, errors.NewDatabaseError("find meal plan", err)
	}
	if plan == nil {
		return nil, errors.NewMealPlanNotFoundError(planID.String())
	}
	return ToDTO(plan), nil
}

// ListPlans retrieves a user's meal plans with pagination
func (s *Service) ListPlans(ctx context.Context, userID uuid.UUID, params inbound.PaginationParams) (*inbound.MealPlanList, error) {
	if params.PageSize <= 0 {
		params.PageSize = 20
	}

	plans, total, err := s.planRepo.FindByUserID(ctx, userID, params.Page*params.PageSize, params.PageSize)
	if err != nil {
		return nil, errors.NewDatabaseError("list meal plans", err)
	}

	dtos := make([]inbound.MealPlanDTO, len(plans))
	for i, plan := range plans {
		dtos[i] = *ToDTO(plan)
	}

	return &inbound.MealPlanList{
		Plans:      dtos,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: (total + params.PageSize - 1) / params.PageSize,
	}, nil
}

// DeletePlan deletes a meal plan owned by the user
func (s *Service) DeletePlan(ctx context.Context, planID, userID uuid.UUID) error {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return errors.NewDatabaseError("find meal plan", err)
	}
	if plan == nil {
		return errors.NewMealPlanNotFoundError(planID.String())
	}
	if plan.OwnerID() != userID {
		return errors.NewAppError(errors.CodeForbidden, "Only the plan owner can delete it", "")
	}

	if err := s.planRepo.Delete(ctx, planID); err != nil {
		return errors.NewDatabaseError("delete meal plan", err)
	}

	s.logger.Info("Meal plan deleted",
		zap.String("plan_id", planID.String()),
		zap.String("user_id", userID.String()),
	)

	return nil
}

// ToDTO converts a plan aggregate to its external representation
func ToDTO(plan *mealplan.MealPlan) *inbound.MealPlanDTO {
	meals := plan.Meals()
	mealDTOs := make([]inbound.MealDTO, len(meals))
	for i, meal := range meals {
		mealDTOs[i] = inbound.MealDTO{
			Index:    i,
			MealType: meal.MealType,
			RecipeID: meal.RecipeID,
			Day:      meal.Day,
		}
	}

	totals := plan.Totals()

	return &inbound.MealPlanDTO{
		ID:           plan.ID(),
		Name:         plan.Name(),
		OwnerID:      plan.OwnerID(),
		DurationDays: plan.DurationDays(),
		Meals:        mealDTOs,
		Totals:       totals.Fields(),
		TotalCostUSD: float64(totals.CostCents) / 100,
		CanUndo:      plan.CanUndo(),
		CreatedAt:    plan.CreatedAt(),
		UpdatedAt:    plan.UpdatedAt(),
	}
}
