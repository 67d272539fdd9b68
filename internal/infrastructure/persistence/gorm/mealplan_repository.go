package gorm

import (
	"context"
	stderrors "errors"

	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealPlanRepository implements outbound.MealPlanRepository using GORM
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new GORM meal plan repository
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Create stores a new meal plan
func (r *MealPlanRepository) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	model, err := mealPlanToModel(plan)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.NewDatabaseError("create meal plan", err)
	}
	return nil
}

// Update persists the plan guarded by the version read at load time.
// The row is only written when the stored version still matches; zero
// rows affected means either a concurrent writer got there first or the
// plan is gone, and the two cases are told apart with a second read.
func (r *MealPlanRepository) Update(ctx context.Context, plan *mealplan.MealPlan) error {
	model, err := mealPlanToModel(plan)
	if err != nil {
		return err
	}
	model.Version = plan.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&MealPlanModel{}).
		Where("id = ? AND version = ?", plan.ID(), plan.Version()).
		Updates(map[string]interface{}{
			"version":       model.Version,
			"name":          model.Name,
			"duration_days": model.DurationDays,
			"meals":         model.Meals,
			"totals":        model.Totals,
			"history":       model.History,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return errors.NewDatabaseError("update meal plan", result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&MealPlanModel{}).Where("id = ?", plan.ID()).Count(&count).Error; err != nil {
			return errors.NewDatabaseError("update meal plan", err)
		}
		if count == 0 {
			return mealplan.ErrPlanNotFound
		}
		return mealplan.ErrVersionConflict
	}

	plan.IncrementVersion()
	return nil
}

// Delete removes a meal plan
func (r *MealPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&MealPlanModel{}, "id = ?", id).Error; err != nil {
		return errors.NewDatabaseError("delete meal plan", err)
	}
	return nil
}

// FindByID retrieves a meal plan by ID, nil if not found
func (r *MealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	var model MealPlanModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("find meal plan", err)
	}
	return mealPlanToDomain(&model)
}

// FindByUserID retrieves a user's meal plans with pagination
func (r *MealPlanRepository) FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*mealplan.MealPlan, int, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&MealPlanModel{}).Where("owner_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, errors.NewDatabaseError("count meal plans", err)
	}

	var models []MealPlanModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("created_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, errors.NewDatabaseError("list meal plans", err)
	}

	plans := make([]*mealplan.MealPlan, 0, len(models))
	for i := range models {
		plan, err := mealPlanToDomain(&models[i])
		if err != nil {
			return nil, 0, err
		}
		plans = append(plans, plan)
	}
	return plans, int(total), nil
}
