// Package memory provides in-memory implementations of the outbound
// ports. They back the test suites and the zero-dependency development
// mode; the semantics mirror the database-backed adapters, including
// optimistic version checks.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/google/uuid"
)

// MealPlanRepository is an in-memory meal plan store
type MealPlanRepository struct {
	mu    sync.RWMutex
	plans map[uuid.UUID]*mealplan.MealPlan
}

// NewMealPlanRepository creates a new in-memory meal plan repository
func NewMealPlanRepository() outbound.MealPlanRepository {
	return &MealPlanRepository{
		plans: make(map[uuid.UUID]*mealplan.MealPlan),
	}
}

// Create stores a new meal plan
func (r *MealPlanRepository) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID()] = clonePlan(plan)
	return nil
}

// Update persists the plan if the stored version matches, then bumps
// the version on the caller's copy.
func (r *MealPlanRepository) Update(ctx context.Context, plan *mealplan.MealPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.plans[plan.ID()]
	if !ok {
		return mealplan.ErrPlanNotFound
	}
	if stored.Version() != plan.Version() {
		return mealplan.ErrVersionConflict
	}

	plan.IncrementVersion()
	r.plans[plan.ID()] = clonePlan(plan)
	return nil
}

// Delete removes a meal plan
func (r *MealPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.plans, id)
	return nil
}

// FindByID retrieves a meal plan by ID, nil if not found
func (r *MealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, ok := r.plans[id]
	if !ok {
		return nil, nil
	}
	return clonePlan(plan), nil
}

// FindByUserID retrieves a user's meal plans with pagination
func (r *MealPlanRepository) FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*mealplan.MealPlan, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []*mealplan.MealPlan
	for _, plan := range r.plans {
		if plan.OwnerID() == userID {
			owned = append(owned, plan)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt().Before(owned[j].CreatedAt())
	})

	total := len(owned)
	if offset >= total {
		return []*mealplan.MealPlan{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]*mealplan.MealPlan, 0, end-offset)
	for _, plan := range owned[offset:end] {
		page = append(page, clonePlan(plan))
	}
	return page, total, nil
}

// clonePlan deep-copies a plan so callers never share mutable state
// with the store.
func clonePlan(plan *mealplan.MealPlan) *mealplan.MealPlan {
	history, _ := plan.History()
	return mealplan.Reconstruct(
		plan.ID(),
		plan.Version(),
		plan.Name(),
		plan.OwnerID(),
		plan.DurationDays(),
		plan.Meals(),
		plan.Totals(),
		history,
		plan.CreatedAt(),
		plan.UpdatedAt(),
	)
}
