// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/grocery"
	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/domain/pantry"
	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/domain/user"
	"github.com/google/uuid"
)

// MealPlanRepository defines the interface for meal plan persistence
type MealPlanRepository interface {
	Create(ctx context.Context, plan *mealplan.MealPlan) error
	// Update persists the plan only if the stored version matches the
	// plan's version at read time; a mismatch reports a conflict so the
	// caller can surface concurrent mutation instead of losing updates.
	Update(ctx context.Context, plan *mealplan.MealPlan) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, offset, limit int) ([]*mealplan.MealPlan, int, error)
}

// RecipeCatalog defines the read-only recipe lookup the substitution
// engine consumes
type RecipeCatalog interface {
	FindByID(ctx context.Context, id uuid.UUID) (recipe.Profile, error)
	// Snapshot returns a consistent read of the full catalog for a
	// candidate scan. The scan is small and bounded.
	Snapshot(ctx context.Context) ([]recipe.Profile, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// PantryRepository defines the interface for pantry item persistence
type PantryRepository interface {
	Save(ctx context.Context, item *pantry.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error)
}

// GroceryRepository defines the interface for grocery list persistence
type GroceryRepository interface {
	Save(ctx context.Context, list *grocery.List) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*grocery.List, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*grocery.List, error)
}

// PlanLocker serializes mutations per meal plan. Acquire blocks until
// the plan's exclusive lock is held and returns the release function;
// callers must release on every exit path.
type PlanLocker interface {
	Acquire(ctx context.Context, planID uuid.UUID) (release func(), err error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
