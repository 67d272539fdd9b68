package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the meal plan domain

// PlanCreatedEvent is raised when a new meal plan is created
type PlanCreatedEvent struct {
	PlanID    uuid.UUID
	OwnerID   uuid.UUID
	Days      int
	CreatedAt time.Time
}

func (e PlanCreatedEvent) EventName() string {
	return "mealplan.created"
}

func (e PlanCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// MealSubstitutedEvent is raised when a substitution is applied to a
// meal slot
type MealSubstitutedEvent struct {
	PlanID           uuid.UUID
	UserID           uuid.UUID
	MealIndex        int
	OriginalRecipeID uuid.UUID
	NewRecipeID      uuid.UUID
	SubstitutedAt    time.Time
}

func (e MealSubstitutedEvent) EventName() string {
	return "mealplan.meal.substituted"
}

func (e MealSubstitutedEvent) OccurredAt() time.Time {
	return e.SubstitutedAt
}

// SubstitutionUndoneEvent is raised when the most recent substitution
// is rolled back
type SubstitutionUndoneEvent struct {
	PlanID           uuid.UUID
	UserID           uuid.UUID
	MealIndex        int
	RestoredRecipeID uuid.UUID
	UndoneAt         time.Time
}

func (e SubstitutionUndoneEvent) EventName() string {
	return "mealplan.substitution.undone"
}

func (e SubstitutionUndoneEvent) OccurredAt() time.Time {
	return e.UndoneAt
}
