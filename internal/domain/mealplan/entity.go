// Package mealplan contains the meal plan aggregate. The aggregate owns
// the ordered meal list, the running nutrition/cost totals and the
// substitution ledger: applying a substitution, undoing the most recent
// one and reading the history are all methods on the plan so the three
// pieces of state can only change together.
package mealplan

import (
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/domain/shared"
	"github.com/google/uuid"
)

// MealPlan is the aggregate root for a user's plan.
type MealPlan struct {
	id      uuid.UUID
	version int64 // Optimistic locking

	name         string
	ownerID      uuid.UUID
	durationDays int

	meals   []Meal
	totals  Totals
	history []SubstitutionRecord

	createdAt time.Time
	updatedAt time.Time

	// Domain events to be dispatched
	events []shared.DomainEvent
}

// NewMealPlan creates a new MealPlan with validation. Totals start at
// zero and are established as meals are added with their profiles.
func NewMealPlan(name string, ownerID uuid.UUID, durationDays int) (*MealPlan, error) {
	if len(name) < 3 {
		return nil, ErrNameTooShort
	}
	if durationDays < 1 || durationDays > 7 {
		return nil, ErrInvalidDuration
	}

	now := time.Now()
	plan := &MealPlan{
		id:           uuid.New(),
		version:      1,
		name:         name,
		ownerID:      ownerID,
		durationDays: durationDays,
		createdAt:    now,
		updatedAt:    now,
		events:       []shared.DomainEvent{},
	}

	plan.addEvent(PlanCreatedEvent{
		PlanID:    plan.id,
		OwnerID:   ownerID,
		Days:      durationDays,
		CreatedAt: now,
	})

	return plan, nil
}

// Reconstruct rebuilds a plan from persistence. Used by repository
// mappers only; no events are raised.
func Reconstruct(id uuid.UUID, version int64, name string, ownerID uuid.UUID, durationDays int, meals []Meal, totals Totals, history []SubstitutionRecord, createdAt, updatedAt time.Time) *MealPlan {
	return &MealPlan{
		id:           id,
		version:      version,
		name:         name,
		ownerID:      ownerID,
		durationDays: durationDays,
		meals:        meals,
		totals:       totals,
		history:      history,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the plan's unique identifier
func (p *MealPlan) ID() uuid.UUID { return p.id }

// Version returns the plan's optimistic lock version
func (p *MealPlan) Version() int64 { return p.version }

// Name returns the plan's name
func (p *MealPlan) Name() string { return p.name }

// OwnerID returns the owning user's id
func (p *MealPlan) OwnerID() uuid.UUID { return p.ownerID }

// DurationDays returns the plan length in days
func (p *MealPlan) DurationDays() int { return p.durationDays }

// Meals returns a copy of the ordered meal list
func (p *MealPlan) Meals() []Meal {
	meals := make([]Meal, len(p.meals))
	copy(meals, p.meals)
	return meals
}

// MealAt returns the meal at the given index
func (p *MealPlan) MealAt(index int) (Meal, error) {
	if index < 0 || index >= len(p.meals) {
		return Meal{}, ErrMealIndexOutOfRange
	}
	return p.meals[index], nil
}

// Totals returns the plan's aggregate nutrition and cost
func (p *MealPlan) Totals() Totals { return p.totals }

// CreatedAt returns when the plan was created
func (p *MealPlan) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns when the plan was last updated
func (p *MealPlan) UpdatedAt() time.Time { return p.updatedAt }

// AddMeal appends a meal and folds its profile into the totals
func (p *MealPlan) AddMeal(meal Meal, profile recipe.Profile) error {
	if err := meal.Validate(p.durationDays); err != nil {
		return err
	}
	p.meals = append(p.meals, meal)
	p.totals.Nutrition = p.totals.Nutrition.Add(profile.Nutrition)
	p.totals.CostCents += profile.EstimatedCostCents
	p.updatedAt = time.Now()
	return nil
}

// Substitute replaces the recipe at mealIndex with the candidate and
// records an undoable history entry. The old and new profiles carry the
// nutrition/cost needed to keep the totals in step. All validation
// happens before any mutation; the meal list, totals and history change
// together or not at all.
func (p *MealPlan) Substitute(mealIndex int, oldProfile, newProfile recipe.Profile, userID uuid.UUID) error {
	if mealIndex < 0 || mealIndex >= len(p.meals) {
		return ErrMealIndexOutOfRange
	}

	previous := p.meals[mealIndex].RecipeID
	now := time.Now()

	p.meals[mealIndex].RecipeID = newProfile.ID
	p.totals.Nutrition = p.totals.Nutrition.Sub(oldProfile.Nutrition).Add(newProfile.Nutrition)
	p.totals.CostCents += newProfile.EstimatedCostCents - oldProfile.EstimatedCostCents
	p.history = append(p.history, SubstitutionRecord{
		MealIndex:        mealIndex,
		OriginalRecipeID: previous,
		NewRecipeID:      newProfile.ID,
		Timestamp:        now,
		UserID:           userID,
	})
	p.updatedAt = now

	p.addEvent(MealSubstitutedEvent{
		PlanID:           p.id,
		UserID:           userID,
		MealIndex:        mealIndex,
		OriginalRecipeID: previous,
		NewRecipeID:      newProfile.ID,
		SubstitutedAt:    now,
	})

	return nil
}

// UndoSubstitution pops the most recent history entry and restores the
// recorded meal slot. There is exactly one level of undo per apply: the
// popped entry is discarded permanently, so a second consecutive undo
// fails with ErrNothingToUndo. The profiles of the current and restored
// recipes reverse the totals adjustment.
func (p *MealPlan) UndoSubstitution(currentProfile, restoredProfile recipe.Profile, userID uuid.UUID) (SubstitutionRecord, error) {
	if len(p.history) == 0 {
		return SubstitutionRecord{}, ErrNothingToUndo
	}

	entry := p.history[len(p.history)-1]
	if entry.MealIndex < 0 || entry.MealIndex >= len(p.meals) {
		return SubstitutionRecord{}, ErrMealIndexOutOfRange
	}

	now := time.Now()
	p.history = p.history[:len(p.history)-1]
	p.meals[entry.MealIndex].RecipeID = entry.OriginalRecipeID
	p.totals.Nutrition = p.totals.Nutrition.Sub(currentProfile.Nutrition).Add(restoredProfile.Nutrition)
	p.totals.CostCents += restoredProfile.EstimatedCostCents - currentProfile.EstimatedCostCents
	p.updatedAt = now

	p.addEvent(SubstitutionUndoneEvent{
		PlanID:           p.id,
		UserID:           userID,
		MealIndex:        entry.MealIndex,
		RestoredRecipeID: entry.OriginalRecipeID,
		UndoneAt:         now,
	})

	return entry, nil
}

// History returns the substitution records oldest-first plus whether an
// undo is currently available
func (p *MealPlan) History() ([]SubstitutionRecord, bool) {
	records := make([]SubstitutionRecord, len(p.history))
	copy(records, p.history)
	return records, len(records) > 0
}

// CanUndo reports whether an undo is currently available
func (p *MealPlan) CanUndo() bool { return len(p.history) > 0 }

// LastSubstitution returns the entry an undo would remove
func (p *MealPlan) LastSubstitution() (SubstitutionRecord, bool) {
	if len(p.history) == 0 {
		return SubstitutionRecord{}, false
	}
	return p.history[len(p.history)-1], true
}

// IncrementVersion bumps the optimistic lock version after a persisted
// mutation
func (p *MealPlan) IncrementVersion() { p.version++ }

// addEvent adds a domain event to be dispatched
func (p *MealPlan) addEvent(event shared.DomainEvent) {
	p.events = append(p.events, event)
}

// Events returns and clears pending domain events
func (p *MealPlan) Events() []shared.DomainEvent {
	events := p.events
	p.events = []shared.DomainEvent{}
	return events
}
