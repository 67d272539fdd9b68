package memory

import (
	"context"
	"sync"

	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/google/uuid"
)

// PlanArena serializes mutations per meal plan. Each plan id maps to a
// one-slot channel acting as its mutex, so Acquire can honor context
// cancellation while waiting.
type PlanArena struct {
	mu    sync.Mutex
	slots map[uuid.UUID]chan struct{}
}

// NewPlanArena creates a new per-plan lock arena
func NewPlanArena() outbound.PlanLocker {
	return &PlanArena{
		slots: make(map[uuid.UUID]chan struct{}),
	}
}

// Acquire blocks until the plan's exclusive lock is held or the context
// is done. The returned release function is safe to call exactly once.
func (a *PlanArena) Acquire(ctx context.Context, planID uuid.UUID) (func(), error) {
	a.mu.Lock()
	slot, ok := a.slots[planID]
	if !ok {
		slot = make(chan struct{}, 1)
		a.slots[planID] = slot
	}
	a.mu.Unlock()

	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-slot })
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
