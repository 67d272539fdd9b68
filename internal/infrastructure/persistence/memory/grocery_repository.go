package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alchemorsel/mealplan/internal/domain/grocery"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/google/uuid"
)

// GroceryRepository is an in-memory grocery list store
type GroceryRepository struct {
	mu    sync.RWMutex
	lists map[uuid.UUID]grocery.List
}

// NewGroceryRepository creates a new in-memory grocery repository
func NewGroceryRepository() outbound.GroceryRepository {
	return &GroceryRepository{
		lists: make(map[uuid.UUID]grocery.List),
	}
}

// Save inserts or replaces a grocery list
func (r *GroceryRepository) Save(ctx context.Context, list *grocery.List) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *list
	stored.Items = append([]grocery.Item(nil), list.Items...)
	r.lists[list.ID] = stored
	return nil
}

// Delete removes a grocery list
func (r *GroceryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.lists, id)
	return nil
}

// FindByID retrieves a grocery list by ID, nil if not found
func (r *GroceryRepository) FindByID(ctx context.Context, id uuid.UUID) (*grocery.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list, ok := r.lists[id]
	if !ok {
		return nil, nil
	}
	out := list
	out.Items = append([]grocery.Item(nil), list.Items...)
	return &out, nil
}

// FindByUserID retrieves a user's grocery lists ordered by creation time
func (r *GroceryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*grocery.List, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []*grocery.List
	for _, list := range r.lists {
		if list.UserID == userID {
			out := list
			out.Items = append([]grocery.Item(nil), list.Items...)
			owned = append(owned, &out)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.Before(owned[j].CreatedAt)
	})
	return owned, nil
}
