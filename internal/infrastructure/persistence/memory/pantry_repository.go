package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alchemorsel/mealplan/internal/domain/pantry"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/google/uuid"
)

// PantryRepository is an in-memory pantry item store
type PantryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]pantry.Item
}

// NewPantryRepository creates a new in-memory pantry repository
func NewPantryRepository() outbound.PantryRepository {
	return &PantryRepository{
		items: make(map[uuid.UUID]pantry.Item),
	}
}

// Save inserts or replaces a pantry item
func (r *PantryRepository) Save(ctx context.Context, item *pantry.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = *item
	return nil
}

// Delete removes a pantry item
func (r *PantryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// FindByID retrieves a pantry item by ID, nil if not found
func (r *PantryRepository) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	copy := item
	return &copy, nil
}

// FindByUserID retrieves a user's pantry items ordered by name
func (r *PantryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var owned []*pantry.Item
	for _, item := range r.items {
		if item.UserID == userID {
			copy := item
			owned = append(owned, &copy)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].Name < owned[j].Name })
	return owned, nil
}
