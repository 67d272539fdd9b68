package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/google/uuid"
)

// RecipeCatalog is an in-memory recipe catalog. Profiles are stored by
// value so readers never observe mutation.
type RecipeCatalog struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]recipe.Profile
}

// NewRecipeCatalog creates an in-memory catalog, optionally pre-seeded
func NewRecipeCatalog(seed ...recipe.Profile) *RecipeCatalog {
	c := &RecipeCatalog{
		profiles: make(map[uuid.UUID]recipe.Profile, len(seed)),
	}
	for _, p := range seed {
		c.profiles[p.ID] = p
	}
	return c
}

// Add inserts or replaces a profile
func (c *RecipeCatalog) Add(profile recipe.Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles[profile.ID] = profile
}

// FindByID retrieves a profile by ID
func (c *RecipeCatalog) FindByID(ctx context.Context, id uuid.UUID) (recipe.Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	profile, ok := c.profiles[id]
	if !ok {
		return recipe.Profile{}, recipe.ErrRecipeNotFound
	}
	return profile, nil
}

// Snapshot returns a consistent copy of the full catalog, ordered by id
// for deterministic scans.
func (c *RecipeCatalog) Snapshot(ctx context.Context) ([]recipe.Profile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	profiles := make([]recipe.Profile, 0, len(c.profiles))
	for _, p := range c.profiles {
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ID.String() < profiles[j].ID.String()
	})
	return profiles, nil
}
