package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/alchemorsel/mealplan/internal/domain/user"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/google/uuid"
)

// UserRepository is an in-memory user store
type UserRepository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*user.User
	byEmail map[string]uuid.UUID
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository() outbound.UserRepository {
	return &UserRepository{
		users:   make(map[uuid.UUID]*user.User),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Create stores a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	r.byEmail[strings.ToLower(u.Email())] = u.ID()
	return nil
}

// Update replaces a stored user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID()] = u
	r.byEmail[strings.ToLower(u.Email())] = u.ID()
	return nil
}

// FindByID retrieves a user by ID, nil if not found
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

// FindByEmail retrieves a user by email, nil if not found
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, nil
	}
	return r.users[id], nil
}

// Exists reports whether a user with the given id is stored
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok, nil
}
