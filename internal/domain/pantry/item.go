// Package pantry defines pantry item tracking for a user's kitchen.
package pantry

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Item is a tracked pantry ingredient with quantity and optional expiry
type Item struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Quantity  float64
	Unit      string
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewItem creates a pantry item with validation
func NewItem(userID uuid.UUID, name string, quantity float64, unit string) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	if quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	now := time.Now()
	return &Item{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      strings.TrimSpace(name),
		Quantity:  quantity,
		Unit:      unit,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Adjust changes the stocked quantity, clamping at zero
func (i *Item) Adjust(delta float64) {
	i.Quantity += delta
	if i.Quantity < 0 {
		i.Quantity = 0
	}
	i.UpdatedAt = time.Now()
}

// IsExpired reports whether the item is past its expiry date
func (i *Item) IsExpired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

var (
	ErrNameRequired     = errors.New("pantry item name is required")
	ErrNegativeQuantity = errors.New("pantry item quantity cannot be negative")
	ErrItemNotFound     = errors.New("pantry item not found")
)
