// Package grocery defines grocery list bookkeeping derived from meal plans.
package grocery

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// List is a user's grocery list, optionally derived from a meal plan
type List struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	MealPlanID *uuid.UUID
	Name       string
	Items      []Item
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Item is a single grocery line with a checked-off flag
type Item struct {
	ID       uuid.UUID
	Name     string
	Quantity float64
	Unit     string
	Checked  bool
}

// NewList creates a grocery list with validation
func NewList(userID uuid.UUID, name string, mealPlanID *uuid.UUID) (*List, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrNameRequired
	}
	now := time.Now()
	return &List{
		ID:         uuid.New(),
		UserID:     userID,
		MealPlanID: mealPlanID,
		Name:       strings.TrimSpace(name),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// AddItem appends a line to the list
func (l *List) AddItem(name string, quantity float64, unit string) (Item, error) {
	if strings.TrimSpace(name) == "" {
		return Item{}, ErrNameRequired
	}
	item := Item{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
		Unit:     unit,
	}
	l.Items = append(l.Items, item)
	l.UpdatedAt = time.Now()
	return item, nil
}

// CheckOff toggles an item's checked state
func (l *List) CheckOff(itemID uuid.UUID, checked bool) error {
	for i := range l.Items {
		if l.Items[i].ID == itemID {
			l.Items[i].Checked = checked
			l.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrItemNotFound
}

// ClearChecked removes all checked-off items
func (l *List) ClearChecked() int {
	remaining := l.Items[:0]
	removed := 0
	for _, item := range l.Items {
		if item.Checked {
			removed++
			continue
		}
		remaining = append(remaining, item)
	}
	l.Items = remaining
	if removed > 0 {
		l.UpdatedAt = time.Now()
	}
	return removed
}

var (
	ErrNameRequired = errors.New("grocery name is required")
	ErrItemNotFound = errors.New("grocery item not found")
	ErrListNotFound = errors.New("grocery list not found")
)
