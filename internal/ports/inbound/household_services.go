package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PantryService defines pantry bookkeeping use cases
type PantryService interface {
	AddItem(ctx context.Context, cmd AddPantryItemCommand) (*PantryItemDTO, error)
	AdjustItem(ctx context.Context, itemID, userID uuid.UUID, delta float64) (*PantryItemDTO, error)
	RemoveItem(ctx context.Context, itemID, userID uuid.UUID) error
	ListItems(ctx context.Context, userID uuid.UUID) ([]PantryItemDTO, error)
}

// AddPantryItemCommand contains data for stocking a pantry item
type AddPantryItemCommand struct {
	UserID    uuid.UUID
	Name      string `validate:"required"`
	Quantity  float64
	Unit      string
	ExpiresAt *time.Time
}

// PantryItemDTO is the external representation of a pantry item
type PantryItemDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired"`
}

// GroceryService defines grocery list bookkeeping use cases
type GroceryService interface {
	CreateList(ctx context.Context, cmd CreateGroceryListCommand) (*GroceryListDTO, error)
	AddListItem(ctx context.Context, listID, userID uuid.UUID, name string, quantity float64, unit string) (*GroceryListDTO, error)
	CheckOffItem(ctx context.Context, listID, itemID, userID uuid.UUID, checked bool) (*GroceryListDTO, error)
	ClearChecked(ctx context.Context, listID, userID uuid.UUID) (*GroceryListDTO, error)
	ListLists(ctx context.Context, userID uuid.UUID) ([]GroceryListDTO, error)
}

// CreateGroceryListCommand contains data for creating a grocery list
type CreateGroceryListCommand struct {
	UserID     uuid.UUID
	Name       string `validate:"required"`
	MealPlanID *uuid.UUID
}

// GroceryListDTO is the external representation of a grocery list
type GroceryListDTO struct {
	ID         uuid.UUID        `json:"id"`
	Name       string           `json:"name"`
	MealPlanID *uuid.UUID       `json:"meal_plan_id,omitempty"`
	Items      []GroceryItemDTO `json:"items"`
}

// GroceryItemDTO is one grocery line
type GroceryItemDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
	Checked  bool      `json:"checked"`
}
