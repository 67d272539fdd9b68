// Package gorm provides the database-backed implementations of the
// outbound ports using GORM. Aggregate internals that do not need
// relational queries (meal lists, history, preferences) are stored as
// JSON columns; everything queried or indexed gets its own column.
package gorm

import (
	"time"

	"github.com/google/uuid"
)

// MealPlanModel is the GORM model for meal plans
type MealPlanModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Version      int64     `gorm:"not null;default:1"`
	Name         string    `gorm:"size:255;not null"`
	OwnerID      uuid.UUID `gorm:"type:uuid;not null;index"`
	DurationDays int       `gorm:"not null"`
	Meals        []byte    `gorm:"type:jsonb"`
	Totals       []byte    `gorm:"type:jsonb"`
	History      []byte    `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for MealPlanModel
func (MealPlanModel) TableName() string {
	return "meal_plans"
}

// RecipeModel is the GORM model for catalog recipe profiles
type RecipeModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"size:255;not null;index"`
	Cuisine            string    `gorm:"size:50;index"`
	PrepTimeMinutes    int       `gorm:"not null"`
	CookTimeMinutes    int       `gorm:"not null"`
	Nutrition          []byte    `gorm:"type:jsonb"`
	EstimatedCostCents int       `gorm:"not null"`
	Difficulty         string    `gorm:"size:20"`
	Ingredients        []byte    `gorm:"type:jsonb"`
	CreatedAt          time.Time
}

// TableName returns the table name for RecipeModel
func (RecipeModel) TableName() string {
	return "recipes"
}

// UserModel is the GORM model for users
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"size:255;uniqueIndex;not null"`
	Name         string    `gorm:"size:100;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	IsActive     bool      `gorm:"default:true"`
	Preferences  []byte    `gorm:"type:jsonb"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLoginAt  *time.Time
}

// TableName returns the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// PantryItemModel is the GORM model for pantry items
type PantryItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:255;not null"`
	Quantity  float64   `gorm:"not null"`
	Unit      string    `gorm:"size:50"`
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for PantryItemModel
func (PantryItemModel) TableName() string {
	return "pantry_items"
}

// GroceryListModel is the GORM model for grocery lists
type GroceryListModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	MealPlanID *uuid.UUID `gorm:"type:uuid;index"`
	Name       string     `gorm:"size:255;not null"`
	Items      []byte     `gorm:"type:jsonb"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for GroceryListModel
func (GroceryListModel) TableName() string {
	return "grocery_lists"
}
