package inbound

import (
	"context"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/domain/user"
	"github.com/google/uuid"
)

// UserService defines account and preference use cases
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdatePreferences(ctx context.Context, cmd UpdatePreferencesCommand) (*UserDTO, error)
}

// RegisterCommand contains data for creating an account
type RegisterCommand struct {
	Email    string `validate:"required,email"`
	Name     string `validate:"required,min=2"`
	Password string `validate:"required,min=8"`
}

// UpdatePreferencesCommand replaces a user's preference profile
type UpdatePreferencesCommand struct {
	UserID              uuid.UUID
	LikedIngredients    []string
	DislikedIngredients []string
	CuisineRatings      map[recipe.CuisineType]float64
	TimePreference      user.TimePreference
	DietaryProfiles     []string
}

// UserDTO is the external representation of a user
type UserDTO struct {
	ID          uuid.UUID       `json:"id"`
	Email       string          `json:"email"`
	Name        string          `json:"name"`
	Preferences *PreferencesDTO `json:"preferences,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PreferencesDTO is the external representation of a preference profile
type PreferencesDTO struct {
	LikedIngredients    []string                       `json:"liked_ingredients"`
	DislikedIngredients []string                       `json:"disliked_ingredients"`
	CuisineRatings      map[recipe.CuisineType]float64 `json:"cuisine_ratings"`
	TimePreference      user.TimePreference            `json:"time_preference"`
	DietaryProfiles     []string                       `json:"dietary_profiles"`
}

// AuthResult carries a signed token after login
type AuthResult struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
