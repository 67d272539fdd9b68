package handlers

import (
	"net/http"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/domain/user"
	"github.com/alchemorsel/mealplan/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"go.uber.org/zap"
)

// UserHandlers handles account and preference requests
type UserHandlers struct {
	service inbound.UserService
	logger  *zap.Logger
}

// NewUserHandlers creates a new user handlers instance
func NewUserHandlers(service inbound.UserService, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{
		service: service,
		logger:  logger,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type preferencesRequest struct {
	LikedIngredients    []string           `json:"liked_ingredients"`
	DislikedIngredients []string           `json:"disliked_ingredients"`
	CuisineRatings      map[string]float64 `json:"cuisine_ratings"`
	TimePreference      string             `json:"time_preference"`
	DietaryProfiles     []string           `json:"dietary_profiles"`
}

// Register handles POST /api/v1/auth/register
func (h *UserHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	account, err := h.service.Register(r.Context(), inbound.RegisterCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusCreated, account)
}

// Login handles POST /api/v1/auth/login
func (h *UserHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	auth, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, auth)
}

// GetProfile handles GET /api/v1/users/me
func (h *UserHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	account, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, account)
}

// UpdatePreferences handles PUT /api/v1/users/me/preferences
func (h *UserHandlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req preferencesRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	ratings := make(map[recipe.CuisineType]float64, len(req.CuisineRatings))
	for cuisine, rating := range req.CuisineRatings {
		ratings[recipe.CuisineType(cuisine)] = rating
	}

	account, err := h.service.UpdatePreferences(r.Context(), inbound.UpdatePreferencesCommand{
		UserID:              userID,
		LikedIngredients:    req.LikedIngredients,
		DislikedIngredients: req.DislikedIngredients,
		CuisineRatings:      ratings,
		TimePreference:      user.TimePreference(req.TimePreference),
		DietaryProfiles:     req.DietaryProfiles,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, account)
}
