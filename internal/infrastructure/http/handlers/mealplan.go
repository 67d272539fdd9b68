package handlers

import (
	"net/http"
	"strconv"

	"github.com/alchemorsel/mealplan/internal/domain/mealplan"
	"github.com/alchemorsel/mealplan/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MealPlanHandlers handles meal plan CRUD requests
type MealPlanHandlers struct {
	service inbound.MealPlanService
	logger  *zap.Logger
}

// NewMealPlanHandlers creates a new meal plan handlers instance
func NewMealPlanHandlers(service inbound.MealPlanService, logger *zap.Logger) *MealPlanHandlers {
	return &MealPlanHandlers{
		service: service,
		logger:  logger,
	}
}

type createPlanRequest struct {
	Name         string              `json:"name"`
	DurationDays int                 `json:"duration_days"`
	Meals        []createMealRequest `json:"meals"`
}

type createMealRequest struct {
	MealType string    `json:"meal_type"`
	RecipeID uuid.UUID `json:"recipe_id"`
	Day      int       `json:"day"`
}

// CreatePlan handles POST /api/v1/meal-plans
func (h *MealPlanHandlers) CreatePlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req createPlanRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	meals := make([]inbound.CreateMealCommand, 0, len(req.Meals))
	for _, m := range req.Meals {
		meals = append(meals, inbound.CreateMealCommand{
			MealType: mealplan.MealType(m.MealType),
			RecipeID: m.RecipeID,
			Day:      m.Day,
		})
	}

	plan, err := h.service.CreatePlan(r.Context(), inbound.CreatePlanCommand{
		Name:         req.Name,
		OwnerID:      userID,
		DurationDays: req.DurationDays,
		Meals:        meals,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusCreated, plan)
}

// GetPlan handles GET /api/v1/meal-plans/{planID}
func (h *MealPlanHandlers) GetPlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := urlUUID(w, r, h.logger, "planID")
	if !ok {
		return
	}

	plan, err := h.service.GetPlan(r.Context(), planID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, plan)
}

// ListPlans handles GET /api/v1/meal-plans
func (h *MealPlanHandlers) ListPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	list, err := h.service.ListPlans(r.Context(), userID, inbound.PaginationParams{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, list)
}

// DeletePlan handles DELETE /api/v1/meal-plans/{planID}
func (h *MealPlanHandlers) DeletePlan(w http.ResponseWriter, r *http.Request) {
	planID, ok := urlUUID(w, r, h.logger, "planID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	if err := h.service.DeletePlan(r.Context(), planID, userID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, map[string]interface{}{"deleted": true})
}
