package handlers

import (
	"net/http"
	"time"

	"github.com/alchemorsel/mealplan/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/mealplan/internal/infrastructure/monitoring"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubstitutionHandlers handles substitution engine requests
type SubstitutionHandlers struct {
	service inbound.SubstitutionService
	metrics *monitoring.Metrics
	logger  *zap.Logger
}

// NewSubstitutionHandlers creates a new substitution handlers instance
func NewSubstitutionHandlers(service inbound.SubstitutionService, metrics *monitoring.Metrics, logger *zap.Logger) *SubstitutionHandlers {
	return &SubstitutionHandlers{
		service: service,
		metrics: metrics,
		logger:  logger,
	}
}

type findAlternativesRequest struct {
	MaxAlternatives   int         `json:"max_alternatives"`
	Tolerance         float64     `json:"nutritional_tolerance"`
	RejectedRecipeIDs []uuid.UUID `json:"rejected_recipe_ids"`
}

type applySubstitutionRequest struct {
	NewRecipeID uuid.UUID `json:"new_recipe_id"`
}

// FindAlternatives handles POST /api/v1/meal-plans/{planID}/meals/{mealIndex}/alternatives
func (h *SubstitutionHandlers) FindAlternatives(w http.ResponseWriter, r *http.Request) {
	planID, ok := urlUUID(w, r, h.logger, "planID")
	if !ok {
		return
	}
	mealIndex, ok := urlInt(w, r, h.logger, "mealIndex")
	if !ok {
		return
	}

	var req findAlternativesRequest
	if r.ContentLength > 0 && !decodeBody(w, r, h.logger, &req) {
		return
	}

	start := time.Now()
	result, err := h.service.FindAlternatives(r.Context(), inbound.FindAlternativesQuery{
		PlanID:            planID,
		MealIndex:         mealIndex,
		MaxAlternatives:   req.MaxAlternatives,
		Tolerance:         req.Tolerance,
		RejectedRecipeIDs: req.RejectedRecipeIDs,
	})
	if err != nil {
		h.metrics.RecordSearch("error", 0, time.Since(start))
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.RecordSearch("success", len(result.Candidates), time.Since(start))
	writeSuccess(w, h.logger, http.StatusOK, result)
}

// ApplySubstitution handles POST /api/v1/meal-plans/{planID}/meals/{mealIndex}/substitute
func (h *SubstitutionHandlers) ApplySubstitution(w http.ResponseWriter, r *http.Request) {
	planID, ok := urlUUID(w, r, h.logger, "planID")
	if !ok {
		return
	}
	mealIndex, ok := urlInt(w, r, h.logger, "mealIndex")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req applySubstitutionRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}
	if req.NewRecipeID == uuid.Nil {
		writeError(w, r, h.logger, errors.NewValidationError("new_recipe_id is required"))
		return
	}

	result, err := h.service.ApplySubstitution(r.Context(), inbound.ApplySubstitutionCommand{
		PlanID:      planID,
		MealIndex:   mealIndex,
		NewRecipeID: req.NewRecipeID,
		UserID:      userID,
	})
	if err != nil {
		h.metrics.RecordApply("error", "")
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.RecordApply("success", string(result.Impact.Level))
	writeSuccess(w, h.logger, http.StatusOK, result)
}

// UndoSubstitution handles POST /api/v1/meal-plans/{planID}/substitutions/undo
func (h *SubstitutionHandlers) UndoSubstitution(w http.ResponseWriter, r *http.Request) {
	planID, ok := urlUUID(w, r, h.logger, "planID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	result, err := h.service.UndoSubstitution(r.Context(), inbound.UndoSubstitutionCommand{
		PlanID: planID,
		UserID: userID,
	})
	if err != nil {
		h.metrics.RecordUndo("error")
		writeError(w, r, h.logger, err)
		return
	}

	h.metrics.RecordUndo("success")
	writeSuccess(w, h.logger, http.StatusOK, result)
}

// GetHistory handles GET /api/v1/meal-plans/{planID}/substitutions
func (h *SubstitutionHandlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	planID, ok := urlUUID(w, r, h.logger, "planID")
	if !ok {
		return
	}

	result, err := h.service.GetHistory(r.Context(), planID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, result)
}
