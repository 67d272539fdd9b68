package handlers

import (
	"net/http"

	"github.com/alchemorsel/mealplan/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GroceryHandlers handles grocery list requests
type GroceryHandlers struct {
	service inbound.GroceryService
	logger  *zap.Logger
}

// NewGroceryHandlers creates a new grocery handlers instance
func NewGroceryHandlers(service inbound.GroceryService, logger *zap.Logger) *GroceryHandlers {
	return &GroceryHandlers{
		service: service,
		logger:  logger,
	}
}

type createGroceryListRequest struct {
	Name       string     `json:"name"`
	MealPlanID *uuid.UUID `json:"meal_plan_id"`
}

type addGroceryItemRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type checkOffRequest struct {
	Checked bool `json:"checked"`
}

// CreateList handles POST /api/v1/grocery-lists
func (h *GroceryHandlers) CreateList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req createGroceryListRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	list, err := h.service.CreateList(r.Context(), inbound.CreateGroceryListCommand{
		UserID:     userID,
		Name:       req.Name,
		MealPlanID: req.MealPlanID,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusCreated, list)
}

// AddItem handles POST /api/v1/grocery-lists/{listID}/items
func (h *GroceryHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := urlUUID(w, r, h.logger, "listID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req addGroceryItemRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	list, err := h.service.AddListItem(r.Context(), listID, userID, req.Name, req.Quantity, req.Unit)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, list)
}

// CheckOffItem handles PATCH /api/v1/grocery-lists/{listID}/items/{itemID}
func (h *GroceryHandlers) CheckOffItem(w http.ResponseWriter, r *http.Request) {
	listID, ok := urlUUID(w, r, h.logger, "listID")
	if !ok {
		return
	}
	itemID, ok := urlUUID(w, r, h.logger, "itemID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req checkOffRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	list, err := h.service.CheckOffItem(r.Context(), listID, itemID, userID, req.Checked)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, list)
}

// ClearChecked handles POST /api/v1/grocery-lists/{listID}/clear-checked
func (h *GroceryHandlers) ClearChecked(w http.ResponseWriter, r *http.Request) {
	listID, ok := urlUUID(w, r, h.logger, "listID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	list, err := h.service.ClearChecked(r.Context(), listID, userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, list)
}

// ListLists handles GET /api/v1/grocery-lists
func (h *GroceryHandlers) ListLists(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	lists, err := h.service.ListLists(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, lists)
}
