package handlers

import (
	"net/http"
	"time"

	"github.com/alchemorsel/mealplan/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"go.uber.org/zap"
)

// PantryHandlers handles pantry bookkeeping requests
type PantryHandlers struct {
	service inbound.PantryService
	logger  *zap.Logger
}

// NewPantryHandlers creates a new pantry handlers instance
func NewPantryHandlers(service inbound.PantryService, logger *zap.Logger) *PantryHandlers {
	return &PantryHandlers{
		service: service,
		logger:  logger,
	}
}

type addPantryItemRequest struct {
	Name      string     `json:"name"`
	Quantity  float64    `json:"quantity"`
	Unit      string     `json:"unit"`
	ExpiresAt *time.Time `json:"expires_at"`
}

type adjustPantryItemRequest struct {
	Delta float64 `json:"delta"`
}

// AddItem handles POST /api/v1/pantry
func (h *PantryHandlers) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req addPantryItemRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	item, err := h.service.AddItem(r.Context(), inbound.AddPantryItemCommand{
		UserID:    userID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		Unit:      req.Unit,
		ExpiresAt: req.ExpiresAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusCreated, item)
}

// AdjustItem handles PATCH /api/v1/pantry/{itemID}
func (h *PantryHandlers) AdjustItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := urlUUID(w, r, h.logger, "itemID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	var req adjustPantryItemRequest
	if !decodeBody(w, r, h.logger, &req) {
		return
	}

	item, err := h.service.AdjustItem(r.Context(), itemID, userID, req.Delta)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, item)
}

// RemoveItem handles DELETE /api/v1/pantry/{itemID}
func (h *PantryHandlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := urlUUID(w, r, h.logger, "itemID")
	if !ok {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	if err := h.service.RemoveItem(r.Context(), itemID, userID); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, map[string]interface{}{"deleted": true})
}

// ListItems handles GET /api/v1/pantry
func (h *PantryHandlers) ListItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, h.logger, errors.NewUnauthorizedError("Authentication required"))
		return
	}

	items, err := h.service.ListItems(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeSuccess(w, h.logger, http.StatusOK, items)
}
