// Package grocery provides the application layer for grocery lists
package grocery

import (
	"context"

	"github.com/alchemorsel/mealplan/internal/domain/grocery"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the grocery list use cases
type Service struct {
	repo   outbound.GroceryRepository
	logger *zap.Logger
}

// NewService creates a new grocery service
func NewService(repo outbound.GroceryRepository, logger *zap.Logger) inbound.GroceryService {
	return &Service{
		repo:   repo,
		logger: logger.Named("grocery-service"),
	}
}

// CreateList creates a new grocery list
func (s *Service) CreateList(ctx context.Context, cmd inbound.CreateGroceryListCommand) (*inbound.GroceryListDTO, error) {
	list, err := grocery.NewList(cmd.UserID, cmd.Name, cmd.MealPlanID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.repo.Save(ctx, list); err != nil {
		return nil, errors.NewDatabaseError("save grocery list", err)
	}

	return toDTO(list), nil
}

// AddListItem appends a line to a grocery list
func (s *Service) AddListItem(ctx context.Context, listID, userID uuid.UUID, name string, quantity float64, unit string) (*inbound.GroceryListDTO, error) {
	list, err := s.loadOwned(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	if _, err := list.AddItem(name, quantity, unit); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := s.repo.Save(ctx, list); err != nil {
		return nil, errors.NewDatabaseError("save grocery list", err)
	}

	return toDTO(list), nil
}

// CheckOffItem toggles a line's checked state
func (s *Service) CheckOffItem(ctx context.Context, listID, itemID, userID uuid.UUID, checked bool) (*inbound.GroceryListDTO, error) {
	list, err := s.loadOwned(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	if err := list.CheckOff(itemID, checked); err != nil {
		return nil, errors.NewNotFoundError("grocery item")
	}
	if err := s.repo.Save(ctx, list); err != nil {
		return nil, errors.NewDatabaseError("save grocery list", err)
	}

	return toDTO(list), nil
}

// ClearChecked removes all checked-off lines
func (s *Service) ClearChecked(ctx context.Context, listID, userID uuid.UUID) (*inbound.GroceryListDTO, error) {
	list, err := s.loadOwned(ctx, listID, userID)
	if err != nil {
		return nil, err
	}

	removed := list.ClearChecked()
	if removed > 0 {
		if err := s.repo.Save(ctx, list); err != nil {
			return nil, errors.NewDatabaseError("save grocery list", err)
		}
	}

	return toDTO(list), nil
}

// ListLists returns all of a user's grocery lists
func (s *Service) ListLists(ctx context.Context, userID uuid.UUID) ([]inbound.GroceryListDTO, error) {
	lists, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list grocery lists", err)
	}

	dtos := make([]inbound.GroceryListDTO, len(lists))
	for i, list := range lists {
		dtos[i] = *toDTO(list)
	}
	return dtos, nil
}

func (s *Service) loadOwned(ctx context.Context, listID, userID uuid.UUID) (*grocery.List, error) {
	list, err := s.repo.FindByID(ctx, listID)
	if err != nil {
		return nil, errors.NewDatabaseError("find grocery list", err)
	}
	if list == nil || list.UserID != userID {
		return nil, errors.NewNotFoundError("grocery list")
	}
	return list, nil
}

func toDTO(list *grocery.List) *inbound.GroceryListDTO {
	items := make([]inbound.GroceryItemDTO, len(list.Items))
	for i, item := range list.Items {
		items[i] = inbound.GroceryItemDTO{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Checked:  item.Checked,
		}
	}
	return &inbound.GroceryListDTO{
		ID:         list.ID,
		Name:       list.Name,
		MealPlanID: list.MealPlanID,
		Items:      items,
	}
}
