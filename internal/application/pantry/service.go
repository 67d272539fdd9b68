// Package pantry provides the application layer for pantry tracking
package pantry

import (
	"context"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/pantry"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the pantry use cases
type Service struct {
	repo   outbound.PantryRepository
	logger *zap.Logger
}

// NewService creates a new pantry service
func NewService(repo outbound.PantryRepository, logger *zap.Logger) inbound.PantryService {
	return &Service{
		repo:   repo,
		logger: logger.Named("pantry-service"),
	}
}

// AddItem stocks a new pantry item
func (s *Service) AddItem(ctx context.Context, cmd inbound.AddPantryItemCommand) (*inbound.PantryItemDTO, error) {
	item, err := pantry.NewItem(cmd.UserID, cmd.Name, cmd.Quantity, cmd.Unit)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	item.ExpiresAt = cmd.ExpiresAt

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("save pantry item", err)
	}

	return toDTO(item), nil
}

// AdjustItem changes a pantry item's stocked quantity
func (s *Service) AdjustItem(ctx context.Context, itemID, userID uuid.UUID, delta float64) (*inbound.PantryItemDTO, error) {
	item, err := s.loadOwned(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}

	item.Adjust(delta)
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("save pantry item", err)
	}

	return toDTO(item), nil
}

// RemoveItem deletes a pantry item
func (s *Service) RemoveItem(ctx context.Context, itemID, userID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, itemID, userID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return errors.NewDatabaseError("delete pantry item", err)
	}
	return nil
}

// ListItems returns all of a user's pantry items
func (s *Service) ListItems(ctx context.Context, userID uuid.UUID) ([]inbound.PantryItemDTO, error) {
	items, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list pantry items", err)
	}

	dtos := make([]inbound.PantryItemDTO, len(items))
	for i, item := range items {
		dtos[i] = *toDTO(item)
	}
	return dtos, nil
}

func (s *Service) loadOwned(ctx context.Context, itemID, userID uuid.UUID) (*pantry.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, errors.NewDatabaseError("find pantry item", err)
	}
	if item == nil || item.UserID != userID {
		return nil, errors.NewNotFoundError("pantry item")
	}
	return item, nil
}

func toDTO(item *pantry.Item) *inbound.PantryItemDTO {
	return &inbound.PantryItemDTO{
		ID:        item.ID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		ExpiresAt: item.ExpiresAt,
		Expired:   item.IsExpired(time.Now()),
	}
}
