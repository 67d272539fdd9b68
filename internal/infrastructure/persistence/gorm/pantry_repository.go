package gorm

import (
	"context"
	stderrors "errors"

	"github.com/alchemorsel/mealplan/internal/domain/pantry"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PantryRepository implements outbound.PantryRepository using GORM
type PantryRepository struct {
	db *gorm.DB
}

// NewPantryRepository creates a new GORM pantry repository
func NewPantryRepository(db *gorm.DB) outbound.PantryRepository {
	return &PantryRepository{db: db}
}

// Save inserts or replaces a pantry item
func (r *PantryRepository) Save(ctx context.Context, item *pantry.Item) error {
	model := PantryItemModel{
		ID:        item.ID,
		UserID:    item.UserID,
		Name:      item.Name,
		Quantity:  item.Quantity,
		Unit:      item.Unit,
		ExpiresAt: item.ExpiresAt,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&model).Error
	if err != nil {
		return errors.NewDatabaseError("save pantry item", err)
	}
	return nil
}

// Delete removes a pantry item
func (r *PantryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&PantryItemModel{}, "id = ?", id).Error; err != nil {
		return errors.NewDatabaseError("delete pantry item", err)
	}
	return nil
}

// FindByID retrieves a pantry item by ID, nil if not found
func (r *PantryRepository) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error) {
	var model PantryItemModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("find pantry item", err)
	}
	return pantryToDomain(&model), nil
}

// FindByUserID retrieves a user's pantry items ordered by name
func (r *PantryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error) {
	var models []PantryItemModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&models).Error
	if err != nil {
		return nil, errors.NewDatabaseError("list pantry items", err)
	}

	items := make([]*pantry.Item, 0, len(models))
	for i := range models {
		items = append(items, pantryToDomain(&models[i]))
	}
	return items, nil
}

func pantryToDomain(model *PantryItemModel) *pantry.Item {
	return &pantry.Item{
		ID:        model.ID,
		UserID:    model.UserID,
		Name:      model.Name,
		Quantity:  model.Quantity,
		Unit:      model.Unit,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
