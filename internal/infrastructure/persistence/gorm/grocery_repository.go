package gorm

import (
	"context"
	stderrors "errors"

	"github.com/alchemorsel/mealplan/internal/domain/grocery"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GroceryRepository implements outbound.GroceryRepository using GORM
type GroceryRepository struct {
	db *gorm.DB
}

// NewGroceryRepository creates a new GORM grocery repository
func NewGroceryRepository(db *gorm.DB) outbound.GroceryRepository {
	return &GroceryRepository{db: db}
}

// Save inserts or replaces a grocery list
func (r *GroceryRepository) Save(ctx context.Context, list *grocery.List) error {
	model, err := groceryToModel(list)
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
	if err != nil {
		return errors.NewDatabaseError("save grocery list", err)
	}
	return nil
}

// Delete removes a grocery list
func (r *GroceryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&GroceryListModel{}, "id = ?", id).Error; err != nil {
		return errors.NewDatabaseError("delete grocery list", err)
	}
	return nil
}

// FindByID retrieves a grocery list by ID, nil if not found
func (r *GroceryRepository) FindByID(ctx context.Context, id uuid.UUID) (*grocery.List, error) {
	var model GroceryListModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("find grocery list", err)
	}
	return groceryToDomain(&model)
}

// FindByUserID retrieves a user's grocery lists ordered by creation time
func (r *GroceryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*grocery.List, error) {
	var models []GroceryListModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at ASC").Find(&models).Error
	if err != nil {
		return nil, errors.NewDatabaseError("list grocery lists", err)
	}

	lists := make([]*grocery.List, 0, len(models))
	for i := range models {
		list, err := groceryToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		lists = append(lists, list)
	}
	return lists, nil
}
