package gorm

import (
	"context"
	stderrors "errors"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository implements outbound.RecipeCatalog using GORM. It
// also carries the write side used for seeding and catalog maintenance.
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new GORM recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// FindByID retrieves a recipe profile by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (recipe.Profile, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return recipe.Profile{}, recipe.ErrRecipeNotFound
		}
		return recipe.Profile{}, errors.NewDatabaseError("find recipe", err)
	}
	return recipeToDomain(&model)
}

// Snapshot returns the full catalog ordered by id. The scan backing a
// candidate search reads the whole set in one query so every candidate
// is scored against the same catalog state.
func (r *RecipeRepository) Snapshot(ctx context.Context) ([]recipe.Profile, error) {
	var models []RecipeModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("snapshot catalog", err)
	}

	profiles := make([]recipe.Profile, 0, len(models))
	for i := range models {
		profile, err := recipeToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// Save inserts or replaces a recipe profile
func (r *RecipeRepository) Save(ctx context.Context, profile recipe.Profile) error {
	model, err := recipeToModel(profile)
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
		return errors.NewDatabaseError("save recipe", err)
	}
	return nil
}
