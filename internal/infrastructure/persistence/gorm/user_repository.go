package gorm

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/alchemorsel/mealplan/internal/domain/user"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository implements outbound.UserRepository using GORM
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new GORM user repository
func NewUserRepository(db *gorm.DB) outbound.UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	model, err := userToModel(u)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return errors.NewDatabaseError("create user", err)
	}
	return nil
}

// Update replaces a stored user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	model, err := userToModel(u)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return errors.NewDatabaseError("update user", err)
	}
	return nil
}

// FindByID retrieves a user by ID, nil if not found
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("find user", err)
	}
	return userToDomain(&model)
}

// FindByEmail retrieves a user by email, nil if not found
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).First(&model, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.NewDatabaseError("find user by email", err)
	}
	return userToDomain(&model)
}

// Exists reports whether a user with the given id is stored
func (r *UserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, errors.NewDatabaseError("check user exists", err)
	}
	return count > 0, nil
}
