// Package user provides the application layer for accounts and
// preference profiles, including JWT-based authentication.
package user

import (
	"context"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/user"
	"github.com/alchemorsel/mealplan/internal/ports/inbound"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/alchemorsel/mealplan/pkg/errors"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements account and preference use cases
type Service struct {
	userRepo  outbound.UserRepository
	validate  *validator.Validate
	jwtSecret []byte
	jwtTTL    time.Duration
	logger    *zap.Logger
}

// NewService creates a new user service
func NewService(
	userRepo outbound.UserRepository,
	jwtSecret string,
	jwtTTL time.Duration,
	logger *zap.Logger,
) *Service {
	return &Service{
		userRepo:  userRepo,
		validate:  validator.New(),
		jwtSecret: []byte(jwtSecret),
		jwtTTL:    jwtTTL,
		logger:    logger.Named("user-service"),
	}
}

// Register creates a new account
func (s *Service) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.UserDTO, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, errors.NewDatabaseError("check email", err)
	}
	if existing != nil {
		return nil, errors.NewEmailAlreadyExistsError(cmd.Email)
	}

	entity, err := user.NewUser(cmd.Email, cmd.Name, cmd.Password)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create user", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", entity.ID().String()),
	)

	return toDTO(entity), nil
}

// Login verifies credentials and issues a signed token
func (s *Service) Login(ctx context.Context, email, password string) (*inbound.AuthResult, error) {
	entity, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if entity == nil || !entity.CheckPassword(password) {
		return nil, errors.NewInvalidCredentialsError()
	}

	entity.RecordLogin()
	if err := s.userRepo.Update(ctx, entity); err != nil {
		s.logger.Warn("Failed to record login time", zap.Error(err))
	}

	expiresAt := time.Now().Add(s.jwtTTL)
	claims := jwt.RegisteredClaims{
		Subject:   entity.ID().String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, errors.NewInternalError("failed to sign token").WithCause(err)
	}

	s.logger.Info("User logged in",
		zap.String("user_id", entity.ID().String()),
	)

	return &inbound.AuthResult{
		User:      *toDTO(entity),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, userID uuid.UUID) (*inbound.UserDTO, error) {
	entity, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if entity == nil {
		return nil, errors.NewUserNotFoundError(userID.String())
	}
	return toDTO(entity), nil
}

// UpdatePreferences replaces the user's preference profile
func (s *Service) UpdatePreferences(ctx context.Context, cmd inbound.UpdatePreferencesCommand) (*inbound.UserDTO, error) {
	entity, err := s.userRepo.FindByID(ctx, cmd.UserID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if entity == nil {
		return nil, errors.NewUserNotFoundError(cmd.UserID.String())
	}

	prefs := &user.PreferenceProfile{
		LikedIngredients:    cmd.LikedIngredients,
		DislikedIngredients: cmd.DislikedIngredients,
		CuisineRatings:      cmd.CuisineRatings,
		TimePreference:      cmd.TimePreference,
		DietaryProfiles:     cmd.DietaryProfiles,
	}
	if prefs.CuisineRatings == nil {
		prefs.CuisineRatings = user.DefaultPreferences().CuisineRatings
	}

	if err := entity.UpdatePreferences(prefs); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Update(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("update user preferences", err)
	}

	s.logger.Info("Preferences updated",
		zap.String("user_id", cmd.UserID.String()),
	)

	return toDTO(entity), nil
}

// VerifyToken parses and validates a signed token, returning the user id.
// Used by the HTTP auth middleware.
func (s *Service) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewUnauthorizedError("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errors.NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, errors.NewUnauthorizedError("invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, errors.NewUnauthorizedError("invalid token subject")
	}
	return userID, nil
}

func toDTO(entity *user.User) *inbound.UserDTO {
	prefs := entity.Preferences()
	return &inbound.UserDTO{
		ID:    entity.ID(),
		Email: entity.Email(),
		Name:  entity.Name(),
		Preferences: &inbound.PreferencesDTO{
			LikedIngredients:    prefs.LikedIngredients,
			DislikedIngredients: prefs.DislikedIngredients,
			CuisineRatings:      prefs.CuisineRatings,
			TimePreference:      prefs.TimePreference,
			DietaryProfiles:     prefs.DietaryProfiles,
		},
		CreatedAt: entity.CreatedAt(),
	}
}
