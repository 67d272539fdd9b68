// Package user defines the user domain entity and the preference
// profile consumed by the substitution engine.
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents a user in the system
type User struct {
	id           uuid.UUID
	email        string
	name         string
	passwordHash string
	isActive     bool
	preferences  *PreferenceProfile
	createdAt    time.Time
	updatedAt    time.Time
	lastLoginAt  *time.Time
}

// NewUser creates a new user with validation
func NewUser(email, name, password string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		id:           uuid.New(),
		email:        strings.ToLower(strings.TrimSpace(email)),
		name:         name,
		passwordHash: string(hash),
		isActive:     true,
		preferences:  DefaultPreferences(),
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a user from persistence without re-validating
// the password. Used by repository mappers only.
func Reconstruct(id uuid.UUID, email, name, passwordHash string, isActive bool, prefs *PreferenceProfile, createdAt, updatedAt time.Time, lastLoginAt *time.Time) *User {
	if prefs == nil {
		prefs = DefaultPreferences()
	}
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		isActive:     isActive,
		preferences:  prefs,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		lastLoginAt:  lastLoginAt,
	}
}

// ID returns the user's unique identifier
func (u *User) ID() uuid.UUID { return u.id }

// Email returns the user's email address
func (u *User) Email() string { return u.email }

// Name returns the user's display name
func (u *User) Name() string { return u.name }

// PasswordHash returns the bcrypt hash of the user's password
func (u *User) PasswordHash() string { return u.passwordHash }

// IsActive returns whether the account is active
func (u *User) IsActive() bool { return u.isActive }

// Preferences returns the user's preference profile
func (u *User) Preferences() *PreferenceProfile { return u.preferences }

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// LastLoginAt returns when the user last logged in
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

// RecordLogin marks a successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.lastLoginAt = &now
	u.updatedAt = now
}

// UpdatePreferences replaces the preference profile
func (u *User) UpdatePreferences(prefs *PreferenceProfile) error {
	if prefs == nil {
		return ErrNilPreferences
	}
	if err := prefs.Validate(); err != nil {
		return err
	}
	u.preferences = prefs
	u.updatedAt = time.Now()
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func validateName(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return ErrNameTooShort
	}
	return nil
}

// Domain errors for user operations
var (
	ErrInvalidEmail     = errors.New("email address is not valid")
	ErrNameTooShort     = errors.New("name must be at least 2 characters")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrNilPreferences   = errors.New("preferences cannot be nil")
)
