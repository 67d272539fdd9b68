package recipe

import "errors"

// Domain errors for catalog lookups

var (
	ErrRecipeNotFound = errors.New("recipe not found in catalog")
	ErrEmptyCatalog   = errors.New("recipe catalog is empty")
)
