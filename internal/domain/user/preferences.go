package user

import (
	"errors"
	"strings"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
)

// PreferenceProfile is the read-only input the substitution engine
// scores candidates against: taste signals, cuisine ratings and the
// user's prep-time appetite.
type PreferenceProfile struct {
	LikedIngredients    []string
	DislikedIngredients []string
	// CuisineRatings maps a preferred cuisine to the user's historical
	// rating for it on a 1-5 scale. Presence in the map marks the
	// cuisine as preferred.
	CuisineRatings  map[recipe.CuisineType]float64
	TimePreference  TimePreference
	DietaryProfiles []string
}

// TimePreference buckets how long a user wants to spend cooking
type TimePreference string

const (
	TimePreferenceQuick    TimePreference = "quick"    // under 20 minutes
	TimePreferenceModerate TimePreference = "moderate" // 20 to 45 minutes
	TimePreferenceLong     TimePreference = "long"     // over 45 minutes
)

// DefaultPreferences returns a neutral profile for new accounts
func DefaultPreferences() *PreferenceProfile {
	return &PreferenceProfile{
		CuisineRatings: map[recipe.CuisineType]float64{},
		TimePreference: TimePreferenceModerate,
	}
}

// Validate checks the profile's rating bounds and time preference
func (p *PreferenceProfile) Validate() error {
	switch p.TimePreference {
	case TimePreferenceQuick, TimePreferenceModerate, TimePreferenceLong:
	default:
		return ErrInvalidTimePreference
	}
	for cuisine, rating := range p.CuisineRatings {
		if rating < 1 || rating > 5 {
			return errors.New("cuisine rating for " + string(cuisine) + " must be between 1 and 5")
		}
	}
	return nil
}

// Likes reports whether the ingredient matches a liked entry
func (p *PreferenceProfile) Likes(ingredient string) bool {
	return containsFold(p.LikedIngredients, ingredient)
}

// Dislikes reports whether the ingredient matches a disliked entry
func (p *PreferenceProfile) Dislikes(ingredient string) bool {
	return containsFold(p.DislikedIngredients, ingredient)
}

// PrefersCuisine returns the user's rating for a cuisine and whether
// the cuisine is in the preferred list at all
func (p *PreferenceProfile) PrefersCuisine(cuisine recipe.CuisineType) (float64, bool) {
	rating, ok := p.CuisineRatings[cuisine]
	return rating, ok
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(strings.TrimSpace(v), strings.TrimSpace(s)) {
			return true
		}
	}
	return false
}

// ErrInvalidTimePreference is returned for an unknown time bucket
var ErrInvalidTimePreference = errors.New("time preference must be quick, moderate or long")
