package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/alchemorsel/mealplan/internal/domain/recipe"
	"github.com/alchemorsel/mealplan/internal/ports/outbound"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	profileKeyPrefix = "recipe:profile:"
	snapshotKey      = "recipe:catalog:snapshot"
)

// CachedRecipeCatalog decorates a RecipeCatalog with read-through
// caching. Cache failures degrade to the underlying catalog; a stale or
// unreachable cache never fails a lookup.
type CachedRecipeCatalog struct {
	inner  outbound.RecipeCatalog
	cache  outbound.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedRecipeCatalog wraps a catalog with read-through caching
func NewCachedRecipeCatalog(inner outbound.RecipeCatalog, cache outbound.CacheRepository, ttl time.Duration, logger *zap.Logger) outbound.RecipeCatalog {
	return &CachedRecipeCatalog{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("catalog-cache"),
	}
}

// FindByID retrieves a profile, serving from cache when possible
func (c *CachedRecipeCatalog) FindByID(ctx context.Context, id uuid.UUID) (recipe.Profile, error) {
	key := profileKeyPrefix + id.String()

	if raw, err := c.cache.Get(ctx, key); err == nil && raw != nil {
		var profile recipe.Profile
		if err := json.Unmarshal(raw, &profile); err == nil {
			return profile, nil
		}
		c.logger.Warn("dropping corrupt cached profile", zap.String("key", key))
		_ = c.cache.Delete(ctx, key)
	}

	profile, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return recipe.Profile{}, err
	}

	if raw, err := json.Marshal(profile); err == nil {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			c.logger.Warn("failed to cache profile", zap.Error(err))
		}
	}
	return profile, nil
}

// Snapshot returns the full catalog, serving from cache when possible
func (c *CachedRecipeCatalog) Snapshot(ctx context.Context) ([]recipe.Profile, error) {
	if raw, err := c.cache.Get(ctx, snapshotKey); err == nil && raw != nil {
		var profiles []recipe.Profile
		if err := json.Unmarshal(raw, &profiles); err == nil {
			return profiles, nil
		}
		c.logger.Warn("dropping corrupt cached snapshot")
		_ = c.cache.Delete(ctx, snapshotKey)
	}

	profiles, err := c.inner.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(profiles); err == nil {
		if err := c.cache.Set(ctx, snapshotKey, raw, c.ttl); err != nil {
			c.logger.Warn("failed to cache snapshot", zap.Error(err))
		}
	}
	return profiles, nil
}
