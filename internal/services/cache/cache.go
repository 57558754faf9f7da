// Package cache provides a Redis read-through layer in front of the profile
// and preference repositories. Scores are never cached.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"compatibility-engine/internal/config"
	"compatibility-engine/internal/models"
	"compatibility-engine/internal/services/metrics"
	"compatibility-engine/internal/utils"
)

const (
	profileKeyPrefix    = "compat:profile:"
	preferenceKeyPrefix = "compat:prefs:"
)

// ProfileStore is the uncached profile source.
type ProfileStore interface {
	GetProfilesByIDs(ctx context.Context, ids []string) ([]*models.Profile, error)
	GetFilteredProfiles(ctx context.Context, ids []string, filter *models.PreferenceFilter) ([]*models.Profile, error)
}

// PreferenceStore is the uncached preference source.
type PreferenceStore interface {
	GetPreferences(ctx context.Context, userID string) (*models.PreferenceFilter, error)
}

// NewRedisClient creates a Redis client from configuration.
func NewRedisClient(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

// ProfileCache wraps a profile and preference store with Redis. Redis
// failures degrade to the underlying store and are only logged.
type ProfileCache struct {
	client      *redis.Client
	profiles    ProfileStore
	preferences PreferenceStore
	ttl         time.Duration
}

// NewProfileCache creates a new read-through cache.
func NewProfileCache(client *redis.Client, profiles ProfileStore, preferences PreferenceStore, ttl time.Duration) *ProfileCache {
	return &ProfileCache{
		client:      client,
		profiles:    profiles,
		preferences: preferences,
		ttl:         ttl,
	}
}

// Ping tests the Redis connection.
func (c *ProfileCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// GetProfilesByIDs serves what it can from Redis and loads the rest.
func (c *ProfileCache) GetProfilesByIDs(ctx context.Context, ids []string) ([]*models.Profile, error) {
	if len(ids) == 0 {
		return []*models.Profile{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = profileKeyPrefix + id
	}

	cached, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		c.warn("profile cache read failed", err)
		cached = make([]interface{}, len(ids))
	}

	profiles := make([]*models.Profile, 0, len(ids))
	var misses []string
	for i, raw := range cached {
		s, ok := raw.(string)
		if !ok {
			misses = append(misses, ids[i])
			continue
		}
		var p models.Profile
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			misses = append(misses, ids[i])
			continue
		}
		profiles = append(profiles, &p)
	}
	metrics.CacheLookups.WithLabelValues("profile", "hit").Add(float64(len(profiles)))
	metrics.CacheLookups.WithLabelValues("profile", "miss").Add(float64(len(misses)))

	if len(misses) == 0 {
		return profiles, nil
	}

	loaded, err := c.profiles.GetProfilesByIDs(ctx, misses)
	if err != nil {
		return nil, err
	}

	pipe := c.client.Pipeline()
	for _, p := range loaded {
		data, err := json.Marshal(p)
		if err != nil {
			continue
		}
		pipe.Set(ctx, profileKeyPrefix+p.ID, data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.warn("profile cache write failed", err)
	}

	return append(profiles, loaded...), nil
}

// GetFilteredProfiles uses the cache only when there is nothing to filter;
// constrained lookups go to the store so filtering stays in SQL.
func (c *ProfileCache) GetFilteredProfiles(ctx context.Context, ids []string, filter *models.PreferenceFilter) ([]*models.Profile, error) {
	if !filter.HasProfileConstraints() {
		return c.GetProfilesByIDs(ctx, ids)
	}
	return c.profiles.GetFilteredProfiles(ctx, ids, filter)
}

// noPreferences marks a cached absence.
const noPreferences = "null"

// GetPreferences caches both stored filters and their absence.
func (c *ProfileCache) GetPreferences(ctx context.Context, userID string) (*models.PreferenceFilter, error) {
	key := preferenceKeyPrefix + userID

	val, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if val == noPreferences {
			metrics.CacheLookups.WithLabelValues("preferences", "hit").Inc()
			return nil, nil
		}
		var f models.PreferenceFilter
		if jsonErr := json.Unmarshal([]byte(val), &f); jsonErr == nil {
			metrics.CacheLookups.WithLabelValues("preferences", "hit").Inc()
			return &f, nil
		}
	case !errors.Is(err, redis.Nil):
		c.warn("preference cache read failed", err)
	}
	metrics.CacheLookups.WithLabelValues("preferences", "miss").Inc()

	f, err := c.preferences.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := []byte(noPreferences)
	if f != nil {
		if data, err = json.Marshal(f); err != nil {
			return f, nil
		}
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.warn("preference cache write failed", err)
	}

	return f, nil
}

// Close closes the Redis connection.
func (c *ProfileCache) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *ProfileCache) warn(msg string, err error) {
	utils.GetLogger().Warn(msg, zap.Error(err))
}
