package handlers

import (
	"context"
	"fmt"
	"time"

	"compatibility-engine/internal/config"
	"compatibility-engine/internal/services/cache"
	"compatibility-engine/internal/services/database"
	"compatibility-engine/internal/services/matcher"
	"compatibility-engine/internal/utils"
)

// Dependencies wires the repositories, optional cache and matcher together.
type Dependencies struct {
	Config  *config.Config
	DB      *database.DB
	Cache   *cache.ProfileCache
	Matcher *matcher.MatcherService
}

// NewDependencies connects to PostgreSQL and, when REDIS_ADDR is set, Redis.
// An unreachable Redis only disables caching.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	interests := database.NewInterestRepository(db)
	profiles := database.NewProfileRepository(db)
	preferences := database.NewPreferenceRepository(db)

	deps := &Dependencies{Config: cfg, DB: db}

	var profileSource matcher.ProfileSource = profiles
	var preferenceSource matcher.PreferenceSource = preferences

	if cfg.CacheEnabled() {
		c := cache.NewProfileCache(cache.NewRedisClient(cfg), profiles, preferences, cfg.CacheTTL)

		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := c.Ping(ctx); err != nil {
			utils.GetLogger().Warn("Redis unavailable, running without cache",
				utils.String("addr", cfg.RedisAddr),
				utils.Error(err))
			_ = c.Close()
		} else {
			deps.Cache = c
			profileSource = c
			preferenceSource = c
		}
	}

	deps.Matcher = matcher.NewMatcherService(interests, profileSource, preferenceSource)
	return deps, nil
}

// HealthHandler builds a health handler over the wired dependencies.
func (d *Dependencies) HealthHandler() *HealthHandler {
	var db, c Pinger
	if d.DB != nil {
		db = d.DB
	}
	if d.Cache != nil {
		c = PingerFunc(d.Cache.Ping)
	}
	return NewHealthHandler(db, c, d.Config.Stage)
}

// Close cleans up resources.
func (d *Dependencies) Close() {
	if d.Cache != nil {
		_ = d.Cache.Close()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
