package repository

import (
	"context"
	"sync/atomic"
	"time"

	"atelier/internal/domain"

	"github.com/rs/zerolog"
)

// FailoverSettingsCache serves from the primary cache and drops to the
// fallback on errors. After a minute it retries the primary.
type FailoverSettingsCache struct {
	primary   domain.SettingsCache
	fallback  domain.SettingsCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverSettingsCache(primary, fallback domain.SettingsCache, logger *zerolog.Logger) *FailoverSettingsCache {
	return &FailoverSettingsCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverSettingsCache) Get(ctx context.Context) (map[string]string, error) {
	if !r.isDown.Load() {
		settings, err := r.primary.Get(ctx)
		if err == nil {
			return settings, nil
		}
		r.logger.Error().Err(err).Msg("Primary settings cache failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		settings, err := r.primary.Get(ctx)
		if err == nil {
			r.isDown.Store(false)
			return settings, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.Get(ctx)
}

func (r *FailoverSettingsCache) Set(ctx context.Context, settings map[string]string) error {
	if !r.isDown.Load() {
		err := r.primary.Set(ctx, settings)
		if err == nil {
			return nil
		}
		r.logger.Error().Err(err).Msg("Primary settings cache failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.Set(ctx, settings)
}

func (r *FailoverSettingsCache) Clear(ctx context.Context) error {
	if !r.isDown.Load() {
		err := r.primary.Clear(ctx)
		if err == nil {
			return nil
		}
		r.logger.Error().Err(err).Msg("Primary settings cache failed, falling back to memory")
		r.isDown.Store(true)
		r.lastCheck = time.Now()
	}

	return r.fallback.Clear(ctx)
}
