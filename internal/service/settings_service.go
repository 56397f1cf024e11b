package service

import (
	"context"

	"atelier/internal/domain"
	"atelier/internal/models"

	"github.com/rs/zerolog"
)

// SettingsService serves the merged settings map: stored values layered
// over the defaults, cached between writes.
type SettingsService struct {
	store  domain.Store
	cache  domain.SettingsCache
	logger *zerolog.Logger
}

func NewSettingsService(store domain.Store, cache domain.SettingsCache, logger *zerolog.Logger) *SettingsService {
	return &SettingsService{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

func (s *SettingsService) GetAll(ctx context.Context) (map[string]string, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("settings cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	stored, err := s.store.ListSettings(ctx)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]string, len(models.DefaultSettings)+len(stored))
	for k, v := range models.DefaultSettings {
		merged[k] = v
	}
	for _, setting := range stored {
		merged[setting.Key] = setting.Value
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, merged); err != nil {
			s.logger.Warn().Err(err).Msg("settings cache write failed")
		}
	}

	return merged, nil
}

// Get returns one setting value, falling back to the default for the key.
func (s *SettingsService) Get(ctx context.Context, key string) (string, error) {
	settings, err := s.GetAll(ctx)
	if err != nil {
		return "", err
	}
	return settings[key], nil
}

// Update stores the given keys and invalidates the cache.
func (s *SettingsService) Update(ctx context.Context, values map[string]string) error {
	for key, value := range values {
		if err := s.store.PutSetting(ctx, key, value); err != nil {
			return err
		}
	}

	if s.cache != nil {
		if err := s.cache.Clear(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("settings cache clear failed")
		}
	}
	return nil
}
