package service

import (
	"context"

	"atelier/internal/database"
	"atelier/internal/domain"
	"atelier/internal/models"

	"github.com/rs/zerolog"
)

type DressService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewDressService(store domain.Store, logger *zerolog.Logger) *DressService {
	return &DressService{store: store, logger: logger}
}

func (s *DressService) List(ctx context.Context) ([]models.Dress, error) {
	return s.store.ListDresses(ctx)
}

func (s *DressService) Get(ctx context.Context, id int64) (*models.Dress, error) {
	return s.store.GetDress(ctx, id)
}

func (s *DressService) Create(ctx context.Context, dress *models.Dress) error {
	if err := s.store.CreateDress(ctx, dress); err != nil {
		return err
	}
	s.logger.Info().Int64("dress_id", dress.ID).Str("name", dress.Name).Msg("dress created")
	return nil
}

func (s *DressService) Update(ctx context.Context, dress *models.Dress) error {
	return s.store.UpdateDress(ctx, dress)
}

// Delete refuses to remove a dress that an active rental still references.
func (s *DressService) Delete(ctx context.Context, id int64) error {
	count, err := s.store.ActiveRentalCount(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return database.ErrHasRentals
	}
	return s.store.DeleteDress(ctx, id)
}
