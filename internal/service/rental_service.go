package service

import (
	"context"
	"errors"
	"time"

	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/domain"
	"atelier/internal/events"
	"atelier/internal/metrics"
	"atelier/internal/models"

	"github.com/rs/zerolog"
)

// ErrInvalidDates is returned when a rental's date range fails validation.
var ErrInvalidDates = errors.New("invalid rental date range")

// RentalService owns the rental lifecycle and the derived dress status.
// Nothing else writes rented/available to a dress.
type RentalService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	cfg      config.RentalsConfig
	logger   *zerolog.Logger
}

func NewRentalService(store domain.Store, eventBus domain.EventPublisher, cfg config.RentalsConfig, logger *zerolog.Logger) *RentalService {
	return &RentalService{
		store:    store,
		eventBus: eventBus,
		cfg:      cfg,
		logger:   logger,
	}
}

func validateDateRange(startDate, endDate string) error {
	start, err := time.Parse(models.DateLayout, startDate)
	if err != nil {
		return ErrInvalidDates
	}
	end, err := time.Parse(models.DateLayout, endDate)
	if err != nil {
		return ErrInvalidDates
	}
	if end.Before(start) {
		return ErrInvalidDates
	}
	return nil
}

// CheckAvailability is the read-only overlap query: no side effects, the
// caller decides what to do with the conflict list.
func (s *RentalService) CheckAvailability(ctx context.Context, dressID int64, startDate, endDate string) (*models.AvailabilityResult, error) {
	if err := validateDateRange(startDate, endDate); err != nil {
		return nil, err
	}

	conflicts, err := s.store.FindConflicts(ctx, dressID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	return &models.AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

func (s *RentalService) ListRentals(ctx context.Context) ([]models.Rental, error) {
	return s.store.ListRentals(ctx)
}

// GetRental returns the rental with its payment history attached.
func (s *RentalService) GetRental(ctx context.Context, id int64) (*models.Rental, error) {
	rental, err := s.store.GetRental(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.store.ListPaymentsForRental(ctx, id)
	if err != nil {
		return nil, err
	}
	rental.Payments = payments
	return rental, nil
}

// CreateRental books a dress for a date range. The overlap check, the
// insert and the dress status flip run in one transaction.
func (s *RentalService) CreateRental(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	if err := validateDateRange(rental.StartDate, rental.EndDate); err != nil {
		return nil, err
	}

	if _, err := s.store.GetCustomer(ctx, rental.CustomerID); err != nil {
		return nil, err
	}

	if err := s.store.CreateRentalWithLock(ctx, rental); err != nil {
		if errors.Is(err, database.ErrConflict) {
			metrics.IncRentalConflict()
		}
		return nil, err
	}

	metrics.IncRentalCreated()

	created, err := s.store.GetRental(ctx, rental.ID)
	if err != nil {
		return nil, err
	}

	s.publishRentalEvent(events.EventRentalCreated, created)
	s.logger.Info().
		Int64("rental_id", created.ID).
		Int64("dress_id", created.DressID).
		Str("start_date", created.StartDate).
		Str("end_date", created.EndDate).
		Msg("rental created")

	return created, nil
}

// UpdateRental applies field changes and the dress side effect of a
// status transition. Completed and cancelled are terminal. The new date
// range is not re-checked for overlap unless revalidation is switched on.
func (s *RentalService) UpdateRental(ctx context.Context, rental *models.Rental) (*models.Rental, error) {
	existing, err := s.store.GetRental(ctx, rental.ID)
	if err != nil {
		return nil, err
	}

	if rental.Status == "" {
		rental.Status = existing.Status
	}
	if !models.ValidRentalTransition(existing.Status, rental.Status) {
		return nil, database.ErrInvalidTransition
	}

	if err := validateDateRange(rental.StartDate, rental.EndDate); err != nil {
		return nil, err
	}

	if s.cfg.RevalidateOnUpdate && rental.Status == models.RentalActive {
		conflicts, err := s.store.FindConflicts(ctx, existing.DressID, rental.StartDate, rental.EndDate)
		if err != nil {
			return nil, err
		}
		for _, c := range conflicts {
			if c.ID != rental.ID {
				return nil, database.ErrConflict
			}
		}
	}

	if err := s.store.UpdateRental(ctx, rental); err != nil {
		return nil, err
	}

	// Leaving the active state frees the dress. Staying active never
	// re-marks it rented.
	if existing.Status == models.RentalActive && rental.Status != models.RentalActive {
		if err := s.store.SetDressStatus(ctx, existing.DressID, models.DressAvailable); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.GetRental(ctx, rental.ID)
	if err != nil {
		return nil, err
	}

	switch {
	case existing.Status == models.RentalActive && updated.Status == models.RentalCompleted:
		s.publishRentalEvent(events.EventRentalCompleted, updated)
	case existing.Status == models.RentalActive && updated.Status == models.RentalCancelled:
		s.publishRentalEvent(events.EventRentalCancelled, updated)
	}

	return updated, nil
}

// DeleteRental removes the rental and its payments in one transaction,
// then frees the dress. With the guard off the dress is freed
// unconditionally; with it on, only when no other active rental still
// holds the dress.
func (s *RentalService) DeleteRental(ctx context.Context, id int64) error {
	existing, err := s.store.GetRental(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteRentalCascade(ctx, id, existing.DressID, s.cfg.GuardedDelete); err != nil {
		return err
	}

	s.publishRentalEvent(events.EventRentalDeleted, existing)
	s.logger.Info().Int64("rental_id", id).Msg("rental deleted")
	return nil
}

func (s *RentalService) ListActive(ctx context.Context) ([]models.Rental, error) {
	return s.store.ListActiveRentals(ctx)
}

// ListUpcomingReturns returns active rentals ending within the window,
// soonest first.
func (s *RentalService) ListUpcomingReturns(ctx context.Context, windowDays int) ([]models.Rental, error) {
	if windowDays <= 0 {
		windowDays = models.UpcomingReturnsWindowDays
	}
	today := time.Now().Format(models.DateLayout)
	until := time.Now().AddDate(0, 0, windowDays).Format(models.DateLayout)
	return s.store.ListUpcomingReturns(ctx, today, until)
}

func (s *RentalService) publishRentalEvent(eventType string, rental *models.Rental) {
	if s.eventBus == nil {
		return
	}
	err := s.eventBus.PublishJSON(eventType, events.RentalEventPayload{
		RentalID:     rental.ID,
		DressID:      rental.DressID,
		DressName:    rental.DressName,
		CustomerID:   rental.CustomerID,
		CustomerName: rental.CustomerName,
		StartDate:    rental.StartDate,
		EndDate:      rental.EndDate,
		Status:       rental.Status,
		TotalPrice:   rental.TotalPrice,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("event", eventType).Msg("failed to publish rental event")
	}
}
