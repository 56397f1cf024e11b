package service

import (
	"context"

	"atelier/internal/domain"
	"atelier/internal/events"
	"atelier/internal/metrics"
	"atelier/internal/models"

	"github.com/rs/zerolog"
)

// PaymentService owns Payment rows. It never mutates rentals or dresses,
// and it does not cap payments against the rental's total price.
type PaymentService struct {
	store    domain.Store
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewPaymentService(store domain.Store, eventBus domain.EventPublisher, logger *zerolog.Logger) *PaymentService {
	return &PaymentService{
		store:    store,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *PaymentService) List(ctx context.Context) ([]models.Payment, error) {
	return s.store.ListPayments(ctx)
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*models.Payment, error) {
	return s.store.GetPayment(ctx, id)
}

func (s *PaymentService) ListForRental(ctx context.Context, rentalID int64) ([]models.Payment, error) {
	return s.store.ListPaymentsForRental(ctx, rentalID)
}

// Record inserts a payment against an existing rental.
func (s *PaymentService) Record(ctx context.Context, payment *models.Payment) error {
	if _, err := s.store.GetRental(ctx, payment.RentalID); err != nil {
		return err
	}

	if err := s.store.CreatePayment(ctx, payment); err != nil {
		return err
	}

	metrics.IncPaymentRecorded()

	if s.eventBus != nil {
		err := s.eventBus.PublishJSON(events.EventPaymentRecorded, events.PaymentEventPayload{
			PaymentID:   payment.ID,
			RentalID:    payment.RentalID,
			Amount:      payment.Amount,
			PaymentDate: payment.PaymentDate,
			Method:      payment.Method,
		})
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to publish payment event")
		}
	}

	s.logger.Info().
		Int64("payment_id", payment.ID).
		Int64("rental_id", payment.RentalID).
		Float64("amount", payment.Amount).
		Msg("payment recorded")
	return nil
}

func (s *PaymentService) Update(ctx context.Context, payment *models.Payment) error {
	return s.store.UpdatePayment(ctx, payment)
}

func (s *PaymentService) Delete(ctx context.Context, id int64) error {
	return s.store.DeletePayment(ctx, id)
}
