package service

import (
	"context"

	"atelier/internal/database"
	"atelier/internal/domain"
	"atelier/internal/models"

	"github.com/rs/zerolog"
)

type CustomerService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewCustomerService(store domain.Store, logger *zerolog.Logger) *CustomerService {
	return &CustomerService{store: store, logger: logger}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.store.ListCustomers(ctx)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

func (s *CustomerService) ListRentals(ctx context.Context, customerID int64) ([]models.Rental, error) {
	if _, err := s.store.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	return s.store.ListRentalsForCustomer(ctx, customerID)
}

func (s *CustomerService) Create(ctx context.Context, customer *models.Customer) error {
	if err := s.store.CreateCustomer(ctx, customer); err != nil {
		return err
	}
	s.logger.Info().Int64("customer_id", customer.ID).Str("name", customer.Name).Msg("customer created")
	return nil
}

func (s *CustomerService) Update(ctx context.Context, customer *models.Customer) error {
	return s.store.UpdateCustomer(ctx, customer)
}

// Delete refuses to remove a customer with any rental history.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	count, err := s.store.RentalCountForCustomer(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return database.ErrHasRentals
	}
	return s.store.DeleteCustomer(ctx, id)
}
