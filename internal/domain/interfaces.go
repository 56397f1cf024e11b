package domain

import (
	"context"

	"atelier/internal/models"
)

// Store is the storage port. Two backings implement it behind one package:
// embedded SQLite for local use and Postgres for production, chosen by
// configuration.
type Store interface {
	// Dresses
	ListDresses(ctx context.Context) ([]models.Dress, error)
	GetDress(ctx context.Context, id int64) (*models.Dress, error)
	CreateDress(ctx context.Context, dress *models.Dress) error
	UpdateDress(ctx context.Context, dress *models.Dress) error
	DeleteDress(ctx context.Context, id int64) error
	SetDressStatus(ctx context.Context, id int64, status string) error
	ActiveRentalCount(ctx context.Context, dressID int64) (int64, error)

	// Customers
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	CreateCustomer(ctx context.Context, customer *models.Customer) error
	UpdateCustomer(ctx context.Context, customer *models.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
	RentalCountForCustomer(ctx context.Context, customerID int64) (int64, error)
	ListRentalsForCustomer(ctx context.Context, customerID int64) ([]models.Rental, error)

	// Rentals
	ListRentals(ctx context.Context) ([]models.Rental, error)
	GetRental(ctx context.Context, id int64) (*models.Rental, error)
	FindConflicts(ctx context.Context, dressID int64, startDate, endDate string) ([]models.Rental, error)
	CreateRentalWithLock(ctx context.Context, rental *models.Rental) error
	UpdateRental(ctx context.Context, rental *models.Rental) error
	DeleteRental(ctx context.Context, id int64) error
	DeleteRentalCascade(ctx context.Context, id, dressID int64, guarded bool) error
	ListActiveRentals(ctx context.Context) ([]models.Rental, error)
	ListUpcomingReturns(ctx context.Context, from, to string) ([]models.Rental, error)

	// Payments
	ListPayments(ctx context.Context) ([]models.Payment, error)
	GetPayment(ctx context.Context, id int64) (*models.Payment, error)
	ListPaymentsForRental(ctx context.Context, rentalID int64) ([]models.Payment, error)
	CreatePayment(ctx context.Context, payment *models.Payment) error
	UpdatePayment(ctx context.Context, payment *models.Payment) error
	DeletePayment(ctx context.Context, id int64) error
	DeletePaymentsForRental(ctx context.Context, rentalID int64) error

	// Appointments
	ListAppointments(ctx context.Context) ([]models.Appointment, error)
	ListAppointmentsBetween(ctx context.Context, from, to string) ([]models.Appointment, error)
	ListAppointmentsOn(ctx context.Context, date string) ([]models.Appointment, error)
	ListDueReminders(ctx context.Context, date string) ([]models.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, appointment *models.Appointment) error
	UpdateAppointment(ctx context.Context, appointment *models.Appointment) error
	MarkReminderSent(ctx context.Context, id int64) error
	DeleteAppointment(ctx context.Context, id int64) error

	// Reports
	CountDresses(ctx context.Context) (int64, error)
	CountDressesByStatus(ctx context.Context, status string) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountRentalsByStatus(ctx context.Context, status string) (int64, error)
	CountAppointmentsOn(ctx context.Context, date string) (int64, error)
	SumPaymentsSince(ctx context.Context, date string) (float64, error)
	MonthlyRevenue(ctx context.Context, startDate, endDate string) ([]models.MonthlyRevenue, error)
	PopularDresses(ctx context.Context, limit int) ([]models.PopularDress, error)
	ReturningCustomers(ctx context.Context) ([]models.ReturningCustomer, error)
	CalendarRentals(ctx context.Context) ([]models.Rental, error)
	ExportRows(ctx context.Context, kind string) ([]string, [][]string, error)

	// Settings
	ListSettings(ctx context.Context) ([]models.Setting, error)
	GetSetting(ctx context.Context, key string) (*models.Setting, error)
	PutSetting(ctx context.Context, key, value string) error

	Close() error
}

// SettingsCache caches the merged settings map for the read path.
// A nil map with nil error means a cache miss.
type SettingsCache interface {
	Get(ctx context.Context) (map[string]string, error)
	Set(ctx context.Context, settings map[string]string) error
	Clear(ctx context.Context) error
}

// EventPublisher publishes serialized domain events.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
