package service

import (
	"context"
	"errors"
	"time"

	"atelier/internal/domain"
	"atelier/internal/models"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidAppointmentType   = errors.New("invalid appointment type")
	ErrInvalidAppointmentStatus = errors.New("invalid appointment status")
)

var appointmentTypes = map[string]bool{
	models.AppointmentFitting: true,
	models.AppointmentPickup:  true,
	models.AppointmentReturn:  true,
	models.AppointmentOther:   true,
}

var appointmentStatuses = map[string]bool{
	models.AppointmentScheduled: true,
	models.AppointmentCompleted: true,
	models.AppointmentCancelled: true,
}

type AppointmentService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewAppointmentService(store domain.Store, logger *zerolog.Logger) *AppointmentService {
	return &AppointmentService{store: store, logger: logger}
}

func (s *AppointmentService) List(ctx context.Context) ([]models.Appointment, error) {
	return s.store.ListAppointments(ctx)
}

func (s *AppointmentService) ListBetween(ctx context.Context, from, to string) ([]models.Appointment, error) {
	if err := validateDateRange(from, to); err != nil {
		return nil, err
	}
	return s.store.ListAppointmentsBetween(ctx, from, to)
}

func (s *AppointmentService) ListOn(ctx context.Context, date string) ([]models.Appointment, error) {
	return s.store.ListAppointmentsOn(ctx, date)
}

// Upcoming lists scheduled appointments for the next week, today included.
func (s *AppointmentService) Upcoming(ctx context.Context) ([]models.Appointment, error) {
	today := time.Now()
	from := today.Format(models.DateLayout)
	to := today.AddDate(0, 0, models.UpcomingReturnsWindowDays).Format(models.DateLayout)
	return s.store.ListAppointmentsBetween(ctx, from, to)
}

func (s *AppointmentService) Today(ctx context.Context) ([]models.Appointment, error) {
	return s.store.ListAppointmentsOn(ctx, time.Now().Format(models.DateLayout))
}

// DueReminders lists tomorrow's scheduled appointments that have not been
// reminded yet.
func (s *AppointmentService) DueReminders(ctx context.Context) ([]models.Appointment, error) {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(models.DateLayout)
	return s.store.ListDueReminders(ctx, tomorrow)
}

func (s *AppointmentService) Get(ctx context.Context, id int64) (*models.Appointment, error) {
	return s.store.GetAppointment(ctx, id)
}

func (s *AppointmentService) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := s.validate(appointment); err != nil {
		return err
	}
	if appointment.CustomerID != nil {
		if _, err := s.store.GetCustomer(ctx, *appointment.CustomerID); err != nil {
			return err
		}
	}
	if appointment.DressID != nil {
		if _, err := s.store.GetDress(ctx, *appointment.DressID); err != nil {
			return err
		}
	}
	return s.store.CreateAppointment(ctx, appointment)
}

func (s *AppointmentService) Update(ctx context.Context, appointment *models.Appointment) error {
	if err := s.validate(appointment); err != nil {
		return err
	}
	return s.store.UpdateAppointment(ctx, appointment)
}

// MarkReminderSent flips the one-shot reminder flag after a reminder has
// been dispatched.
func (s *AppointmentService) MarkReminderSent(ctx context.Context, id int64) error {
	return s.store.MarkReminderSent(ctx, id)
}

func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteAppointment(ctx, id)
}

func (s *AppointmentService) validate(appointment *models.Appointment) error {
	if !appointmentTypes[appointment.Type] {
		return ErrInvalidAppointmentType
	}
	if appointment.Status != "" && !appointmentStatuses[appointment.Status] {
		return ErrInvalidAppointmentStatus
	}
	if err := validateDateRange(appointment.Date, appointment.Date); err != nil {
		return err
	}
	return nil
}
