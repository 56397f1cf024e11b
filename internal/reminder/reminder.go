// Package reminder runs the daily appointment reminder scan. Reminders
// are WhatsApp deep links surfaced through the API and the log; the
// scheduler marks each appointment so it is only picked up once.
package reminder

import (
	"context"
	"fmt"
	"time"

	"atelier/internal/domain"
	"atelier/internal/models"
	"atelier/internal/whatsapp"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SettingsProvider hands out the merged settings map with the message
// templates.
type SettingsProvider interface {
	GetAll(ctx context.Context) (map[string]string, error)
}

type Scheduler struct {
	store    domain.Store
	settings SettingsProvider
	hour     int
	logger   *zerolog.Logger
	cron     *cron.Cron
}

func NewScheduler(store domain.Store, settings SettingsProvider, hour int, logger *zerolog.Logger) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = models.ReminderHour
	}
	return &Scheduler{
		store:    store,
		settings: settings,
		hour:     hour,
		logger:   logger,
	}
}

// Start schedules the daily scan. Stop with Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.cron = cron.New()
	spec := fmt.Sprintf("0 %d * * *", s.hour)
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error().Err(err).Msg("reminder scan failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder scan: %w", err)
	}
	s.cron.Start()
	s.logger.Info().Int("hour", s.hour).Msg("reminder scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// RunOnce scans tomorrow's appointments that have not been reminded yet,
// logs a WhatsApp link for each and flips the one-shot flag.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	tomorrow := time.Now().AddDate(0, 0, 1).Format(models.DateLayout)

	due, err := s.store.ListDueReminders(ctx, tomorrow)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	settings, err := s.settings.GetAll(ctx)
	if err != nil {
		return err
	}

	for _, appointment := range due {
		message := s.buildMessage(settings, appointment)

		event := s.logger.Info().
			Int64("appointment_id", appointment.ID).
			Str("type", appointment.Type).
			Str("date", appointment.Date)
		if appointment.CustomerPhone != "" {
			event = event.Str("whatsapp_link", whatsapp.Link(appointment.CustomerPhone, message))
		}
		event.Msg("appointment reminder due")

		if err := s.store.MarkReminderSent(ctx, appointment.ID); err != nil {
			s.logger.Error().Err(err).Int64("appointment_id", appointment.ID).Msg("failed to mark reminder sent")
		}
	}
	return nil
}

func (s *Scheduler) buildMessage(settings map[string]string, appointment models.Appointment) string {
	var key string
	switch appointment.Type {
	case models.AppointmentPickup:
		key = "whatsapp_pickup_template"
	case models.AppointmentReturn:
		key = "whatsapp_return_template"
	default:
		key = "whatsapp_fitting_template"
	}

	template := settings[key]
	if template == "" {
		template = models.DefaultSettings[key]
	}

	timePart := ""
	if appointment.Time != "" {
		timePart = " בשעה " + appointment.Time
	}

	return whatsapp.Render(template, map[string]string{
		"customer_name": appointment.CustomerName,
		"dress_name":    appointment.DressName,
		"date":          appointment.Date,
		"time":          timePart,
	})
}
