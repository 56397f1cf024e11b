package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"atelier/internal/domain"
	"atelier/internal/models"

	"github.com/rs/zerolog"
)

const (
	calendarColorActive = "#8b5cf6"
	calendarColorClosed = "#9ca3af"
)

// ReportService derives read-only aggregations from rental, payment and
// appointment state. Every call re-queries; nothing is cached.
type ReportService struct {
	store  domain.Store
	logger *zerolog.Logger
}

func NewReportService(store domain.Store, logger *zerolog.Logger) *ReportService {
	return &ReportService{store: store, logger: logger}
}

func (s *ReportService) Dashboard(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary
	var err error

	if summary.TotalDresses, err = s.store.CountDresses(ctx); err != nil {
		return nil, err
	}
	if summary.AvailableDresses, err = s.store.CountDressesByStatus(ctx, models.DressAvailable); err != nil {
		return nil, err
	}
	if summary.TotalCustomers, err = s.store.CountCustomers(ctx); err != nil {
		return nil, err
	}
	if summary.ActiveRentals, err = s.store.CountRentalsByStatus(ctx, models.RentalActive); err != nil {
		return nil, err
	}

	today := time.Now().Format(models.DateLayout)
	if summary.TodaysAppointments, err = s.store.CountAppointmentsOn(ctx, today); err != nil {
		return nil, err
	}

	firstOfMonth := time.Now().Format("2006-01") + "-01"
	if summary.MonthlyRevenue, err = s.store.SumPaymentsSince(ctx, firstOfMonth); err != nil {
		return nil, err
	}

	return &summary, nil
}

func (s *ReportService) MonthlyRevenue(ctx context.Context, startDate, endDate string) ([]models.MonthlyRevenue, error) {
	return s.store.MonthlyRevenue(ctx, startDate, endDate)
}

func (s *ReportService) PopularDresses(ctx context.Context, limit int) ([]models.PopularDress, error) {
	return s.store.PopularDresses(ctx, limit)
}

func (s *ReportService) ReturningCustomers(ctx context.Context) ([]models.ReturningCustomer, error) {
	return s.store.ReturningCustomers(ctx)
}

// Calendar projects every non-cancelled rental onto calendar events.
// Appointments are served by their own endpoints and composed client-side.
func (s *ReportService) Calendar(ctx context.Context) ([]models.CalendarEvent, error) {
	rentals, err := s.store.CalendarRentals(ctx)
	if err != nil {
		return nil, err
	}

	events := make([]models.CalendarEvent, 0, len(rentals))
	for _, r := range rentals {
		color := calendarColorClosed
		if r.Status == models.RentalActive {
			color = calendarColorActive
		}
		events = append(events, models.CalendarEvent{
			ID:           r.ID,
			Title:        fmt.Sprintf("%s - %s", r.DressName, r.CustomerName),
			Start:        r.StartDate,
			End:          r.EndDate,
			Color:        color,
			DressName:    r.DressName,
			CustomerName: r.CustomerName,
			Status:       r.Status,
		})
	}
	return events, nil
}

// ExportCSV renders the export query for the kind as CSV. Every field is
// quoted and NULLs come back as empty strings.
func (s *ReportService) ExportCSV(ctx context.Context, kind string) (string, []byte, error) {
	columns, rows, err := s.store.ExportRows(ctx, kind)
	if err != nil {
		return "", nil, err
	}

	var b strings.Builder
	writeCSVRecord(&b, columns)
	for _, row := range rows {
		writeCSVRecord(&b, row)
	}

	filename := fmt.Sprintf("%s_%s.csv", kind, time.Now().Format(models.DateLayout))
	return filename, []byte(b.String()), nil
}

func writeCSVRecord(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
