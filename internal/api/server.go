package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"atelier/internal/config"
	"atelier/internal/export"
	"atelier/internal/service"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server exposes the management REST API.
type Server struct {
	cfg          config.ServerConfig
	rentals      *service.RentalService
	dresses      *service.DressService
	customers    *service.CustomerService
	payments     *service.PaymentService
	appointments *service.AppointmentService
	reports      *service.ReportService
	settings     *service.SettingsService
	exporter     *export.ScheduleExporter
	logger       *zerolog.Logger
	server       *http.Server
}

type Services struct {
	Rentals      *service.RentalService
	Dresses      *service.DressService
	Customers    *service.CustomerService
	Payments     *service.PaymentService
	Appointments *service.AppointmentService
	Reports      *service.ReportService
	Settings     *service.SettingsService
	Exporter     *export.ScheduleExporter
}

func NewServer(cfg config.ServerConfig, svcs Services, metricsEnabled bool, logger *zerolog.Logger) *Server {
	s := &Server{
		cfg:          cfg,
		rentals:      svcs.Rentals,
		dresses:      svcs.Dresses,
		customers:    svcs.Customers,
		payments:     svcs.Payments,
		appointments: svcs.Appointments,
		reports:      svcs.Reports,
		settings:     svcs.Settings,
		exporter:     svcs.Exporter,
		logger:       logger,
	}

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router(metricsEnabled),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

func (s *Server) router(metricsEnabled bool) http.Handler {
	r := mux.NewRouter()
	r.Use(loggingMiddleware(s.logger))
	r.Use(metricsMiddleware)
	r.Use(newRateLimiter(s.cfg.RateLimit).middleware)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()

	// Dresses
	api.HandleFunc("/dresses", s.handleListDresses).Methods(http.MethodGet)
	api.HandleFunc("/dresses", s.handleCreateDress).Methods(http.MethodPost)
	api.HandleFunc("/dresses/{id:[0-9]+}/availability", s.handleDressAvailability).Methods(http.MethodGet)
	api.HandleFunc("/dresses/{id:[0-9]+}", s.handleGetDress).Methods(http.MethodGet)
	api.HandleFunc("/dresses/{id:[0-9]+}", s.handleUpdateDress).Methods(http.MethodPut)
	api.HandleFunc("/dresses/{id:[0-9]+}", s.handleDeleteDress).Methods(http.MethodDelete)

	// Customers
	api.HandleFunc("/customers", s.handleListCustomers).Methods(http.MethodGet)
	api.HandleFunc("/customers", s.handleCreateCustomer).Methods(http.MethodPost)
	api.HandleFunc("/customers/{id:[0-9]+}/rentals", s.handleCustomerRentals).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}", s.handleGetCustomer).Methods(http.MethodGet)
	api.HandleFunc("/customers/{id:[0-9]+}", s.handleUpdateCustomer).Methods(http.MethodPut)
	api.HandleFunc("/customers/{id:[0-9]+}", s.handleDeleteCustomer).Methods(http.MethodDelete)

	// Rentals
	api.HandleFunc("/rentals", s.handleListRentals).Methods(http.MethodGet)
	api.HandleFunc("/rentals", s.handleCreateRental).Methods(http.MethodPost)
	api.HandleFunc("/rentals/active", s.handleActiveRentals).Methods(http.MethodGet)
	api.HandleFunc("/rentals/upcoming-returns", s.handleUpcomingReturns).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}/payments", s.handleRentalPayments).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", s.handleGetRental).Methods(http.MethodGet)
	api.HandleFunc("/rentals/{id:[0-9]+}", s.handleUpdateRental).Methods(http.MethodPut)
	api.HandleFunc("/rentals/{id:[0-9]+}", s.handleDeleteRental).Methods(http.MethodDelete)

	// Payments
	api.HandleFunc("/payments", s.handleListPayments).Methods(http.MethodGet)
	api.HandleFunc("/payments", s.handleRecordPayment).Methods(http.MethodPost)
	api.HandleFunc("/payments/{id:[0-9]+}", s.handleUpdatePayment).Methods(http.MethodPut)
	api.HandleFunc("/payments/{id:[0-9]+}", s.handleDeletePayment).Methods(http.MethodDelete)

	// Appointments
	api.HandleFunc("/appointments", s.handleListAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments", s.handleCreateAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments/upcoming", s.handleUpcomingAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/today", s.handleTodayAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/reminders", s.handleDueReminders).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}/reminder", s.handleMarkReminderSent).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id:[0-9]+}", s.handleGetAppointment).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id:[0-9]+}", s.handleUpdateAppointment).Methods(http.MethodPut)
	api.HandleFunc("/appointments/{id:[0-9]+}", s.handleDeleteAppointment).Methods(http.MethodDelete)

	// Reports
	api.HandleFunc("/reports/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/reports/revenue", s.handleMonthlyRevenue).Methods(http.MethodGet)
	api.HandleFunc("/reports/popular-dresses", s.handlePopularDresses).Methods(http.MethodGet)
	api.HandleFunc("/reports/returning-customers", s.handleReturningCustomers).Methods(http.MethodGet)
	api.HandleFunc("/reports/calendar", s.handleCalendar).Methods(http.MethodGet)
	api.HandleFunc("/reports/export/{type}", s.handleExportCSV).Methods(http.MethodGet)
	api.HandleFunc("/reports/schedule-export", s.handleExportSchedule).Methods(http.MethodPost)

	// Settings
	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handleUpdateSettings).Methods(http.MethodPut)
	api.HandleFunc("/settings/{key}", s.handleGetSetting).Methods(http.MethodGet)

	return requestIDMiddleware(r)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
