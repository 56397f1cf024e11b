package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"atelier/internal/api"
	"atelier/internal/config"
	"atelier/internal/database"
	"atelier/internal/domain"
	"atelier/internal/events"
	"atelier/internal/export"
	"atelier/internal/logging"
	"atelier/internal/metrics"
	"atelier/internal/models"
	"atelier/internal/reminder"
	"atelier/internal/repository"
	"atelier/internal/service"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	store, err := database.Open(cfg.Database, logger)
	if err != nil {
		logger.Error().Err(err).Msg("init database")
		return err
	}
	defer store.Close()

	redisClient := initRedis(cfg, logger)
	if redisClient != nil {
		defer repository.Close(redisClient)
	}
	settingsCache := buildSettingsCache(redisClient, logger)

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
	}

	bus := events.NewEventBus()
	subscribeEventLog(bus, logger)

	settingsService := service.NewSettingsService(store, settingsCache, logger)
	svcs := api.Services{
		Rentals:      service.NewRentalService(store, bus, cfg.Rentals, logger),
		Dresses:      service.NewDressService(store, logger),
		Customers:    service.NewCustomerService(store, logger),
		Payments:     service.NewPaymentService(store, bus, logger),
		Appointments: service.NewAppointmentService(store, logger),
		Reports:      service.NewReportService(store, logger),
		Settings:     settingsService,
		Exporter:     export.NewScheduleExporter(store, cfg.Exports, logger),
	}

	server := api.NewServer(cfg.Server, svcs, cfg.Monitoring.PrometheusEnabled, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Reminders.Enabled {
		scheduler := reminder.NewScheduler(store, settingsService, cfg.Reminders.Hour, logger)
		if err := scheduler.Start(ctx); err != nil {
			logger.Error().Err(err).Msg("start reminder scheduler")
			return err
		}
		defer scheduler.Stop()
	}

	if cfg.Backup.Enabled {
		backup := database.NewBackupService(store, cfg.Backup, logger)
		go backup.Start(ctx)
	}

	return serve(ctx, server, cfg, logger)
}

func loadConfigAndLogger() (*config.Config, *zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, &logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	client := repository.NewRedisClient(cfg.Redis)
	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := repository.Ping(pingCtx, client); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = repository.Close(client)
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return client
}

// buildSettingsCache wires the memory cache as the fallback layer; with no
// Redis the memory cache serves alone.
func buildSettingsCache(client *redis.Client, logger *zerolog.Logger) domain.SettingsCache {
	ttl := time.Duration(models.SettingsCacheTTL) * time.Second
	memory := repository.NewMemorySettingsCache(ttl)
	if client == nil {
		return memory
	}
	primary := repository.NewRedisSettingsCache(client, ttl)
	return repository.NewFailoverSettingsCache(primary, memory, logger)
}

func subscribeEventLog(bus *events.EventBus, logger *zerolog.Logger) {
	logEvent := func(event *events.Event) error {
		logger.Info().
			Str("event_type", event.Type).
			RawJSON("payload", event.Payload).
			Msg("domain event")
		return nil
	}
	for _, eventType := range []string{
		events.EventRentalCreated,
		events.EventRentalCompleted,
		events.EventRentalCancelled,
		events.EventRentalDeleted,
		events.EventPaymentRecorded,
	} {
		bus.Subscribe(eventType, logEvent)
	}
}

func serve(ctx context.Context, server *api.Server, cfg *config.Config, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			errCh <- err
		}
	}()

	logger.Info().Int("port", cfg.Server.Port).Msg("API server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info().Msg("API server stopped")
	return nil
}
