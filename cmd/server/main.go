package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crewlink-service/internal/domain/entity"
	"crewlink-service/internal/infrastructure/config"
	"crewlink-service/internal/infrastructure/poller"
	"crewlink-service/internal/infrastructure/seed"
	memRepo "crewlink-service/internal/interface/repository"
	"crewlink-service/internal/usecase"
	"crewlink-service/pkg/logger"
	"crewlink-service/pkg/metrics"
	"crewlink-service/pkg/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting CrewLink Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	log = logger.NewLoggerWithLevel(cfg.LogLevel)
	defer log.Sync()

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
	clock := utils.RealClock{}
	rng := utils.NewRandom(cfg.SimulatorSeed)

	// Load fixtures
	var data *seed.Data
	if cfg.SeedFile != "" {
		log.Info("Loading seed file", "path", cfg.SeedFile)
		data, err = seed.LoadFile(cfg.SeedFile, clock.Now(), utils.DefaultRates)
	} else {
		data, err = seed.Load(clock.Now(), utils.DefaultRates)
	}
	if err != nil {
		log.Fatal("Failed to load seed data", "error", err)
	}

	// Set up repositories
	flightRepo := memRepo.NewMemoryFlightStatusRepository(data.Flights)
	notificationRepo := memRepo.NewMemoryNotificationRepository(data.Notifications)
	userRepo := memRepo.NewMemoryUserRepository(data.Users)
	scheduleRepo := memRepo.NewMemoryScheduleRepository(data.Schedule)
	expenseRepo := memRepo.NewMemoryExpenseRepository(data.Expenses)

	// Set up use cases
	simulator := usecase.NewFlightSimulator(flightRepo, notificationRepo, clock, rng, log.With("component", "simulator"), m)
	store := usecase.NewSessionStore(userRepo, scheduleRepo, expenseRepo, utils.ObjectIDGenerator{}, rng,
		utils.DefaultRates, cfg.MonthlyAllowanceINR, log.With("component", "store"), m)
	feed := usecase.NewNotificationFeed(notificationRepo, clock, log.With("component", "feed"), m)

	if err := store.SyncRosterSize(ctx); err != nil {
		log.Error("Failed to publish roster size", "error", err)
	}

	// Start flight simulator and pollers
	flightWatcher := usecase.NewFlightStatusWatcher(simulator, cfg.WatchFlight, func(s entity.FlightStatus) {
		log.Info("Watched flight updated", "flightNumber", s.FlightNumber, "status", s.Status, "gate", s.Gate, "remarks", s.Remarks)
	}, log)
	unreadWatcher := usecase.NewUnreadCountWatcher(feed, m, func(n int) {
		log.Info("Unread notifications changed", "count", n)
	})

	tasks := []*poller.Task{
		simulator.Start(ctx, cfg.FlightTickInterval),
		poller.Every(ctx, "flight-status", cfg.FlightPollInterval, log, func(ctx context.Context) error {
			_, _, err := flightWatcher.Poll(ctx)
			return err
		}),
		poller.Every(ctx, "unread-count", cfg.NotificationPollInterval, log, func(ctx context.Context) error {
			_, _, err := unreadWatcher.Poll(ctx)
			return err
		}),
		poller.Every(ctx, "roster-size", cfg.FlightPollInterval, log, store.SyncRosterSize),
	}

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port, "version", cfg.AppVersion)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	for _, t := range tasks {
		t.Stop()
	}

	log.Info("CrewLink Service stopped")
}
