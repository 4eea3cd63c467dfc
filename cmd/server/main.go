package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "frontdesk-backend/internal/api/http"
	"frontdesk-backend/internal/cache"
	"frontdesk-backend/internal/config"
	"frontdesk-backend/internal/events"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository/postgres"
	"frontdesk-backend/internal/security"
	"frontdesk-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// .env is optional; real deployments use environment variables directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Frontdesk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize availability cache (no-op when Redis is not configured)
	availCache := cache.NewAvailabilityCache(cfg.Redis.Addr,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second)
	defer availCache.Close()
	if cfg.Redis.Addr != "" {
		logger.Info("Availability cache enabled", "addr", cfg.Redis.Addr, "ttl_seconds", cfg.Redis.TTLSeconds)
	}

	// Initialize event publisher (no-op when Kafka is not configured)
	producerCtx, stopProducer := context.WithCancel(context.Background())
	defer stopProducer()
	var publisher events.Publisher = events.Noop{}
	if len(cfg.Kafka.Brokers) > 0 {
		producer := events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Producer, 1024)
		producer.Start(producerCtx)
		publisher = producer
		logger.Info("Event publisher enabled", "brokers", cfg.Kafka.Brokers)
	}

	// Initialize Services
	pricingSvc := service.NewPricingService(store.TariffRepository)
	availabilitySvc := service.NewAvailabilityService(
		store.RoomRepository,
		store.ReservationRepository,
		pricingSvc,
		availCache,
		publisher,
	)
	reservationSvc := service.NewReservationService(store.ReservationRepository, publisher)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.ReservationRepository,
		publisher,
		cfg.Booking.PaymentThresholdPercent,
	)
	roomSvc := service.NewRoomService(store.RoomRepository)
	settlementSvc := service.NewSettlementService(
		store.SettlementRepository,
		store.ReservationRepository,
		store.PaymentRepository,
		publisher,
		time.Duration(cfg.Booking.CheckinGraceHours)*time.Hour,
	)

	// Set up HTTP server
	router := httpapi.NewRouter(httpapi.Services{
		Availability: availabilitySvc,
		Reservation:  reservationSvc,
		Payment:      paymentSvc,
		Settlement:   settlementSvc,
		Room:         roomSvc,
	}, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	if producer, ok := publisher.(*events.Producer); ok {
		stopProducer()
		producer.WaitClosed()
	}
	logger.Info("Server stopped. Goodbye!")
}
