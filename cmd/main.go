package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/senyabanana/trek-market/internal/config"
	"github.com/senyabanana/trek-market/internal/db"
	"github.com/senyabanana/trek-market/internal/handlers"
	"github.com/senyabanana/trek-market/internal/notify"
	"github.com/senyabanana/trek-market/internal/repository"
	"github.com/senyabanana/trek-market/internal/router"
	"github.com/senyabanana/trek-market/internal/services"
	"github.com/senyabanana/trek-market/pkg/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	log := logger.NewWithConfig(cfg.Logging.Level, cfg.Logging.Pretty, cfg.Logging.NoColor)

	runDBMigration(log, cfg.Database.MigrationPath, cfg.Database.DSN())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dbPool, err := db.InitDb(ctx, cfg.Database)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("error initializing database")
	}
	defer dbPool.Close()
	log.Info().Msg("database connection established")

	publisher, err := notify.NewRabbitPublisher(cfg.RabbitMQ, log)
	if err != nil {
		// Без брокера принятие работает, события просто не уходят.
		log.Error().Err(err).Msg("failed to connect to RabbitMQ, events disabled")
		publisher = nil
	}

	requestRepo := repository.NewPostgresRequestRepository(dbPool)
	bidRepo := repository.NewPostgresBidRepository(dbPool)
	userRepo := repository.NewPostgresUserRepository(dbPool)
	assignmentRepo := repository.NewPostgresAssignmentRepository(dbPool)

	requestService := services.NewRequestService(requestRepo, userRepo)
	bidService := services.NewBidService(bidRepo, requestRepo)
	acceptanceService := services.NewAcceptanceService(bidRepo, requestRepo, publisher, log)
	assignmentService := services.NewAssignmentService(assignmentRepo)

	requestHandler := handlers.NewRequestHandler(requestService, log)
	bidHandler := handlers.NewBidHandler(bidService, acceptanceService, log)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService, log)

	routes := router.InitRoutes(cfg, requestHandler, bidHandler, assignmentHandler)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Msgf("server is listening on %s...", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-stopCtx.Done()
	log.Info().Msg("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown gracefully")
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close publisher")
		}
	}

	log.Info().Msg("server stopped")
}

func runDBMigration(log zerolog.Logger, migrationURL, dbSource string) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create a new migrate instance")
	}

	if err = migration.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Msg("failed to run migrate up")
	}
	log.Info().Msg("db migrated successfully")
}
