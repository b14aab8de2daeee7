package app

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"gigflow/config"
	"gigflow/internal/controller"
	"gigflow/internal/notify"
	"gigflow/internal/repo"
	"gigflow/internal/service"
	"gigflow/pkg/http_server"
	"gigflow/pkg/postgres"
	"gigflow/pkg/token"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/labstack/echo"
	"github.com/rs/zerolog"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func runMigrations(postgresDB *postgres.Postgres, databaseName string, log zerolog.Logger) error {
	driver, err := pgmigrate.WithInstance(postgresDB.Database, &pgmigrate.Config{DatabaseName: databaseName})
	if err != nil {
		return err
	}

	migrations, err := migrate.NewWithDatabaseInstance("file://migrations", databaseName, driver)
	if err != nil {
		return err
	}

	if err := migrations.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info().Msg("no change made by migration scripts")

			return nil
		}

		return err
	}

	return nil
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := zerolog.New(os.Stderr)
		fallbackLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := newLogger(cfg)

	log.Info().Msg("Connecting database...")
	postgresDB, err := postgres.NewDB(cfg.PostgresConn)
	if err != nil {
		log.Fatal().Err(err).Msg("Error occurred while connecting to db")
	}
	defer postgresDB.Close()

	log.Info().Msg("Running migrations...")
	if err = runMigrations(postgresDB, cfg.DatabaseName, log); err != nil {
		log.Fatal().Err(err).Msg("Error occurred while running migrations")
	}

	repositories := repo.NewRepositories(postgresDB)
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	hub := notify.NewHub(log)
	services := service.NewServices(repositories, tokens, hub)
	handler := echo.New()

	log.Info().Msg("Setup routes...")
	controller.SetupRoutesHandlers(handler, services, hub, tokens, cfg, log)

	log.Info().Str("address", cfg.ServerAddress).Msg("Starting server...")
	httpServer := http_server.New(handler, cfg.ServerAddress)

	log.Info().Msg("Ready to process requests...")

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info().Str("signal", s.String()).Msg("Got signal")
	case err = <-httpServer.Notify():
		log.Fatal().Err(err).Msg("Notify error")
	}

	log.Info().Msg("Shutting down...")
	err = httpServer.Shutdown()
	if err != nil {
		log.Fatal().Err(err).Msg("Shutdown error")
	} else {
		log.Info().Msg("Successful shutdown")
	}
}
