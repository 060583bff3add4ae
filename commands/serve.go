package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"expense-tracker-go-be/auth"
	"expense-tracker-go-be/config"
	"expense-tracker-go-be/database"
	"expense-tracker-go-be/handlers"
	"expense-tracker-go-be/logging"
	"expense-tracker-go-be/services"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			// Connect to Database
			db, err := database.Open(cfg.DatabaseDriver, cfg.DSN(), log)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to connect to database")
			}
			defer func() {
				if err := database.Close(db); err != nil {
					log.Error().Err(err).Msg("Failed to close database")
				}
			}()

			if !skipMigrate {
				if err := database.Migrate(db); err != nil {
					return err
				}
			}

			return serve(cfg, db, log)
		},
	}

	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not migrate the schema on startup")
	return cmd
}

func serve(cfg *config.Config, db *gorm.DB, log zerolog.Logger) error {
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	app := handlers.NewApp(handlers.Deps{
		Auth: services.NewAuthService(database.NewUserStore(db), tokens, cfg.BcryptCost, log),
		Transactions: services.NewTransactionService(
			database.NewTransactionStore(db), database.NewCategoryStore(db), log),
		Tokens:       tokens,
		Ping:         func(ctx context.Context) error { return database.Ping(ctx, db) },
		CookieSecure: cfg.CookieSecure,
		CORSOrigins:  cfg.CORSOrigins,
		AccessLog:    os.Stdout,
		Log:          log,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str(logging.FieldOperation, logging.OpStartup).
			Str(logging.FieldAddr, cfg.Addr()).
			Msg("Starting server")
		errCh <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Str(logging.FieldOperation, logging.OpShutdown).Msg("Shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("Server stopped gracefully")
	return nil
}

// setup loads and validates configuration and builds the root logger.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg := config.Load()
	log := logging.Component(logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	}), logging.ComponentApp)

	if err := cfg.Validate(); err != nil {
		return nil, log, err
	}
	return cfg, log, nil
}
