package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/userhub-io/userhub/internal/config"
	"github.com/userhub-io/userhub/internal/platform/logger"
	"github.com/userhub-io/userhub/internal/platform/mail"
	"github.com/userhub-io/userhub/internal/platform/postgres"
	"github.com/userhub-io/userhub/internal/service"
	"github.com/userhub-io/userhub/internal/service/auth"
	"github.com/userhub-io/userhub/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore     store.UserStore
	interestStore store.InterestStore
	tokenStore    store.TokenStore

	jwtService      auth.JWTService
	userService     service.UserService
	interestService service.InterestService
}

// initializeApp loads configuration, sets up logging and the database, and
// wires the service graph.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"mailbox_probe_enabled", cfg.Mail.ProbeEnabled)

	db, err := setupAppDatabase(cfg, appLogger)
	if err != nil {
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, appLogger)
	interestStore := postgres.NewPostgresInterestStore(db, appLogger)
	tokenStore := postgres.NewPostgresTokenStore(db, appLogger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	bcryptVerifier := auth.NewBcryptVerifier()
	mailer := mail.NewSMTPMailer(cfg.Mail, appLogger)

	var prober mail.Prober
	if cfg.Mail.ProbeEnabled {
		prober = mail.NewSMTPProber(
			time.Duration(cfg.Mail.ProbeTimeoutSeconds)*time.Second, appLogger)
	}

	userService := service.NewUserService(
		userStore,
		tokenStore,
		jwtService,
		bcryptVerifier,
		bcryptVerifier,
		mailer,
		prober,
		db,
		appLogger,
	)
	interestService := service.NewInterestService(interestStore, db, appLogger)

	return &application{
		config:          cfg,
		logger:          appLogger,
		db:              db,
		userStore:       userStore,
		interestStore:   interestStore,
		tokenStore:      tokenStore,
		jwtService:      jwtService,
		userService:     userService,
		interestService: interestService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
