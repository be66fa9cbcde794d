package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/clinicore/clinic-api/internal/config"
	"github.com/clinicore/clinic-api/internal/email"
	"github.com/clinicore/clinic-api/internal/repository/postgres"
	"github.com/clinicore/clinic-api/internal/router"
	"github.com/clinicore/clinic-api/internal/service/appointment"
	"github.com/clinicore/clinic-api/internal/service/auth"
	"github.com/clinicore/clinic-api/internal/service/diagnosis"
	"github.com/clinicore/clinic-api/internal/service/order"
	"github.com/clinicore/clinic-api/internal/service/prescription"
	"github.com/clinicore/clinic-api/internal/service/rbac"
	"github.com/clinicore/clinic-api/internal/service/shipping"
	"github.com/clinicore/clinic-api/pkg/geocode"
	"github.com/clinicore/clinic-api/pkg/metrics"
	"github.com/clinicore/clinic-api/pkg/token"
)

const shutdownTimeout = 5 * time.Second

func main() {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	if cfg.Env == "production" {
		logger = logger.Level(zerolog.InfoLevel)
	}

	db, err := postgres.NewDB(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		redisClient = redis.NewClient(opts)
		defer redisClient.Close()
	}

	var mapsClient *geocode.Client
	if cfg.Maps.Enabled() {
		mapsClient = geocode.NewClient(cfg.Maps.APIKey, cfg.Maps.BaseURL, cfg.Maps.Timeout)
	} else {
		logger.Warn().Msg("maps API key not set, shipping maps will serve placeholders")
	}

	var mailer email.Service
	if cfg.SMTP.Enabled() {
		mailer = email.NewSMTPService(cfg.SMTP)
	} else {
		mailer = email.NewNoopService(logger)
	}

	authority := token.NewAuthority(cfg.JWTSecret)

	authRepo := postgres.NewAuthRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	diagnosisRepo := postgres.NewDiagnosisRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	shippingRepo := postgres.NewShippingRepository(db)

	deps := &router.Dependencies{
		Config:    cfg,
		Logger:    logger,
		DB:        db,
		Authority: authority,
		Metrics:   metrics.New("clinic_api"),

		AuthService:         auth.NewService(authRepo, authority),
		RBACService:         rbac.NewService(roleRepo),
		AppointmentService:  appointment.NewService(appointmentRepo, roleRepo, mailer, logger),
		DiagnosisService:    diagnosis.NewService(diagnosisRepo),
		PrescriptionService: prescription.NewService(prescriptionRepo),
		OrderService:        order.NewService(orderRepo),
		ShippingService:     shipping.NewService(shippingRepo, mapsClient, redisClient, logger),
	}

	srv := &http.Server{
		Addr:              cfg.BindAddr,
		Handler:           router.New(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.BindAddr).Str("env", cfg.Env).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
	}
	logger.Info().Msg("server stopped")
}

func newLogger() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
