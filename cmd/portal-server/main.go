package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/odontoweb/portal/internal/config"
	"github.com/odontoweb/portal/internal/domain/appointments"
	"github.com/odontoweb/portal/internal/domain/authn"
	"github.com/odontoweb/portal/internal/domain/consultations"
	"github.com/odontoweb/portal/internal/domain/dashboard"
	"github.com/odontoweb/portal/internal/domain/patients"
	"github.com/odontoweb/portal/internal/domain/procedures"
	"github.com/odontoweb/portal/internal/domain/profile"
	"github.com/odontoweb/portal/internal/domain/records"
	"github.com/odontoweb/portal/internal/gateway"
	"github.com/odontoweb/portal/internal/platform/middleware"
	"github.com/odontoweb/portal/internal/platform/session"
	"github.com/odontoweb/portal/internal/ui/feedback"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "portal-server",
		Short: "Dental clinic portal server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the portal server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	secret := cfg.SessionSecret
	if secret == "" {
		// Development only; Validate rejects this outside dev. Sessions do
		// not survive a restart, which is acceptable locally.
		secret = "dev-only-insecure-secret"
		logger.Warn().Msg("SESSION_SECRET not set; using an insecure development secret")
	}

	// Clinic backend client
	api := gateway.New(cfg.BackendBaseURL, cfg.BackendTimeout, logger)
	logger.Info().Str("backend", cfg.BackendBaseURL).Msg("clinic backend configured")

	// Session store and per-session widget state. Logout and expiry clear
	// pending confirmations and undelivered flashes through the store's
	// subscription, so no widget outlives its session.
	store := session.NewStore(cfg.SessionTTL)
	codec := session.NewCookieCodec(secret, cfg.SessionTTL)
	confirms := feedback.NewConfirmations(5 * time.Minute)
	flashes := feedback.NewNotifier()
	store.Subscribe(func(ev session.Event) {
		if ev.Type == session.EventCleared {
			confirms.DropSession(ev.SID)
			flashes.DropSession(ev.SID)
		}
	})

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	e.Use(session.Middleware(store, codec))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}

	// Route groups: public pages need no session, app pages do.
	public := e.Group("")
	app := e.Group("")
	public.Use(middleware.RateLimit(rateLimitCfg))
	app.Use(middleware.RateLimit(rateLimitCfg))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// -- Register domain handlers --

	authHandler := authn.NewHandler(api, store, codec, flashes, logger)
	authHandler.RegisterRoutes(public, app)

	dashHandler := dashboard.NewHandler(flashes, logger)
	dashHandler.RegisterRoutes(app)

	patientSvc := patients.NewService(api, logger)
	patientHandler := patients.NewHandler(patientSvc, confirms, flashes, logger)
	patientHandler.RegisterRoutes(public, app)

	apptSvc := appointments.NewService(api, logger)
	apptHandler := appointments.NewHandler(apptSvc, confirms, flashes, logger)
	apptHandler.RegisterRoutes(app)

	procSvc := procedures.NewService(api, logger)
	procHandler := procedures.NewHandler(procSvc, confirms, flashes, logger)
	procHandler.RegisterRoutes(public, app)

	consultSvc := consultations.NewService(api, logger)
	consultHandler := consultations.NewHandler(consultSvc, flashes, logger)
	consultHandler.RegisterRoutes(app)

	profileSvc := profile.NewService(api, logger)
	profileHandler := profile.NewHandler(profileSvc, flashes, logger)
	profileHandler.RegisterRoutes(app)

	recordSvc := records.NewService(api, logger, cfg.RecordRedirectDelay)
	recordHandler := records.NewHandler(recordSvc, flashes, logger)
	recordHandler.RegisterRoutes(app)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
