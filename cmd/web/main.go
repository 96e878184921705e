package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/geo"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/mailer"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/ratelimit"
	"github.com/TheoInCodeLand/casalinga-tours/internal/platform/session"
	"github.com/TheoInCodeLand/casalinga-tours/internal/repo/postgres"
	"github.com/TheoInCodeLand/casalinga-tours/internal/service"
	"github.com/TheoInCodeLand/casalinga-tours/internal/web"
	"github.com/TheoInCodeLand/casalinga-tours/internal/web/view"
	"github.com/TheoInCodeLand/casalinga-tours/migrations"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/config"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/database"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/events"
	"github.com/TheoInCodeLand/casalinga-tours/pkg/logger"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger.Info("Starting Casalinga Tours web server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	pool, err := database.Connect(ctx, cfg.Database)
	cancel()
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(migrations.Files, cfg.Database.URL); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Session store: Redis by default, with the sessions table as the
	// single-dependency alternative.
	var store session.Store
	limiter := ratelimit.Limiter(ratelimit.Unlimited{})
	switch cfg.Session.Store {
	case "postgres":
		store = session.NewPostgresStore(pool)
	default:
		redisStore, err := session.NewRedisStore(cfg.Redis.URL)
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		store = redisStore
		limiter = ratelimit.NewRedisLimiter(redisStore.Client(), loginRateLimit, loginRateWindow)
	}
	sessions := session.NewManager(store, cfg.Session.CookieName, cfg.Session.TTL, cfg.Session.Secure)

	var eventBus events.Publisher
	if cfg.NATS.URL != "" {
		bus, err := events.NewNATSEventBus(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		eventBus = bus
	} else {
		eventBus = events.NewLogEventBus()
	}
	defer eventBus.Close()

	var mail mailer.Service
	if cfg.Email.DevMode || cfg.Email.MailerSendKey == "" {
		mail = mailer.NewDevMailer()
	} else {
		mail = mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName,
			cfg.Email.FromEmail, cfg.Email.ContactEmail)
	}

	geocoder := geo.New(cfg.Geocoding.APIKey,
		geo.WithBaseURL(cfg.Geocoding.BaseURL),
		geo.WithTimeout(cfg.Geocoding.Timeout),
	)

	userRepo := postgres.NewUserRepository(pool)
	tourRepo := postgres.NewTourRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)

	authService := service.NewAuthService(userRepo, eventBus)
	tourService := service.NewTourService(tourRepo, geocoder)
	bookingService := service.NewBookingService(bookingRepo, tourRepo, userRepo, eventBus)
	paymentService := service.NewPaymentService(bookingRepo, paymentRepo, eventBus)
	userService := service.NewUserService(userRepo)

	ctx, cancel = context.WithTimeout(context.Background(), 15*time.Second)
	err = authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
	cancel()
	if err != nil {
		logger.Error("Failed to ensure admin user", "error", err)
		os.Exit(1)
	}

	renderer, err := view.NewHTMLRenderer()
	if err != nil {
		logger.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}

	handlers := web.NewHandlers(authService, tourService, bookingService,
		paymentService, userService, sessions, renderer, mail, limiter, eventBus)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      web.NewRouter(handlers),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("Web server listening", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
