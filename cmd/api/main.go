package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/growora/site-api/internal/config"
	"github.com/growora/site-api/internal/database"
	"github.com/growora/site-api/internal/handler"
	"github.com/growora/site-api/internal/middleware"
	"github.com/growora/site-api/internal/router"
	"github.com/growora/site-api/internal/service"
	"github.com/growora/site-api/pkg/emailjs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	dispatcher, err := buildDispatcher(cfg, logger)
	if err != nil {
		log.Fatalf("failed to create email dispatcher: %v", err)
	}

	var idem *service.IdempotencyGuard
	if cfg.RedisURL != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		idem = service.NewIdempotencyGuard(redisClient, cfg.IdempotencyTTL, logger)
	}

	var events *service.InquiryEvents
	if cfg.NATSURL != "" {
		natsConn, err := nats.Connect(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer natsConn.Drain()
		events = service.NewInquiryEvents(natsConn, cfg.NATSSubject, logger)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	composer := service.Composer{
		BusinessInbox: cfg.BusinessInbox,
		BusinessName:  cfg.BusinessName,
	}
	templates := service.Templates{
		Notification:    cfg.EmailJSTemplateID,
		Acknowledgement: cfg.EmailJSAutoReplyTemplateID,
	}

	inquiryService := service.NewInquiryService(dispatcher, templates, composer, validate, idem, events, logger)

	inquiryHandler := handler.NewInquiryHandler(inquiryService, logger)
	channelsHandler := handler.NewContactChannelsHandler(cfg)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		InquiryHandler:         inquiryHandler,
		ContactChannelsHandler: channelsHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

// buildDispatcher returns the EmailJS client, or a logging stand-in when
// credentials are absent in development.
func buildDispatcher(cfg config.Config, logger zerolog.Logger) (service.Dispatcher, error) {
	if !cfg.DispatchConfigured() {
		logger.Warn().Msg("emailjs credentials missing, inquiries will be logged instead of sent")
		return service.NewLogDispatcher(logger), nil
	}

	return emailjs.New(emailjs.Config{
		BaseURL:   cfg.EmailJSBaseURL,
		ServiceID: cfg.EmailJSServiceID,
		PublicKey: cfg.EmailJSPublicKey,
		Timeout:   cfg.DispatchTimeout,
	}, logger)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
