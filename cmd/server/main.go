package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/iliyamo/speaker-booking-desk/internal/config"
	"github.com/iliyamo/speaker-booking-desk/internal/database"
	"github.com/iliyamo/speaker-booking-desk/internal/handler"
	"github.com/iliyamo/speaker-booking-desk/internal/middleware"
	"github.com/iliyamo/speaker-booking-desk/internal/queue"
	"github.com/iliyamo/speaker-booking-desk/internal/repository"
	"github.com/iliyamo/speaker-booking-desk/internal/router"
	"github.com/iliyamo/speaker-booking-desk/internal/service"
	"github.com/iliyamo/speaker-booking-desk/internal/snapshot"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(cfg)

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatalf("db: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		logger.Fatalf("db: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	bookings := repository.NewBookingRepo(db)
	contacts := repository.NewContactRepo(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		id, created, err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.BcryptCost)
		if err != nil {
			logger.Fatalf("admin bootstrap: %v", err)
		}
		logger.Infof("admin bootstrap: id=%d created=%t", id, created)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis: unavailable, rate limiting and response cache disabled")
	} else {
		defer rdb.Close()
	}
	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	publisher := queue.NewPublisher(cfg.RabbitURL)
	defer publisher.Close()

	feed := snapshot.NewFeed(bookings, cfg.SnapshotInterval, logger)
	consumer := queue.NewConsumer(cfg.RabbitURL, cfg.AuditLogPath, feed.Notify, logger)
	go feed.Run(ctx)
	go consumer.Run(ctx)

	bookingSvc := service.NewBookingService(bookings, publisher, feed, logger)
	analyticsSvc := service.NewAnalyticsService(feed, bookingSvc)
	contactSvc := service.NewContactService(contacts)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	bookingH := handler.NewBookingHandler(bookingSvc)
	analyticsH := handler.NewAnalyticsHandler(analyticsSvc)
	contactH := handler.NewContactHandler(contactSvc)

	e := echo.New()
	e.HideBanner = true
	e.Logger = logger
	e.Use(echomw.RequestID())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			j := log.JSON{
				"id":      v.RequestID,
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			}
			if v.Error != nil {
				j["error"] = v.Error.Error()
				logger.Errorj(j)
				return nil
			}
			logger.Infoj(j)
			return nil
		},
	}))

	router.RegisterPublic(e, contactH, cache, limit)
	router.RegisterAuth(e, authH, cfg.JWTSecret, limit)
	router.RegisterUser(e, bookingH, cfg.JWTSecret)
	router.RegisterAdmin(e, bookingH, analyticsH, contactH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Errorf("http server: %v", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	logger.Info("stopped")
}
