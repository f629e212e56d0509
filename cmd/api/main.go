package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/estilobarber/barberia-api/internal/calendar"
	"github.com/estilobarber/barberia-api/internal/config"
	dbpkg "github.com/estilobarber/barberia-api/internal/db"
	"github.com/estilobarber/barberia-api/internal/logging"
	"github.com/estilobarber/barberia-api/internal/middleware"
	"github.com/estilobarber/barberia-api/internal/notify"
	"github.com/estilobarber/barberia-api/internal/payments"
	"github.com/estilobarber/barberia-api/internal/reminder"
	"github.com/estilobarber/barberia-api/internal/routes"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.IsProduction())
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Push notifications are optional; without credentials the dispatcher
	// still persists in-app notifications.
	var pusher notify.Pusher = notify.NoopPusher{}
	if cfg.FirebaseCredentialsFile != "" {
		fcm, err := notify.NewFCMPusher(ctx, cfg.FirebaseCredentialsFile)
		if err != nil {
			logger.Fatal("fcm init failed", zap.Error(err))
		}
		pusher = fcm
	}
	notifier := notify.NewDispatcher(db, pusher, logger)

	var calSync calendar.Sync = calendar.Disabled{}
	if cfg.CalendarCredentialsFile != "" && cfg.CalendarID != "" {
		gs, err := calendar.NewGoogleSync(ctx, cfg.CalendarCredentialsFile, cfg.CalendarID)
		if err != nil {
			logger.Fatal("google calendar init failed", zap.Error(err))
		}
		calSync = gs
	}

	var gateway payments.Gateway = payments.Disabled{}
	if cfg.MPAccessToken != "" {
		mp, err := payments.NewMercadoPago(cfg.MPAccessToken)
		if err != nil {
			logger.Fatal("mercadopago init failed", zap.Error(err))
		}
		gateway = mp
	}

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			// The sweeper falls back to the database flag alone.
			logger.Warn("redis unreachable, reminder lock disabled", zap.Error(err))
			rdb = nil
		}
	}

	sweeper := reminder.NewSweeper(
		db,
		rdb,
		notifier,
		logger,
		time.Duration(cfg.ReminderLeadMin)*time.Minute,
		time.Duration(cfg.ReminderSweepSec)*time.Second,
	)
	go sweeper.Run(ctx)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, routes.Dependencies{
		DB:       db,
		Cfg:      cfg,
		Log:      logger,
		Notifier: notifier,
		Calendar: calSync,
		Payments: gateway,
	})

	logger.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
