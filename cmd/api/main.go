package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/seat_reservation/internal/adapter/events"
	"github.com/srgjo27/seat_reservation/internal/adapter/handler"
	"github.com/srgjo27/seat_reservation/internal/adapter/lock"
	"github.com/srgjo27/seat_reservation/internal/adapter/repository/memory"
	"github.com/srgjo27/seat_reservation/internal/adapter/repository/postgres"
	"github.com/srgjo27/seat_reservation/internal/core/ports"
	"github.com/srgjo27/seat_reservation/internal/core/services"
	"github.com/srgjo27/seat_reservation/internal/platform/config"
	"github.com/srgjo27/seat_reservation/internal/platform/database"
	"github.com/srgjo27/seat_reservation/internal/platform/jobs"
	"github.com/srgjo27/seat_reservation/internal/platform/logger"
	"github.com/srgjo27/seat_reservation/internal/platform/metrics"
)

type seatStore interface {
	ports.SeatRepository
	Ping(ctx context.Context) error
}

func main() {
	bootLog := logger.New(os.Getenv("LOG_LEVEL"), os.Getenv("GIN_MODE"))
	config.LoadEnv(bootLog.Logger, ".env")

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)
	log := logger.New(cfg.LogLevel, cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	health := map[string]handler.PingFunc{}
	registry := lock.NewRegistry(cfg.LockStrategy)

	localLocker := lock.NewLocalLocker()
	registry.Register(lock.StrategyLocal, localLocker)

	var store seatStore
	var db *sql.DB
	switch cfg.StoreDriver {
	case "memory":
		store = memory.NewSeatRepository()
		log.Warn("using in-memory seat store; bookings are lost on restart")
	default:
		var err error
		db, err = database.NewPostgresDB(database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
		}, log.Named("database"))
		if err != nil {
			log.Error("failed to connect to db after retries", slog.Any("error", err))
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			log.Error("failed to apply schema", slog.Any("error", err))
			os.Exit(1)
		}

		store = postgres.NewSeatRepository(db)
		registry.Register(lock.StrategyDatabase, postgres.NewSeatLockRepository(db))
	}
	health["store"] = store.Ping

	initCtx, cancelInit := context.WithTimeout(ctx, 30*time.Second)
	if err := store.Initialize(initCtx, cfg.SeatRows, cfg.SeatCols); err != nil {
		cancelInit()
		log.Error("failed to initialize seat grid", slog.Any("error", err))
		os.Exit(1)
	}
	cancelInit()
	log.Info("seat grid ready", slog.Int("rows", cfg.SeatRows), slog.Int("cols", cfg.SeatCols))

	hub := events.NewHub(events.DefaultHandlerBuffer, log.Named("hub"))
	defer hub.Close()

	var publisher ports.SeatPublisher = hub

	if cfg.Redis.Host != "" {
		redisClient, err := database.NewRedisClient(ctx, database.RedisConfig{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
		defer redisClient.Close()
		log.Info("redis connected", slog.String("addr", cfg.Redis.Addr()))

		if err := lock.PreloadScripts(ctx, redisClient); err != nil {
			log.Warn("failed to preload lock scripts", slog.Any("error", err))
		}

		registry.Register(lock.StrategyRedis, lock.NewRedisLocker(redisClient))
		health["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }

		relay := events.NewRedisRelay(redisClient, cfg.Redis.Channel, hub, log.Named("relay"))
		go runRelay(ctx, relay, log.Logger)
		publisher = relay
	}

	if _, _, err := registry.Resolve(""); err != nil {
		fallback := lock.StrategyLocal
		if db != nil {
			fallback = lock.StrategyDatabase
		}
		log.Warn("default lock strategy unavailable, falling back",
			slog.String("configured", cfg.LockStrategy),
			slog.String("fallback", fallback),
		)
		registry.SetDefault(fallback)
	}
	log.Info("lock strategies registered", slog.Any("strategies", registry.Strategies()), slog.String("default", registry.Default()))

	if cfg.AMQP.Enabled() {
		amqpPublisher := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		defer amqpPublisher.Close()
		publisher = events.Fanout{publisher, amqpPublisher}
		log.Info("mirroring seat events to amqp", slog.String("exchange", cfg.AMQP.Exchange))
	}

	m, err := metrics.New("seat_reservation")
	if err != nil {
		log.Error("failed to set up metrics", slog.Any("error", err))
		os.Exit(1)
	}

	scheduler, err := jobs.NewScheduler(log.Named("jobs"))
	if err != nil {
		log.Error("failed to create scheduler", slog.Any("error", err))
		os.Exit(1)
	}

	sweepLog := log.Named("sweeper")
	if err := scheduler.Every("local-lock-sweep", cfg.SweepEvery, jobs.LockSweep(lock.StrategyLocal, func(context.Context) (int64, error) {
		return int64(localLocker.Sweep()), nil
	}, sweepLog)); err != nil {
		log.Error("failed to schedule job", slog.Any("error", err))
		os.Exit(1)
	}

	if db != nil {
		lockRepo := postgres.NewSeatLockRepository(db)
		if err := scheduler.Every("db-lock-sweep", cfg.SweepEvery, jobs.LockSweep(lock.StrategyDatabase, lockRepo.DeleteExpired, sweepLog)); err != nil {
			log.Error("failed to schedule job", slog.Any("error", err))
			os.Exit(1)
		}
	}

	scheduler.Start()

	bookingService := services.NewBookingService(store, registry, publisher,
		services.WithLockTTL(cfg.LockTTL),
		services.WithStoreTimeout(cfg.StoreTimeout),
		services.WithLogger(log.Named("booking")),
		services.WithMetrics(m),
	)
	seatService := services.NewSeatQueryService(store, log.Named("seats"))

	router := handler.NewRouter(handler.RouterConfig{
		Bookings:    bookingService,
		Seats:       seatService,
		Hub:         hub,
		Logger:      log,
		Metrics:     m.Handler(),
		Health:      health,
		CORSOrigins: cfg.CORSOrigins,
	})

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("server starting", slog.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server startup failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", slog.Any("error", err))
	}

	if err := scheduler.Shutdown(); err != nil {
		log.Warn("scheduler shutdown failed", slog.Any("error", err))
	}

	log.Info("server exiting")
}

// runRelay keeps the cross-instance subscription alive until shutdown.
func runRelay(ctx context.Context, relay *events.RedisRelay, log *slog.Logger) {
	for {
		err := relay.Run(ctx)
		if ctx.Err() != nil {
			return
		}

		log.Warn("seat relay stopped, resubscribing", slog.Any("error", err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(2 * time.Second):
		}
	}
}
