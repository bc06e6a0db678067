package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wookrail/trainbooking/config"
	"github.com/wookrail/trainbooking/internal/bootstrap"
	"github.com/wookrail/trainbooking/internal/cache"
	"github.com/wookrail/trainbooking/internal/kafka"
	"github.com/wookrail/trainbooking/internal/railapi"
	"github.com/wookrail/trainbooking/internal/repository"
	"github.com/wookrail/trainbooking/internal/service/auth"
	"github.com/wookrail/trainbooking/internal/service/booking"
	"github.com/wookrail/trainbooking/internal/service/query"
	"github.com/wookrail/trainbooking/internal/service/routes"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		time.Duration(cfg.RailAPI.CacheTTLSeconds)*time.Second,
	)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	railClient := railapi.NewClient(cfg.RailAPI)

	services := bootstrap.Services{
		Auth: auth.NewAuthService(userRepo, redisCache, logger),
		Bookings: booking.NewBookingService(
			bookingRepo,
			producer,
			cfg.Kafka.BookingTopic,
			logger,
			booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		),
		Queries: query.NewQueryService(bookingRepo),
		Routes:  routes.NewRoutesService(railClient, redisCache, cfg.RailAPI.SearchLimit, logger),
	}

	if err := bootstrap.Run(ctx, cfg, services); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
