package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/wookrail/trainbooking/config"
	"github.com/wookrail/trainbooking/internal/cache"
	"github.com/wookrail/trainbooking/internal/email"
	"github.com/wookrail/trainbooking/internal/kafka"
	"github.com/wookrail/trainbooking/internal/railapi"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisCache := cache.NewRedisCache(cfg.Redis,
		time.Duration(cfg.Session.TTLMinutes)*time.Minute,
		time.Duration(cfg.RailAPI.CacheTTLSeconds)*time.Second,
	)
	railClient := railapi.NewClient(cfg.RailAPI)
	routesService := routes.NewRoutesService(railClient, redisCache, cfg.RailAPI.SearchLimit, logger)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(logger)

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.BookingEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Warn("decode booking event", zap.Error(err))
				return nil
			}
			return sender.Send(ctx, event)
		}); err != nil {
			logger.Warn("consumer stopped", zap.Error(err))
		}
	}()

	refreshTicker := time.NewTicker(time.Duration(cfg.Worker.RouteRefreshMinutes) * time.Minute)
	defer refreshTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-refreshTicker.C:
			count, err := routesService.RefreshTimetable(ctx)
			if err != nil {
				logger.Warn("refresh timetable", zap.Error(err))
				continue
			}
			logger.Info("timetable refreshed", zap.Int("records", count))
		case s := <-sig:
			logger.Info("shutting down", zap.String("signal", s.String()))
			return
		}
	}
}
