package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/namelookup/adapters/event"
	"github.com/khoahotran/namelookup/adapters/persistence"
	registrationUC "github.com/khoahotran/namelookup/internal/application/usecase/registration"
	"github.com/khoahotran/namelookup/internal/config"
	"github.com/khoahotran/namelookup/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting user sync worker...", zap.String("store", cfg.Store.Driver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Record store
	userStore, closeStore, err := persistence.OpenUserStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot open user store", err)
	}
	defer closeStore()

	// Worker Use Case
	processUserEventUC := registrationUC.NewProcessUserEventUseCase(userStore, appLogger)

	// Kafka Consumer
	userConsumer := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    event.TopicUserEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer userConsumer.Close()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicUserEvents), zap.String("group_id", cfg.Kafka.GroupID))

	for {
		msg, err := userConsumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		payload, err := event.DecodeUserEvent(msg)
		if err != nil {
			appLogger.Warn("Undecodable user event, skip.", zap.Error(err), zap.Int64("offset", msg.Offset))
			commitMessage(ctx, userConsumer, msg, appLogger)
			continue
		}

		if _, err := processUserEventUC.Execute(ctx, payload); err != nil {
			// stop without committing; the group redelivers it on restart
			appLogger.Error("Failed to process user event", err, zap.String("user_id", payload.UserID))
			return
		}

		commitMessage(ctx, userConsumer, msg, appLogger)
	}
}

func commitMessage(ctx context.Context, consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(ctx, msg); err != nil {
		log.Error("Failed to commit message", err, zap.Int64("offset", msg.Offset))
	}
}
