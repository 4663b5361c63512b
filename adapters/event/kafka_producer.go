package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/namelookup/internal/config"
	"github.com/khoahotran/namelookup/pkg/logger"
)

const (
	TopicUserEvents = "user.events"
)

type UserEventType string

const (
	EventUserRegistered UserEventType = "user.registered"
)

type UserEventPayload struct {
	EventType   UserEventType `json:"event_type"`
	UserID      string        `json:"user_id"`
	DisplayName string        `json:"display_name"`
	Email       string        `json:"email"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	UserEventsWriter messageWriter
	logger           logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	userWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicUserEvents,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{
		UserEventsWriter: userWriter,
		logger:           log,
	}, nil
}

// PublishUserEvent writes the payload keyed by user id, so every event of
// one user lands on the same partition.
func (c *KafkaProducerClient) PublishUserEvent(ctx context.Context, payload UserEventPayload) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal user event failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(payload.UserID),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(payload.EventType)},
		},
	}
	if err := c.UserEventsWriter.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s for user %s failed: %w", payload.EventType, payload.UserID, err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.UserEventsWriter != nil {
		if err := c.UserEventsWriter.Close(); err != nil {
			c.logger.Warn("Closing user events writer failed", zap.Error(err))
		}
	}
	c.logger.Info("Closed Kafka Producers")
}

// DecodeUserEvent parses a message read from TopicUserEvents.
func DecodeUserEvent(msg kafka.Message) (UserEventPayload, error) {
	var payload UserEventPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return UserEventPayload{}, fmt.Errorf("unmarshal user event at offset %d failed: %w", msg.Offset, err)
	}
	return payload, nil
}
