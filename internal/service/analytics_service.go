package service

import (
	"context"
	"encoding/json"
	"time"

	"bookgpt-be/internal/entity"
	"bookgpt-be/internal/pkg/logger"
	"bookgpt-be/internal/repository/implementation"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// IAnalyticsService consumes chat analytics events off the in-process bus
// and persists them for the admin dashboard.
type IAnalyticsService interface {
	Consume(ctx context.Context) error
}

type analyticsService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	repo      *implementation.AnalyticsRepository
	log       logger.ILogger
}

func NewAnalyticsService(
	pubSub *gochannel.GoChannel,
	topicName string,
	repo *implementation.AnalyticsRepository,
	log logger.ILogger,
) IAnalyticsService {
	return &analyticsService{
		pubSub:    pubSub,
		topicName: topicName,
		repo:      repo,
		log:       log,
	}
}

func (as *analyticsService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (as *analyticsService) processMessage(ctx context.Context, msg *message.Message) {
	var envelope eventEnvelope
	if err := json.Unmarshal(msg.Payload, &envelope); err != nil {
		as.log.Error("ANALYTICS", "Failed to unmarshal event envelope", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	payload, err := json.Marshal(envelope.Payload)
	if err != nil {
		as.log.Error("ANALYTICS", "Failed to re-marshal event payload", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack()
		return
	}

	createdAt := time.Now()
	if ts, parseErr := time.Parse(time.RFC3339, envelope.OccurredAt); parseErr == nil {
		createdAt = ts
	}

	record := &entity.AnalyticsEvent{
		Id:        uuid.New(),
		EventType: envelope.Type,
		Payload:   datatypes.JSON(payload),
		CreatedAt: createdAt,
	}

	if err := as.repo.Create(ctx, record); err != nil {
		as.log.Error("ANALYTICS", "Failed to persist analytics event", map[string]interface{}{
			"event_type": envelope.Type,
			"error":      err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
