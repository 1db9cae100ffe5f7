package service

import (
	"context"
	"encoding/json"

	"bookgpt-be/internal/pkg/logger"
	"bookgpt-be/pkg/events"
	pktNats "bookgpt-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// AnalyticsTopic is the in-process topic the analytics consumer subscribes to.
const AnalyticsTopic = "CHAT_ANALYTICS"

// IPublisherService fans analytics events out to the in-process bus and,
// when configured, mirrors them to NATS. Publishing never fails a chat turn.
type IPublisherService interface {
	PublishEvent(ctx context.Context, event events.Event)
}

type publisherService struct {
	pubSub  *gochannel.GoChannel
	topic   string
	natsPub *pktNats.Publisher // optional
	log     logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, natsPub *pktNats.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub:  pubSub,
		topic:   AnalyticsTopic,
		natsPub: natsPub,
		log:     log,
	}
}

// eventEnvelope is the wire form shared by the gochannel and NATS paths.
type eventEnvelope struct {
	Type       string                 `json:"type"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt string                 `json:"occurred_at"`
}

func (p *publisherService) PublishEvent(ctx context.Context, event events.Event) {
	envelope := eventEnvelope{
		Type:       event.EventType(),
		Payload:    event.Payload(),
		OccurredAt: event.Timestamp().UTC().Format("2006-01-02T15:04:05Z07:00"),
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		p.log.Error("EVENTS", "Failed to marshal event", map[string]interface{}{"error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := p.pubSub.Publish(p.topic, msg); err != nil {
		p.log.Error("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}

	if p.natsPub != nil {
		if err := p.natsPub.Publish(ctx, event); err != nil {
			p.log.Warn("EVENTS", "Failed to mirror event to NATS", map[string]interface{}{
				"type":  event.EventType(),
				"error": err.Error(),
			})
		}
	}
}
