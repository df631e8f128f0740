package adapter

import (
	"context"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	"github.com/mateusmacedo/go-checkout/pkg/domain"
	"github.com/mateusmacedo/go-checkout/pkg/infrastructure"
)

const (
	MetadataEventName  = "event_name"
	MetadataOccurredAt = "occurred_at"
)

// EventMessage é o corpo JSON publicado no broker.
type EventMessage struct {
	Name       string      `json:"name"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

type publishingHandler struct {
	publisher message.Publisher
	logger    application.AppLogger
}

// NewPublishingHandler cria um manipulador que repassa qualquer evento para o publisher,
// usando o nome do evento como tópico.
func NewPublishingHandler(publisher message.Publisher, logger application.AppLogger) application.EventHandler {
	return &publishingHandler{
		publisher: publisher,
		logger:    logger,
	}
}

func (h *publishingHandler) Handle(ctx context.Context, event domain.Envelope) error {
	eventName := event.EventName()

	payload, err := infrastructure.MarshalPayload(EventMessage{
		Name:       eventName,
		OccurredAt: event.OccurredAt(),
		Payload:    event.Data(),
	})
	if err != nil {
		application.LogError(ctx, h.logger, "error marshalling event payload", err, map[string]interface{}{
			"event_name": eventName,
		})
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(MetadataEventName, eventName)
	msg.Metadata.Set(MetadataOccurredAt, event.OccurredAt().UTC().Format(time.RFC3339Nano))
	msg.SetContext(ctx)

	if err := h.publisher.Publish(eventName, msg); err != nil {
		application.LogError(ctx, h.logger, "error publishing event", err, map[string]interface{}{
			"event_name": eventName,
		})
		return err
	}

	application.LogInfo(ctx, h.logger, "event published", map[string]interface{}{
		"event_name": eventName,
		"message_id": msg.UUID,
	})
	return nil
}
