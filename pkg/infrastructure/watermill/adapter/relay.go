package adapter

import (
	"context"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	jsoniter "github.com/json-iterator/go"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	"github.com/mateusmacedo/go-checkout/pkg/domain"
	"github.com/mateusmacedo/go-checkout/pkg/infrastructure"
)

// RemoteEvent é um evento recebido do broker. Data devolve o payload JSON sem decodificar.
type RemoteEvent struct {
	name       string
	occurredAt time.Time
	payload    jsoniter.RawMessage
}

var _ domain.Envelope = RemoteEvent{}

func (e RemoteEvent) EventName() string {
	return e.name
}

func (e RemoteEvent) OccurredAt() time.Time {
	return e.occurredAt
}

func (e RemoteEvent) Data() any {
	return e.payload
}

type remoteEventMessage struct {
	Name       string              `json:"name"`
	OccurredAt time.Time           `json:"occurredAt"`
	Payload    jsoniter.RawMessage `json:"payload"`
}

// EventRelay consome os tópicos publicados pelo PublishingHandler e entrega cada evento a um
// dispatcher local.
type EventRelay struct {
	subscriber message.Subscriber
	dispatcher application.EventDispatcher
	logger     application.AppLogger
}

func NewEventRelay(subscriber message.Subscriber, dispatcher application.EventDispatcher, logger application.AppLogger) *EventRelay {
	return &EventRelay{
		subscriber: subscriber,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run assina todos os tópicos e bloqueia até ctx ser cancelado. Mensagens são sempre
// confirmadas: falhas dos manipuladores são registradas, sem reentrega. Se uma assinatura
// falhar, as já abertas são encerradas antes do retorno.
func (r *EventRelay) Run(ctx context.Context, topics ...string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for _, topic := range topics {
		messages, err := r.subscriber.Subscribe(ctx, topic)
		if err != nil {
			application.LogError(ctx, r.logger, "error subscribing to event", err, map[string]interface{}{
				"event_name": topic,
			})
			cancel()
			wg.Wait()
			return err
		}

		wg.Add(1)
		go func(topic string, messages <-chan *message.Message) {
			defer wg.Done()
			for msg := range messages {
				r.deliver(ctx, topic, msg)
			}
		}(topic, messages)
	}

	application.LogInfo(ctx, r.logger, "event relay started", map[string]interface{}{"topics": topics})
	wg.Wait()
	return nil
}

func (r *EventRelay) deliver(ctx context.Context, topic string, msg *message.Message) {
	defer msg.Ack()

	body, err := infrastructure.UnmarshalPayload[remoteEventMessage](msg.Payload)
	if err != nil {
		application.LogError(ctx, r.logger, "error unmarshalling event payload", err, map[string]interface{}{
			"event_name": topic,
			"message_id": msg.UUID,
		})
		return
	}

	name := body.Name
	if name == "" {
		name = topic
	}
	event := RemoteEvent{name: name, occurredAt: body.OccurredAt, payload: body.Payload}

	if err := r.dispatcher.Notify(ctx, event); err != nil {
		application.LogError(ctx, r.logger, "error handling event", err, map[string]interface{}{
			"event_name": name,
			"message_id": msg.UUID,
		})
		return
	}

	application.LogDebug(ctx, r.logger, "event handled", map[string]interface{}{
		"event_name": name,
		"message_id": msg.UUID,
	})
}
