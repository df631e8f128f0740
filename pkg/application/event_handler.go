package application

import (
	"context"

	"github.com/mateusmacedo/go-checkout/pkg/domain"
)

// EventHandler reage a uma instância de evento.
type EventHandler interface {
	Handle(ctx context.Context, event domain.Envelope) error
}

// EventDispatcher mantém o registro nome do evento -> manipuladores e notifica.
type EventDispatcher interface {
	Register(eventName string, handler EventHandler)
	Unregister(eventName string, handler EventHandler)
	UnregisterAll()
	Handlers(eventName string) ([]EventHandler, bool)
	Notify(ctx context.Context, event domain.Envelope) error
}

// TypedEventHandler é um manipulador escrito contra o payload concreto de um evento.
type TypedEventHandler[T any] interface {
	HandleEvent(ctx context.Context, event domain.Event[T]) error
}

type typedEventHandler[T any] struct {
	inner TypedEventHandler[T]
}

// AdaptEventHandler expõe um TypedEventHandler como EventHandler.
// Eventos com payload de outro tipo são ignorados.
func AdaptEventHandler[T any](inner TypedEventHandler[T]) EventHandler {
	return &typedEventHandler[T]{inner: inner}
}

func (h *typedEventHandler[T]) Handle(ctx context.Context, event domain.Envelope) error {
	typed, ok := event.(domain.Event[T])
	if !ok {
		return nil
	}
	return h.inner.HandleEvent(ctx, typed)
}
