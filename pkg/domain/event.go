package domain

import "time"

// Envelope é a visão de um evento independente do formato do payload.
// O dispatcher roteia apenas por EventName.
type Envelope interface {
	EventName() string
	OccurredAt() time.Time
	Data() any
}

// Event representa um evento no sistema.
type Event[T any] interface {
	Envelope
	Payload() T
}

// BaseEvent carrega o instante de ocorrência e o payload de um evento concreto.
type BaseEvent[T any] struct {
	name       string
	occurredAt time.Time
	payload    T
}

// NewBaseEvent cria o envelope registrando o instante atual.
func NewBaseEvent[T any](name string, payload T) BaseEvent[T] {
	return BaseEvent[T]{
		name:       name,
		occurredAt: time.Now(),
		payload:    payload,
	}
}

func (e BaseEvent[T]) EventName() string {
	return e.name
}

func (e BaseEvent[T]) OccurredAt() time.Time {
	return e.occurredAt
}

func (e BaseEvent[T]) Payload() T {
	return e.payload
}

func (e BaseEvent[T]) Data() any {
	return e.payload
}
