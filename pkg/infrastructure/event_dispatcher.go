package infrastructure

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/multierr"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	"github.com/mateusmacedo/go-checkout/pkg/domain"
)

// eventDispatcher notifica os manipuladores de forma síncrona, na ordem de registro.
type eventDispatcher struct {
	handlers map[string][]application.EventHandler
	mu       sync.RWMutex
	logger   application.AppLogger
}

// NewEventDispatcher cria um dispatcher vazio.
func NewEventDispatcher(logger application.AppLogger) application.EventDispatcher {
	return &eventDispatcher{
		handlers: make(map[string][]application.EventHandler),
		logger:   logger,
	}
}

// Register adiciona o manipulador ao final da lista do evento. Duplicatas são mantidas.
func (d *eventDispatcher) Register(eventName string, handler application.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventName] = append(d.handlers[eventName], handler)
}

// Unregister remove a primeira ocorrência do manipulador. A chave permanece mesmo com a lista vazia.
func (d *eventDispatcher) Unregister(eventName string, handler application.EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()

	handlers, found := d.handlers[eventName]
	if !found {
		return
	}

	for i, h := range handlers {
		if sameHandler(h, handler) {
			remaining := make([]application.EventHandler, 0, len(handlers)-1)
			remaining = append(remaining, handlers[:i]...)
			remaining = append(remaining, handlers[i+1:]...)
			d.handlers[eventName] = remaining
			return
		}
	}
}

// UnregisterAll descarta o registro inteiro.
func (d *eventDispatcher) UnregisterAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers = make(map[string][]application.EventHandler)
}

// Handlers devolve uma cópia da lista e se o evento está presente no registro.
func (d *eventDispatcher) Handlers(eventName string) ([]application.EventHandler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	handlers, found := d.handlers[eventName]
	if !found {
		return nil, false
	}
	return append([]application.EventHandler{}, handlers...), true
}

// Notify executa todos os manipuladores do evento, mesmo quando um deles falha.
// As falhas são combinadas no erro retornado.
func (d *eventDispatcher) Notify(ctx context.Context, event domain.Envelope) error {
	eventName := event.EventName()

	handlers, found := d.Handlers(eventName)
	if !found || len(handlers) == 0 {
		application.LogDebug(ctx, d.logger, "no handler registered for event", map[string]interface{}{
			"event_name": eventName,
		})
		return nil
	}

	var errs error
	for i, handler := range handlers {
		if err := d.invoke(ctx, handler, event); err != nil {
			application.LogError(ctx, d.logger, "error handling event", err, map[string]interface{}{
				"event_name": eventName,
				"handler":    fmt.Sprintf("%T", handler),
				"position":   i,
			})
			errs = multierr.Append(errs, err)
		}
	}

	application.LogDebug(ctx, d.logger, "event notified", map[string]interface{}{
		"event_name": eventName,
		"handlers":   len(handlers),
		"failures":   len(multierr.Errors(errs)),
	})
	return errs
}

func (d *eventDispatcher) invoke(ctx context.Context, handler application.EventHandler, event domain.Envelope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("event handler %T panicked: %v", handler, r)
		}
	}()
	return handler.Handle(ctx, event)
}

// sameHandler compara manipuladores sem entrar em pânico com tipos não comparáveis.
func sameHandler(a, b application.EventHandler) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
