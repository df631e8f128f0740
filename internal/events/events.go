package events

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	checkoutDomain "github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	customerDomain "github.com/mateusmacedo/go-checkout/internal/customer/domain"
	productDomain "github.com/mateusmacedo/go-checkout/internal/product/domain"
	pkgApp "github.com/mateusmacedo/go-checkout/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

// Names lista todos os tipos de evento publicados pela aplicação. Cada nome também é o
// tópico no broker.
func Names() []string {
	return []string{
		productDomain.ProductCreatedEventName,
		customerDomain.CustomerCreatedEventName,
		customerDomain.CustomerAddressChangedEventName,
		checkoutDomain.OrderPlacedEventName,
	}
}

type auditHandler struct {
	logger pkgApp.AppLogger
}

func (h *auditHandler) Handle(ctx context.Context, event pkgDomain.Envelope) error {
	pkgApp.LogInfo(ctx, h.logger, "Evento recebido", map[string]interface{}{
		"event_name":  event.EventName(),
		"occurred_at": event.OccurredAt().UTC().Format(time.RFC3339Nano),
		"payload":     payloadString(event.Data()),
	})
	return nil
}

func payloadString(data any) string {
	switch v := data.(type) {
	case jsoniter.RawMessage:
		return string(v)
	case []byte:
		return string(v)
	}
	if s, ok := data.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%+v", data)
}

func NewAuditHandler(logger pkgApp.AppLogger) pkgApp.EventHandler {
	return &auditHandler{logger: logger}
}

// RegisterAuditHandlers registra um único auditHandler para todos os eventos conhecidos.
func RegisterAuditHandlers(dispatcher pkgApp.EventDispatcher, logger pkgApp.AppLogger) {
	handler := NewAuditHandler(logger)
	for _, name := range Names() {
		dispatcher.Register(name, handler)
	}
}
