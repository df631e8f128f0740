package application

import (
	"context"

	"github.com/mateusmacedo/go-checkout/internal/product/domain"
	pkgApp "github.com/mateusmacedo/go-checkout/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

type sendEmailWhenProductIsCreatedHandler struct {
	logger pkgApp.AppLogger
}

func (h *sendEmailWhenProductIsCreatedHandler) HandleEvent(ctx context.Context, event pkgDomain.Event[domain.ProductCreatedData]) error {
	data := event.Payload()
	pkgApp.LogInfo(ctx, h.logger, "Sending email to .....", map[string]interface{}{
		"event_name":  event.EventName(),
		"product":     data.Name,
		"price":       data.Price,
		"occurred_at": event.OccurredAt(),
	})
	return nil
}

func NewSendEmailWhenProductIsCreatedHandler(logger pkgApp.AppLogger) pkgApp.EventHandler {
	return pkgApp.AdaptEventHandler[domain.ProductCreatedData](&sendEmailWhenProductIsCreatedHandler{logger: logger})
}

// RegisterEventHandlers liga as reações do contexto de produto ao dispatcher.
func RegisterEventHandlers(dispatcher pkgApp.EventDispatcher, logger pkgApp.AppLogger) {
	dispatcher.Register(domain.ProductCreatedEventName, NewSendEmailWhenProductIsCreatedHandler(logger))
}
