package application

import (
	"context"
	"fmt"

	"github.com/mateusmacedo/go-checkout/internal/customer/domain"
	pkgApp "github.com/mateusmacedo/go-checkout/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

type logWhenCustomerIsCreatedHandler struct {
	logger  pkgApp.AppLogger
	message string
}

func (h *logWhenCustomerIsCreatedHandler) HandleEvent(ctx context.Context, event pkgDomain.Event[domain.Customer]) error {
	pkgApp.LogInfo(ctx, h.logger, h.message, map[string]interface{}{
		"customer_id": event.Payload().ID,
	})
	return nil
}

func NewFirstLogWhenCustomerIsCreatedHandler(logger pkgApp.AppLogger) pkgApp.EventHandler {
	return pkgApp.AdaptEventHandler[domain.Customer](&logWhenCustomerIsCreatedHandler{
		logger:  logger,
		message: "Esse é o primeiro log do evento: CustomerCreated",
	})
}

func NewSecondLogWhenCustomerIsCreatedHandler(logger pkgApp.AppLogger) pkgApp.EventHandler {
	return pkgApp.AdaptEventHandler[domain.Customer](&logWhenCustomerIsCreatedHandler{
		logger:  logger,
		message: "Esse é o segundo log do evento: CustomerCreated",
	})
}

type logWhenAddressIsChangedHandler struct {
	logger pkgApp.AppLogger
}

func (h *logWhenAddressIsChangedHandler) HandleEvent(ctx context.Context, event pkgDomain.Event[domain.CustomerAddressChangedData]) error {
	data := event.Payload()
	msg := fmt.Sprintf("Endereço do cliente: %s, %s alterado para: %s", data.ID, data.Name, data.Address)
	pkgApp.LogInfo(ctx, h.logger, msg, map[string]interface{}{
		"customer_id": data.ID,
	})
	return nil
}

func NewLogWhenAddressIsChangedHandler(logger pkgApp.AppLogger) pkgApp.EventHandler {
	return pkgApp.AdaptEventHandler[domain.CustomerAddressChangedData](&logWhenAddressIsChangedHandler{logger: logger})
}

// RegisterEventHandlers liga as reações do contexto de cliente ao dispatcher.
func RegisterEventHandlers(dispatcher pkgApp.EventDispatcher, logger pkgApp.AppLogger) {
	dispatcher.Register(domain.CustomerCreatedEventName, NewFirstLogWhenCustomerIsCreatedHandler(logger))
	dispatcher.Register(domain.CustomerCreatedEventName, NewSecondLogWhenCustomerIsCreatedHandler(logger))
	dispatcher.Register(domain.CustomerAddressChangedEventName, NewLogWhenAddressIsChangedHandler(logger))
}
