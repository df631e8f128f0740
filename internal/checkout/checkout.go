package checkout

import (
	"github.com/go-chi/chi/v5"

	"github.com/mateusmacedo/go-checkout/internal/checkout/application"
	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	"github.com/mateusmacedo/go-checkout/internal/checkout/infrastructure"
	pkgApp "github.com/mateusmacedo/go-checkout/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

type CheckoutSlice struct {
	httpHandler *infrastructure.OrderHTTPHandler
}

func NewCheckoutSlice(
	placeOrderBus application.PlaceOrderBus,
	replaceItemsBus application.ReplaceOrderItemsBus,
	findOrderBus application.FindOrderBus,
	listOrdersBus application.ListOrdersBus,
	idGenerator pkgDomain.IDGenerator[string],
	logger pkgApp.AppLogger,
	dispatcher pkgApp.EventDispatcher,
	repository domain.OrderRepository,
) *CheckoutSlice {
	placeOrderBus.RegisterHandler(application.PlaceOrderCommandName, application.NewPlaceOrderHandler(dispatcher, repository, idGenerator, logger))
	replaceItemsBus.RegisterHandler(application.ReplaceOrderItemsCommandName, application.NewReplaceOrderItemsHandler(repository, logger))
	findOrderBus.RegisterHandler(application.FindOrderQueryName, application.NewFindOrderHandler(repository, logger))
	listOrdersBus.RegisterHandler(application.ListOrdersQueryName, application.NewListOrdersHandler(repository, logger))

	application.RegisterEventHandlers(dispatcher, logger)

	httpHandler := infrastructure.NewOrderHTTPHandler(placeOrderBus, replaceItemsBus, findOrderBus, listOrdersBus, idGenerator)

	return &CheckoutSlice{
		httpHandler: httpHandler,
	}
}

func (s *CheckoutSlice) RegisterRoutes(router chi.Router) {
	s.httpHandler.RegisterRoutes(router)
}
