package application

import (
	"context"

	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	pkgApp "github.com/mateusmacedo/go-checkout/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

type placeOrderHandler struct {
	dispatcher  pkgApp.EventDispatcher
	repository  domain.OrderRepository
	idGenerator pkgDomain.IDGenerator[string]
	logger      pkgApp.AppLogger
}

func (h *placeOrderHandler) Handle(ctx context.Context, command pkgDomain.Command[PlaceOrderData]) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "Contexto cancelado", ctx.Err(), nil)
		return ctx.Err()
	}

	data := command.Payload()
	orderID := data.OrderID
	if orderID == "" {
		orderID = h.idGenerator()
	}

	order, err := domain.NewOrder(orderID, data.CustomerID, data.Items)
	if err != nil {
		pkgApp.LogError(ctx, h.logger, "Pedido inválido", err, map[string]interface{}{"customer_id": data.CustomerID})
		return err
	}

	h.logger.Info(ctx, "Salvando pedido", map[string]interface{}{"order_id": order.ID()})
	if err := h.repository.Create(ctx, order); err != nil {
		pkgApp.LogError(ctx, h.logger, "Erro ao salvar pedido", err, map[string]interface{}{"order_id": order.ID()})
		return err
	}

	// o pedido já está persistido; falhas das reações são registradas, não desfazem a criação.
	if err := h.dispatcher.Notify(ctx, domain.NewOrderPlacedEvent(order)); err != nil {
		pkgApp.LogError(ctx, h.logger, "Erro ao notificar pedido registrado", err, map[string]interface{}{"order_id": order.ID()})
	}

	pkgApp.LogInfo(ctx, h.logger, "Pedido salvo com sucesso", map[string]interface{}{
		"order_id": order.ID(),
		"total":    order.Total(),
	})
	return nil
}

func NewPlaceOrderHandler(dispatcher pkgApp.EventDispatcher, repo domain.OrderRepository, idGenerator pkgDomain.IDGenerator[string], logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[PlaceOrderData], PlaceOrderData] {
	return &placeOrderHandler{
		dispatcher:  dispatcher,
		repository:  repo,
		idGenerator: idGenerator,
		logger:      logger,
	}
}

type replaceOrderItemsHandler struct {
	repository domain.OrderRepository
	logger     pkgApp.AppLogger
}

func (h *replaceOrderItemsHandler) Handle(ctx context.Context, command pkgDomain.Command[ReplaceOrderItemsData]) error {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "Contexto cancelado", ctx.Err(), nil)
		return ctx.Err()
	}

	data := command.Payload()
	order, err := h.repository.Find(ctx, data.OrderID)
	if err != nil {
		return err
	}

	if err := order.ReplaceItems(data.Items); err != nil {
		pkgApp.LogError(ctx, h.logger, "Itens inválidos", err, map[string]interface{}{"order_id": data.OrderID})
		return err
	}

	if err := h.repository.Update(ctx, order); err != nil {
		pkgApp.LogError(ctx, h.logger, "Erro ao atualizar pedido", err, map[string]interface{}{"order_id": data.OrderID})
		return err
	}

	pkgApp.LogInfo(ctx, h.logger, "Itens do pedido substituídos", map[string]interface{}{
		"order_id": data.OrderID,
		"total":    order.Total(),
	})
	return nil
}

func NewReplaceOrderItemsHandler(repo domain.OrderRepository, logger pkgApp.AppLogger) pkgApp.CommandHandler[pkgDomain.Command[ReplaceOrderItemsData], ReplaceOrderItemsData] {
	return &replaceOrderItemsHandler{
		repository: repo,
		logger:     logger,
	}
}

type findOrderHandler struct {
	repository domain.OrderRepository
	logger     pkgApp.AppLogger
}

func (h *findOrderHandler) Handle(ctx context.Context, query pkgDomain.Query[FindOrderData]) (*domain.Order, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "Contexto cancelado", ctx.Err(), nil)
		return nil, ctx.Err()
	}

	data := query.Payload()
	order, err := h.repository.Find(ctx, data.OrderID)
	if err != nil {
		return nil, err
	}

	pkgApp.LogDebug(ctx, h.logger, "Pedido encontrado", map[string]interface{}{"order_id": order.ID()})
	return order, nil
}

func NewFindOrderHandler(repo domain.OrderRepository, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[FindOrderData], FindOrderData, *domain.Order] {
	return &findOrderHandler{
		repository: repo,
		logger:     logger,
	}
}

type listOrdersHandler struct {
	repository domain.OrderRepository
	logger     pkgApp.AppLogger
}

func (h *listOrdersHandler) Handle(ctx context.Context, _ pkgDomain.Query[ListOrdersData]) ([]*domain.Order, error) {
	if ctx.Err() != nil {
		pkgApp.LogError(ctx, h.logger, "Contexto cancelado", ctx.Err(), nil)
		return nil, ctx.Err()
	}

	orders, err := h.repository.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	pkgApp.LogDebug(ctx, h.logger, "Pedidos listados", map[string]interface{}{"count": len(orders)})
	return orders, nil
}

func NewListOrdersHandler(repo domain.OrderRepository, logger pkgApp.AppLogger) pkgApp.QueryHandler[pkgDomain.Query[ListOrdersData], ListOrdersData, []*domain.Order] {
	return &listOrdersHandler{
		repository: repo,
		logger:     logger,
	}
}

type logWhenOrderIsPlacedHandler struct {
	logger pkgApp.AppLogger
}

func (h *logWhenOrderIsPlacedHandler) HandleEvent(ctx context.Context, event pkgDomain.Event[domain.OrderPlacedData]) error {
	data := event.Payload()
	pkgApp.LogInfo(ctx, h.logger, "Pedido registrado", map[string]interface{}{
		"order_id":    data.OrderID,
		"customer_id": data.CustomerID,
		"total":       data.Total,
		"item_count":  data.ItemCount,
	})
	return nil
}

func NewLogWhenOrderIsPlacedHandler(logger pkgApp.AppLogger) pkgApp.EventHandler {
	return pkgApp.AdaptEventHandler[domain.OrderPlacedData](&logWhenOrderIsPlacedHandler{logger: logger})
}

// RegisterEventHandlers liga as reações do checkout ao dispatcher.
func RegisterEventHandlers(dispatcher pkgApp.EventDispatcher, logger pkgApp.AppLogger) {
	dispatcher.Register(domain.OrderPlacedEventName, NewLogWhenOrderIsPlacedHandler(logger))
}
