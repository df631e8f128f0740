package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	pkgApp "github.com/mateusmacedo/go-checkout/pkg/application"
)

type storedOrder struct {
	customerID string
	items      []domain.OrderItem
	total      float64
}

// InMemoryOrderRepository guarda cópias dos pedidos; nenhum chamador compartilha estado com o mapa.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	data   map[string]storedOrder
	logger pkgApp.AppLogger
}

func NewInMemoryOrderRepository(logger pkgApp.AppLogger) *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		data:   make(map[string]storedOrder),
		logger: logger,
	}
}

func (r *InMemoryOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[order.ID()]; exists {
		pkgApp.LogError(ctx, r.logger, "order already exists", domain.ErrOrderAlreadyExists, map[string]interface{}{
			"orderID": order.ID(),
		})
		return domain.ErrOrderAlreadyExists
	}
	if err := r.checkItemOwnership(order); err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to create order", err, map[string]interface{}{
			"orderID": order.ID(),
		})
		return err
	}

	r.data[order.ID()] = snapshot(order)
	pkgApp.LogInfo(ctx, r.logger, "order created", map[string]interface{}{
		"orderID": order.ID(),
	})

	return nil
}

func (r *InMemoryOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[order.ID()]; !exists {
		pkgApp.LogError(ctx, r.logger, "order not found", domain.ErrOrderNotFound, map[string]interface{}{
			"orderID": order.ID(),
		})
		return domain.ErrOrderNotFound
	}
	if err := r.checkItemOwnership(order); err != nil {
		pkgApp.LogError(ctx, r.logger, "failed to update order", err, map[string]interface{}{
			"orderID": order.ID(),
		})
		return err
	}

	r.data[order.ID()] = snapshot(order)
	pkgApp.LogInfo(ctx, r.logger, "order updated", map[string]interface{}{
		"orderID": order.ID(),
	})

	return nil
}

func (r *InMemoryOrderRepository) Find(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.data[id]
	if !exists {
		pkgApp.LogDebug(ctx, r.logger, "order not found", map[string]interface{}{"orderID": id})
		return nil, domain.ErrOrderNotFound
	}

	return domain.RestoreOrder(id, stored.customerID, stored.items, stored.total), nil
}

func (r *InMemoryOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*domain.Order, 0, len(r.data))
	for id, stored := range r.data {
		orders = append(orders, domain.RestoreOrder(id, stored.customerID, stored.items, stored.total))
	}

	pkgApp.LogDebug(ctx, r.logger, "orders listed", map[string]interface{}{"count": len(orders)})
	return orders, nil
}

// checkItemOwnership rejeita ids de item já gravados em outro pedido. Deve ser chamado com o lock.
func (r *InMemoryOrderRepository) checkItemOwnership(order *domain.Order) error {
	ids := make(map[string]struct{}, len(order.Items()))
	for _, item := range order.Items() {
		ids[item.ID] = struct{}{}
	}
	for id, stored := range r.data {
		if id == order.ID() {
			continue
		}
		for _, item := range stored.items {
			if _, taken := ids[item.ID]; taken {
				return fmt.Errorf("item %s: %w", item.ID, domain.ErrItemConflict)
			}
		}
	}
	return nil
}

// snapshot grava o total recalculado a partir dos itens, como o repositório gorm faz.
func snapshot(order *domain.Order) storedOrder {
	return storedOrder{
		customerID: order.CustomerID(),
		items:      order.Items(),
		total:      order.CalculateTotal(),
	}
}
