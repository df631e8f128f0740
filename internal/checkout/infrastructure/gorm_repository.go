package infrastructure

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	"github.com/mateusmacedo/go-checkout/pkg/application"
)

type gormOrderRepository struct {
	db     *gorm.DB
	logger application.AppLogger
}

// NewGormOrderRepository migra as tabelas orders e order_items e devolve o repositório.
func NewGormOrderRepository(db *gorm.DB, logger application.AppLogger) (domain.OrderRepository, error) {
	if err := db.AutoMigrate(&OrderModel{}, &OrderItemModel{}); err != nil {
		return nil, fmt.Errorf("migrate orders: %w", err)
	}

	return &gormOrderRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := orderExists(tx, order.ID())
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrOrderAlreadyExists
		}

		row := OrderModel{
			ID:         order.ID(),
			CustomerID: order.CustomerID(),
			Total:      order.CalculateTotal(),
		}
		if err := tx.Omit("Items").Create(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrOrderAlreadyExists
			}
			return fmt.Errorf("insert order: %w", err)
		}

		if err := insertItems(tx, order); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		application.LogError(ctx, r.logger, "failed to create order", err, map[string]interface{}{
			"orderID": order.ID(),
		})
		return err
	}

	application.LogInfo(ctx, r.logger, "order created", map[string]interface{}{
		"orderID": order.ID(),
		"items":   len(order.Items()),
	})
	return nil
}

// Update apaga os itens armazenados, insere os atuais e recalcula o total. Qualquer falha
// desfaz as três etapas.
func (r *gormOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}

	total := order.CalculateTotal()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := orderExists(tx, order.ID())
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrOrderNotFound
		}

		if err := tx.Where("order_id = ?", order.ID()).Delete(&OrderItemModel{}).Error; err != nil {
			return fmt.Errorf("delete order items: %w", err)
		}

		if err := insertItems(tx, order); err != nil {
			return err
		}

		if err := tx.Model(&OrderModel{}).Where("id = ?", order.ID()).Update("total", total).Error; err != nil {
			return fmt.Errorf("update order total: %w", err)
		}
		return nil
	})
	if err != nil {
		application.LogError(ctx, r.logger, "failed to update order", err, map[string]interface{}{
			"orderID": order.ID(),
		})
		return err
	}

	application.LogInfo(ctx, r.logger, "order updated", map[string]interface{}{
		"orderID": order.ID(),
		"total":   total,
	})
	return nil
}

func (r *gormOrderRepository) Find(ctx context.Context, id string) (*domain.Order, error) {
	var row OrderModel
	err := r.withItems(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		application.LogDebug(ctx, r.logger, "order not found", map[string]interface{}{"orderID": id})
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		application.LogError(ctx, r.logger, "failed to find order", err, map[string]interface{}{"orderID": id})
		return nil, fmt.Errorf("find order %s: %w", id, err)
	}

	return toEntity(row), nil
}

func (r *gormOrderRepository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	var rows []OrderModel
	if err := r.withItems(ctx).Find(&rows).Error; err != nil {
		application.LogError(ctx, r.logger, "failed to list orders", err, nil)
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]*domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, toEntity(row))
	}
	return orders, nil
}

func (r *gormOrderRepository) withItems(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func orderExists(tx *gorm.DB, id string) (bool, error) {
	var count int64
	if err := tx.Model(&OrderModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check order %s: %w", id, err)
	}
	return count > 0, nil
}

// insertItems grava os itens na ordem atual. Um id de item já usado por outro pedido vira
// domain.ErrItemConflict.
func insertItems(tx *gorm.DB, order *domain.Order) error {
	items := toItemModels(order)
	if err := tx.Create(&items).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("insert order items: %w", domain.ErrItemConflict)
		}
		return fmt.Errorf("insert order items: %w", err)
	}
	return nil
}
