package infrastructure

import (
	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
)

// OrderModel é a linha da tabela orders.
type OrderModel struct {
	ID         string           `gorm:"primaryKey"`
	CustomerID string           `gorm:"column:customer_id;not null;index"`
	Total      float64          `gorm:"not null"`
	Items      []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel é a linha da tabela order_items. Position preserva a ordem dos itens.
type OrderItemModel struct {
	ID        string  `gorm:"primaryKey"`
	OrderID   string  `gorm:"column:order_id;not null;index"`
	Position  int     `gorm:"not null"`
	ProductID string  `gorm:"column:product_id;not null"`
	Name      string  `gorm:"not null"`
	Price     float64 `gorm:"not null"`
	Quantity  int     `gorm:"not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

func toItemModels(order *domain.Order) []OrderItemModel {
	items := order.Items()
	models := make([]OrderItemModel, 0, len(items))
	for i, it := range items {
		models = append(models, OrderItemModel{
			ID:        it.ID,
			OrderID:   order.ID(),
			Position:  i,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}
	return models
}

func toEntity(model OrderModel) *domain.Order {
	items := make([]domain.OrderItem, 0, len(model.Items))
	for _, it := range model.Items {
		items = append(items, domain.OrderItem{
			ID:        it.ID,
			Name:      it.Name,
			Price:     it.Price,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	return domain.RestoreOrder(model.ID, model.CustomerID, items, model.Total)
}
