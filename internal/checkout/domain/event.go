package domain

import (
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

const OrderPlacedEventName = "OrderPlacedEvent"

type OrderPlacedData struct {
	OrderID    string  `json:"orderId"`
	CustomerID string  `json:"customerId"`
	Total      float64 `json:"total"`
	ItemCount  int     `json:"itemCount"`
}

type OrderPlacedEvent struct {
	pkgDomain.BaseEvent[OrderPlacedData]
}

func NewOrderPlacedEvent(order *Order) OrderPlacedEvent {
	return OrderPlacedEvent{BaseEvent: pkgDomain.NewBaseEvent(OrderPlacedEventName, OrderPlacedData{
		OrderID:    order.ID(),
		CustomerID: order.CustomerID(),
		Total:      order.Total(),
		ItemCount:  len(order.items),
	})}
}
