package domain

import (
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

const ProductCreatedEventName = "ProductCreatedEvent"

type ProductCreatedData struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type ProductCreatedEvent struct {
	pkgDomain.BaseEvent[ProductCreatedData]
}

func NewProductCreatedEvent(data ProductCreatedData) ProductCreatedEvent {
	return ProductCreatedEvent{BaseEvent: pkgDomain.NewBaseEvent(ProductCreatedEventName, data)}
}
