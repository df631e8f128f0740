package domain

import (
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

const (
	CustomerCreatedEventName        = "CustomerCreatedEvent"
	CustomerAddressChangedEventName = "CustomerAddressChangedEvent"
)

type CustomerCreatedEvent struct {
	pkgDomain.BaseEvent[Customer]
}

func NewCustomerCreatedEvent(customer Customer) CustomerCreatedEvent {
	return CustomerCreatedEvent{BaseEvent: pkgDomain.NewBaseEvent(CustomerCreatedEventName, customer)}
}

type CustomerAddressChangedData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type CustomerAddressChangedEvent struct {
	pkgDomain.BaseEvent[CustomerAddressChangedData]
}

func NewCustomerAddressChangedEvent(data CustomerAddressChangedData) CustomerAddressChangedEvent {
	return CustomerAddressChangedEvent{BaseEvent: pkgDomain.NewBaseEvent(CustomerAddressChangedEventName, data)}
}
