package application

import (
	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	pkgApp "github.com/mateusmacedo/go-checkout/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

const (
	PlaceOrderCommandName        = "PlaceOrder"
	ReplaceOrderItemsCommandName = "ReplaceOrderItems"
)

// PlaceOrderData contém os dados necessários para registrar um pedido. OrderID vazio é gerado
// pelo manipulador.
type PlaceOrderData struct {
	OrderID    string             `json:"orderId,omitempty"`
	CustomerID string             `json:"customerId"`
	Items      []domain.OrderItem `json:"items"`
}

type placeOrderCommand struct {
	data PlaceOrderData
}

func (c placeOrderCommand) CommandName() string {
	return PlaceOrderCommandName
}

func (c placeOrderCommand) Payload() PlaceOrderData {
	return c.data
}

func NewPlaceOrderCommand(data PlaceOrderData) pkgDomain.Command[PlaceOrderData] {
	return placeOrderCommand{data: data}
}

// ReplaceOrderItemsData troca todos os itens de um pedido existente.
type ReplaceOrderItemsData struct {
	OrderID string             `json:"orderId"`
	Items   []domain.OrderItem `json:"items"`
}

type replaceOrderItemsCommand struct {
	data ReplaceOrderItemsData
}

func (c replaceOrderItemsCommand) CommandName() string {
	return ReplaceOrderItemsCommandName
}

func (c replaceOrderItemsCommand) Payload() ReplaceOrderItemsData {
	return c.data
}

func NewReplaceOrderItemsCommand(data ReplaceOrderItemsData) pkgDomain.Command[ReplaceOrderItemsData] {
	return replaceOrderItemsCommand{data: data}
}

type (
	PlaceOrderBus        = pkgApp.CommandBus[pkgDomain.Command[PlaceOrderData], PlaceOrderData]
	ReplaceOrderItemsBus = pkgApp.CommandBus[pkgDomain.Command[ReplaceOrderItemsData], ReplaceOrderItemsData]
)
