package domain

import (
	"context"
	"errors"
)

var (
	ErrOrderNotFound      = errors.New("Order not found")
	ErrOrderAlreadyExists = errors.New("order already exists")
	ErrOrderIDRequired    = errors.New("order id is required")
	ErrCustomerIDRequired = errors.New("customer id is required")
	ErrOrderWithoutItems  = errors.New("order must have at least one item")
	ErrItemIDRequired     = errors.New("item id is required")
	ErrProductIDRequired  = errors.New("product id is required")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrDuplicateItem      = errors.New("item already in order")
	ErrItemNotFound       = errors.New("item not found in order")
	ErrItemConflict       = errors.New("item already belongs to another order")
)

// Order é o agregado raiz do checkout. O total acompanha os itens.
type Order struct {
	id         string
	customerID string
	items      []OrderItem
	total      float64
}

// NewOrder cria um pedido com pelo menos um item.
func NewOrder(id, customerID string, items []OrderItem) (*Order, error) {
	order := &Order{
		id:         id,
		customerID: customerID,
		items:      append([]OrderItem(nil), items...),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	order.total = order.CalculateTotal()
	return order, nil
}

// RestoreOrder reconstrói um pedido persistido confiando no total armazenado.
func RestoreOrder(id, customerID string, items []OrderItem, total float64) *Order {
	return &Order{
		id:         id,
		customerID: customerID,
		items:      append([]OrderItem(nil), items...),
		total:      total,
	}
}

func (o *Order) ID() string {
	return o.id
}

func (o *Order) CustomerID() string {
	return o.customerID
}

// Items devolve uma cópia dos itens na ordem atual.
func (o *Order) Items() []OrderItem {
	return append([]OrderItem(nil), o.items...)
}

// Total é o valor conhecido pelo agregado.
func (o *Order) Total() float64 {
	return o.total
}

// CalculateTotal soma preço * quantidade de todos os itens atuais.
func (o *Order) CalculateTotal() float64 {
	var total float64
	for _, item := range o.items {
		total += item.Subtotal()
	}
	return total
}

func (o *Order) AddItem(item OrderItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	for _, existing := range o.items {
		if existing.ID == item.ID {
			return ErrDuplicateItem
		}
	}
	o.items = append(o.items, item)
	o.total = o.CalculateTotal()
	return nil
}

// RemoveItem pode deixar o pedido vazio temporariamente; Validate impede que ele seja persistido assim.
func (o *Order) RemoveItem(itemID string) error {
	for i, item := range o.items {
		if item.ID == itemID {
			o.items = append(o.items[:i:i], o.items[i+1:]...)
			o.total = o.CalculateTotal()
			return nil
		}
	}
	return ErrItemNotFound
}

// ReplaceItems troca o conjunto inteiro de itens.
func (o *Order) ReplaceItems(items []OrderItem) error {
	candidate := &Order{id: o.id, customerID: o.customerID, items: append([]OrderItem(nil), items...)}
	if err := candidate.Validate(); err != nil {
		return err
	}
	o.items = candidate.items
	o.total = o.CalculateTotal()
	return nil
}

func (o *Order) Validate() error {
	if o.id == "" {
		return ErrOrderIDRequired
	}
	if o.customerID == "" {
		return ErrCustomerIDRequired
	}
	if len(o.items) == 0 {
		return ErrOrderWithoutItems
	}
	seen := make(map[string]struct{}, len(o.items))
	for _, item := range o.items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, dup := seen[item.ID]; dup {
			return ErrDuplicateItem
		}
		seen[item.ID] = struct{}{}
	}
	return nil
}

// OrderRepository persiste o agregado. Update substitui todos os itens e recalcula o total
// em uma única transação.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
	Find(ctx context.Context, id string) (*Order, error)
	FindAll(ctx context.Context) ([]*Order, error)
}
