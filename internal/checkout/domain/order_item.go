package domain

// OrderItem é um item do pedido; não tem identidade fora do seu Order.
type OrderItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
}

func NewOrderItem(id, name string, price float64, productID string, quantity int) (OrderItem, error) {
	item := OrderItem{
		ID:        id,
		Name:      name,
		Price:     price,
		ProductID: productID,
		Quantity:  quantity,
	}
	return item, item.Validate()
}

func (i OrderItem) Validate() error {
	switch {
	case i.ID == "":
		return ErrItemIDRequired
	case i.ProductID == "":
		return ErrProductIDRequired
	case i.Quantity <= 0:
		return ErrInvalidQuantity
	case i.Price < 0:
		return ErrInvalidPrice
	}
	return nil
}

// Subtotal é preço * quantidade.
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
