package application

import (
	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	pkgApp "github.com/mateusmacedo/go-checkout/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

const (
	FindOrderQueryName  = "FindOrder"
	ListOrdersQueryName = "ListOrders"
)

type FindOrderData struct {
	OrderID string
}

type findOrderQuery struct {
	data FindOrderData
}

func (q findOrderQuery) QueryName() string {
	return FindOrderQueryName
}

func (q findOrderQuery) Payload() FindOrderData {
	return q.data
}

func NewFindOrderQuery(data FindOrderData) pkgDomain.Query[FindOrderData] {
	return findOrderQuery{data: data}
}

type ListOrdersData struct{}

type listOrdersQuery struct{}

func (q listOrdersQuery) QueryName() string {
	return ListOrdersQueryName
}

func (q listOrdersQuery) Payload() ListOrdersData {
	return ListOrdersData{}
}

func NewListOrdersQuery() pkgDomain.Query[ListOrdersData] {
	return listOrdersQuery{}
}

type (
	FindOrderBus  = pkgApp.QueryBus[pkgDomain.Query[FindOrderData], FindOrderData, *domain.Order]
	ListOrdersBus = pkgApp.QueryBus[pkgDomain.Query[ListOrdersData], ListOrdersData, []*domain.Order]
)
