package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"

	"github.com/mateusmacedo/go-checkout/internal/checkout/application"
	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const requestTimeout = 10 * time.Second

type orderResponse struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customerId"`
	Items      []domain.OrderItem `json:"items"`
	Total      float64            `json:"total"`
}

func toResponse(order *domain.Order) orderResponse {
	return orderResponse{
		ID:         order.ID(),
		CustomerID: order.CustomerID(),
		Items:      order.Items(),
		Total:      order.Total(),
	}
}

type replaceItemsRequest struct {
	Items []domain.OrderItem `json:"items"`
}

type OrderHTTPHandler struct {
	placeOrder   application.PlaceOrderBus
	replaceItems application.ReplaceOrderItemsBus
	findOrder    application.FindOrderBus
	listOrders   application.ListOrdersBus
	idGenerator  pkgDomain.IDGenerator[string]
}

func NewOrderHTTPHandler(
	placeOrder application.PlaceOrderBus,
	replaceItems application.ReplaceOrderItemsBus,
	findOrder application.FindOrderBus,
	listOrders application.ListOrdersBus,
	idGenerator pkgDomain.IDGenerator[string],
) *OrderHTTPHandler {
	return &OrderHTTPHandler{
		placeOrder:   placeOrder,
		replaceItems: replaceItems,
		findOrder:    findOrder,
		listOrders:   listOrders,
		idGenerator:  idGenerator,
	}
}

func (h *OrderHTTPHandler) HandlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var data application.PlaceOrderData
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}
	// o id é definido aqui para que o cliente possa consultar o pedido em seguida.
	data.OrderID = h.idGenerator()

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	if err := h.placeOrder.Dispatch(ctx, application.NewPlaceOrderCommand(data)); err != nil {
		handleError(w, err.Error(), statusFor(err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Order placed", "data": data})
}

func (h *OrderHTTPHandler) HandleReplaceItems(w http.ResponseWriter, r *http.Request) {
	var body replaceItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handleError(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	data := application.ReplaceOrderItemsData{OrderID: chi.URLParam(r, "orderID"), Items: body.Items}
	if err := h.replaceItems.Dispatch(ctx, application.NewReplaceOrderItemsCommand(data)); err != nil {
		handleError(w, err.Error(), statusFor(err))
		return
	}

	h.writeOrder(w, r.WithContext(ctx), data.OrderID)
}

func (h *OrderHTTPHandler) HandleFindOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.writeOrder(w, r.WithContext(ctx), chi.URLParam(r, "orderID"))
}

func (h *OrderHTTPHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	orders, err := h.listOrders.Dispatch(ctx, application.NewListOrdersQuery())
	if err != nil {
		handleError(w, err.Error(), statusFor(err))
		return
	}

	response := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toResponse(order))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *OrderHTTPHandler) writeOrder(w http.ResponseWriter, r *http.Request, orderID string) {
	order, err := h.findOrder.Dispatch(r.Context(), application.NewFindOrderQuery(application.FindOrderData{OrderID: orderID}))
	if err != nil {
		handleError(w, err.Error(), statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, toResponse(order))
}

func (h *OrderHTTPHandler) RegisterRoutes(router chi.Router) {
	router.Post("/orders", h.HandlePlaceOrder)
	router.Get("/orders", h.HandleListOrders)
	router.Get("/orders/{orderID}", h.HandleFindOrder)
	router.Put("/orders/{orderID}/items", h.HandleReplaceItems)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOrderAlreadyExists),
		errors.Is(err, domain.ErrItemConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrCustomerIDRequired),
		errors.Is(err, domain.ErrOrderWithoutItems),
		errors.Is(err, domain.ErrItemIDRequired),
		errors.Is(err, domain.ErrProductIDRequired),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrDuplicateItem):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		handleError(w, err.Error(), http.StatusInternalServerError)
	}
}

func handleError(w http.ResponseWriter, message string, statusCode int) {
	http.Error(w, message, statusCode)
}
