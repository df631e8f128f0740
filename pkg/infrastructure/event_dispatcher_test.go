package infrastructure_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	"github.com/mateusmacedo/go-checkout/pkg/domain"
	"github.com/mateusmacedo/go-checkout/pkg/infrastructure"
	zapAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/zaplogger/adapter"
)

const (
	productCreated  = "ProductCreatedEvent"
	customerCreated = "CustomerCreatedEvent"
)

type recordingHandler struct {
	name  string
	calls *[]string
	err   error
}

func (h *recordingHandler) Handle(_ context.Context, event domain.Envelope) error {
	*h.calls = append(*h.calls, h.name+":"+event.EventName())
	return h.err
}

type panickingHandler struct{}

func (panickingHandler) Handle(context.Context, domain.Envelope) error {
	panic("boom")
}

func newDispatcher() application.EventDispatcher {
	return infrastructure.NewEventDispatcher(zapAdapter.NewNopAppLogger())
}

func TestEventDispatcher_Register(t *testing.T) {
	dispatcher := newDispatcher()
	var calls []string
	first := &recordingHandler{name: "first", calls: &calls}
	second := &recordingHandler{name: "second", calls: &calls}

	dispatcher.Register(productCreated, first)

	handlers, found := dispatcher.Handlers(productCreated)
	require.True(t, found)
	require.Len(t, handlers, 1)
	assert.Same(t, first, handlers[0])

	dispatcher.Register(productCreated, second)

	handlers, _ = dispatcher.Handlers(productCreated)
	require.Len(t, handlers, 2)
	assert.Same(t, first, handlers[0])
	assert.Same(t, second, handlers[1])
}

func TestEventDispatcher_Unregister_LeavesEmptyList(t *testing.T) {
	dispatcher := newDispatcher()
	var calls []string
	handler := &recordingHandler{name: "h", calls: &calls}

	dispatcher.Register(productCreated, handler)
	dispatcher.Unregister(productCreated, handler)

	handlers, found := dispatcher.Handlers(productCreated)
	assert.True(t, found)
	assert.Empty(t, handlers)

	_, found = dispatcher.Handlers(customerCreated)
	assert.False(t, found)
}

func TestEventDispatcher_Unregister_RemovesFirstMatchOnly(t *testing.T) {
	dispatcher := newDispatcher()
	var calls []string
	handler := &recordingHandler{name: "h", calls: &calls}
	other := &recordingHandler{name: "o", calls: &calls}

	dispatcher.Register(productCreated, handler)
	dispatcher.Register(productCreated, other)
	dispatcher.Register(productCreated, handler)

	dispatcher.Unregister(productCreated, handler)

	handlers, _ := dispatcher.Handlers(productCreated)
	require.Len(t, handlers, 2)
	assert.Same(t, other, handlers[0])
	assert.Same(t, handler, handlers[1])
}

func TestEventDispatcher_Unregister_UnknownIsNoop(t *testing.T) {
	dispatcher := newDispatcher()
	var calls []string
	handler := &recordingHandler{name: "h", calls: &calls}
	stranger := &recordingHandler{name: "s", calls: &calls}

	assert.NotPanics(t, func() {
		dispatcher.Unregister(productCreated, handler)
	})
	_, found := dispatcher.Handlers(productCreated)
	assert.False(t, found)

	dispatcher.Register(productCreated, handler)
	dispatcher.Unregister(productCreated, stranger)

	handlers, _ := dispatcher.Handlers(productCreated)
	assert.Len(t, handlers, 1)
}

func TestEventDispatcher_UnregisterAll_RemovesKeys(t *testing.T) {
	dispatcher := newDispatcher()
	var calls []string
	handler := &recordingHandler{name: "h", calls: &calls}

	dispatcher.Register(productCreated, handler)
	dispatcher.Register(customerCreated, handler)

	dispatcher.UnregisterAll()

	_, found := dispatcher.Handlers(productCreated)
	assert.False(t, found)
	_, found = dispatcher.Handlers(customerCreated)
	assert.False(t, found)
}

func TestEventDispatcher_Notify_OrderAndCount(t *testing.T) {
	dispatcher := newDispatcher()
	var calls []string
	dispatcher.Register(customerCreated, &recordingHandler{name: "h1", calls: &calls})
	dispatcher.Register(customerCreated, &recordingHandler{name: "h2", calls: &calls})

	err := dispatcher.Notify(context.Background(), domain.NewBaseEvent(customerCreated, "payload"))

	require.NoError(t, err)
	assert.Equal(t, []string{"h1:" + customerCreated, "h2:" + customerCreated}, calls)
}

func TestEventDispatcher_Notify_SameHandlerTwice(t *testing.T) {
	dispatcher := newDispatcher()
	var calls []string
	handler := &recordingHandler{name: "h", calls: &calls}
	dispatcher.Register(productCreated, handler)
	dispatcher.Register(productCreated, handler)

	require.NoError(t, dispatcher.Notify(context.Background(), domain.NewBaseEvent(productCreated, 1)))

	assert.Len(t, calls, 2)
}

func TestEventDispatcher_Notify_KindIsolation(t *testing.T) {
	dispatcher := newDispatcher()
	var calls []string
	dispatcher.Register(productCreated, &recordingHandler{name: "product", calls: &calls})
	dispatcher.Register(customerCreated, &recordingHandler{name: "customer", calls: &calls})

	require.NoError(t, dispatcher.Notify(context.Background(), domain.NewBaseEvent(customerCreated, "x")))

	assert.Equal(t, []string{"customer:" + customerCreated}, calls)
}

func TestEventDispatcher_Notify_NoHandlersIsNoop(t *testing.T) {
	dispatcher := newDispatcher()

	assert.NoError(t, dispatcher.Notify(context.Background(), domain.NewBaseEvent(productCreated, "x")))
}

func TestEventDispatcher_Notify_AttemptsEveryHandler(t *testing.T) {
	dispatcher := newDispatcher()
	var calls []string
	errFirst := errors.New("first failed")
	dispatcher.Register(productCreated, &recordingHandler{name: "h1", calls: &calls, err: errFirst})
	dispatcher.Register(productCreated, panickingHandler{})
	dispatcher.Register(productCreated, &recordingHandler{name: "h3", calls: &calls})

	err := dispatcher.Notify(context.Background(), domain.NewBaseEvent(productCreated, "x"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errFirst)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, []string{"h1:" + productCreated, "h3:" + productCreated}, calls)
}

type priceChanged struct {
	Price float64
}

type typedRecorder struct {
	seen []float64
}

func (h *typedRecorder) HandleEvent(_ context.Context, event domain.Event[priceChanged]) error {
	h.seen = append(h.seen, event.Payload().Price)
	return nil
}

func TestEventDispatcher_TypedHandler(t *testing.T) {
	dispatcher := newDispatcher()
	recorder := &typedRecorder{}
	adapted := application.AdaptEventHandler[priceChanged](recorder)
	dispatcher.Register("PriceChanged", adapted)

	require.NoError(t, dispatcher.Notify(context.Background(), domain.NewBaseEvent("PriceChanged", priceChanged{Price: 9.5})))
	require.NoError(t, dispatcher.Notify(context.Background(), domain.NewBaseEvent("PriceChanged", "wrong payload")))

	assert.Equal(t, []float64{9.5}, recorder.seen)

	dispatcher.Unregister("PriceChanged", adapted)
	handlers, _ := dispatcher.Handlers("PriceChanged")
	assert.Empty(t, handlers)
}
