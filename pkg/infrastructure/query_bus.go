package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	"github.com/mateusmacedo/go-checkout/pkg/domain"
)

type simpleQueryBus[Q domain.Query[D], D any, R any] struct {
	handlers map[string]application.QueryHandler[Q, D, R]
	mu       sync.RWMutex
	logger   application.AppLogger
}

func NewSimpleQueryBus[Q domain.Query[D], D any, R any](logger application.AppLogger) application.QueryBus[Q, D, R] {
	return &simpleQueryBus[Q, D, R]{
		handlers: make(map[string]application.QueryHandler[Q, D, R]),
		logger:   logger,
	}
}

func (bus *simpleQueryBus[Q, D, R]) RegisterHandler(queryName string, handler application.QueryHandler[Q, D, R]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[queryName] = handler
}

// Dispatch executa o manipulador em uma goroutine para respeitar o cancelamento do contexto.
func (bus *simpleQueryBus[Q, D, R]) Dispatch(ctx context.Context, query Q) (R, error) {
	queryName := query.QueryName()

	bus.mu.RLock()
	handler, found := bus.handlers[queryName]
	bus.mu.RUnlock()

	var zero R
	if !found {
		return zero, fmt.Errorf("%w: %s", application.ErrNoQueryHandler, queryName)
	}

	type outcome struct {
		result R
		err    error
	}
	done := make(chan outcome, 1)

	go func() {
		result, err := handler.Handle(ctx, query)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-ctx.Done():
		application.LogError(ctx, bus.logger, "query cancelled", ctx.Err(), map[string]interface{}{
			"query_name": queryName,
		})
		return zero, ctx.Err()
	case out := <-done:
		if out.err != nil {
			return zero, out.err
		}
		return out.result, nil
	}
}
