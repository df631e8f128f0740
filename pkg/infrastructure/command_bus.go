package infrastructure

import (
	"context"
	"fmt"
	"sync"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	"github.com/mateusmacedo/go-checkout/pkg/domain"
)

type simpleCommandBus[C domain.Command[D], D any] struct {
	handlers map[string]application.CommandHandler[C, D]
	mu       sync.RWMutex
	logger   application.AppLogger
}

// NewSimpleCommandBus cria um barramento em processo com um manipulador por comando.
func NewSimpleCommandBus[C domain.Command[D], D any](logger application.AppLogger) application.CommandBus[C, D] {
	return &simpleCommandBus[C, D]{
		handlers: make(map[string]application.CommandHandler[C, D]),
		logger:   logger,
	}
}

func (bus *simpleCommandBus[C, D]) RegisterHandler(commandName string, handler application.CommandHandler[C, D]) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.handlers[commandName] = handler
}

func (bus *simpleCommandBus[C, D]) Dispatch(ctx context.Context, command C) error {
	commandName := command.CommandName()

	bus.mu.RLock()
	handler, found := bus.handlers[commandName]
	bus.mu.RUnlock()

	if !found {
		return fmt.Errorf("%w: %s", application.ErrNoCommandHandler, commandName)
	}

	if err := handler.Handle(ctx, command); err != nil {
		application.LogError(ctx, bus.logger, "error handling command", err, map[string]interface{}{
			"command_name": commandName,
		})
		return err
	}

	application.LogDebug(ctx, bus.logger, "command handled", map[string]interface{}{
		"command_name": commandName,
	})
	return nil
}
