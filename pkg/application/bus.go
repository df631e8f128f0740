package application

import (
	"context"
	"errors"

	"github.com/mateusmacedo/go-checkout/pkg/domain"
)

var (
	ErrNoCommandHandler = errors.New("no handler registered for command")
	ErrNoQueryHandler   = errors.New("no handler registered for query")
)

// CommandHandler define a interface para manipuladores de comando.
type CommandHandler[C domain.Command[T], T any] interface {
	Handle(ctx context.Context, command C) error
}

// CommandBus encaminha um comando ao manipulador registrado sob CommandName.
type CommandBus[C domain.Command[T], T any] interface {
	RegisterHandler(commandName string, handler CommandHandler[C, T])
	Dispatch(ctx context.Context, command C) error
}

// QueryHandler define a interface para manipuladores de consulta.
type QueryHandler[Q domain.Query[T], T any, R any] interface {
	Handle(ctx context.Context, query Q) (R, error)
}

// QueryBus encaminha uma consulta ao manipulador registrado sob QueryName.
type QueryBus[Q domain.Query[D], D any, R any] interface {
	RegisterHandler(queryName string, handler QueryHandler[Q, D, R])
	Dispatch(ctx context.Context, query Q) (R, error)
}
