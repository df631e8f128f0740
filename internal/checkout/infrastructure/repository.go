package infrastructure

import (
	"context"

	"github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	"github.com/mateusmacedo/go-checkout/internal/config"
	database "github.com/mateusmacedo/go-checkout/internal/infrastructure"
	"github.com/mateusmacedo/go-checkout/pkg/application"
)

// NewOrderRepository escolhe o repositório pelo driver configurado. O driver memory não
// abre banco de dados.
func NewOrderRepository(ctx context.Context, driver, dsn string, logger application.AppLogger) (domain.OrderRepository, error) {
	if driver == config.DriverMemory {
		application.LogInfo(ctx, logger, "using in-memory order repository", nil)
		return NewInMemoryOrderRepository(logger), nil
	}

	db, err := database.OpenDatabase(driver, dsn)
	if err != nil {
		return nil, err
	}
	return NewGormOrderRepository(db, logger)
}
