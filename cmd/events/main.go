package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mateusmacedo/go-checkout/internal/config"
	"github.com/mateusmacedo/go-checkout/internal/events"
	pkgApp "github.com/mateusmacedo/go-checkout/pkg/application"
	pkgInfra "github.com/mateusmacedo/go-checkout/pkg/infrastructure"
	"github.com/mateusmacedo/go-checkout/pkg/infrastructure/broker"
	watermillAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/zaplogger/adapter"
)

// Consumidor dos eventos encaminhados para Redis Streams ou Kafka.
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	appLogger, err := zapAdapter.NewZapAppLogger(cfg.AppName + "-events")
	if err != nil {
		panic(err)
	}

	subscriber, err := broker.NewSubscriber(broker.Options{
		Kind:          cfg.EventBroker,
		RedisAddr:     cfg.RedisAddr,
		KafkaBrokers:  cfg.KafkaBrokers,
		ClientID:      cfg.AppName + "-events",
		ConsumerGroup: cfg.ConsumerGroup,
	}, appLogger)
	if err != nil {
		pkgApp.LogError(ctx, appLogger, "Erro ao criar subscriber", err, map[string]interface{}{"broker": cfg.EventBroker})
		os.Exit(1)
	}
	defer subscriber.Close()

	dispatcher := pkgInfra.NewEventDispatcher(appLogger)
	events.RegisterAuditHandlers(dispatcher, appLogger)

	if err := watermillAdapter.NewEventRelay(subscriber, dispatcher, appLogger).Run(ctx, events.Names()...); err != nil {
		pkgApp.LogError(ctx, appLogger, "Erro no relay de eventos", err, nil)
		return
	}

	appLogger.Info(context.Background(), "Consumidor encerrado", nil)
}
