package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mateusmacedo/go-checkout/internal/checkout"
	checkoutApp "github.com/mateusmacedo/go-checkout/internal/checkout/application"
	checkoutDomain "github.com/mateusmacedo/go-checkout/internal/checkout/domain"
	checkoutInfra "github.com/mateusmacedo/go-checkout/internal/checkout/infrastructure"
	"github.com/mateusmacedo/go-checkout/internal/config"
	customerApp "github.com/mateusmacedo/go-checkout/internal/customer/application"
	"github.com/mateusmacedo/go-checkout/internal/events"
	productApp "github.com/mateusmacedo/go-checkout/internal/product/application"
	pkgApp "github.com/mateusmacedo/go-checkout/pkg/application"
	pkgDomain "github.com/mateusmacedo/go-checkout/pkg/domain"
	pkgInfra "github.com/mateusmacedo/go-checkout/pkg/infrastructure"
	"github.com/mateusmacedo/go-checkout/pkg/infrastructure/broker"
	watermillAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/watermill/adapter"
	zapAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/zaplogger/adapter"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	appLogger, err := zapAdapter.NewZapAppLogger(cfg.AppName)
	if err != nil {
		panic(err)
	}

	orderRepo, err := checkoutInfra.NewOrderRepository(ctx, cfg.DBDriver, cfg.DBDSN, appLogger)
	if err != nil {
		pkgApp.LogError(ctx, appLogger, "Erro ao inicializar o repositório", err, map[string]interface{}{"driver": cfg.DBDriver})
		panic(err)
	}

	dispatcher := pkgInfra.NewEventDispatcher(appLogger)
	customerApp.RegisterEventHandlers(dispatcher, appLogger)
	productApp.RegisterEventHandlers(dispatcher, appLogger)

	if cfg.EventBroker != config.BrokerNone {
		publisher, err := broker.NewPublisher(broker.Options{
			Kind:         cfg.EventBroker,
			RedisAddr:    cfg.RedisAddr,
			KafkaBrokers: cfg.KafkaBrokers,
			ClientID:     cfg.AppName,
		}, appLogger)
		if err != nil {
			pkgApp.LogError(ctx, appLogger, "Erro ao inicializar o broker", err, map[string]interface{}{"broker": cfg.EventBroker})
			panic(err)
		}
		defer publisher.Close()

		forwarder := watermillAdapter.NewPublishingHandler(publisher, appLogger)
		for _, name := range events.Names() {
			dispatcher.Register(name, forwarder)
		}

		// o gochannel não sai do processo; os eventos encaminhados são consumidos aqui mesmo.
		if subscriber, ok := publisher.(message.Subscriber); ok {
			go runAuditRelay(ctx, subscriber, appLogger)
		}
	}

	idGenerator := pkgDomain.IDGenerator[string](pkgInfra.GenerateUUID)

	checkoutSlice := checkout.NewCheckoutSlice(
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[checkoutApp.PlaceOrderData], checkoutApp.PlaceOrderData](appLogger),
		pkgInfra.NewSimpleCommandBus[pkgDomain.Command[checkoutApp.ReplaceOrderItemsData], checkoutApp.ReplaceOrderItemsData](appLogger),
		pkgInfra.NewSimpleQueryBus[pkgDomain.Query[checkoutApp.FindOrderData], checkoutApp.FindOrderData, *checkoutDomain.Order](appLogger),
		pkgInfra.NewSimpleQueryBus[pkgDomain.Query[checkoutApp.ListOrdersData], checkoutApp.ListOrdersData, []*checkoutDomain.Order](appLogger),
		idGenerator,
		appLogger,
		dispatcher,
		orderRepo,
	)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	checkoutSlice.RegisterRoutes(router)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		appLogger.Info(ctx, "Sinal capturado", map[string]interface{}{"signal": sig.String()})
		cancel()
	}()

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		appLogger.Info(ctx, "Server starting on:"+cfg.HTTPAddr, nil)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			pkgApp.LogError(ctx, appLogger, "Erro ao iniciar o servidor", err, nil)
			cancel()
		}
	}()

	<-ctx.Done()
	appLogger.Info(context.Background(), "Encerrando servidor...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		pkgApp.LogError(context.Background(), appLogger, "Erro ao encerrar servidor", err, nil)
	}

	appLogger.Info(context.Background(), "Servidor encerrado", nil)
}

func runAuditRelay(ctx context.Context, subscriber message.Subscriber, logger pkgApp.AppLogger) {
	audit := pkgInfra.NewEventDispatcher(logger)
	events.RegisterAuditHandlers(audit, logger)

	if err := watermillAdapter.NewEventRelay(subscriber, audit, logger).Run(ctx, events.Names()...); err != nil {
		pkgApp.LogError(ctx, logger, "Erro no relay de eventos", err, nil)
	}
}
