package adapter

import (
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	watermillLogAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/watermill/adapter"
)

// NewGoChannelPubSub cria o pub/sub em memória usado quando nenhum broker externo está configurado.
func NewGoChannelPubSub(logger application.AppLogger) *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogAdapter.NewWatermillLoggerAdapter(logger),
	)
}
