package adapter

import (
	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	watermillLogAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/watermill/adapter"
)

// NewKafkaPublisher cria um publisher síncrono para os brokers informados.
func NewKafkaPublisher(brokers []string, clientID string, logger application.AppLogger) (message.Publisher, error) {
	saramaConfig := kafka.DefaultSaramaSyncPublisherConfig()
	saramaConfig.Version = sarama.V1_0_0_0
	saramaConfig.ClientID = clientID

	publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:               brokers,
		Marshaler:             kafka.DefaultMarshaler{},
		OverwriteSaramaConfig: saramaConfig,
	}, watermillLogAdapter.NewWatermillLoggerAdapter(logger))
	if err != nil {
		return nil, err
	}
	return publisher, nil
}
