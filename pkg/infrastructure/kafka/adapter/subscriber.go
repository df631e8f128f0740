package adapter

import (
	"github.com/Shopify/sarama"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	watermillLogAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/watermill/adapter"
)

// NewKafkaSubscriber consome desde o offset mais antigo dentro do consumer group.
func NewKafkaSubscriber(brokers []string, consumerGroup, clientID string, logger application.AppLogger) (message.Subscriber, error) {
	saramaConfig := kafka.DefaultSaramaSubscriberConfig()
	saramaConfig.Version = sarama.V1_0_0_0
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.ClientID = clientID

	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               brokers,
		Unmarshaler:           kafka.DefaultMarshaler{},
		ConsumerGroup:         consumerGroup,
		OverwriteSaramaConfig: saramaConfig,
		InitializeTopicDetails: &sarama.TopicDetail{
			NumPartitions:     1,
			ReplicationFactor: 1,
		},
	}, watermillLogAdapter.NewWatermillLoggerAdapter(logger))
	if err != nil {
		return nil, err
	}
	return subscriber, nil
}
