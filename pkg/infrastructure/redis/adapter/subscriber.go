package adapter

import (
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	watermillLogAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/watermill/adapter"
)

type redisSubscriber struct {
	*redisstream.Subscriber
	client redis.UniversalClient
}

// NewRedisSubscriber lê os streams dentro de um consumer group; Close também encerra o cliente.
func NewRedisSubscriber(addr, consumerGroup, consumer string, logger application.AppLogger) (message.Subscriber, error) {
	client := NewRedisClient(addr)

	subscriber, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
		Client:        client,
		ConsumerGroup: consumerGroup,
		Consumer:      consumer,
	}, watermillLogAdapter.NewWatermillLoggerAdapter(logger))
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &redisSubscriber{Subscriber: subscriber, client: client}, nil
}

func (s *redisSubscriber) Close() error {
	if err := s.Subscriber.Close(); err != nil {
		return err
	}
	return s.client.Close()
}
