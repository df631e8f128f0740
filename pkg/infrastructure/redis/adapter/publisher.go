package adapter

import (
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/redis/go-redis/v9"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	watermillLogAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/watermill/adapter"
)

type redisPublisher struct {
	*redisstream.Publisher
	client redis.UniversalClient
}

// NewRedisPublisher publica em Redis Streams; Close também encerra o cliente.
func NewRedisPublisher(addr string, logger application.AppLogger) (message.Publisher, error) {
	client := NewRedisClient(addr)

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: client,
	}, watermillLogAdapter.NewWatermillLoggerAdapter(logger))
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &redisPublisher{Publisher: publisher, client: client}, nil
}

func (p *redisPublisher) Close() error {
	if err := p.Publisher.Close(); err != nil {
		return err
	}
	return p.client.Close()
}
