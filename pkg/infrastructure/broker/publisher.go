package broker

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/mateusmacedo/go-checkout/pkg/application"
	channelsAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/channels/adapter"
	kafkaAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/kafka/adapter"
	redisAdapter "github.com/mateusmacedo/go-checkout/pkg/infrastructure/redis/adapter"
)

const (
	GoChannel = "gochannel"
	Redis     = "redis"
	Kafka     = "kafka"
)

type Options struct {
	Kind          string
	RedisAddr     string
	KafkaBrokers  []string
	ClientID      string
	ConsumerGroup string
}

// NewPublisher escolhe o transporte dos eventos de domínio encaminhados. O publisher gochannel
// também é um message.Subscriber.
func NewPublisher(opts Options, logger application.AppLogger) (message.Publisher, error) {
	switch opts.Kind {
	case GoChannel:
		return channelsAdapter.NewGoChannelPubSub(logger), nil
	case Redis:
		return redisAdapter.NewRedisPublisher(opts.RedisAddr, logger)
	case Kafka:
		return kafkaAdapter.NewKafkaPublisher(opts.KafkaBrokers, opts.ClientID, logger)
	default:
		return nil, fmt.Errorf("broker: unsupported kind %q", opts.Kind)
	}
}

// NewSubscriber cria o consumidor dos brokers externos. gochannel só existe dentro do processo
// que publica e por isso não é aceito aqui.
func NewSubscriber(opts Options, logger application.AppLogger) (message.Subscriber, error) {
	switch opts.Kind {
	case Redis:
		return redisAdapter.NewRedisSubscriber(opts.RedisAddr, opts.ConsumerGroup, opts.ClientID, logger)
	case Kafka:
		return kafkaAdapter.NewKafkaSubscriber(opts.KafkaBrokers, opts.ConsumerGroup, opts.ClientID, logger)
	default:
		return nil, fmt.Errorf("broker: unsupported subscriber kind %q", opts.Kind)
	}
}
