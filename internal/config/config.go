package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	BrokerNone      = "none"
	BrokerGoChannel = "gochannel"
	BrokerRedis     = "redis"
	BrokerKafka     = "kafka"
)

type Config struct {
	AppName       string
	HTTPAddr      string
	DBDriver      string
	DBDSN         string
	EventBroker   string
	RedisAddr     string
	KafkaBrokers  []string
	ConsumerGroup string // consumidor de eventos nos brokers externos
}

// Load lê a configuração das variáveis de ambiente, aplicando os valores padrão.
func Load() (Config, error) {
	cfg := Config{
		AppName:      str("APP_NAME", "go-checkout"),
		HTTPAddr:     str("HTTP_ADDR", ":8080"),
		DBDriver:     strings.ToLower(str("DB_DRIVER", DriverSQLite)),
		DBDSN:        str("DB_DSN", "checkout.db"),
		EventBroker:  strings.ToLower(str("EVENT_BROKER", BrokerGoChannel)),
		RedisAddr:    str("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers: list("KAFKA_BROKERS", []string{"localhost:9092"}),
	}
	cfg.ConsumerGroup = str("CONSUMER_GROUP", cfg.AppName)
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.EventBroker {
	case BrokerNone, BrokerGoChannel, BrokerRedis, BrokerKafka:
	default:
		return fmt.Errorf("config: unsupported EVENT_BROKER %q", c.EventBroker)
	}

	if c.EventBroker == BrokerKafka && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("config: KAFKA_BROKERS is required for the kafka broker")
	}
	return nil
}

func str(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func list(name string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
