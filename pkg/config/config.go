package config

import (
	"github.com/kelseyhightower/envconfig"

	pkgtls "github.com/rakeshgadupudi-git/ImperialHub/pkg/tls"
)

type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	MongoURI      string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"imperialhub"`
	RedisEnabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	KafkaEnabled  bool   `envconfig:"KAFKA_ENABLED" default:"false"`
	KafkaBrokers  string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`

	TLS pkgtls.TLSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
