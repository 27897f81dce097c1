package ioc

import (
	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/gotomicro/ego/core/econf"

	"github.com/quotingfast/outreach/internal/event"
)

func InitBroadcaster() event.Broadcaster {
	type Config struct {
		Addr  string `yaml:"addr"`
		Topic string `yaml:"topic"`
	}
	var cfg Config
	err := econf.UnmarshalKey("kafka", &cfg)
	if err != nil {
		panic(err)
	}
	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Addr,
	})
	if err != nil {
		panic(err)
	}
	return event.NewKafkaBroadcaster(producer, cfg.Topic)
}
