package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Envelope is the wire format of a dashboard event.
type Envelope struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

// KafkaBroadcaster publishes dashboard events to a single topic, keyed by
// event type so consumers see per-type ordering.
type KafkaBroadcaster struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaBroadcaster(producer *kafka.Producer, topic string) *KafkaBroadcaster {
	return &KafkaBroadcaster{
		producer: producer,
		topic:    topic,
	}
}

func (b *KafkaBroadcaster) Publish(ctx context.Context, eventType string, payload any) error {
	value, err := json.Marshal(Envelope{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	deliveryChan := make(chan kafka.Event, 1)
	err = b.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &b.topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(eventType),
		Value: value,
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("produce %s event: %w", eventType, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case evt := <-deliveryChan:
		msg, ok := evt.(*kafka.Message)
		if !ok {
			return fmt.Errorf("produce %s event: unexpected delivery event %T", eventType, evt)
		}
		if msg.TopicPartition.Error != nil {
			return fmt.Errorf("produce %s event: %w", eventType, msg.TopicPartition.Error)
		}
		return nil
	}
}

func (b *KafkaBroadcaster) Close() {
	b.producer.Close()
}
