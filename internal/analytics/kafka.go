package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const DefaultTopic = "shopeasy-analytics"

// MessageWriter is the part of *kafka.Writer the tracker needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Event struct {
	EventName  string         `json:"eventName"`
	EventData  map[string]any `json:"eventData"`
	EventID    string         `json:"eventId"`
	OccurredAt time.Time      `json:"occurredAt"`
}

// KafkaTracker publishes events as JSON keyed by event name.
type KafkaTracker struct {
	writer MessageWriter
	now    func() time.Time
}

func NewKafkaTracker(topic string, brokers ...string) *KafkaTracker {
	if topic == "" {
		topic = DefaultTopic
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return NewKafkaTrackerWithWriter(w)
}

func NewKafkaTrackerWithWriter(w MessageWriter) *KafkaTracker {
	return &KafkaTracker{writer: w, now: time.Now}
}

func (t *KafkaTracker) Track(ctx context.Context, name string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	event := Event{
		EventName:  name,
		EventData:  data,
		EventID:    uuid.NewString(),
		OccurredAt: t.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", name, err)
	}

	msg := kafka.Message{
		Key:   []byte(name),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}
	if err := t.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", name, err)
	}
	return nil
}

func (t *KafkaTracker) Close() error {
	return t.writer.Close()
}
