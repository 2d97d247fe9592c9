package utils

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ActivityMessage is the payload published to the activity topic whenever an
// event or RSVP mutation commits. The notification consumer turns these into
// in-app notification rows.
type ActivityMessage struct {
	Action     string    `json:"action"` // rsvp_created / rsvp_cancelled / event_updated / event_deleted
	EventID    uint      `json:"eventId"`
	EventTitle string    `json:"eventTitle"`
	ActorID    uint      `json:"actorId"`
	TargetIDs  []uint    `json:"targetIds"` // users to notify
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}

var (
	kafkaWriter   *kafka.Writer
	activityTopic string
	kafkaBrokers  []string
)

// InitializeKafka sets up the activity producer. The broker being down is not
// fatal; publishing degrades to a logged no-op.
func InitializeKafka(brokers, topic string) {
	if brokers == "" {
		log.Println("ℹ️ KAFKA_BROKERS not set, activity messaging disabled")
		return
	}

	activityTopic = topic
	if activityTopic == "" {
		activityTopic = "event-activity"
	}

	kafkaBrokers = strings.Split(brokers, ",")
	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(kafkaBrokers...),
		Topic:        activityTopic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		Async:        true,
	}

	log.Printf("✅ Kafka producer ready (topic %s)", activityTopic)
}

// PublishActivity sends an activity message; failures are logged, never returned,
// since notification fan-out must not affect the originating request.
func PublishActivity(msg ActivityMessage) {
	if kafkaWriter == nil {
		return
	}
	if msg.OccurredAt.IsZero() {
		msg.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("⚠️ Kafka: marshal activity failed: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := kafkaWriter.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
		log.Printf("⚠️ Kafka: publish activity failed: %v", err)
	}
}

// NewActivityReader builds a reader for the activity topic, used by the
// notification consumer.
func NewActivityReader(groupID string) *kafka.Reader {
	if len(kafkaBrokers) == 0 {
		return nil
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  kafkaBrokers,
		GroupID:  groupID,
		Topic:    activityTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
