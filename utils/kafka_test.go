package utils

import "testing"

func resetKafka() {
	kafkaWriter = nil
	kafkaBrokers = nil
	activityTopic = ""
}

func TestInitializeKafka_DisabledWithoutBrokers(t *testing.T) {
	resetKafka()

	InitializeKafka("", "ignored")

	if kafkaWriter != nil {
		t.Fatal("producer created despite empty broker list")
	}
	if r := NewActivityReader("group"); r != nil {
		t.Fatal("reader created despite empty broker list")
	}
	// no-op path, must not panic
	PublishActivity(ActivityMessage{Action: "rsvp_created"})
}

func TestInitializeKafka_SplitsBrokersAndDefaultsTopic(t *testing.T) {
	resetKafka()

	InitializeKafka("localhost:9092,localhost:9093", "")
	defer func() {
		_ = kafkaWriter.Close()
		resetKafka()
	}()

	if kafkaWriter == nil {
		t.Fatal("producer not created")
	}
	if len(kafkaBrokers) != 2 {
		t.Fatalf("brokers = %v, want 2 entries", kafkaBrokers)
	}
	if activityTopic != "event-activity" {
		t.Fatalf("topic = %q, want event-activity", activityTopic)
	}
}

func TestInitializeKafka_UsesConfiguredTopic(t *testing.T) {
	resetKafka()

	InitializeKafka("localhost:9092", "custom-activity")
	defer func() {
		_ = kafkaWriter.Close()
		resetKafka()
	}()

	if activityTopic != "custom-activity" {
		t.Fatalf("topic = %q, want custom-activity", activityTopic)
	}
}
