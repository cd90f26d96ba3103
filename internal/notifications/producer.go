package notifications

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ParthG2209/Schedlyx/internal/shared/config"
	"github.com/ParthG2209/Schedlyx/pkg/logger"

	"github.com/IBM/sarama"
)

// BookingConfirmed is the payload published after a successful confirmation.
type BookingConfirmed struct {
	BookingID         string    `json:"booking_id"`
	BookingRef        string    `json:"booking_reference"`
	EventID           string    `json:"event_id"`
	SlotID            string    `json:"slot_id"`
	AttendeeFirstName string    `json:"attendee_first_name"`
	AttendeeLastName  string    `json:"attendee_last_name"`
	AttendeeEmail     string    `json:"attendee_email"`
	Quantity          int       `json:"quantity"`
	ConfirmedAt       time.Time `json:"confirmed_at"`
}

// Producer publishes booking lifecycle events to Kafka. A Producer built
// with no brokers is a no-op; publishing is best effort and never blocks a
// confirmation from succeeding.
type Producer struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewProducer(cfg config.KafkaConfig, log *logger.Logger) (*Producer, error) {
	if len(cfg.Brokers) == 0 {
		return &Producer{topic: cfg.BookingTopic, log: log}, nil
	}

	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &Producer{producer: producer, topic: cfg.BookingTopic, log: log}, nil
}

// PublishBookingConfirmed emits a booking.confirmed message keyed by event
// id, so per-event ordering is preserved across partitions.
func (p *Producer) PublishBookingConfirmed(ctx context.Context, payload BookingConfirmed) {
	if p == nil || p.producer == nil {
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		p.log.ErrorWithContext(ctx, "failed to marshal booking confirmation", err,
			map[string]interface{}{"booking_id": payload.BookingID})
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(payload.EventID),
		Value: sarama.ByteEncoder(value),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		p.log.ErrorWithContext(ctx, "failed to publish booking confirmation", err,
			map[string]interface{}{"booking_id": payload.BookingID, "topic": p.topic})
	}
}

func (p *Producer) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
