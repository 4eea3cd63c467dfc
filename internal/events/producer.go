package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"frontdesk-backend/internal/logger"
)

// Producer publishes envelopes to Kafka through a buffered inbox so request
// handlers never block on the broker.
type Producer struct {
	w       *kafka.Writer
	name    string
	inbox   chan kafka.Message
	closeCh chan struct{}
}

func NewProducer(brokers []string, name string, buf int) *Producer {
	if name == "" {
		name = "frontdesk-backend"
	}
	return &Producer{
		name: name,
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Async:        true,
		},
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

// Start drains the inbox until ctx is cancelled, then flushes what is
// already queued. The inbox is never closed: a publisher racing shutdown
// lands in the buffer (or gets dropped) instead of panicking on a closed
// channel.
func (p *Producer) Start(ctx context.Context) {
	go func() {
		defer close(p.closeCh)
		defer func() { _ = p.w.Close() }()
		for {
			select {
			case <-ctx.Done():
				for {
					select {
					case m := <-p.inbox:
						p.write(m)
					default:
						return
					}
				}
			case m := <-p.inbox:
				p.write(m)
			}
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	if err := p.w.WriteMessages(context.Background(), m); err != nil {
		logger.Error("Failed to publish event", "topic", m.Topic, "error", err)
	}
}

func (p *Producer) Publish(topic, eventType, correlationID string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event payload", "event_type", eventType, "error", err)
		return
	}
	env := Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      p.name,
		CorrelationID: correlationID,
		Payload:       body,
	}
	value, err := json.Marshal(env)
	if err != nil {
		logger.Error("Failed to marshal event envelope", "event_type", eventType, "error", err)
		return
	}
	select {
	case p.inbox <- kafka.Message{
		Topic: topic,
		Key:   []byte(correlationID),
		Value: value,
		Time:  env.OccurredAt,
	}:
	default:
		// Inbox full: drop rather than stall a request. Events are
		// best-effort by contract.
		logger.Warn("Event inbox full, dropping event", "event_type", eventType, "topic", topic)
	}
}

// WaitClosed blocks until the flush goroutine has exited.
func (p *Producer) WaitClosed() { <-p.closeCh }
