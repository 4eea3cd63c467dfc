package events

import (
	"encoding/json"
	"time"
)

// Event types consumed by the notification dispatcher. The core emits them
// and does not care how (or whether) they reach a human.
const (
	EventReservationCreated   = "ReservationCreated"
	EventReservationCancelled = "ReservationCancelled"
	EventReservationNoShow    = "ReservationNoShow"
	EventPaymentCreated       = "PaymentCreated"
	EventProofSubmitted       = "ProofSubmitted"
	EventPaymentApproved      = "PaymentApproved"
	EventPaymentRejected      = "PaymentRejected"
	EventPaymentExpired       = "PaymentExpired"
	EventCheckinAllowed       = "CheckinAllowed"
	EventGuestCheckedIn       = "GuestCheckedIn"
	EventGuestCheckedOut      = "GuestCheckedOut"

	// EventStatusTransition goes to the audit topic for every applied
	// reservation transition.
	EventStatusTransition = "StatusTransition"
)

// Envelope wraps every published event. CorrelationID is the reservation id
// so consumers can partition per stay.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

// Publisher is the seam the services publish through. Publishing is
// best-effort and asynchronous; it never joins a database transaction.
type Publisher interface {
	Publish(topic, eventType, correlationID string, payload any)
}

// Noop drops every event. Used when Kafka is not configured and in tests.
type Noop struct{}

func (Noop) Publish(string, string, string, any) {}
