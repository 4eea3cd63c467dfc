package service

import (
	"strconv"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/events"
)

// publishReservationEvent pushes a reservation snapshot to the notification
// dispatcher topic.
func publishReservationEvent(p events.Publisher, eventType string, rs *domain.Reservation) {
	p.Publish(events.TopicReservationEvents, eventType, strconv.FormatInt(rs.ID, 10), rs)
}

// publishPaymentEvent pushes a payment snapshot keyed by its reservation.
func publishPaymentEvent(p events.Publisher, eventType string, pay *domain.Payment) {
	p.Publish(events.TopicReservationEvents, eventType, strconv.FormatInt(pay.ReservationID, 10), pay)
}

// publishTransition emits the immutable audit record for an applied status
// change. The audit sink owns storage and querying.
func publishTransition(p events.Publisher, reservationID int64, actor string, from, to domain.ReservationStatus) {
	p.Publish(events.TopicAuditTransitions, events.EventStatusTransition,
		strconv.FormatInt(reservationID, 10),
		domain.TransitionRecord{
			ReservationID: reservationID,
			Actor:         actor,
			From:          from,
			To:            to,
			At:            time.Now().UTC(),
		})
}
