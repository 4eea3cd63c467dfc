package jobs

import (
	"context"
	"strconv"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/events"
	"frontdesk-backend/internal/logger"
)

// MarkNoShows sweeps reservations whose check-in date lapsed without the
// guest arriving. Paid reservations become NO_SHOW; reservations that never
// completed payment are cancelled outright. Both release the room interval.
func (jr *JobRunner) MarkNoShows() {
	jr.runWithRecovery("MarkNoShows", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		grace := time.Duration(jr.config.Booking.NoShowGraceHours) * time.Hour
		cutoff := time.Now().UTC().Add(-grace)

		jr.sweepLapsed(ctx, cutoff,
			[]domain.ReservationStatus{domain.ReservationStatusCheckinAllowed},
			domain.ReservationStatusNoShow, events.EventReservationNoShow)

		jr.sweepLapsed(ctx, cutoff,
			[]domain.ReservationStatus{
				domain.ReservationStatusPendingPayment,
				domain.ReservationStatusAwaitingProof,
				domain.ReservationStatusUnderReview,
				domain.ReservationStatusPaidRejected,
			},
			domain.ReservationStatusCancelled, events.EventReservationCancelled)
	})
}

func (jr *JobRunner) sweepLapsed(ctx context.Context, cutoff time.Time, from []domain.ReservationStatus, to domain.ReservationStatus, eventType string) {
	lapsed, err := jr.store.ReservationRepository.FindLapsed(ctx, cutoff, from)
	if err != nil {
		logger.Error("Failed to find lapsed reservations", "target", to, "error", err)
		return
	}

	var moved int
	for _, rs := range lapsed {
		// CAS on the observed status; a reservation that changed under us
		// (late payment, concurrent check-in) is skipped, not forced.
		if err := jr.store.ReservationRepository.TransitionStatus(ctx, rs.ID, rs.Status, to); err != nil {
			if domain.IsCode(err, domain.CodeInvalidTransition) {
				logger.Debug("Reservation changed during sweep, skipping", "reservation_id", rs.ID)
				continue
			}
			logger.Error("Failed to sweep reservation", "reservation_id", rs.ID, "error", err)
			continue
		}
		moved++

		correlationID := strconv.FormatInt(rs.ID, 10)
		jr.publisher.Publish(events.TopicAuditTransitions, events.EventStatusTransition, correlationID,
			domain.TransitionRecord{
				ReservationID: rs.ID,
				Actor:         "system:sweep",
				From:          rs.Status,
				To:            to,
				At:            time.Now().UTC(),
			})
		rs.Status = to
		jr.publisher.Publish(events.TopicReservationEvents, eventType, correlationID, rs)
		logger.Info("Swept lapsed reservation",
			"reservation_id", rs.ID, "room", rs.RoomNumber, "status", to)
	}
	if moved > 0 {
		logger.Info("Lapsed reservation sweep done", "target", to, "moved", moved)
	}
}
