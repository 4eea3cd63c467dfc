package jobs

import (
	"context"
	"strconv"
	"time"

	"frontdesk-backend/internal/events"
	"frontdesk-backend/internal/logger"
)

// ExpireStalePayments cancels pending balcony payments that never received a
// proof within the configured TTL. The reservation itself stays put; the
// no-show sweep cancels it once the check-in date lapses.
func (jr *JobRunner) ExpireStalePayments() {
	jr.runWithRecovery("ExpireStalePayments", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		ttl := time.Duration(jr.config.Booking.PaymentTTLMinutes) * time.Minute
		cutoff := time.Now().UTC().Add(-ttl)

		expired, err := jr.store.PaymentRepository.ExpireStale(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale payments", "error", err)
			return
		}
		if len(expired) == 0 {
			logger.Debug("No stale payments found", "cutoff", cutoff)
			return
		}

		for _, p := range expired {
			logger.Info("Expired stale payment",
				"payment_id", p.ID, "reservation_id", p.ReservationID,
				"created_on", p.CreatedOn)
			jr.publisher.Publish(events.TopicReservationEvents, events.EventPaymentExpired,
				strconv.FormatInt(p.ReservationID, 10), p)
		}
		logger.Info("Stale payment sweep done", "expired", len(expired))
	})
}
