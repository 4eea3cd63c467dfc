package repository

import (
	"context"
	"time"

	"frontdesk-backend/internal/domain"
)

type RoomRepository interface {
	GetByNumber(ctx context.Context, number string) (*domain.Room, error)
	// FindAvailable returns bookable rooms of the given type with no
	// overlapping reservation in a non-cancelled, non-no-show status over
	// the half-open [checkin, checkout) interval.
	FindAvailable(ctx context.Context, roomType string, checkin, checkout time.Time) ([]domain.Room, error)
	UpdateState(ctx context.Context, number string, state domain.RoomState) error
	SetActive(ctx context.Context, number string, active bool) error
	List(ctx context.Context, page, pageSize int32) ([]domain.Room, int32, error)
}

type ReservationRepository interface {
	// CreateIfAvailable performs the overlap check and the insert as one
	// transaction, serialized on the room row. The losing concurrent
	// caller gets ROOM_CONFLICT.
	CreateIfAvailable(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	// TransitionStatus is a compare-and-swap on (id, from); a concurrent
	// transition that won the race surfaces as INVALID_TRANSITION.
	TransitionStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) error
	ListByGuest(ctx context.Context, guestID string, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	ListByRoom(ctx context.Context, roomNumber string, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	// FindLapsed returns reservations in one of the given statuses whose
	// check-in date lies before the cutoff. Used by the nightly sweeps.
	FindLapsed(ctx context.Context, cutoff time.Time, statuses []domain.ReservationStatus) ([]domain.Reservation, error)
}

type PaymentRepository interface {
	// CreateExclusive inserts a payment while holding the reservation row
	// lock: it enforces the at-most-one-non-terminal-payment invariant,
	// returns the prior payment on idempotency-key reuse, and applies the
	// reservation transition (resFrom -> resTo) in the same transaction
	// when the two differ.
	CreateExclusive(ctx context.Context, p *domain.Payment, resFrom, resTo domain.ReservationStatus) (*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	ListByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error)
	SumApproved(ctx context.Context, reservationID int64) (int64, error)
	// SubmitProof moves a pending balcony payment to PROCESSING and the
	// reservation from resFrom to resTo atomically.
	SubmitProof(ctx context.Context, paymentID, proofRef string, resFrom, resTo domain.ReservationStatus) error
	// Approve marks the payment APPROVED and walks the reservation
	// resFrom -> PAID_APPROVED -> CHECKIN_ALLOWED in one transaction. It
	// fails with INSUFFICIENT_PAYMENT when the cumulative approved amount
	// including this payment stays below requiredCents.
	Approve(ctx context.Context, paymentID, operatorID string, resFrom domain.ReservationStatus, requiredCents int64) error
	// Reject marks the payment REJECTED and moves the reservation
	// resFrom -> PAID_REJECTED in one transaction.
	Reject(ctx context.Context, paymentID, operatorID, reason string, resFrom domain.ReservationStatus) error
	// ExpireStale cancels PENDING payments created before the cutoff, one
	// transaction per payment under the same reservation lock as
	// CreateExclusive. It returns the cancelled payments.
	ExpireStale(ctx context.Context, cutoff time.Time) ([]domain.Payment, error)
}

type SettlementRepository interface {
	GetCheckin(ctx context.Context, reservationID int64) (*domain.CheckinRecord, error)
	// CreateCheckin inserts the record, moves the reservation to
	// CHECKED_IN and the room to OCCUPIED in one transaction.
	CreateCheckin(ctx context.Context, rec *domain.CheckinRecord) error
	GetCheckout(ctx context.Context, reservationID int64) (*domain.CheckoutRecord, error)
	// CreateCheckout inserts the record, moves the reservation to
	// CHECKED_OUT and releases the room to FREE in one transaction.
	CreateCheckout(ctx context.Context, rec *domain.CheckoutRecord) error
}

type TariffRepository interface {
	// NightlyRate resolves the read-only nightly rate for a room type on a
	// date (seasonal rows win over the default row).
	NightlyRate(ctx context.Context, roomType string, date time.Time) (int64, error)
}
