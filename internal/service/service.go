package service

import (
	"context"
	"time"

	"frontdesk-backend/internal/domain"
)

// AvailabilityService is the allocator: it answers which rooms are free over
// an interval and owns the only write path that can claim a room-date
// interval.
type AvailabilityService interface {
	// FindAvailable serves display polling through a short-lived cache;
	// staleness here is acceptable because Reserve re-checks inside its
	// transaction.
	FindAvailable(ctx context.Context, roomType string, checkin, checkout time.Time) ([]domain.Room, error)
	Reserve(ctx context.Context, roomNumber, guestID string, checkin, checkout time.Time) (*domain.Reservation, error)
}

// RoomService is the staff-facing room administration surface. Occupancy is
// not settable here; OCCUPIED and the release back to FREE belong to the
// check-in and check-out transactions.
type RoomService interface {
	List(ctx context.Context, page, pageSize int32) ([]domain.Room, int32, error)
	// SetState moves a room between FREE, MAINTENANCE and BLOCKED.
	SetState(ctx context.Context, number string, state domain.RoomState) (*domain.Room, error)
	// SetActive enables or disables a room for new bookings.
	SetActive(ctx context.Context, number string, active bool) (*domain.Room, error)
}

type ReservationService interface {
	Get(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByGuest(ctx context.Context, guestID string, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	ListByRoom(ctx context.Context, roomNumber string, status string, page, pageSize int32) ([]domain.Reservation, int32, error)
	Cancel(ctx context.Context, id int64, actor string) (*domain.Reservation, error)
}

// PaymentService is the reconciliation ledger: payment attempts, the
// at-most-one-in-flight invariant, and the approval flow that unlocks
// check-in.
type PaymentService interface {
	CreatePayment(ctx context.Context, reservationID int64, method domain.PaymentMethod, amountCents int64, idempotencyKey string) (*domain.Payment, error)
	SubmitProof(ctx context.Context, paymentID, proofRef string) (*domain.Payment, error)
	ApproveProof(ctx context.Context, paymentID, operatorID string) (*domain.Payment, error)
	RejectProof(ctx context.Context, paymentID, operatorID, reason string) (*domain.Payment, error)
	ListPayments(ctx context.Context, reservationID int64) ([]domain.Payment, error)
}

// SettlementService validates and performs check-in and check-out.
type SettlementService interface {
	ValidateCheckin(ctx context.Context, reservationID int64) (*domain.CheckinValidation, error)
	PerformCheckin(ctx context.Context, reservationID int64, details domain.CheckinDetails, operatorID string) (*domain.CheckinRecord, error)
	ValidateCheckout(ctx context.Context, reservationID int64) (*domain.SettlementPreview, error)
	// PerformCheckout is idempotent: after success, re-invocation returns
	// the existing record together with an ALREADY_CHECKED_OUT error so
	// the transport can answer with the original settlement.
	PerformCheckout(ctx context.Context, reservationID int64, instruction domain.CheckoutInstruction, operatorID string) (*domain.CheckoutRecord, error)
}

// PricingService is the read-only tariff collaborator.
type PricingService interface {
	QuoteStay(ctx context.Context, roomType string, checkin, checkout time.Time) (rateCents int64, nights int32, totalCents int64, err error)
}
