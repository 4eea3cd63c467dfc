package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPendingPayment ReservationStatus = "PENDING_PAYMENT"
	ReservationStatusAwaitingProof  ReservationStatus = "AWAITING_PROOF"
	ReservationStatusUnderReview    ReservationStatus = "UNDER_REVIEW"
	ReservationStatusPaidApproved   ReservationStatus = "PAID_APPROVED"
	ReservationStatusPaidRejected   ReservationStatus = "PAID_REJECTED"
	ReservationStatusCheckinAllowed ReservationStatus = "CHECKIN_ALLOWED"
	ReservationStatusCheckedIn      ReservationStatus = "CHECKED_IN"
	ReservationStatusCheckedOut     ReservationStatus = "CHECKED_OUT"
	ReservationStatusCancelled      ReservationStatus = "CANCELLED"
	ReservationStatusNoShow         ReservationStatus = "NO_SHOW"
)

// AllowedTransitions is the single authoritative transition table for the
// reservation lifecycle. The key is the current status, the value the set of
// statuses reachable from it. Anything not listed here is rejected with
// INVALID_TRANSITION before any state is touched.
var AllowedTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationStatusPendingPayment: {
		ReservationStatusAwaitingProof, // guest picked pay-on-arrival (balcony)
		ReservationStatusPaidApproved,  // instant-settling method callback (pix/card)
		ReservationStatusCancelled,
		ReservationStatusNoShow,
	},
	ReservationStatusAwaitingProof: {
		ReservationStatusUnderReview, // proof uploaded
		ReservationStatusCancelled,
		ReservationStatusNoShow,
	},
	ReservationStatusUnderReview: {
		ReservationStatusPaidApproved,
		ReservationStatusPaidRejected,
		ReservationStatusCancelled,
		ReservationStatusNoShow,
	},
	ReservationStatusPaidRejected: {
		ReservationStatusAwaitingProof, // new proof
		ReservationStatusCancelled,
		ReservationStatusNoShow,
	},
	ReservationStatusPaidApproved: {
		ReservationStatusCheckinAllowed, // automatic once approval is recorded
		ReservationStatusCancelled,
		ReservationStatusNoShow,
	},
	ReservationStatusCheckinAllowed: {
		ReservationStatusCheckedIn,
		ReservationStatusCancelled,
		ReservationStatusNoShow,
	},
	ReservationStatusCheckedIn: {
		ReservationStatusCheckedOut,
	},
	ReservationStatusCheckedOut: {},
	ReservationStatusCancelled:  {},
	ReservationStatusNoShow:     {},
}

// CanTransition checks whether the table permits moving from one status to
// another.
func CanTransition(from, to ReservationStatus) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an INVALID_TRANSITION error when the table does
// not permit the move.
func ValidateTransition(from, to ReservationStatus) error {
	if !CanTransition(from, to) {
		return NewInvalidTransition(from, to)
	}
	return nil
}

// Terminal reports whether no further transitions exist from the status.
func (s ReservationStatus) Terminal() bool {
	return len(AllowedTransitions[s]) == 0
}

// Payable reports whether a new payment attempt may be opened while the
// reservation sits in this status.
func (s ReservationStatus) Payable() bool {
	switch s {
	case ReservationStatusPendingPayment, ReservationStatusAwaitingProof, ReservationStatusPaidRejected:
		return true
	}
	return false
}

// Reservation books one room for a contiguous [Checkin, Checkout) interval.
// The nightly rate is a snapshot taken at booking time; settlement math uses
// the snapshot, never the live tariff.
type Reservation struct {
	ID               int64             `json:"id"`
	RoomNumber       string            `json:"room_number"`
	GuestID          string            `json:"guest_id"`
	Checkin          time.Time         `json:"checkin"`
	Checkout         time.Time         `json:"checkout"`
	NightlyRateCents int64             `json:"nightly_rate_cents"`
	Nights           int32             `json:"nights"`
	TotalCents       int64             `json:"total_cents"`
	Status           ReservationStatus `json:"status"`
	Version          int32             `json:"version"`
	CreatedOn        time.Time         `json:"created_on"`
	UpdatedOn        time.Time         `json:"updated_on"`
}

// TransitionRecord is the immutable audit entry emitted for every applied
// status change. Storage and querying belong to the external audit sink.
type TransitionRecord struct {
	ReservationID int64             `json:"reservation_id"`
	Actor         string            `json:"actor"`
	From          ReservationStatus `json:"from"`
	To            ReservationStatus `json:"to"`
	At            time.Time         `json:"at"`
}
