package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCredit  PaymentMethod = "credit"
	PaymentMethodDebit   PaymentMethod = "debit"
	PaymentMethodPix     PaymentMethod = "pix"
	PaymentMethodBalcony PaymentMethod = "balcony" // pay on arrival, proof reviewed by an operator
)

// Instant reports whether the method settles through a gateway callback
// instead of an operator-reviewed proof upload.
func (m PaymentMethod) Instant() bool {
	return m == PaymentMethodCredit || m == PaymentMethodDebit || m == PaymentMethodPix
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCredit, PaymentMethodDebit, PaymentMethodPix, PaymentMethodBalcony:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusApproved   PaymentStatus = "APPROVED"
	PaymentStatusRejected   PaymentStatus = "REJECTED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
)

// Terminal reports whether the payment can no longer change status. At most
// one non-terminal payment may exist per reservation at any time.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusApproved || s == PaymentStatusRejected || s == PaymentStatusCancelled
}

// Payment is one attempt to pay (part of) a reservation. ProofRef points at
// the external blob store; the core never handles file contents.
type Payment struct {
	ID             string        `json:"id"`
	ReservationID  int64         `json:"reservation_id"`
	Method         PaymentMethod `json:"method"`
	AmountCents    int64         `json:"amount_cents"`
	Status         PaymentStatus `json:"status"`
	IdempotencyKey string        `json:"idempotency_key"`
	ProofRef       *string       `json:"proof_ref,omitempty"`
	ReviewedBy     *string       `json:"reviewed_by,omitempty"`
	RejectReason   string        `json:"reject_reason,omitempty"`
	CreatedOn      time.Time     `json:"created_on"`
	UpdatedOn      time.Time     `json:"updated_on"`
}
