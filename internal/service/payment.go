package service

import (
	"context"

	"github.com/google/uuid"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/events"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
)

type paymentService struct {
	paymentRepo      repository.PaymentRepository
	reservationRepo  repository.ReservationRepository
	publisher        events.Publisher
	thresholdPercent int
}

// NewPaymentService builds the reconciliation ledger. thresholdPercent is
// the share of the reservation total that must be approved before check-in
// unlocks (100 = full amount).
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	reservationRepo repository.ReservationRepository,
	publisher events.Publisher,
	thresholdPercent int,
) PaymentService {
	if thresholdPercent <= 0 || thresholdPercent > 100 {
		thresholdPercent = 100
	}
	return &paymentService{
		paymentRepo:      paymentRepo,
		reservationRepo:  reservationRepo,
		publisher:        publisher,
		thresholdPercent: thresholdPercent,
	}
}

func (s *paymentService) CreatePayment(ctx context.Context, reservationID int64, method domain.PaymentMethod, amountCents int64, idempotencyKey string) (*domain.Payment, error) {
	if !method.Valid() {
		return nil, domain.NewError(domain.CodeValidationFailed, "unknown payment method %q", method)
	}
	if amountCents <= 0 {
		return nil, domain.NewError(domain.CodeValidationFailed, "payment amount must be positive")
	}
	if idempotencyKey == "" {
		return nil, domain.NewError(domain.CodeValidationFailed, "idempotency key is required")
	}

	rs, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !rs.Status.Payable() {
		return nil, domain.NewWrongState("reservation %d in status %s does not accept payments", reservationID, rs.Status)
	}

	resFrom, resTo := rs.Status, rs.Status
	status := domain.PaymentStatusProcessing
	if method == domain.PaymentMethodBalcony {
		// Pay-on-arrival opens a proof flow: the payment waits for an
		// uploaded receipt, the reservation advertises that fact.
		status = domain.PaymentStatusPending
		if rs.Status != domain.ReservationStatusAwaitingProof {
			resTo = domain.ReservationStatusAwaitingProof
		}
	} else if rs.Status != domain.ReservationStatusPendingPayment {
		// Instant-settling methods approve straight from PENDING_PAYMENT;
		// after a rejection the table only reopens via a new proof.
		return nil, domain.NewWrongState("method %s requires status %s, reservation %d is %s",
			method, domain.ReservationStatusPendingPayment, reservationID, rs.Status)
	}

	p := &domain.Payment{
		ID:             uuid.NewString(),
		ReservationID:  reservationID,
		Method:         method,
		AmountCents:    amountCents,
		Status:         status,
		IdempotencyKey: idempotencyKey,
	}
	created, err := s.paymentRepo.CreateExclusive(ctx, p, resFrom, resTo)
	if err != nil {
		return nil, err
	}
	if created.ID != p.ID {
		// Idempotent replay; nothing new happened.
		return created, nil
	}

	logger.Info("Payment created",
		"payment_id", created.ID, "reservation_id", reservationID,
		"method", method, "amount_cents", amountCents)
	publishPaymentEvent(s.publisher, events.EventPaymentCreated, created)
	if resFrom != resTo {
		publishTransition(s.publisher, reservationID, "guest:"+rs.GuestID, resFrom, resTo)
	}
	return created, nil
}

func (s *paymentService) SubmitProof(ctx context.Context, paymentID, proofRef string) (*domain.Payment, error) {
	if proofRef == "" {
		return nil, domain.NewError(domain.CodeValidationFailed, "proof reference is required")
	}
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if p.Method != domain.PaymentMethodBalcony {
		return nil, domain.NewWrongState("payment %s does not take a proof upload", paymentID)
	}
	if p.Status != domain.PaymentStatusPending {
		return nil, domain.NewWrongState("payment %s is %s, expected %s", paymentID, p.Status, domain.PaymentStatusPending)
	}

	err = s.paymentRepo.SubmitProof(ctx, paymentID, proofRef,
		domain.ReservationStatusAwaitingProof, domain.ReservationStatusUnderReview)
	if err != nil {
		return nil, err
	}
	p, err = s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	logger.Info("Payment proof submitted", "payment_id", paymentID, "reservation_id", p.ReservationID)
	publishPaymentEvent(s.publisher, events.EventProofSubmitted, p)
	publishTransition(s.publisher, p.ReservationID, "guest",
		domain.ReservationStatusAwaitingProof, domain.ReservationStatusUnderReview)
	return p, nil
}

// ApproveProof resolves a payment as approved and advances the reservation
// to CHECKIN_ALLOWED, all in one transaction. Approving an amount that
// leaves the cumulative approved total below the threshold fails with
// INSUFFICIENT_PAYMENT and mutates nothing.
func (s *paymentService) ApproveProof(ctx context.Context, paymentID, operatorID string) (*domain.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	rs, err := s.reservationRepo.GetByID(ctx, p.ReservationID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateTransition(rs.Status, domain.ReservationStatusPaidApproved); err != nil {
		return nil, err
	}

	required := requiredCents(rs.TotalCents, s.thresholdPercent)
	if err := s.paymentRepo.Approve(ctx, paymentID, operatorID, rs.Status, required); err != nil {
		return nil, err
	}
	p, err = s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	logger.Info("Payment approved",
		"payment_id", paymentID, "reservation_id", p.ReservationID, "operator", operatorID)
	publishPaymentEvent(s.publisher, events.EventPaymentApproved, p)
	publishTransition(s.publisher, p.ReservationID, "operator:"+operatorID, rs.Status, domain.ReservationStatusPaidApproved)
	publishTransition(s.publisher, p.ReservationID, "system",
		domain.ReservationStatusPaidApproved, domain.ReservationStatusCheckinAllowed)
	publishReservationEvent(s.publisher, events.EventCheckinAllowed, &domain.Reservation{
		ID: p.ReservationID, Status: domain.ReservationStatusCheckinAllowed,
		RoomNumber: rs.RoomNumber, GuestID: rs.GuestID,
	})
	return p, nil
}

func (s *paymentService) RejectProof(ctx context.Context, paymentID, operatorID, reason string) (*domain.Payment, error) {
	p, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	rs, err := s.reservationRepo.GetByID(ctx, p.ReservationID)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateTransition(rs.Status, domain.ReservationStatusPaidRejected); err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Reject(ctx, paymentID, operatorID, reason, rs.Status); err != nil {
		return nil, err
	}
	p, err = s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	logger.Info("Payment rejected",
		"payment_id", paymentID, "reservation_id", p.ReservationID,
		"operator", operatorID, "reason", reason)
	publishPaymentEvent(s.publisher, events.EventPaymentRejected, p)
	publishTransition(s.publisher, p.ReservationID, "operator:"+operatorID, rs.Status, domain.ReservationStatusPaidRejected)
	return p, nil
}

func (s *paymentService) ListPayments(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	return s.paymentRepo.ListByReservation(ctx, reservationID)
}

// requiredCents rounds up so a 99.5% approval never clears a 100% bar.
func requiredCents(totalCents int64, thresholdPercent int) int64 {
	return (totalCents*int64(thresholdPercent) + 99) / 100
}
