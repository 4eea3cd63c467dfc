package service

import (
	"context"
	"fmt"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/events"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
	"frontdesk-backend/internal/utils"
)

type settlementService struct {
	settlementRepo  repository.SettlementRepository
	reservationRepo repository.ReservationRepository
	paymentRepo     repository.PaymentRepository
	publisher       events.Publisher
	graceWindow     time.Duration
	now             func() time.Time
}

// NewSettlementService builds the check-in/check-out engine. graceWindow is
// how far ahead of the booked check-in date the front desk may admit a
// guest.
func NewSettlementService(
	settlementRepo repository.SettlementRepository,
	reservationRepo repository.ReservationRepository,
	paymentRepo repository.PaymentRepository,
	publisher events.Publisher,
	graceWindow time.Duration,
) SettlementService {
	return &settlementService{
		settlementRepo:  settlementRepo,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		publisher:       publisher,
		graceWindow:     graceWindow,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

func (s *settlementService) ValidateCheckin(ctx context.Context, reservationID int64) (*domain.CheckinValidation, error) {
	rs, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rs.Status == domain.ReservationStatusCheckedIn {
		return &domain.CheckinValidation{Allowed: false, Reason: "guest already checked in"}, nil
	}
	if rs.Status != domain.ReservationStatusCheckinAllowed {
		return &domain.CheckinValidation{
			Allowed: false,
			Reason:  fmt.Sprintf("reservation is %s, payment must be approved first", rs.Status),
		}, nil
	}
	if _, err := s.settlementRepo.GetCheckin(ctx, reservationID); err == nil {
		return &domain.CheckinValidation{Allowed: false, Reason: "check-in record already exists"}, nil
	} else if !domain.IsCode(err, domain.CodeNotFound) {
		return nil, err
	}
	if early := rs.Checkin.Sub(s.now()); early > s.graceWindow {
		return &domain.CheckinValidation{
			Allowed: false,
			Reason:  fmt.Sprintf("check-in opens %s before %s", s.graceWindow, rs.Checkin.Format(time.RFC3339)),
		}, nil
	}
	return &domain.CheckinValidation{Allowed: true}, nil
}

// PerformCheckin requires every consent flag; the record insert, the status
// transition and the room occupation commit together.
func (s *settlementService) PerformCheckin(ctx context.Context, reservationID int64, details domain.CheckinDetails, operatorID string) (*domain.CheckinRecord, error) {
	if !details.DocumentsVerified {
		return nil, domain.NewError(domain.CodeDocumentsNotVerified, "guest documents must be verified before check-in")
	}
	if !details.PaymentValidated {
		return nil, domain.NewError(domain.CodePaymentNotValidated, "payment must be validated before check-in")
	}
	if !details.TermsAccepted {
		return nil, domain.NewError(domain.CodeTermsNotAccepted, "guest must accept the terms before check-in")
	}
	if details.GuestName == "" || details.GuestDocument == "" {
		return nil, domain.NewError(domain.CodeValidationFailed, "primary guest name and document are required")
	}
	if details.Adults < 1 {
		return nil, domain.NewError(domain.CodeValidationFailed, "at least one adult is required")
	}
	if details.DepositCents < 0 {
		return nil, domain.NewError(domain.CodeValidationFailed, "deposit cannot be negative")
	}

	rs, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rs.Status != domain.ReservationStatusCheckinAllowed {
		return nil, domain.NewWrongState("reservation %d is %s, expected %s",
			reservationID, rs.Status, domain.ReservationStatusCheckinAllowed)
	}
	if early := rs.Checkin.Sub(s.now()); early > s.graceWindow {
		return nil, domain.NewWrongState("check-in date %s is still %s away",
			rs.Checkin.Format("2006-01-02"), early.Round(time.Hour))
	}

	rec := &domain.CheckinRecord{
		ReservationID: reservationID,
		GuestName:     details.GuestName,
		GuestDocument: details.GuestDocument,
		Adults:        details.Adults,
		Children:      details.Children,
		VehiclePlate:  details.VehiclePlate,
		DepositCents:  details.DepositCents,
		DepositMethod: details.DepositMethod,
		OperatorID:    operatorID,
	}
	if err := s.settlementRepo.CreateCheckin(ctx, rec); err != nil {
		return nil, err
	}

	logger.Info("Guest checked in",
		"reservation_id", reservationID, "operator", operatorID,
		"deposit_cents", details.DepositCents)
	publishTransition(s.publisher, reservationID, "operator:"+operatorID,
		domain.ReservationStatusCheckinAllowed, domain.ReservationStatusCheckedIn)
	publishReservationEvent(s.publisher, events.EventGuestCheckedIn, rs)
	return rec, nil
}

func (s *settlementService) ValidateCheckout(ctx context.Context, reservationID int64) (*domain.SettlementPreview, error) {
	rs, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rs.Status != domain.ReservationStatusCheckedIn {
		return nil, domain.NewWrongState("reservation %d is %s, expected %s",
			reservationID, rs.Status, domain.ReservationStatusCheckedIn)
	}
	checkin, err := s.settlementRepo.GetCheckin(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	paid, err := s.paymentRepo.SumApproved(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	st := utils.Settlement{
		NightsStayed:     utils.NightsStayed(rs.Checkin, s.now()),
		NightlyRateCents: rs.NightlyRateCents,
		PaidCents:        paid,
		DepositCents:     checkin.DepositCents,
	}
	return &domain.SettlementPreview{
		ReservationID:    reservationID,
		NightsStayed:     st.NightsStayed,
		NightlyRateCents: st.NightlyRateCents,
		StayCostCents:    st.StayCostCents(),
		PaidCents:        paid,
		IncidentalsCents: 0,
		DepositCents:     checkin.DepositCents,
		BalanceCents:     st.BalanceCents(),
	}, nil
}

// PerformCheckout settles the stay. Calling it again after success returns
// the already-written record with ALREADY_CHECKED_OUT; nothing is
// recomputed.
func (s *settlementService) PerformCheckout(ctx context.Context, reservationID int64, instruction domain.CheckoutInstruction, operatorID string) (*domain.CheckoutRecord, error) {
	rs, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if rs.Status == domain.ReservationStatusCheckedOut {
		rec, err := s.settlementRepo.GetCheckout(ctx, reservationID)
		if err != nil {
			return nil, err
		}
		return rec, domain.NewError(domain.CodeAlreadyCheckedOut, "reservation %d already checked out", reservationID)
	}
	if rs.Status != domain.ReservationStatusCheckedIn {
		return nil, domain.NewWrongState("reservation %d is %s, expected %s",
			reservationID, rs.Status, domain.ReservationStatusCheckedIn)
	}
	if instruction.Rating < 1 || instruction.Rating > 5 {
		return nil, domain.NewError(domain.CodeValidationFailed, "rating must be between 1 and 5")
	}
	if !instruction.InspectionOK && instruction.DamageDescription == "" {
		return nil, domain.NewError(domain.CodeValidationFailed, "a failed inspection needs a damage description")
	}

	checkin, err := s.settlementRepo.GetCheckin(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if instruction.DepositRetainedCents < 0 || instruction.DepositRetainedCents > checkin.DepositCents {
		return nil, domain.NewError(domain.CodeValidationFailed,
			"retained deposit must be within the %d cents collected", checkin.DepositCents)
	}
	if instruction.DepositRetainedCents > 0 && instruction.RetainReason == "" {
		return nil, domain.NewError(domain.CodeValidationFailed, "retaining a deposit needs a reason")
	}
	paid, err := s.paymentRepo.SumApproved(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	st := utils.Settlement{
		NightsStayed:         utils.NightsStayed(rs.Checkin, s.now()),
		NightlyRateCents:     rs.NightlyRateCents,
		PaidCents:            paid,
		MinibarCents:         instruction.MinibarCents,
		ExtraServicesCents:   instruction.ExtraServicesCents,
		LateFeeCents:         instruction.LateFeeCents,
		DamageCents:          instruction.DamageCents,
		DepositCents:         checkin.DepositCents,
		DepositRetainedCents: instruction.DepositRetainedCents,
	}

	rec := &domain.CheckoutRecord{
		ReservationID:        reservationID,
		InspectionOK:         instruction.InspectionOK,
		DamageDescription:    instruction.DamageDescription,
		DamageCents:          instruction.DamageCents,
		MinibarCents:         instruction.MinibarCents,
		ExtraServicesCents:   instruction.ExtraServicesCents,
		LateFeeCents:         instruction.LateFeeCents,
		DepositReturnedCents: st.DepositReturnedCents(),
		DepositRetainedCents: instruction.DepositRetainedCents,
		RetainReason:         instruction.RetainReason,
		Rating:               instruction.Rating,
		SettlementMethod:     instruction.SettlementMethod,
		FinalBalanceCents:    st.BalanceCents(),
		OperatorID:           operatorID,
	}
	if err := s.settlementRepo.CreateCheckout(ctx, rec); err != nil {
		return nil, err
	}

	logger.Info("Guest checked out",
		"reservation_id", reservationID, "operator", operatorID,
		"final_balance_cents", rec.FinalBalanceCents,
		"deposit_returned_cents", rec.DepositReturnedCents)
	publishTransition(s.publisher, reservationID, "operator:"+operatorID,
		domain.ReservationStatusCheckedIn, domain.ReservationStatusCheckedOut)
	publishReservationEvent(s.publisher, events.EventGuestCheckedOut, rs)
	return rec, nil
}
