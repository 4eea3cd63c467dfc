package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/repository"
)

type settlementRepository struct {
	db *sql.DB
}

func NewSettlementRepository(db *sql.DB) repository.SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) GetCheckin(ctx context.Context, reservationID int64) (*domain.CheckinRecord, error) {
	rec := &domain.CheckinRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, reservation_id, guest_name, guest_document, adults, children, COALESCE(vehicle_plate, ''), deposit_cents, deposit_method, operator_id, created_on
		 FROM checkin_records WHERE reservation_id = $1`, reservationID).
		Scan(&rec.ID, &rec.ReservationID, &rec.GuestName, &rec.GuestDocument, &rec.Adults,
			&rec.Children, &rec.VehiclePlate, &rec.DepositCents, &rec.DepositMethod,
			&rec.OperatorID, &rec.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("checkin record for reservation", reservationID)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *settlementRepository) CreateCheckin(ctx context.Context, rec *domain.CheckinRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var roomNumber string
	var status domain.ReservationStatus
	err = tx.QueryRowContext(ctx,
		`SELECT room_number, status FROM reservations WHERE id = $1 FOR UPDATE`,
		rec.ReservationID).Scan(&roomNumber, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("reservation", rec.ReservationID)
	}
	if err != nil {
		return err
	}

	rec.CreatedOn = time.Now().UTC()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO checkin_records (reservation_id, guest_name, guest_document, adults, children, vehicle_plate, deposit_cents, deposit_method, operator_id, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		rec.ReservationID, rec.GuestName, rec.GuestDocument, rec.Adults, rec.Children,
		rec.VehiclePlate, rec.DepositCents, rec.DepositMethod, rec.OperatorID, rec.CreatedOn).Scan(&rec.ID)
	if err != nil {
		return err
	}

	if err := transitionStatus(ctx, tx, rec.ReservationID, domain.ReservationStatusCheckinAllowed, domain.ReservationStatusCheckedIn); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE rooms SET state = 'OCCUPIED', updated_on = $1 WHERE number = $2`,
		time.Now().UTC(), roomNumber); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *settlementRepository) GetCheckout(ctx context.Context, reservationID int64) (*domain.CheckoutRecord, error) {
	rec := &domain.CheckoutRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, reservation_id, inspection_ok, COALESCE(damage_description, ''), damage_cents, minibar_cents, extra_services_cents, late_fee_cents, deposit_returned_cents, deposit_retained_cents, COALESCE(retain_reason, ''), rating, settlement_method, final_balance_cents, operator_id, created_on
		 FROM checkout_records WHERE reservation_id = $1`, reservationID).
		Scan(&rec.ID, &rec.ReservationID, &rec.InspectionOK, &rec.DamageDescription,
			&rec.DamageCents, &rec.MinibarCents, &rec.ExtraServicesCents, &rec.LateFeeCents,
			&rec.DepositReturnedCents, &rec.DepositRetainedCents, &rec.RetainReason,
			&rec.Rating, &rec.SettlementMethod, &rec.FinalBalanceCents, &rec.OperatorID, &rec.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("checkout record for reservation", reservationID)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *settlementRepository) CreateCheckout(ctx context.Context, rec *domain.CheckoutRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var roomNumber string
	err = tx.QueryRowContext(ctx,
		`SELECT room_number FROM reservations WHERE id = $1 FOR UPDATE`,
		rec.ReservationID).Scan(&roomNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("reservation", rec.ReservationID)
	}
	if err != nil {
		return err
	}

	rec.CreatedOn = time.Now().UTC()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO checkout_records (reservation_id, inspection_ok, damage_description, damage_cents, minibar_cents, extra_services_cents, late_fee_cents, deposit_returned_cents, deposit_retained_cents, retain_reason, rating, settlement_method, final_balance_cents, operator_id, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15) RETURNING id`,
		rec.ReservationID, rec.InspectionOK, rec.DamageDescription, rec.DamageCents,
		rec.MinibarCents, rec.ExtraServicesCents, rec.LateFeeCents, rec.DepositReturnedCents,
		rec.DepositRetainedCents, rec.RetainReason, rec.Rating, rec.SettlementMethod,
		rec.FinalBalanceCents, rec.OperatorID, rec.CreatedOn).Scan(&rec.ID)
	if err != nil {
		return err
	}

	if err := transitionStatus(ctx, tx, rec.ReservationID, domain.ReservationStatusCheckedIn, domain.ReservationStatusCheckedOut); err != nil {
		return err
	}
	// Check-out releases the room back to the allocator.
	if _, err := tx.ExecContext(ctx,
		`UPDATE rooms SET state = 'FREE', updated_on = $1 WHERE number = $2`,
		time.Now().UTC(), roomNumber); err != nil {
		return err
	}
	return tx.Commit()
}
