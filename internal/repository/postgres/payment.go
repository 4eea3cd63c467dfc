package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/repository"
)

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `id, reservation_id, method, amount_cents, status, idempotency_key, proof_ref, reviewed_by, COALESCE(reject_reason, ''), created_on, updated_on`

func scanPayment(row interface{ Scan(...any) error }, p *domain.Payment) error {
	return row.Scan(&p.ID, &p.ReservationID, &p.Method, &p.AmountCents, &p.Status,
		&p.IdempotencyKey, &p.ProofRef, &p.ReviewedBy, &p.RejectReason,
		&p.CreatedOn, &p.UpdatedOn)
}

// lockReservation takes the per-reservation row lock that serializes every
// payment mutation (creation, proof, resolution, expiry sweep).
func lockReservation(ctx context.Context, tx *sql.Tx, reservationID int64) (domain.ReservationStatus, error) {
	var status domain.ReservationStatus
	err := tx.QueryRowContext(ctx,
		`SELECT status FROM reservations WHERE id = $1 FOR UPDATE`,
		reservationID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.NewNotFound("reservation", reservationID)
	}
	return status, err
}

func (r *paymentRepository) CreateExclusive(ctx context.Context, p *domain.Payment, resFrom, resTo domain.ReservationStatus) (*domain.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := lockReservation(ctx, tx, p.ReservationID); err != nil {
		return nil, err
	}

	// Idempotency short-circuit: a retried request returns the payment the
	// first attempt created.
	existing := &domain.Payment{}
	err = scanPayment(tx.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE reservation_id = $1 AND idempotency_key = $2`,
		p.ReservationID, p.IdempotencyKey), existing)
	if err == nil {
		return existing, tx.Commit()
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	var inflight int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM payments WHERE reservation_id = $1 AND status IN ('PENDING','PROCESSING')`,
		p.ReservationID).Scan(&inflight)
	if err != nil {
		return nil, err
	}
	if inflight > 0 {
		return nil, domain.NewDuplicatePaymentInProgress(p.ReservationID)
	}

	now := time.Now().UTC()
	p.CreatedOn = now
	p.UpdatedOn = now
	_, err = tx.ExecContext(ctx,
		`INSERT INTO payments (id, reservation_id, method, amount_cents, status, idempotency_key, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.ReservationID, p.Method, p.AmountCents, p.Status, p.IdempotencyKey, p.CreatedOn, p.UpdatedOn)
	if err != nil {
		return nil, err
	}

	if resFrom != resTo {
		if err := transitionStatus(ctx, tx, p.ReservationID, resFrom, resTo); err != nil {
			return nil, err
		}
	}

	return p, tx.Commit()
}

func (r *paymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	p := &domain.Payment{}
	err := scanPayment(r.db.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id), p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("payment", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE reservation_id = $1 ORDER BY created_on DESC`,
		reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *paymentRepository) SumApproved(ctx context.Context, reservationID int64) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE reservation_id = $1 AND status = 'APPROVED'`,
		reservationID).Scan(&sum)
	return sum, err
}

func (r *paymentRepository) SubmitProof(ctx context.Context, paymentID, proofRef string, resFrom, resTo domain.ReservationStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var reservationID int64
	err = tx.QueryRowContext(ctx,
		`SELECT reservation_id FROM payments WHERE id = $1`, paymentID).Scan(&reservationID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("payment", paymentID)
	}
	if err != nil {
		return err
	}
	if _, err := lockReservation(ctx, tx, reservationID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = 'PROCESSING', proof_ref = $1, updated_on = $2 WHERE id = $3 AND status = 'PENDING'`,
		proofRef, time.Now().UTC(), paymentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewWrongState("payment %s is not awaiting a proof", paymentID)
	}

	if err := transitionStatus(ctx, tx, reservationID, resFrom, resTo); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *paymentRepository) Approve(ctx context.Context, paymentID, operatorID string, resFrom domain.ReservationStatus, requiredCents int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var reservationID int64
	var amount int64
	var status domain.PaymentStatus
	err = tx.QueryRowContext(ctx,
		`SELECT reservation_id, amount_cents, status FROM payments WHERE id = $1`, paymentID).
		Scan(&reservationID, &amount, &status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("payment", paymentID)
	}
	if err != nil {
		return err
	}
	if status.Terminal() {
		return domain.NewWrongState("payment %s already resolved as %s", paymentID, status)
	}
	if _, err := lockReservation(ctx, tx, reservationID); err != nil {
		return err
	}

	// Threshold check under the lock: approved so far plus this payment
	// must clear the configured share of the reservation total.
	var approvedSoFar int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE reservation_id = $1 AND status = 'APPROVED'`,
		reservationID).Scan(&approvedSoFar)
	if err != nil {
		return err
	}
	if approvedSoFar+amount < requiredCents {
		return domain.NewError(domain.CodeInsufficientPayment,
			"approved %d of required %d cents for reservation %d",
			approvedSoFar+amount, requiredCents, reservationID)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = 'APPROVED', reviewed_by = $1, updated_on = $2 WHERE id = $3 AND status IN ('PENDING','PROCESSING')`,
		operatorID, time.Now().UTC(), paymentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewWrongState("payment %s is not resolvable", paymentID)
	}

	// Approval drives the reservation forward; CHECKIN_ALLOWED follows
	// PAID_APPROVED automatically once the approval is recorded.
	if err := transitionStatus(ctx, tx, reservationID, resFrom, domain.ReservationStatusPaidApproved); err != nil {
		return err
	}
	if err := transitionStatus(ctx, tx, reservationID, domain.ReservationStatusPaidApproved, domain.ReservationStatusCheckinAllowed); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *paymentRepository) Reject(ctx context.Context, paymentID, operatorID, reason string, resFrom domain.ReservationStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var reservationID int64
	err = tx.QueryRowContext(ctx,
		`SELECT reservation_id FROM payments WHERE id = $1`, paymentID).Scan(&reservationID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("payment", paymentID)
	}
	if err != nil {
		return err
	}
	if _, err := lockReservation(ctx, tx, reservationID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = 'REJECTED', reviewed_by = $1, reject_reason = $2, updated_on = $3 WHERE id = $4 AND status IN ('PENDING','PROCESSING')`,
		operatorID, reason, time.Now().UTC(), paymentID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewWrongState("payment %s is not resolvable", paymentID)
	}

	if err := transitionStatus(ctx, tx, reservationID, resFrom, domain.ReservationStatusPaidRejected); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *paymentRepository) ExpireStale(ctx context.Context, cutoff time.Time) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reservation_id FROM payments WHERE status = 'PENDING' AND created_on < $1`, cutoff)
	if err != nil {
		return nil, err
	}
	type candidate struct {
		id            string
		reservationID int64
	}
	var candidates []candidate
	for rows.Next() {
		var c candidate
		if err := rows.Scan(&c.id, &c.reservationID); err != nil {
			rows.Close()
			return nil, err
		}
		candidates = append(candidates, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// One transaction per payment under the reservation lock, so the sweep
	// can never race CreateExclusive into a second in-flight payment.
	var expired []domain.Payment
	for _, c := range candidates {
		p, err := r.expireOne(ctx, c.id, c.reservationID, cutoff)
		if err != nil {
			return expired, err
		}
		if p != nil {
			expired = append(expired, *p)
		}
	}
	return expired, nil
}

func (r *paymentRepository) expireOne(ctx context.Context, paymentID string, reservationID int64, cutoff time.Time) (*domain.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := lockReservation(ctx, tx, reservationID); err != nil {
		return nil, err
	}

	// Re-check under the lock; the payment may have been resolved since
	// the candidate scan.
	res, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = 'CANCELLED', updated_on = $1 WHERE id = $2 AND status = 'PENDING' AND created_on < $3`,
		time.Now().UTC(), paymentID, cutoff)
	if err != nil {
		return nil, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, tx.Commit()
	}

	p := &domain.Payment{}
	if err := scanPayment(tx.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, paymentID), p); err != nil {
		return nil, err
	}
	return p, tx.Commit()
}
