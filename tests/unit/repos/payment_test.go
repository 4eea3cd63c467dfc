package repos

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/repository/postgres"
)

var paymentCols = []string{
	"id", "reservation_id", "method", "amount_cents", "status",
	"idempotency_key", "proof_ref", "reviewed_by", "reject_reason",
	"created_on", "updated_on",
}

func TestPaymentRepository_CreateExclusive(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Fresh insert with reservation transition", func(t *testing.T) {
		p := &domain.Payment{
			ID: "pay-1", ReservationID: 1, Method: domain.PaymentMethodBalcony,
			AmountCents: 40000, Status: domain.PaymentStatusPending, IdempotencyKey: "key-1",
		}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM reservations WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("PENDING_PAYMENT"))
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE reservation_id = \\$1 AND idempotency_key = \\$2").
			WithArgs(int64(1), "key-1").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM payments").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectExec("INSERT INTO payments").
			WithArgs("pay-1", int64(1), string(domain.PaymentMethodBalcony), int64(40000),
				string(domain.PaymentStatusPending), "key-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE reservations SET status = \\$1").
			WithArgs(string(domain.ReservationStatusAwaitingProof), sqlmock.AnyArg(),
				int64(1), string(domain.ReservationStatusPendingPayment)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		created, err := repo.CreateExclusive(ctx, p,
			domain.ReservationStatusPendingPayment, domain.ReservationStatusAwaitingProof)
		assert.NoError(t, err)
		assert.Equal(t, "pay-1", created.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Idempotency key reuse returns the first payment", func(t *testing.T) {
		p := &domain.Payment{
			ID: "pay-new", ReservationID: 1, Method: domain.PaymentMethodBalcony,
			AmountCents: 40000, Status: domain.PaymentStatusPending, IdempotencyKey: "key-1",
		}
		now := time.Now().UTC()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM reservations WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("AWAITING_PROOF"))
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE reservation_id = \\$1 AND idempotency_key = \\$2").
			WithArgs(int64(1), "key-1").
			WillReturnRows(sqlmock.NewRows(paymentCols).
				AddRow("pay-1", int64(1), "balcony", int64(40000), "PENDING",
					"key-1", nil, nil, "", now, now))
		mock.ExpectCommit()

		created, err := repo.CreateExclusive(ctx, p,
			domain.ReservationStatusAwaitingProof, domain.ReservationStatusAwaitingProof)
		assert.NoError(t, err)
		assert.Equal(t, "pay-1", created.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Second in-flight payment rejected", func(t *testing.T) {
		p := &domain.Payment{
			ID: "pay-2", ReservationID: 1, Method: domain.PaymentMethodPix,
			AmountCents: 40000, Status: domain.PaymentStatusProcessing, IdempotencyKey: "key-2",
		}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM reservations WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("AWAITING_PROOF"))
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE reservation_id = \\$1 AND idempotency_key = \\$2").
			WithArgs(int64(1), "key-2").
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM payments").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		_, err := repo.CreateExclusive(ctx, p,
			domain.ReservationStatusAwaitingProof, domain.ReservationStatusAwaitingProof)
		assert.True(t, domain.IsCode(err, domain.CodeDuplicatePaymentInProgress))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_Approve(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Approval walks the reservation to CHECKIN_ALLOWED", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT reservation_id, amount_cents, status FROM payments WHERE id = \\$1").
			WithArgs("pay-1").
			WillReturnRows(sqlmock.NewRows([]string{"reservation_id", "amount_cents", "status"}).
				AddRow(int64(1), int64(40000), "PROCESSING"))
		mock.ExpectQuery("SELECT status FROM reservations WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("UNDER_REVIEW"))
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount_cents\\), 0\\) FROM payments").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(0)))
		mock.ExpectExec("UPDATE payments SET status = 'APPROVED'").
			WithArgs("op-1", sqlmock.AnyArg(), "pay-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE reservations SET status = \\$1").
			WithArgs(string(domain.ReservationStatusPaidApproved), sqlmock.AnyArg(),
				int64(1), string(domain.ReservationStatusUnderReview)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE reservations SET status = \\$1").
			WithArgs(string(domain.ReservationStatusCheckinAllowed), sqlmock.AnyArg(),
				int64(1), string(domain.ReservationStatusPaidApproved)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Approve(ctx, "pay-1", "op-1", domain.ReservationStatusUnderReview, 40000)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Below threshold nothing mutates", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT reservation_id, amount_cents, status FROM payments WHERE id = \\$1").
			WithArgs("pay-2").
			WillReturnRows(sqlmock.NewRows([]string{"reservation_id", "amount_cents", "status"}).
				AddRow(int64(2), int64(10000), "PROCESSING"))
		mock.ExpectQuery("SELECT status FROM reservations WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("UNDER_REVIEW"))
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount_cents\\), 0\\) FROM payments").
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(int64(0)))
		mock.ExpectRollback()

		err := repo.Approve(ctx, "pay-2", "op-1", domain.ReservationStatusUnderReview, 40000)
		assert.True(t, domain.IsCode(err, domain.CodeInsufficientPayment))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Resolved payment cannot approve again", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT reservation_id, amount_cents, status FROM payments WHERE id = \\$1").
			WithArgs("pay-3").
			WillReturnRows(sqlmock.NewRows([]string{"reservation_id", "amount_cents", "status"}).
				AddRow(int64(3), int64(40000), "REJECTED"))
		mock.ExpectRollback()

		err := repo.Approve(ctx, "pay-3", "op-1", domain.ReservationStatusUnderReview, 40000)
		assert.True(t, domain.IsCode(err, domain.CodeWrongState))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_ExpireStale(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()
	cutoff := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	created := cutoff.Add(-time.Hour)

	t.Run("Expires one and skips a resolved candidate", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, reservation_id FROM payments WHERE status = 'PENDING'").
			WithArgs(cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id"}).
				AddRow("pay-1", int64(1)).
				AddRow("pay-2", int64(2)))

		// pay-1 still pending under the lock.
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM reservations WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("AWAITING_PROOF"))
		mock.ExpectExec("UPDATE payments SET status = 'CANCELLED'").
			WithArgs(sqlmock.AnyArg(), "pay-1", cutoff).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE id = \\$1").
			WithArgs("pay-1").
			WillReturnRows(sqlmock.NewRows(paymentCols).
				AddRow("pay-1", int64(1), "balcony", int64(40000), "CANCELLED",
					"key-1", nil, nil, "", created, created))
		mock.ExpectCommit()

		// pay-2 was resolved between the scan and the lock.
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT status FROM reservations WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("UNDER_REVIEW"))
		mock.ExpectExec("UPDATE payments SET status = 'CANCELLED'").
			WithArgs(sqlmock.AnyArg(), "pay-2", cutoff).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		expired, err := repo.ExpireStale(ctx, cutoff)
		assert.NoError(t, err)
		assert.Len(t, expired, 1)
		assert.Equal(t, "pay-1", expired[0].ID)
		assert.Equal(t, domain.PaymentStatusCancelled, expired[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
