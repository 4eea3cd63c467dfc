package repos

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/repository/postgres"
)

func TestSettlementRepository_CreateCheckin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSettlementRepository(db)
	ctx := context.Background()

	t.Run("Check-in occupies the room", func(t *testing.T) {
		rec := &domain.CheckinRecord{
			ReservationID: 7,
			GuestName:     "Ana Souza", GuestDocument: "DOC-1",
			Adults: 2, Children: 0,
			DepositCents: 5000, DepositMethod: domain.PaymentMethodPix,
			OperatorID: "op-1",
		}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT room_number, status FROM reservations WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"room_number", "status"}).
				AddRow("101", string(domain.ReservationStatusCheckinAllowed)))
		mock.ExpectQuery("INSERT INTO checkin_records").
			WithArgs(int64(7), "Ana Souza", "DOC-1", int32(2), int32(0), "",
				int64(5000), string(domain.PaymentMethodPix), "op-1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectExec("UPDATE reservations SET status = \\$1, version = version \\+ 1").
			WithArgs(string(domain.ReservationStatusCheckedIn), sqlmock.AnyArg(),
				int64(7), string(domain.ReservationStatusCheckinAllowed)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE rooms SET state = 'OCCUPIED'").
			WithArgs(sqlmock.AnyArg(), "101").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateCheckin(ctx, rec)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), rec.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Lost transition race leaves the room untouched", func(t *testing.T) {
		rec := &domain.CheckinRecord{
			ReservationID: 7,
			GuestName:     "Ana Souza", GuestDocument: "DOC-1", Adults: 2,
			DepositCents: 5000, DepositMethod: domain.PaymentMethodPix,
			OperatorID: "op-1",
		}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT room_number, status FROM reservations WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"room_number", "status"}).
				AddRow("101", string(domain.ReservationStatusCheckinAllowed)))
		mock.ExpectQuery("INSERT INTO checkin_records").
			WithArgs(int64(7), "Ana Souza", "DOC-1", int32(2), int32(0), "",
				int64(5000), string(domain.PaymentMethodPix), "op-1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
		mock.ExpectExec("UPDATE reservations SET status = \\$1, version = version \\+ 1").
			WithArgs(string(domain.ReservationStatusCheckedIn), sqlmock.AnyArg(),
				int64(7), string(domain.ReservationStatusCheckinAllowed)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CreateCheckin(ctx, rec)
		assert.True(t, domain.IsCode(err, domain.CodeInvalidTransition))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSettlementRepository_CreateCheckout(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewSettlementRepository(db)
	ctx := context.Background()

	t.Run("Check-out frees the room", func(t *testing.T) {
		rec := &domain.CheckoutRecord{
			ReservationID:        7,
			InspectionOK:         true,
			DepositReturnedCents: 5000,
			Rating:               5,
			SettlementMethod:     domain.PaymentMethodPix,
			FinalBalanceCents:    0,
			OperatorID:           "op-1",
		}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT room_number FROM reservations WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"room_number"}).AddRow("101"))
		mock.ExpectQuery("INSERT INTO checkout_records").
			WithArgs(int64(7), true, "", int64(0), int64(0), int64(0), int64(0),
				int64(5000), int64(0), "", int32(5), string(domain.PaymentMethodPix),
				int64(0), "op-1", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
		mock.ExpectExec("UPDATE reservations SET status = \\$1, version = version \\+ 1").
			WithArgs(string(domain.ReservationStatusCheckedOut), sqlmock.AnyArg(),
				int64(7), string(domain.ReservationStatusCheckedIn)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE rooms SET state = 'FREE'").
			WithArgs(sqlmock.AnyArg(), "101").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.CreateCheckout(ctx, rec)
		assert.NoError(t, err)
		assert.Equal(t, int64(21), rec.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
