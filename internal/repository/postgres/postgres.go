package postgres

import (
	"database/sql"

	"frontdesk-backend/internal/repository"

	_ "github.com/lib/pq"
)

// Store bundles all repositories over one database handle.
type Store struct {
	db *sql.DB
	repository.RoomRepository
	repository.ReservationRepository
	repository.PaymentRepository
	repository.SettlementRepository
	repository.TariffRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		RoomRepository:        NewRoomRepository(db),
		ReservationRepository: NewReservationRepository(db),
		PaymentRepository:     NewPaymentRepository(db),
		SettlementRepository:  NewSettlementRepository(db),
		TariffRepository:      NewTariffRepository(db),
	}
}

// reservationBlocking lists the statuses that keep a room-date interval
// claimed. Everything else (CANCELLED, NO_SHOW) releases the interval.
const reservationBlocking = `('PENDING_PAYMENT','AWAITING_PROOF','UNDER_REVIEW','PAID_APPROVED','PAID_REJECTED','CHECKIN_ALLOWED','CHECKED_IN','CHECKED_OUT')`
