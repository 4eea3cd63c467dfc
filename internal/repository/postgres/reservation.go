package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

const reservationColumns = `id, room_number, guest_id, checkin, checkout, nightly_rate_cents, nights, total_cents, status, version, created_on, updated_on`

func scanReservation(row interface{ Scan(...any) error }, rs *domain.Reservation) error {
	return row.Scan(&rs.ID, &rs.RoomNumber, &rs.GuestID, &rs.Checkin, &rs.Checkout,
		&rs.NightlyRateCents, &rs.Nights, &rs.TotalCents, &rs.Status, &rs.Version,
		&rs.CreatedOn, &rs.UpdatedOn)
}

// CreateIfAvailable serializes on the room row: two concurrent calls for the
// same room queue on the FOR UPDATE lock, and the loser sees the winner's
// committed row in the overlap re-check.
func (r *reservationRepository) CreateIfAvailable(ctx context.Context, rs *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var active bool
	var state domain.RoomState
	err = tx.QueryRowContext(ctx,
		`SELECT active, state FROM rooms WHERE number = $1 FOR UPDATE`,
		rs.RoomNumber).Scan(&active, &state)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound("room", rs.RoomNumber)
	}
	if err != nil {
		return err
	}
	if !active || state == domain.RoomStateMaintenance || state == domain.RoomStateBlocked {
		return domain.NewRoomConflict(rs.RoomNumber)
	}

	var overlapping int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM reservations
		 WHERE room_number = $1
		   AND status IN `+reservationBlocking+`
		   AND checkin < $3
		   AND $2 < checkout`,
		rs.RoomNumber, rs.Checkin, rs.Checkout).Scan(&overlapping)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return domain.NewRoomConflict(rs.RoomNumber)
	}

	now := time.Now().UTC()
	rs.Status = domain.ReservationStatusPendingPayment
	rs.Version = 1
	rs.CreatedOn = now
	rs.UpdatedOn = now
	err = tx.QueryRowContext(ctx,
		`INSERT INTO reservations (room_number, guest_id, checkin, checkout, nightly_rate_cents, nights, total_cents, status, version, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
		rs.RoomNumber, rs.GuestID, rs.Checkin, rs.Checkout, rs.NightlyRateCents,
		rs.Nights, rs.TotalCents, rs.Status, rs.Version, rs.CreatedOn, rs.UpdatedOn).Scan(&rs.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *reservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	rs := &domain.Reservation{}
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	err := scanReservation(r.db.QueryRowContext(ctx, query, id), rs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("reservation", id)
	}
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (r *reservationRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) error {
	return transitionStatus(ctx, r.db, id, from, to)
}

// transitionStatus is the shared compare-and-swap used both standalone and
// inside payment/settlement transactions.
func transitionStatus(ctx context.Context, q queryer, id int64, from, to domain.ReservationStatus) error {
	if err := domain.ValidateTransition(from, to); err != nil {
		return err
	}
	res, err := q.ExecContext(ctx,
		`UPDATE reservations SET status = $1, version = version + 1, updated_on = $2 WHERE id = $3 AND status = $4`,
		to, time.Now().UTC(), id, from)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Either the id is unknown or a concurrent transition won the race.
		return domain.NewInvalidTransition(from, to)
	}
	return nil
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *reservationRepository) ListByGuest(ctx context.Context, guestID string, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return r.list(ctx, "guest_id", guestID, status, page, pageSize)
}

func (r *reservationRepository) ListByRoom(ctx context.Context, roomNumber string, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return r.list(ctx, "room_number", roomNumber, status, page, pageSize)
}

func (r *reservationRepository) FindLapsed(ctx context.Context, cutoff time.Time, statuses []domain.ReservationStatus) ([]domain.Reservation, error) {
	set := make([]string, len(statuses))
	for i, s := range statuses {
		set[i] = string(s)
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations
		 WHERE checkin < $1 AND status = ANY($2)
		 ORDER BY checkin`,
		cutoff, pq.Array(set))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var rs domain.Reservation
		if err := scanReservation(rows, &rs); err != nil {
			return nil, err
		}
		out = append(out, rs)
	}
	return out, rows.Err()
}

func (r *reservationRepository) list(ctx context.Context, field, value, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE ` + field + ` = $1`

	args := []any{value}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		var rs domain.Reservation
		if err := scanReservation(rows, &rs); err != nil {
			return nil, 0, err
		}
		out = append(out, rs)
	}
	return out, count, rows.Err()
}
