package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/repository"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	rm := &domain.Room{}
	query := `SELECT number, room_type, state, active, created_on, updated_on FROM rooms WHERE number = $1`
	err := r.db.QueryRowContext(ctx, query, number).Scan(&rm.Number, &rm.Type, &rm.State, &rm.Active, &rm.CreatedOn, &rm.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFound("room", number)
	}
	if err != nil {
		return nil, err
	}
	return rm, nil
}

func (r *roomRepository) FindAvailable(ctx context.Context, roomType string, checkin, checkout time.Time) ([]domain.Room, error) {
	// Half-open overlap: existing.checkin < wanted.checkout AND
	// wanted.checkin < existing.checkout.
	query := `SELECT rm.number, rm.room_type, rm.state, rm.active, rm.created_on, rm.updated_on
	          FROM rooms rm
	          WHERE rm.room_type = $1
	            AND rm.active = TRUE
	            AND rm.state NOT IN ('MAINTENANCE','BLOCKED')
	            AND NOT EXISTS (
	              SELECT 1 FROM reservations rs
	              WHERE rs.room_number = rm.number
	                AND rs.status IN ` + reservationBlocking + `
	                AND rs.checkin < $3
	                AND $2 < rs.checkout
	            )
	          ORDER BY rm.number`
	rows, err := r.db.QueryContext(ctx, query, roomType, checkin, checkout)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.Number, &rm.Type, &rm.State, &rm.Active, &rm.CreatedOn, &rm.UpdatedOn); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) UpdateState(ctx context.Context, number string, state domain.RoomState) error {
	query := `UPDATE rooms SET state = $1, updated_on = $2 WHERE number = $3`
	res, err := r.db.ExecContext(ctx, query, state, time.Now().UTC(), number)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("room", number)
	}
	return nil
}

func (r *roomRepository) SetActive(ctx context.Context, number string, active bool) error {
	query := `UPDATE rooms SET active = $1, updated_on = $2 WHERE number = $3`
	res, err := r.db.ExecContext(ctx, query, active, time.Now().UTC(), number)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NewNotFound("room", number)
	}
	return nil
}

func (r *roomRepository) List(ctx context.Context, page, pageSize int32) ([]domain.Room, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM rooms`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT number, room_type, state, active, created_on, updated_on
	          FROM rooms ORDER BY number LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.Number, &rm.Type, &rm.State, &rm.Active, &rm.CreatedOn, &rm.UpdatedOn); err != nil {
			return nil, 0, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, count, rows.Err()
}
