package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/repository"
)

// tariffRepository is a read-only lookup; tariff CRUD lives elsewhere.
type tariffRepository struct {
	db *sql.DB
}

func NewTariffRepository(db *sql.DB) repository.TariffRepository {
	return &tariffRepository{db: db}
}

func (r *tariffRepository) NightlyRate(ctx context.Context, roomType string, date time.Time) (int64, error) {
	// A seasonal row covering the date wins over the default row (NULL
	// season bounds).
	var rate int64
	err := r.db.QueryRowContext(ctx,
		`SELECT nightly_rate_cents FROM tariffs
		 WHERE room_type = $1
		   AND (season_start IS NULL OR season_start <= $2)
		   AND (season_end IS NULL OR $2 < season_end)
		 ORDER BY season_start DESC NULLS LAST
		 LIMIT 1`, roomType, date).Scan(&rate)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.NewNotFound("tariff for room type", roomType)
	}
	if err != nil {
		return 0, err
	}
	return rate, nil
}
