package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"frontdesk-backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	assert.Equal(t, int32(2), Nights(date(2026, 9, 10), date(2026, 9, 12)))
	assert.Equal(t, int32(1), Nights(date(2026, 9, 10), date(2026, 9, 11)))
	assert.Equal(t, int32(0), Nights(date(2026, 9, 10), date(2026, 9, 10)))
	assert.Equal(t, int32(0), Nights(date(2026, 9, 12), date(2026, 9, 10)))

	// Time of day never changes the night count.
	late := time.Date(2026, 9, 10, 23, 30, 0, 0, time.UTC)
	early := time.Date(2026, 9, 12, 1, 15, 0, 0, time.UTC)
	assert.Equal(t, int32(2), Nights(late, early))
}

func TestValidateInterval(t *testing.T) {
	assert.NoError(t, ValidateInterval(date(2026, 9, 10), date(2026, 9, 11)))

	err := ValidateInterval(date(2026, 9, 11), date(2026, 9, 10))
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInterval))

	// Same-day stays are zero nights.
	err = ValidateInterval(
		time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 10, 18, 0, 0, 0, time.UTC))
	assert.True(t, domain.IsCode(err, domain.CodeInvalidInterval))
}

func TestOverlaps(t *testing.T) {
	a1, a2 := date(2026, 9, 10), date(2026, 9, 12)

	assert.True(t, Overlaps(a1, a2, date(2026, 9, 11), date(2026, 9, 13)))
	assert.True(t, Overlaps(a1, a2, date(2026, 9, 9), date(2026, 9, 11)))
	assert.True(t, Overlaps(a1, a2, date(2026, 9, 10), date(2026, 9, 12)))

	// Back-to-back stays share a date without conflicting.
	assert.False(t, Overlaps(a1, a2, date(2026, 9, 12), date(2026, 9, 14)))
	assert.False(t, Overlaps(a1, a2, date(2026, 9, 8), date(2026, 9, 10)))
}

func TestNightsStayed(t *testing.T) {
	assert.Equal(t, int32(2), NightsStayed(date(2026, 9, 10), date(2026, 9, 12)))
	// Same-day departure still settles one night.
	assert.Equal(t, int32(1), NightsStayed(date(2026, 9, 10), date(2026, 9, 10)))
}

func TestSettlement(t *testing.T) {
	t.Run("Fully paid stay balances to zero", func(t *testing.T) {
		s := Settlement{
			NightsStayed:     2,
			NightlyRateCents: 20000,
			PaidCents:        40000,
			DepositCents:     5000,
		}
		assert.Equal(t, int64(40000), s.StayCostCents())
		assert.Equal(t, int64(0), s.BalanceCents())
		assert.Equal(t, int64(5000), s.DepositReturnedCents())
	})

	t.Run("Incidentals and retained deposit", func(t *testing.T) {
		s := Settlement{
			NightsStayed:         2,
			NightlyRateCents:     20000,
			PaidCents:            40000,
			MinibarCents:         3000,
			DamageCents:          10000,
			DepositCents:         5000,
			DepositRetainedCents: 5000,
		}
		assert.Equal(t, int64(13000), s.IncidentalsCents())
		assert.Equal(t, int64(8000), s.BalanceCents())
		assert.Equal(t, int64(0), s.DepositReturnedCents())
	})

	t.Run("Overpayment yields a refund", func(t *testing.T) {
		s := Settlement{
			NightsStayed:     1,
			NightlyRateCents: 20000,
			PaidCents:        40000,
		}
		assert.Equal(t, int64(-20000), s.BalanceCents())
	})
}
