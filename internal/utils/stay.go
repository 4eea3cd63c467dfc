package utils

import (
	"time"

	"frontdesk-backend/internal/domain"
)

// Stay intervals are half-open [checkin, checkout): a checkout at noon does
// not conflict with a check-in the same day, and the checkout date is not a
// billed night.

// ToDate truncates a timestamp to its calendar date in UTC.
func ToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights counts billable nights between two timestamps at date granularity.
// Equal or inverted dates yield zero.
func Nights(checkin, checkout time.Time) int32 {
	n := int32(ToDate(checkout).Sub(ToDate(checkin)).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// ValidateInterval rejects zero-night and inverted intervals.
func ValidateInterval(checkin, checkout time.Time) error {
	if !checkout.After(checkin) {
		return domain.NewInvalidInterval("checkout must be after checkin")
	}
	if Nights(checkin, checkout) == 0 {
		return domain.NewInvalidInterval("stay must cover at least one night")
	}
	return nil
}

// Overlaps applies the half-open interval test: [a1,a2) and [b1,b2) overlap
// iff a1 < b2 and b1 < a2.
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// NightsStayed counts the nights actually slept between the recorded
// check-in and the moment of checkout, minimum one. An early departure
// settles fewer nights than were quoted.
func NightsStayed(checkedInAt, checkoutAt time.Time) int32 {
	n := Nights(checkedInAt, checkoutAt)
	if n < 1 {
		return 1
	}
	return n
}

// Settlement is the checkout arithmetic in one place.
type Settlement struct {
	NightsStayed         int32
	NightlyRateCents     int64
	PaidCents            int64
	MinibarCents         int64
	ExtraServicesCents   int64
	LateFeeCents         int64
	DamageCents          int64
	DepositCents         int64
	DepositRetainedCents int64
}

// StayCostCents is nights actually stayed times the rate snapshot.
func (s Settlement) StayCostCents() int64 {
	return int64(s.NightsStayed) * s.NightlyRateCents
}

// IncidentalsCents sums minibar, extra services, late fee and damage value.
func (s Settlement) IncidentalsCents() int64 {
	return s.MinibarCents + s.ExtraServicesCents + s.LateFeeCents + s.DamageCents
}

// DepositReturnedCents is whatever part of the deposit is not retained.
func (s Settlement) DepositReturnedCents() int64 {
	ret := s.DepositCents - s.DepositRetainedCents
	if ret < 0 {
		return 0
	}
	return ret
}

// BalanceCents is the signed final position: stay cost plus incidentals,
// minus approved payments, minus the retained part of the deposit already
// in house. Positive means the guest owes; negative means a refund is due.
func (s Settlement) BalanceCents() int64 {
	return s.StayCostCents() + s.IncidentalsCents() - s.PaidCents - s.DepositRetainedCents
}
