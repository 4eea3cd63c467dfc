package service

import (
	"context"
	"time"

	"frontdesk-backend/internal/repository"
	"frontdesk-backend/internal/utils"
)

type pricingService struct {
	tariffRepo repository.TariffRepository
}

func NewPricingService(tariffRepo repository.TariffRepository) PricingService {
	return &pricingService{tariffRepo: tariffRepo}
}

// QuoteStay snapshots the nightly rate at booking time. The rate of the
// first night applies to the whole stay; settlement math later uses the
// snapshot stored on the reservation, never a live lookup.
func (s *pricingService) QuoteStay(ctx context.Context, roomType string, checkin, checkout time.Time) (int64, int32, int64, error) {
	if err := utils.ValidateInterval(checkin, checkout); err != nil {
		return 0, 0, 0, err
	}
	rate, err := s.tariffRepo.NightlyRate(ctx, roomType, checkin)
	if err != nil {
		return 0, 0, 0, err
	}
	nights := utils.Nights(checkin, checkout)
	return rate, nights, int64(nights) * rate, nil
}
