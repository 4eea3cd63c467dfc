package service

import (
	"context"
	"time"

	"frontdesk-backend/internal/cache"
	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/events"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
	"frontdesk-backend/internal/utils"
)

type availabilityService struct {
	roomRepo        repository.RoomRepository
	reservationRepo repository.ReservationRepository
	pricing         PricingService
	availCache      *cache.AvailabilityCache
	publisher       events.Publisher
}

func NewAvailabilityService(
	roomRepo repository.RoomRepository,
	reservationRepo repository.ReservationRepository,
	pricing PricingService,
	availCache *cache.AvailabilityCache,
	publisher events.Publisher,
) AvailabilityService {
	return &availabilityService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		pricing:         pricing,
		availCache:      availCache,
		publisher:       publisher,
	}
}

func (s *availabilityService) FindAvailable(ctx context.Context, roomType string, checkin, checkout time.Time) ([]domain.Room, error) {
	if err := utils.ValidateInterval(checkin, checkout); err != nil {
		return nil, err
	}
	if rooms, ok := s.availCache.Get(ctx, roomType, checkin, checkout); ok {
		return rooms, nil
	}
	rooms, err := s.roomRepo.FindAvailable(ctx, roomType, checkin, checkout)
	if err != nil {
		return nil, err
	}
	s.availCache.Set(ctx, roomType, checkin, checkout, rooms)
	return rooms, nil
}

// Reserve prices the stay and claims the room-date interval. The overlap
// check and the insert run atomically in the repository; of two concurrent
// callers exactly one succeeds and the other gets ROOM_CONFLICT.
func (s *availabilityService) Reserve(ctx context.Context, roomNumber, guestID string, checkin, checkout time.Time) (*domain.Reservation, error) {
	if err := utils.ValidateInterval(checkin, checkout); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByNumber(ctx, roomNumber)
	if err != nil {
		return nil, err
	}
	if !room.Bookable() {
		return nil, domain.NewRoomConflict(roomNumber)
	}

	rate, nights, total, err := s.pricing.QuoteStay(ctx, room.Type, checkin, checkout)
	if err != nil {
		return nil, err
	}

	rs := &domain.Reservation{
		RoomNumber:       roomNumber,
		GuestID:          guestID,
		Checkin:          checkin,
		Checkout:         checkout,
		NightlyRateCents: rate,
		Nights:           nights,
		TotalCents:       total,
	}
	if err := s.reservationRepo.CreateIfAvailable(ctx, rs); err != nil {
		return nil, err
	}

	logger.Info("Reservation created",
		"reservation_id", rs.ID, "room", roomNumber, "guest", guestID,
		"nights", nights, "total_cents", total)
	publishReservationEvent(s.publisher, events.EventReservationCreated, rs)
	return rs, nil
}
