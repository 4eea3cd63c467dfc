package service

import (
	"context"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/events"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
)

type reservationService struct {
	reservationRepo repository.ReservationRepository
	publisher       events.Publisher
}

func NewReservationService(reservationRepo repository.ReservationRepository, publisher events.Publisher) ReservationService {
	return &reservationService{reservationRepo: reservationRepo, publisher: publisher}
}

func (s *reservationService) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservationRepo.GetByID(ctx, id)
}

func (s *reservationService) ListByGuest(ctx context.Context, guestID string, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return s.reservationRepo.ListByGuest(ctx, guestID, status, page, pageSize)
}

func (s *reservationService) ListByRoom(ctx context.Context, roomNumber string, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	return s.reservationRepo.ListByRoom(ctx, roomNumber, status, page, pageSize)
}

// Cancel moves any non-terminal pre-checkout reservation to CANCELLED. A
// checked-in stay cannot be cancelled, only checked out; the transition
// table rejects it.
func (s *reservationService) Cancel(ctx context.Context, id int64, actor string) (*domain.Reservation, error) {
	rs, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := rs.Status
	if err := domain.ValidateTransition(from, domain.ReservationStatusCancelled); err != nil {
		return nil, err
	}
	if err := s.reservationRepo.TransitionStatus(ctx, id, from, domain.ReservationStatusCancelled); err != nil {
		return nil, err
	}
	rs.Status = domain.ReservationStatusCancelled

	logger.Info("Reservation cancelled", "reservation_id", id, "actor", actor, "previous_status", from)
	publishTransition(s.publisher, id, actor, from, domain.ReservationStatusCancelled)
	publishReservationEvent(s.publisher, events.EventReservationCancelled, rs)
	return rs, nil
}
