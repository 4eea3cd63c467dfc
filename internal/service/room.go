package service

import (
	"context"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/logger"
	"frontdesk-backend/internal/repository"
)

type roomService struct {
	roomRepo repository.RoomRepository
}

func NewRoomService(roomRepo repository.RoomRepository) RoomService {
	return &roomService{roomRepo: roomRepo}
}

func (s *roomService) List(ctx context.Context, page, pageSize int32) ([]domain.Room, int32, error) {
	return s.roomRepo.List(ctx, page, pageSize)
}

func (s *roomService) SetState(ctx context.Context, number string, state domain.RoomState) (*domain.Room, error) {
	switch state {
	case domain.RoomStateFree, domain.RoomStateMaintenance, domain.RoomStateBlocked:
	default:
		return nil, domain.NewError(domain.CodeValidationFailed, "room state %q cannot be set directly", state)
	}
	room, err := s.roomRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	// An occupied room has a guest in it; check them out first.
	if room.State == domain.RoomStateOccupied {
		return nil, domain.NewWrongState("room %s is occupied", number)
	}
	if err := s.roomRepo.UpdateState(ctx, number, state); err != nil {
		return nil, err
	}
	room.State = state
	logger.Info("Room state changed", "room", number, "state", state)
	return room, nil
}

func (s *roomService) SetActive(ctx context.Context, number string, active bool) (*domain.Room, error) {
	room, err := s.roomRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if err := s.roomRepo.SetActive(ctx, number, active); err != nil {
		return nil, err
	}
	room.Active = active
	logger.Info("Room active flag changed", "room", number, "active", active)
	return room, nil
}
