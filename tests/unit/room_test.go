package unit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"frontdesk-backend/internal/domain"
	"frontdesk-backend/internal/service"
)

func TestRoomService_SetState(t *testing.T) {
	ctx := context.Background()

	t.Run("Free room into maintenance", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		svc := service.NewRoomService(roomRepo)

		roomRepo.On("GetByNumber", ctx, "101").
			Return(&domain.Room{Number: "101", Type: "LUXO", State: domain.RoomStateFree, Active: true}, nil)
		roomRepo.On("UpdateState", ctx, "101", domain.RoomStateMaintenance).Return(nil)

		room, err := svc.SetState(ctx, "101", domain.RoomStateMaintenance)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoomStateMaintenance, room.State)
		roomRepo.AssertExpectations(t)
	})

	t.Run("Occupied room cannot change state", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		svc := service.NewRoomService(roomRepo)

		roomRepo.On("GetByNumber", ctx, "101").
			Return(&domain.Room{Number: "101", State: domain.RoomStateOccupied, Active: true}, nil)

		_, err := svc.SetState(ctx, "101", domain.RoomStateBlocked)
		assert.True(t, domain.IsCode(err, domain.CodeWrongState))
		roomRepo.AssertNotCalled(t, "UpdateState", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("OCCUPIED is not settable by hand", func(t *testing.T) {
		roomRepo := new(MockRoomRepo)
		svc := service.NewRoomService(roomRepo)

		_, err := svc.SetState(ctx, "101", domain.RoomStateOccupied)
		assert.True(t, domain.IsCode(err, domain.CodeValidationFailed))
		roomRepo.AssertNotCalled(t, "GetByNumber", mock.Anything, mock.Anything)
	})
}

func TestRoomService_SetActive(t *testing.T) {
	ctx := context.Background()
	roomRepo := new(MockRoomRepo)
	svc := service.NewRoomService(roomRepo)

	roomRepo.On("GetByNumber", ctx, "102").
		Return(&domain.Room{Number: "102", State: domain.RoomStateFree, Active: true}, nil)
	roomRepo.On("SetActive", ctx, "102", false).Return(nil)

	room, err := svc.SetActive(ctx, "102", false)
	assert.NoError(t, err)
	assert.False(t, room.Active)
	roomRepo.AssertExpectations(t)
}

func TestRoomService_List(t *testing.T) {
	ctx := context.Background()
	roomRepo := new(MockRoomRepo)
	svc := service.NewRoomService(roomRepo)

	roomRepo.On("List", ctx, int32(1), int32(20)).
		Return([]domain.Room{{Number: "101"}, {Number: "102"}}, int32(2), nil)

	rooms, total, err := svc.List(ctx, 1, 20)
	assert.NoError(t, err)
	assert.Len(t, rooms, 2)
	assert.Equal(t, int32(2), total)
}
