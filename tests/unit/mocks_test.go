package unit

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"frontdesk-backend/internal/domain"
)

// MockRoomRepo
type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) GetByNumber(ctx context.Context, number string) (*domain.Room, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomRepo) FindAvailable(ctx context.Context, roomType string, checkin, checkout time.Time) ([]domain.Room, error) {
	args := m.Called(ctx, roomType, checkin, checkout)
	return args.Get(0).([]domain.Room), args.Error(1)
}
func (m *MockRoomRepo) UpdateState(ctx context.Context, number string, state domain.RoomState) error {
	args := m.Called(ctx, number, state)
	return args.Error(0)
}
func (m *MockRoomRepo) SetActive(ctx context.Context, number string, active bool) error {
	args := m.Called(ctx, number, active)
	return args.Error(0)
}
func (m *MockRoomRepo) List(ctx context.Context, page, pageSize int32) ([]domain.Room, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Room), args.Get(1).(int32), args.Error(2)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) CreateIfAvailable(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) TransitionStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
func (m *MockReservationRepo) ListByGuest(ctx context.Context, guestID string, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, guestID, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationRepo) ListByRoom(ctx context.Context, roomNumber string, status string, page, pageSize int32) ([]domain.Reservation, int32, error) {
	args := m.Called(ctx, roomNumber, status, page, pageSize)
	return args.Get(0).([]domain.Reservation), args.Get(1).(int32), args.Error(2)
}
func (m *MockReservationRepo) FindLapsed(ctx context.Context, cutoff time.Time, statuses []domain.ReservationStatus) ([]domain.Reservation, error) {
	args := m.Called(ctx, cutoff, statuses)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

// MockPaymentRepo
type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) CreateExclusive(ctx context.Context, p *domain.Payment, resFrom, resTo domain.ReservationStatus) (*domain.Payment, error) {
	args := m.Called(ctx, p, resFrom, resTo)
	// A func return lets tests echo the inserted payment back, the way the
	// real repository does on a fresh insert.
	if fn, ok := args.Get(0).(func(*domain.Payment) *domain.Payment); ok {
		return fn(p), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Payment, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentRepo) SumApproved(ctx context.Context, reservationID int64) (int64, error) {
	args := m.Called(ctx, reservationID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPaymentRepo) SubmitProof(ctx context.Context, paymentID, proofRef string, resFrom, resTo domain.ReservationStatus) error {
	args := m.Called(ctx, paymentID, proofRef, resFrom, resTo)
	return args.Error(0)
}
func (m *MockPaymentRepo) Approve(ctx context.Context, paymentID, operatorID string, resFrom domain.ReservationStatus, requiredCents int64) error {
	args := m.Called(ctx, paymentID, operatorID, resFrom, requiredCents)
	return args.Error(0)
}
func (m *MockPaymentRepo) Reject(ctx context.Context, paymentID, operatorID, reason string, resFrom domain.ReservationStatus) error {
	args := m.Called(ctx, paymentID, operatorID, reason, resFrom)
	return args.Error(0)
}
func (m *MockPaymentRepo) ExpireStale(ctx context.Context, cutoff time.Time) ([]domain.Payment, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

// MockSettlementRepo
type MockSettlementRepo struct {
	mock.Mock
}

func (m *MockSettlementRepo) GetCheckin(ctx context.Context, reservationID int64) (*domain.CheckinRecord, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckinRecord), args.Error(1)
}
func (m *MockSettlementRepo) CreateCheckin(ctx context.Context, rec *domain.CheckinRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockSettlementRepo) GetCheckout(ctx context.Context, reservationID int64) (*domain.CheckoutRecord, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutRecord), args.Error(1)
}
func (m *MockSettlementRepo) CreateCheckout(ctx context.Context, rec *domain.CheckoutRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

// MockTariffRepo
type MockTariffRepo struct {
	mock.Mock
}

func (m *MockTariffRepo) NightlyRate(ctx context.Context, roomType string, date time.Time) (int64, error) {
	args := m.Called(ctx, roomType, date)
	return args.Get(0).(int64), args.Error(1)
}

// MockPublisher records published events for assertions.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(topic, eventType, correlationID string, payload any) {
	m.Called(topic, eventType, correlationID, payload)
}
