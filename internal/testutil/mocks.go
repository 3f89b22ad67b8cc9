package testutil

import (
	"context"
	"time"

	"tablebot/internal/domain"
	"tablebot/internal/queue"
	"tablebot/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockReservationRepository is a mock for ReservationRepository
type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Save(r *domain.Reservation) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockReservationRepository) Get(id string) (*domain.Reservation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Exists(id string) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) List(f repository.ReservationFilter) ([]*domain.Reservation, error) {
	args := m.Called(f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Cancel(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReservationRepository) Stats(now time.Time) (*repository.ReservationStats, error) {
	args := m.Called(now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ReservationStats), args.Error(1)
}

// MockPublisher is a mock for the reservation event publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishConfirmed(ctx context.Context, event queue.ReservationConfirmedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) PublishCancelled(ctx context.Context, event queue.ReservationCancelledEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
