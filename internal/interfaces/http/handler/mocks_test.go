package handler

import (
	"context"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// mockGuestRepository is a mock implementation of visitor.GuestRepository
type mockGuestRepository struct {
	mock.Mock
}

func (m *mockGuestRepository) FindByID(ctx context.Context, id uuid.UUID) (*visitor.Guest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*visitor.Guest), args.Error(1)
}

func (m *mockGuestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]visitor.Guest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]visitor.Guest), args.Error(1)
}

func (m *mockGuestRepository) Save(ctx context.Context, guest *visitor.Guest) error {
	args := m.Called(ctx, guest)
	return args.Error(0)
}

func (m *mockGuestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockGuestRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGuestRepository) FindByCode(ctx context.Context, code string) (*visitor.Guest, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*visitor.Guest), args.Error(1)
}

func (m *mockGuestRepository) FindByPhone(ctx context.Context, phone string) (*visitor.Guest, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*visitor.Guest), args.Error(1)
}

func (m *mockGuestRepository) FindByStatus(ctx context.Context, status visitor.GuestStatus, filter shared.Filter) ([]visitor.Guest, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]visitor.Guest), args.Error(1)
}

// mockVisitRepository is a mock implementation of visitor.VisitRepository
type mockVisitRepository struct {
	mock.Mock
}

func (m *mockVisitRepository) FindByID(ctx context.Context, id uuid.UUID) (*visitor.Visit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*visitor.Visit), args.Error(1)
}

func (m *mockVisitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]visitor.Visit, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]visitor.Visit), args.Error(1)
}

func (m *mockVisitRepository) Save(ctx context.Context, visit *visitor.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *mockVisitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockVisitRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockVisitRepository) CountByHostOnDate(ctx context.Context, hostMemberNumber string, date time.Time) (int64, error) {
	args := m.Called(ctx, hostMemberNumber, date)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockVisitRepository) CountByGuestInRange(ctx context.Context, guestID uuid.UUID, from, to time.Time) (int64, error) {
	args := m.Called(ctx, guestID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockVisitRepository) FindOpenVisits(ctx context.Context, before time.Time) ([]visitor.Visit, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]visitor.Visit), args.Error(1)
}

func (m *mockVisitRepository) FindByGuest(ctx context.Context, guestID uuid.UUID, filter shared.Filter) ([]visitor.Visit, error) {
	args := m.Called(ctx, guestID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]visitor.Visit), args.Error(1)
}

func (m *mockVisitRepository) CountByGuest(ctx context.Context, guestID uuid.UUID) (int64, error) {
	args := m.Called(ctx, guestID)
	return args.Get(0).(int64), args.Error(1)
}
