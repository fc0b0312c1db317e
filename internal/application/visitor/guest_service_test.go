package visitor

import (
	"context"
	"testing"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGuestService_CreateGuest(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a guest", func(t *testing.T) {
		guests := new(MockGuestRepository)
		guests.On("FindByPhone", ctx, "+254700000001").Return(nil, shared.ErrNotFound)
		guests.On("Save", ctx, mock.AnythingOfType("*visitor.Guest")).Return(nil)

		svc := NewGuestService(guests, new(MockVisitRepository), zap.NewNop())
		resp, err := svc.CreateGuest(ctx, CreateGuestRequest{
			FullName: "Jane Wambui",
			Phone:    "+254700000001",
		})
		require.NoError(t, err)

		assert.Equal(t, "approved", resp.Status)
		assert.NotEmpty(t, resp.Code)
		guests.AssertExpectations(t)
	})

	t.Run("duplicate phone rejected", func(t *testing.T) {
		guests := new(MockGuestRepository)
		existing := newTestGuest(t)
		guests.On("FindByPhone", ctx, "+254700000001").Return(existing, nil)

		svc := NewGuestService(guests, new(MockVisitRepository), zap.NewNop())
		_, err := svc.CreateGuest(ctx, CreateGuestRequest{
			FullName: "Someone Else",
			Phone:    "+254700000001",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestGuestService_DeleteGuest(t *testing.T) {
	ctx := context.Background()

	t.Run("guest with visits cannot be deleted", func(t *testing.T) {
		guests := new(MockGuestRepository)
		visits := new(MockVisitRepository)
		guest := newTestGuest(t)

		guests.On("FindByID", ctx, guest.ID).Return(guest, nil)
		visits.On("CountByGuest", ctx, guest.ID).Return(int64(3), nil)

		svc := NewGuestService(guests, visits, zap.NewNop())
		err := svc.DeleteGuest(ctx, guest.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CANNOT_DELETE", domainErr.Code)
		guests.AssertNotCalled(t, "Delete", ctx, guest.ID)
	})

	t.Run("guest without visits is deleted", func(t *testing.T) {
		guests := new(MockGuestRepository)
		visits := new(MockVisitRepository)
		guest := newTestGuest(t)

		guests.On("FindByID", ctx, guest.ID).Return(guest, nil)
		visits.On("CountByGuest", ctx, guest.ID).Return(int64(0), nil)
		guests.On("Delete", ctx, guest.ID).Return(nil)

		svc := NewGuestService(guests, visits, zap.NewNop())
		require.NoError(t, svc.DeleteGuest(ctx, guest.ID))
		guests.AssertExpectations(t)
	})

	t.Run("unknown guest", func(t *testing.T) {
		guests := new(MockGuestRepository)
		id := uuid.New()
		guests.On("FindByID", ctx, id).Return(nil, shared.ErrNotFound)

		svc := NewGuestService(guests, new(MockVisitRepository), zap.NewNop())
		assert.Equal(t, shared.ErrNotFound, svc.DeleteGuest(ctx, id))
	})
}

func TestGuestService_StatusChanges(t *testing.T) {
	ctx := context.Background()

	t.Run("suspend", func(t *testing.T) {
		guests := new(MockGuestRepository)
		guest := newTestGuest(t)
		guests.On("FindByID", ctx, guest.ID).Return(guest, nil)
		guests.On("Save", ctx, guest).Return(nil)

		svc := NewGuestService(guests, new(MockVisitRepository), zap.NewNop())
		resp, err := svc.SuspendGuest(ctx, guest.ID, "committee decision")
		require.NoError(t, err)
		assert.Equal(t, "suspended", resp.Status)
		assert.Equal(t, "committee decision", resp.StatusReason)
	})

	t.Run("approve", func(t *testing.T) {
		guests := new(MockGuestRepository)
		guest := newTestGuest(t)
		guest.Suspend("quota")
		guest.ClearDomainEvents()
		guests.On("FindByID", ctx, guest.ID).Return(guest, nil)
		guests.On("Save", ctx, guest).Return(nil)

		svc := NewGuestService(guests, new(MockVisitRepository), zap.NewNop())
		resp, err := svc.ApproveGuest(ctx, guest.ID, "reinstated")
		require.NoError(t, err)
		assert.Equal(t, "approved", resp.Status)
	})

	t.Run("revoke", func(t *testing.T) {
		guests := new(MockGuestRepository)
		guest := newTestGuest(t)
		guests.On("FindByID", ctx, guest.ID).Return(guest, nil)
		guests.On("Save", ctx, guest).Return(nil)

		svc := NewGuestService(guests, new(MockVisitRepository), zap.NewNop())
		resp, err := svc.RevokeGuest(ctx, guest.ID, "barred")
		require.NoError(t, err)
		assert.Equal(t, "unapproved", resp.Status)
	})
}

func TestGuestService_RefreshGuestStatuses(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2026, 4, 1, 2, 0, 0, 0, time.Local)
	policy := visitor.DefaultVisitPolicy()

	t.Run("suspended guest restored when under quota", func(t *testing.T) {
		guests := new(MockGuestRepository)
		visits := new(MockVisitRepository)
		guest := newTestGuest(t)
		guest.Suspend("monthly visit limit reached")
		guest.ClearDomainEvents()

		guests.On("FindAll", ctx, mock.Anything).Return([]visitor.Guest{*guest}, nil)
		// New month: zero monthly visits, yearly count still under the cap
		visits.On("CountByGuestInRange", ctx, guest.ID, mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		visits.On("CountByGuestInRange", ctx, guest.ID, mock.Anything, mock.Anything).Return(int64(4), nil).Once()
		guests.On("Save", ctx, mock.AnythingOfType("*visitor.Guest")).Return(nil)

		svc := NewGuestService(guests, visits, zap.NewNop())
		changed, err := svc.RefreshGuestStatuses(ctx, policy, asOf)
		require.NoError(t, err)
		assert.Equal(t, 1, changed)
		guests.AssertExpectations(t)
	})

	t.Run("guest over yearly quota stays suspended", func(t *testing.T) {
		guests := new(MockGuestRepository)
		visits := new(MockVisitRepository)
		guest := newTestGuest(t)
		guest.Suspend("yearly visit limit reached")
		guest.ClearDomainEvents()

		guests.On("FindAll", ctx, mock.Anything).Return([]visitor.Guest{*guest}, nil)
		visits.On("CountByGuestInRange", ctx, guest.ID, mock.Anything, mock.Anything).Return(int64(0), nil).Once()
		visits.On("CountByGuestInRange", ctx, guest.ID, mock.Anything, mock.Anything).Return(int64(24), nil).Once()

		svc := NewGuestService(guests, visits, zap.NewNop())
		changed, err := svc.RefreshGuestStatuses(ctx, policy, asOf)
		require.NoError(t, err)
		assert.Zero(t, changed)
		guests.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})
}
