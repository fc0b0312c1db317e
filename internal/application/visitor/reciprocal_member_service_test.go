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

// MockReciprocalMemberRepository is a mock implementation of
// visitor.ReciprocalMemberRepository
type MockReciprocalMemberRepository struct {
	mock.Mock
}

func (m *MockReciprocalMemberRepository) FindByID(ctx context.Context, id uuid.UUID) (*visitor.ReciprocalMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*visitor.ReciprocalMember), args.Error(1)
}

func (m *MockReciprocalMemberRepository) FindAll(ctx context.Context, filter shared.Filter) ([]visitor.ReciprocalMember, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]visitor.ReciprocalMember), args.Error(1)
}

func (m *MockReciprocalMemberRepository) Save(ctx context.Context, member *visitor.ReciprocalMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockReciprocalMemberRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReciprocalMemberRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReciprocalMemberRepository) FindByMembershipNumber(ctx context.Context, partnerClub, membershipNumber string) (*visitor.ReciprocalMember, error) {
	args := m.Called(ctx, partnerClub, membershipNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*visitor.ReciprocalMember), args.Error(1)
}

func (m *MockReciprocalMemberRepository) FindLapsed(ctx context.Context, asOf time.Time) ([]visitor.ReciprocalMember, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]visitor.ReciprocalMember), args.Error(1)
}

func TestReciprocalMemberService_CreateMember(t *testing.T) {
	ctx := context.Background()
	validUntil := time.Now().AddDate(1, 0, 0)

	t.Run("enrolls a member", func(t *testing.T) {
		members := new(MockReciprocalMemberRepository)
		members.On("FindByMembershipNumber", ctx, "Mombasa Club", "MC-1881").Return(nil, shared.ErrNotFound)
		members.On("Save", ctx, mock.AnythingOfType("*visitor.ReciprocalMember")).Return(nil)

		svc := NewReciprocalMemberService(members, zap.NewNop())
		resp, err := svc.CreateMember(ctx, CreateReciprocalMemberRequest{
			FullName:         "A. Njoroge",
			PartnerClub:      "Mombasa Club",
			MembershipNumber: "MC-1881",
			ValidUntil:       validUntil,
		})
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
		members.AssertExpectations(t)
	})

	t.Run("duplicate membership rejected", func(t *testing.T) {
		members := new(MockReciprocalMemberRepository)
		existing, err := visitor.NewReciprocalMember("A. Njoroge", "Mombasa Club", "MC-1881", validUntil)
		require.NoError(t, err)
		members.On("FindByMembershipNumber", ctx, "Mombasa Club", "MC-1881").Return(existing, nil)

		svc := NewReciprocalMemberService(members, zap.NewNop())
		_, err = svc.CreateMember(ctx, CreateReciprocalMemberRequest{
			FullName:         "A. Njoroge",
			PartnerClub:      "Mombasa Club",
			MembershipNumber: "MC-1881",
			ValidUntil:       validUntil,
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestReciprocalMemberService_ExpireLapsed(t *testing.T) {
	ctx := context.Background()
	asOf := time.Now()

	t.Run("expires lapsed memberships", func(t *testing.T) {
		members := new(MockReciprocalMemberRepository)
		lapsed, err := visitor.NewReciprocalMember("A. Njoroge", "Mombasa Club", "MC-1881", asOf.AddDate(0, 0, -10))
		require.NoError(t, err)
		lapsed.ClearDomainEvents()

		members.On("FindLapsed", ctx, asOf).Return([]visitor.ReciprocalMember{*lapsed}, nil)
		members.On("Save", ctx, mock.AnythingOfType("*visitor.ReciprocalMember")).Return(nil)

		svc := NewReciprocalMemberService(members, zap.NewNop())
		expired, err := svc.ExpireLapsed(ctx, asOf)
		require.NoError(t, err)
		assert.Equal(t, 1, expired)
		members.AssertExpectations(t)
	})

	t.Run("nothing lapsed", func(t *testing.T) {
		members := new(MockReciprocalMemberRepository)
		members.On("FindLapsed", ctx, asOf).Return([]visitor.ReciprocalMember{}, nil)

		svc := NewReciprocalMemberService(members, zap.NewNop())
		expired, err := svc.ExpireLapsed(ctx, asOf)
		require.NoError(t, err)
		assert.Zero(t, expired)
	})
}
