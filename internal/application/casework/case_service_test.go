package casework

import (
	"context"
	"testing"
	"time"

	"github.com/clubgate/backend/internal/domain/casework"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCaseRepository is a mock implementation of casework.CaseRepository
type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*casework.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casework.Case), args.Error(1)
}

func (m *MockCaseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]casework.Case, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]casework.Case), args.Error(1)
}

func (m *MockCaseRepository) Save(ctx context.Context, c *casework.Case) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCaseRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCaseRepository) FindByCaseNumber(ctx context.Context, caseNumber string) (*casework.Case, error) {
	args := m.Called(ctx, caseNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casework.Case), args.Error(1)
}

func (m *MockCaseRepository) FindByStatus(ctx context.Context, status casework.CaseStatus, filter shared.Filter) ([]casework.Case, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]casework.Case), args.Error(1)
}

func (m *MockCaseRepository) FindWithHearingsBetween(ctx context.Context, from, to time.Time) ([]casework.Case, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]casework.Case), args.Error(1)
}

func newTestCase(t *testing.T) *casework.Case {
	t.Helper()
	c, err := casework.NewCase("HCCC/2026/114", "Acme Ltd", "Beta Ltd", "Milimani Commercial", "", "W. Achieng")
	require.NoError(t, err)
	return c
}

func TestCaseService_CreateCase(t *testing.T) {
	ctx := context.Background()

	t.Run("opens a case", func(t *testing.T) {
		cases := new(MockCaseRepository)
		cases.On("FindByCaseNumber", ctx, "HCCC/2026/114").Return(nil, shared.ErrNotFound)
		cases.On("Save", ctx, mock.AnythingOfType("*casework.Case")).Return(nil)

		svc := NewCaseService(cases, zap.NewNop())
		resp, err := svc.CreateCase(ctx, CreateCaseRequest{
			CaseNumber: "HCCC/2026/114",
			ClientName: "Acme Ltd",
		})
		require.NoError(t, err)
		assert.Equal(t, "open", resp.Status)
		cases.AssertExpectations(t)
	})

	t.Run("duplicate case number rejected", func(t *testing.T) {
		cases := new(MockCaseRepository)
		cases.On("FindByCaseNumber", ctx, "HCCC/2026/114").Return(newTestCase(t), nil)

		svc := NewCaseService(cases, zap.NewNop())
		_, err := svc.CreateCase(ctx, CreateCaseRequest{
			CaseNumber: "HCCC/2026/114",
			ClientName: "Acme Ltd",
		})
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}

func TestCaseService_CloseAndReopen(t *testing.T) {
	ctx := context.Background()

	t.Run("close", func(t *testing.T) {
		cases := new(MockCaseRepository)
		c := newTestCase(t)
		cases.On("FindByID", ctx, c.ID).Return(c, nil)
		cases.On("Save", ctx, c).Return(nil)

		svc := NewCaseService(cases, zap.NewNop())
		resp, err := svc.CloseCase(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "closed", resp.Status)
	})

	t.Run("closing a closed case fails", func(t *testing.T) {
		cases := new(MockCaseRepository)
		c := newTestCase(t)
		require.NoError(t, c.Close())
		cases.On("FindByID", ctx, c.ID).Return(c, nil)

		svc := NewCaseService(cases, zap.NewNop())
		_, err := svc.CloseCase(ctx, c.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("reopen", func(t *testing.T) {
		cases := new(MockCaseRepository)
		c := newTestCase(t)
		require.NoError(t, c.Close())
		cases.On("FindByID", ctx, c.ID).Return(c, nil)
		cases.On("Save", ctx, c).Return(nil)

		svc := NewCaseService(cases, zap.NewNop())
		resp, err := svc.ReopenCase(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "open", resp.Status)
	})
}

func TestCaseService_UpdateCase(t *testing.T) {
	ctx := context.Background()

	t.Run("schedule hearing via update", func(t *testing.T) {
		cases := new(MockCaseRepository)
		c := newTestCase(t)
		cases.On("FindByID", ctx, c.ID).Return(c, nil)
		cases.On("Save", ctx, c).Return(nil)

		hearing := time.Now().AddDate(0, 1, 0)
		svc := NewCaseService(cases, zap.NewNop())
		resp, err := svc.UpdateCase(ctx, c.ID, UpdateCaseRequest{
			OpposingParty:   "Beta Ltd",
			NextHearingDate: &hearing,
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Status)
		require.NotNil(t, resp.NextHearingDate)
	})

	t.Run("reassign via update", func(t *testing.T) {
		cases := new(MockCaseRepository)
		c := newTestCase(t)
		cases.On("FindByID", ctx, c.ID).Return(c, nil)
		cases.On("Save", ctx, c).Return(nil)

		svc := NewCaseService(cases, zap.NewNop())
		resp, err := svc.UpdateCase(ctx, c.ID, UpdateCaseRequest{AssignedLawyer: "J. Mutua"})
		require.NoError(t, err)
		assert.Equal(t, "J. Mutua", resp.AssignedLawyer)
	})
}
