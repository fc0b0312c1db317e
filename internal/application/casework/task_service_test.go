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

// MockTaskRepository is a mock implementation of casework.TaskRepository
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*casework.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*casework.Task), args.Error(1)
}

func (m *MockTaskRepository) FindAll(ctx context.Context, filter shared.Filter) ([]casework.Task, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]casework.Task), args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *casework.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) FindByCase(ctx context.Context, caseID uuid.UUID, filter shared.Filter) ([]casework.Task, error) {
	args := m.Called(ctx, caseID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]casework.Task), args.Error(1)
}

func (m *MockTaskRepository) FindOverdue(ctx context.Context, asOf time.Time) ([]casework.Task, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]casework.Task), args.Error(1)
}

// MockReminderSender records reminder SMS sends
type MockReminderSender struct {
	mock.Mock
}

func (m *MockReminderSender) SendTaskReminder(ctx context.Context, caseID *uuid.UUID, phone, body string) error {
	args := m.Called(ctx, caseID, phone, body)
	return args.Error(0)
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("standalone task", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		tasks.On("Save", ctx, mock.AnythingOfType("*casework.Task")).Return(nil)

		svc := NewTaskService(tasks, new(MockCaseRepository), nil, zap.NewNop())
		resp, err := svc.CreateTask(ctx, CreateTaskRequest{Title: "Order stationery"})
		require.NoError(t, err)
		assert.Equal(t, "todo", resp.Status)
		assert.Equal(t, "normal", resp.Priority)
	})

	t.Run("task attached to a missing case", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		cases := new(MockCaseRepository)
		caseID := uuid.New()
		cases.On("FindByID", ctx, caseID).Return(nil, shared.ErrNotFound)

		svc := NewTaskService(tasks, cases, nil, zap.NewNop())
		_, err := svc.CreateTask(ctx, CreateTaskRequest{Title: "File submissions", CaseID: &caseID})
		assert.Equal(t, shared.ErrNotFound, err)
	})

	t.Run("task attached to an existing case", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		cases := new(MockCaseRepository)
		c := newTestCase(t)
		cases.On("FindByID", ctx, c.ID).Return(c, nil)
		tasks.On("Save", ctx, mock.AnythingOfType("*casework.Task")).Return(nil)

		svc := NewTaskService(tasks, cases, nil, zap.NewNop())
		resp, err := svc.CreateTask(ctx, CreateTaskRequest{Title: "File submissions", CaseID: &c.ID, Priority: "high"})
		require.NoError(t, err)
		require.NotNil(t, resp.CaseID)
		assert.Equal(t, c.ID, *resp.CaseID)
		assert.Equal(t, "high", resp.Priority)
	})
}

func TestTaskService_Transitions(t *testing.T) {
	ctx := context.Background()

	newTodoTask := func(t *testing.T) *casework.Task {
		task, err := casework.NewTask(nil, "File submissions", "", "W. Achieng", "+254700000009", nil, "")
		require.NoError(t, err)
		return task
	}

	t.Run("start and complete", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		task := newTodoTask(t)
		tasks.On("FindByID", ctx, task.ID).Return(task, nil)
		tasks.On("Save", ctx, task).Return(nil)

		svc := NewTaskService(tasks, new(MockCaseRepository), nil, zap.NewNop())
		resp, err := svc.StartTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "in_progress", resp.Status)

		resp, err = svc.CompleteTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "done", resp.Status)
	})

	t.Run("cancel a finished task fails", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		task := newTodoTask(t)
		require.NoError(t, task.Complete())
		tasks.On("FindByID", ctx, task.ID).Return(task, nil)

		svc := NewTaskService(tasks, new(MockCaseRepository), nil, zap.NewNop())
		_, err := svc.CancelTask(ctx, task.ID)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestTaskService_RemindOverdue(t *testing.T) {
	ctx := context.Background()
	asOf := time.Now()

	overdueTask := func(t *testing.T, phone string) casework.Task {
		due := asOf.AddDate(0, 0, -2)
		task, err := casework.NewTask(nil, "File submissions", "", "W. Achieng", phone, &due, "")
		require.NoError(t, err)
		return *task
	}

	t.Run("sends one reminder per task", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		reminder := new(MockReminderSender)
		overdue := []casework.Task{overdueTask(t, "+254700000009"), overdueTask(t, "+254700000010")}

		tasks.On("FindOverdue", ctx, asOf).Return(overdue, nil)
		reminder.On("SendTaskReminder", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(2)
		tasks.On("Save", ctx, mock.AnythingOfType("*casework.Task")).Return(nil).Times(2)

		svc := NewTaskService(tasks, new(MockCaseRepository), reminder, zap.NewNop())
		sent, err := svc.RemindOverdue(ctx, asOf)
		require.NoError(t, err)
		assert.Equal(t, 2, sent)
		reminder.AssertExpectations(t)
	})

	t.Run("tasks without a phone are skipped", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		reminder := new(MockReminderSender)
		tasks.On("FindOverdue", ctx, asOf).Return([]casework.Task{overdueTask(t, "")}, nil)

		svc := NewTaskService(tasks, new(MockCaseRepository), reminder, zap.NewNop())
		sent, err := svc.RemindOverdue(ctx, asOf)
		require.NoError(t, err)
		assert.Zero(t, sent)
		reminder.AssertNotCalled(t, "SendTaskReminder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("send failure keeps the reminder armed", func(t *testing.T) {
		tasks := new(MockTaskRepository)
		reminder := new(MockReminderSender)
		tasks.On("FindOverdue", ctx, asOf).Return([]casework.Task{overdueTask(t, "+254700000009")}, nil)
		reminder.On("SendTaskReminder", ctx, mock.Anything, mock.Anything, mock.Anything).Return(shared.ErrGatewayUnavailable)

		svc := NewTaskService(tasks, new(MockCaseRepository), reminder, zap.NewNop())
		sent, err := svc.RemindOverdue(ctx, asOf)
		require.NoError(t, err)
		assert.Zero(t, sent)
		tasks.AssertNotCalled(t, "Save", ctx, mock.Anything)
	})
}
