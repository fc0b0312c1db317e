package casework

import (
	"context"
	"fmt"
	"time"

	"github.com/clubgate/backend/internal/domain/casework"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReminderSender delivers an overdue-task reminder. Implemented by the
// messaging service; a nil sender disables reminders.
type ReminderSender interface {
	SendTaskReminder(ctx context.Context, caseID *uuid.UUID, phone, body string) error
}

// TaskService handles work items
type TaskService struct {
	tasks    casework.TaskRepository
	cases    casework.CaseRepository
	reminder ReminderSender
	logger   *zap.Logger
	now      func() time.Time
}

// NewTaskService creates a new task service
func NewTaskService(tasks casework.TaskRepository, cases casework.CaseRepository, reminder ReminderSender, logger *zap.Logger) *TaskService {
	return &TaskService{
		tasks:    tasks,
		cases:    cases,
		reminder: reminder,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateTask creates a task. When attached to a case the case must exist.
func (s *TaskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	if req.CaseID != nil {
		if _, err := s.cases.FindByID(ctx, *req.CaseID); err != nil {
			return nil, err
		}
	}

	task, err := casework.NewTask(req.CaseID, req.Title, req.Details, req.Assignee, req.AssigneePhone, req.DueDate, casework.TaskPriority(req.Priority))
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	resp := ToTaskResponse(task, s.now())
	return &resp, nil
}

// GetTask returns a task by ID
func (s *TaskService) GetTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTaskResponse(task, s.now())
	return &resp, nil
}

// ListTasks returns a paginated task listing
func (s *TaskService) ListTasks(ctx context.Context, filter shared.Filter) (*shared.Paginated[TaskResponse], error) {
	tasks, err := s.tasks.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.tasks.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	items := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		items = append(items, ToTaskResponse(&tasks[i], asOf))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateTask reassigns and/or reschedules a task
func (s *TaskService) UpdateTask(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Assignee != "" {
		if err := task.Reassign(req.Assignee, req.AssigneePhone); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		if err := task.Reschedule(*req.DueDate); err != nil {
			return nil, err
		}
	}
	task.IncrementVersion()

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	resp := ToTaskResponse(task, s.now())
	return &resp, nil
}

// StartTask moves a task into progress
func (s *TaskService) StartTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, id, (*casework.Task).Start)
}

// CompleteTask finishes a task
func (s *TaskService) CompleteTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, id, (*casework.Task).Complete)
}

// CancelTask abandons a task
func (s *TaskService) CancelTask(ctx context.Context, id uuid.UUID) (*TaskResponse, error) {
	return s.transition(ctx, id, (*casework.Task).Cancel)
}

func (s *TaskService) transition(ctx context.Context, id uuid.UUID, op func(*casework.Task) error) (*TaskResponse, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := op(task); err != nil {
		return nil, err
	}
	task.IncrementVersion()

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	resp := ToTaskResponse(task, s.now())
	return &resp, nil
}

// RemindOverdue sends one SMS reminder per overdue task that has not been
// reminded yet. Returns the number of reminders sent.
func (s *TaskService) RemindOverdue(ctx context.Context, asOf time.Time) (int, error) {
	overdue, err := s.tasks.FindOverdue(ctx, asOf)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range overdue {
		task := &overdue[i]
		if task.AssigneePhone == "" {
			continue
		}

		body := fmt.Sprintf("Task overdue: %s (due %s)", task.Title, task.DueDate.Format("2006-01-02"))
		if s.reminder != nil {
			if err := s.reminder.SendTaskReminder(ctx, task.CaseID, task.AssigneePhone, body); err != nil {
				s.logger.Warn("task reminder failed",
					zap.String("task_id", task.ID.String()),
					zap.Error(err))
				continue
			}
		}

		task.MarkReminderSent()
		if err := s.tasks.Save(ctx, task); err != nil {
			return sent, err
		}
		sent++
	}

	if sent > 0 {
		s.logger.Info("overdue task reminders sent", zap.Int("sent", sent))
	}
	return sent, nil
}
