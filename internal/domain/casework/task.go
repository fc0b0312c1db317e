package casework

import (
	"strings"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TaskPriority orders tasks in work queues
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityNormal TaskPriority = "normal"
	TaskPriorityHigh   TaskPriority = "high"
)

// TaskStatus represents a task's position in its lifecycle
type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// Task is a unit of work, optionally attached to a case. AssigneePhone is
// the SMS target for overdue reminders.
type Task struct {
	shared.BaseAggregateRoot
	CaseID        *uuid.UUID
	Title         string
	Details       string
	Assignee      string
	AssigneePhone string
	DueDate       *time.Time
	Priority      TaskPriority
	Status        TaskStatus
	CompletedAt   *time.Time
	ReminderSent  bool
}

// NewTask creates a task in the todo state
func NewTask(caseID *uuid.UUID, title, details, assignee, assigneePhone string, dueDate *time.Time, priority TaskPriority) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Task title is required")
	}
	if priority == "" {
		priority = TaskPriorityNormal
	}
	switch priority {
	case TaskPriorityLow, TaskPriorityNormal, TaskPriorityHigh:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid task priority")
	}

	return &Task{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CaseID:            caseID,
		Title:             title,
		Details:           strings.TrimSpace(details),
		Assignee:          strings.TrimSpace(assignee),
		AssigneePhone:     strings.TrimSpace(assigneePhone),
		DueDate:           dueDate,
		Priority:          priority,
		Status:            TaskStatusTodo,
	}, nil
}

// Start moves the task into progress
func (t *Task) Start() error {
	if t.Status != TaskStatusTodo {
		return shared.NewDomainError("INVALID_STATE", "Only a todo task can be started")
	}
	t.Status = TaskStatusInProgress
	t.UpdatedAt = time.Now()
	return nil
}

// Complete finishes the task
func (t *Task) Complete() error {
	if t.Status == TaskStatusDone || t.Status == TaskStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Task is already finished")
	}
	now := time.Now()
	t.Status = TaskStatusDone
	t.CompletedAt = &now
	t.UpdatedAt = now
	return nil
}

// Cancel abandons the task
func (t *Task) Cancel() error {
	if t.Status == TaskStatusDone || t.Status == TaskStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Task is already finished")
	}
	t.Status = TaskStatusCancelled
	t.UpdatedAt = time.Now()
	return nil
}

// Reassign moves the task to another person
func (t *Task) Reassign(assignee, assigneePhone string) error {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return shared.NewDomainError("INVALID_INPUT", "Assignee is required")
	}
	if t.Status == TaskStatusDone || t.Status == TaskStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot reassign a finished task")
	}
	t.Assignee = assignee
	t.AssigneePhone = strings.TrimSpace(assigneePhone)
	t.ReminderSent = false
	t.UpdatedAt = time.Now()
	return nil
}

// Reschedule changes the due date and re-arms the overdue reminder
func (t *Task) Reschedule(dueDate time.Time) error {
	if t.Status == TaskStatusDone || t.Status == TaskStatusCancelled {
		return shared.NewDomainError("INVALID_STATE", "Cannot reschedule a finished task")
	}
	t.DueDate = &dueDate
	t.ReminderSent = false
	t.UpdatedAt = time.Now()
	return nil
}

// IsOverdue reports whether the task is past due and still live
func (t *Task) IsOverdue(asOf time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	if t.Status == TaskStatusDone || t.Status == TaskStatusCancelled {
		return false
	}
	return t.DueDate.Before(asOf)
}

// MarkReminderSent records that an overdue reminder went out
func (t *Task) MarkReminderSent() {
	t.ReminderSent = true
	t.UpdatedAt = time.Now()
}
