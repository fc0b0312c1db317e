package handler

import (
	"context"

	caseworkapp "github.com/clubgate/backend/internal/application/casework"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles case task endpoints
type TaskHandler struct {
	BaseHandler
	taskService *caseworkapp.TaskService
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *caseworkapp.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create adds a task to a case
func (h *TaskHandler) Create(c *gin.Context) {
	var req caseworkapp.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, task)
}

// Get retrieves a task by ID
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// List retrieves a paginated list of tasks
func (h *TaskHandler) List(c *gin.Context) {
	filter, err := bindFilter(c, "case_id", "status", "priority", "assignee", "overdue")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	page, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Update updates a task's details
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	var req caseworkapp.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}

// Start marks a task as in progress
func (h *TaskHandler) Start(c *gin.Context) {
	h.transition(c, h.taskService.StartTask)
}

// Complete marks a task as done
func (h *TaskHandler) Complete(c *gin.Context) {
	h.transition(c, h.taskService.CompleteTask)
}

// Cancel cancels a task
func (h *TaskHandler) Cancel(c *gin.Context) {
	h.transition(c, h.taskService.CancelTask)
}

func (h *TaskHandler) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*caseworkapp.TaskResponse, error)) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := op(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, task)
}
