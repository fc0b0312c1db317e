package casework

import (
	"time"

	"github.com/clubgate/backend/internal/domain/casework"
	"github.com/google/uuid"
)

// CreateCaseRequest opens a new matter
type CreateCaseRequest struct {
	CaseNumber     string `json:"case_number" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	OpposingParty  string `json:"opposing_party"`
	Court          string `json:"court"`
	Description    string `json:"description"`
	AssignedLawyer string `json:"assigned_lawyer"`
}

// UpdateCaseRequest updates case details; a non-empty lawyer reassigns, a
// non-nil hearing date schedules
type UpdateCaseRequest struct {
	OpposingParty   string     `json:"opposing_party"`
	Court           string     `json:"court"`
	Description     string     `json:"description"`
	AssignedLawyer  string     `json:"assigned_lawyer"`
	NextHearingDate *time.Time `json:"next_hearing_date"`
}

// CaseResponse is the API view of a case
type CaseResponse struct {
	ID              uuid.UUID  `json:"id"`
	CaseNumber      string     `json:"case_number"`
	ClientName      string     `json:"client_name"`
	OpposingParty   string     `json:"opposing_party"`
	Court           string     `json:"court"`
	Description     string     `json:"description"`
	Status          string     `json:"status"`
	NextHearingDate *time.Time `json:"next_hearing_date,omitempty"`
	AssignedLawyer  string     `json:"assigned_lawyer"`
	ClosedAt        *time.Time `json:"closed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToCaseResponse maps a case aggregate to its API view
func ToCaseResponse(c *casework.Case) CaseResponse {
	return CaseResponse{
		ID:              c.ID,
		CaseNumber:      c.CaseNumber,
		ClientName:      c.ClientName,
		OpposingParty:   c.OpposingParty,
		Court:           c.Court,
		Description:     c.Description,
		Status:          string(c.Status),
		NextHearingDate: c.NextHearingDate,
		AssignedLawyer:  c.AssignedLawyer,
		ClosedAt:        c.ClosedAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// CreateTaskRequest creates a task, optionally attached to a case
type CreateTaskRequest struct {
	CaseID        *uuid.UUID `json:"case_id"`
	Title         string     `json:"title" binding:"required"`
	Details       string     `json:"details"`
	Assignee      string     `json:"assignee"`
	AssigneePhone string     `json:"assignee_phone"`
	DueDate       *time.Time `json:"due_date"`
	Priority      string     `json:"priority" binding:"omitempty,oneof=low normal high"`
}

// UpdateTaskRequest reassigns and/or reschedules a task
type UpdateTaskRequest struct {
	Assignee      string     `json:"assignee"`
	AssigneePhone string     `json:"assignee_phone"`
	DueDate       *time.Time `json:"due_date"`
}

// TaskResponse is the API view of a task
type TaskResponse struct {
	ID            uuid.UUID  `json:"id"`
	CaseID        *uuid.UUID `json:"case_id,omitempty"`
	Title         string     `json:"title"`
	Details       string     `json:"details"`
	Assignee      string     `json:"assignee"`
	AssigneePhone string     `json:"assignee_phone"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	Overdue       bool       `json:"overdue"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ToTaskResponse maps a task aggregate to its API view
func ToTaskResponse(t *casework.Task, asOf time.Time) TaskResponse {
	return TaskResponse{
		ID:            t.ID,
		CaseID:        t.CaseID,
		Title:         t.Title,
		Details:       t.Details,
		Assignee:      t.Assignee,
		AssigneePhone: t.AssigneePhone,
		DueDate:       t.DueDate,
		Priority:      string(t.Priority),
		Status:        string(t.Status),
		Overdue:       t.IsOverdue(asOf),
		CompletedAt:   t.CompletedAt,
		CreatedAt:     t.CreatedAt,
	}
}
