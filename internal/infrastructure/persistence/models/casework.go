package models

import (
	"time"

	"github.com/clubgate/backend/internal/domain/casework"
	"github.com/google/uuid"
)

// CaseModel is the persistence model for the Case aggregate.
type CaseModel struct {
	AggregateModel
	CaseNumber      string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientName      string              `gorm:"type:varchar(200);not null"`
	OpposingParty   string              `gorm:"type:varchar(200)"`
	Court           string              `gorm:"type:varchar(200)"`
	Description     string              `gorm:"type:text"`
	Status          casework.CaseStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	NextHearingDate *time.Time          `gorm:"index"`
	AssignedLawyer  string              `gorm:"type:varchar(200);index"`
	ClosedAt        *time.Time
}

// TableName returns the table name for GORM
func (CaseModel) TableName() string {
	return "cases"
}

// ToDomain converts the persistence model to a domain Case aggregate.
func (m *CaseModel) ToDomain() *casework.Case {
	return &casework.Case{
		BaseAggregateRoot: m.aggregateRoot(),
		CaseNumber:        m.CaseNumber,
		ClientName:        m.ClientName,
		OpposingParty:     m.OpposingParty,
		Court:             m.Court,
		Description:       m.Description,
		Status:            m.Status,
		NextHearingDate:   m.NextHearingDate,
		AssignedLawyer:    m.AssignedLawyer,
		ClosedAt:          m.ClosedAt,
	}
}

// FromDomain populates the persistence model from a domain Case aggregate.
func (m *CaseModel) FromDomain(c *casework.Case) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CaseNumber = c.CaseNumber
	m.ClientName = c.ClientName
	m.OpposingParty = c.OpposingParty
	m.Court = c.Court
	m.Description = c.Description
	m.Status = c.Status
	m.NextHearingDate = c.NextHearingDate
	m.AssignedLawyer = c.AssignedLawyer
	m.ClosedAt = c.ClosedAt
}

// CaseModelFromDomain creates a new persistence model from a domain Case aggregate.
func CaseModelFromDomain(c *casework.Case) *CaseModel {
	m := &CaseModel{}
	m.FromDomain(c)
	return m
}

// TaskModel is the persistence model for the Task aggregate.
type TaskModel struct {
	AggregateModel
	CaseID        *uuid.UUID            `gorm:"type:uuid;index"`
	Title         string                `gorm:"type:varchar(200);not null"`
	Details       string                `gorm:"type:text"`
	Assignee      string                `gorm:"type:varchar(200);index"`
	AssigneePhone string                `gorm:"type:varchar(50)"`
	DueDate       *time.Time            `gorm:"index"`
	Priority      casework.TaskPriority `gorm:"type:varchar(10);not null;default:'normal'"`
	Status        casework.TaskStatus   `gorm:"type:varchar(20);not null;default:'todo';index"`
	CompletedAt   *time.Time
	ReminderSent  bool `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain Task aggregate.
func (m *TaskModel) ToDomain() *casework.Task {
	return &casework.Task{
		BaseAggregateRoot: m.aggregateRoot(),
		CaseID:            m.CaseID,
		Title:             m.Title,
		Details:           m.Details,
		Assignee:          m.Assignee,
		AssigneePhone:     m.AssigneePhone,
		DueDate:           m.DueDate,
		Priority:          m.Priority,
		Status:            m.Status,
		CompletedAt:       m.CompletedAt,
		ReminderSent:      m.ReminderSent,
	}
}

// FromDomain populates the persistence model from a domain Task aggregate.
func (m *TaskModel) FromDomain(t *casework.Task) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.CaseID = t.CaseID
	m.Title = t.Title
	m.Details = t.Details
	m.Assignee = t.Assignee
	m.AssigneePhone = t.AssigneePhone
	m.DueDate = t.DueDate
	m.Priority = t.Priority
	m.Status = t.Status
	m.CompletedAt = t.CompletedAt
	m.ReminderSent = t.ReminderSent
}

// TaskModelFromDomain creates a new persistence model from a domain Task aggregate.
func TaskModelFromDomain(t *casework.Task) *TaskModel {
	m := &TaskModel{}
	m.FromDomain(t)
	return m
}
