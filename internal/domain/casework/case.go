package casework

import (
	"strings"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
)

// CaseStatus represents the lifecycle state of a legal matter
type CaseStatus string

const (
	CaseStatusOpen    CaseStatus = "open"
	CaseStatusPending CaseStatus = "pending"
	CaseStatusClosed  CaseStatus = "closed"
)

// Case is a legal matter handled by the practice
type Case struct {
	shared.BaseAggregateRoot
	CaseNumber      string
	ClientName      string
	OpposingParty   string
	Court           string
	Description     string
	Status          CaseStatus
	NextHearingDate *time.Time
	AssignedLawyer  string
	ClosedAt        *time.Time
}

// NewCase opens a new matter
func NewCase(caseNumber, clientName, opposingParty, court, description, assignedLawyer string) (*Case, error) {
	caseNumber = strings.TrimSpace(caseNumber)
	clientName = strings.TrimSpace(clientName)
	if caseNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Case number is required")
	}
	if clientName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Client name is required")
	}

	return &Case{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CaseNumber:        caseNumber,
		ClientName:        clientName,
		OpposingParty:     strings.TrimSpace(opposingParty),
		Court:             strings.TrimSpace(court),
		Description:       strings.TrimSpace(description),
		Status:            CaseStatusOpen,
		AssignedLawyer:    strings.TrimSpace(assignedLawyer),
	}, nil
}

// Reassign hands the matter to another lawyer
func (c *Case) Reassign(lawyer string) error {
	lawyer = strings.TrimSpace(lawyer)
	if lawyer == "" {
		return shared.NewDomainError("INVALID_INPUT", "Lawyer is required")
	}
	if c.Status == CaseStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Cannot reassign a closed case")
	}
	c.AssignedLawyer = lawyer
	c.UpdatedAt = time.Now()
	return nil
}

// ScheduleHearing sets the next hearing date and moves the case to pending
func (c *Case) ScheduleHearing(date time.Time) error {
	if c.Status == CaseStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Cannot schedule a hearing on a closed case")
	}
	if date.Before(time.Now()) {
		return shared.NewDomainError("INVALID_INPUT", "Hearing date must be in the future")
	}
	c.NextHearingDate = &date
	c.Status = CaseStatusPending
	c.UpdatedAt = time.Now()
	return nil
}

// Close marks the matter resolved
func (c *Case) Close() error {
	if c.Status == CaseStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Case is already closed")
	}
	now := time.Now()
	c.Status = CaseStatusClosed
	c.ClosedAt = &now
	c.NextHearingDate = nil
	c.UpdatedAt = now
	return nil
}

// Reopen returns a closed matter to the open state
func (c *Case) Reopen() error {
	if c.Status != CaseStatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Only closed cases can be reopened")
	}
	c.Status = CaseStatusOpen
	c.ClosedAt = nil
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails updates descriptive fields
func (c *Case) UpdateDetails(opposingParty, court, description string) {
	c.OpposingParty = strings.TrimSpace(opposingParty)
	c.Court = strings.TrimSpace(court)
	c.Description = strings.TrimSpace(description)
	c.UpdatedAt = time.Now()
}
