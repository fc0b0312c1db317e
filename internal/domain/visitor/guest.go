package visitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// GuestStatus represents the current approval standing of a guest
type GuestStatus string

const (
	GuestStatusApproved   GuestStatus = "approved"
	GuestStatusSuspended  GuestStatus = "suspended"
	GuestStatusUnapproved GuestStatus = "unapproved"
)

// IsValid checks whether the status is one of the known values
func (s GuestStatus) IsValid() bool {
	switch s {
	case GuestStatusApproved, GuestStatusSuspended, GuestStatusUnapproved:
		return true
	}
	return false
}

// Guest is a visitor registered at the gate. The status is advisory: gate
// staff see it at sign-in but the record itself never blocks entry.
type Guest struct {
	shared.BaseAggregateRoot
	Code         string
	FullName     string
	IDNumber     string
	Phone        string
	Email        string
	VehicleReg   string
	Status       GuestStatus
	Notes        string
	StatusReason string
}

// NewGuest creates a new guest in approved standing
func NewGuest(code, fullName, idNumber, phone string) (*Guest, error) {
	fullName = strings.TrimSpace(fullName)
	phone = strings.TrimSpace(phone)
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Guest name is required")
	}
	if phone == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Guest phone is required")
	}

	g := &Guest{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		FullName:          fullName,
		IDNumber:          strings.TrimSpace(idNumber),
		Phone:             phone,
		Status:            GuestStatusApproved,
	}
	if g.Code == "" {
		g.Code = generateGuestCode(g.ID)
	}

	g.AddDomainEvent(NewGuestRegisteredEvent(g.ID, g.Code, g.FullName, g.Phone))
	return g, nil
}

// generateGuestCode derives a short human-readable code from the ID
func generateGuestCode(id uuid.UUID) string {
	return fmt.Sprintf("G-%s", strings.ToUpper(id.String()[:8]))
}

// UpdateContact updates contact details
func (g *Guest) UpdateContact(phone, email, vehicleReg string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return shared.NewDomainError("INVALID_INPUT", "Guest phone is required")
	}
	g.Phone = phone
	g.Email = strings.TrimSpace(email)
	g.VehicleReg = strings.TrimSpace(vehicleReg)
	g.UpdatedAt = time.Now()
	return nil
}

// Rename updates the guest's name and ID number
func (g *Guest) Rename(fullName, idNumber string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Guest name is required")
	}
	g.FullName = fullName
	g.IDNumber = strings.TrimSpace(idNumber)
	g.UpdatedAt = time.Now()
	return nil
}

// Approve restores the guest to approved standing
func (g *Guest) Approve(reason string) {
	g.setStatus(GuestStatusApproved, reason)
}

// Suspend marks the guest as suspended (visit quota reached)
func (g *Guest) Suspend(reason string) {
	g.setStatus(GuestStatusSuspended, reason)
}

// Revoke marks the guest as unapproved
func (g *Guest) Revoke(reason string) {
	g.setStatus(GuestStatusUnapproved, reason)
}

// ApplyStatus records a policy-computed status without touching an
// already-matching value
func (g *Guest) ApplyStatus(status GuestStatus, reason string) {
	if g.Status == status {
		return
	}
	g.setStatus(status, reason)
}

func (g *Guest) setStatus(status GuestStatus, reason string) {
	previous := g.Status
	g.Status = status
	g.StatusReason = reason
	g.UpdatedAt = time.Now()
	g.AddDomainEvent(NewGuestStatusChangedEvent(g.ID, previous, status, reason))
}
