package visitor

import (
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for the visitor context
const (
	EventGuestRegistered          = "visitor.guest.registered"
	EventGuestStatusChanged       = "visitor.guest.status_changed"
	EventVisitSignedIn            = "visitor.visit.signed_in"
	EventVisitSignedOut           = "visitor.visit.signed_out"
	EventReciprocalMemberExpired  = "visitor.reciprocal_member.expired"
	EventReciprocalMemberRevoked  = "visitor.reciprocal_member.revoked"
	EventReciprocalMemberEnrolled = "visitor.reciprocal_member.enrolled"
)

// GuestRegisteredEvent is raised when a new guest is registered
type GuestRegisteredEvent struct {
	shared.BaseDomainEvent
	Code     string `json:"code"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// NewGuestRegisteredEvent creates a new guest registered event
func NewGuestRegisteredEvent(guestID uuid.UUID, code, fullName, phone string) *GuestRegisteredEvent {
	return &GuestRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventGuestRegistered, "Guest", guestID),
		Code:            code,
		FullName:        fullName,
		Phone:           phone,
	}
}

// GuestStatusChangedEvent is raised when a guest's standing changes
type GuestStatusChangedEvent struct {
	shared.BaseDomainEvent
	Previous GuestStatus `json:"previous"`
	Current  GuestStatus `json:"current"`
	Reason   string      `json:"reason"`
}

// NewGuestStatusChangedEvent creates a new guest status changed event
func NewGuestStatusChangedEvent(guestID uuid.UUID, previous, current GuestStatus, reason string) *GuestStatusChangedEvent {
	return &GuestStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventGuestStatusChanged, "Guest", guestID),
		Previous:        previous,
		Current:         current,
		Reason:          reason,
	}
}

// VisitSignedInEvent is raised when a guest signs in at the gate
type VisitSignedInEvent struct {
	shared.BaseDomainEvent
	GuestID          uuid.UUID   `json:"guest_id"`
	HostMemberNumber string      `json:"host_member_number"`
	Status           GuestStatus `json:"status"`
	SignedInAt       time.Time   `json:"signed_in_at"`
}

// NewVisitSignedInEvent creates a new visit signed-in event
func NewVisitSignedInEvent(visitID, guestID uuid.UUID, hostMemberNumber string, status GuestStatus, signedInAt time.Time) *VisitSignedInEvent {
	return &VisitSignedInEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventVisitSignedIn, "Visit", visitID),
		GuestID:          guestID,
		HostMemberNumber: hostMemberNumber,
		Status:           status,
		SignedInAt:       signedInAt,
	}
}

// VisitSignedOutEvent is raised when a visit is closed
type VisitSignedOutEvent struct {
	shared.BaseDomainEvent
	GuestID     uuid.UUID `json:"guest_id"`
	SignedOutAt time.Time `json:"signed_out_at"`
	Automatic   bool      `json:"automatic"`
}

// NewVisitSignedOutEvent creates a new visit signed-out event
func NewVisitSignedOutEvent(visitID, guestID uuid.UUID, signedOutAt time.Time, automatic bool) *VisitSignedOutEvent {
	return &VisitSignedOutEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventVisitSignedOut, "Visit", visitID),
		GuestID:         guestID,
		SignedOutAt:     signedOutAt,
		Automatic:       automatic,
	}
}
