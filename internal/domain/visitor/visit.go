package visitor

import (
	"strings"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Visit is a single gate sign-in by a guest hosted by a club member.
// Status is the approval standing computed at sign-in time and kept as a
// snapshot on the record.
type Visit struct {
	shared.BaseAggregateRoot
	GuestID          uuid.UUID
	HostMemberName   string
	HostMemberNumber string
	VisitDate        time.Time
	SignedInAt       time.Time
	SignedOutAt      *time.Time
	Purpose          string
	Status           GuestStatus
}

// NewVisit signs a guest in. visitDate is truncated to the club-local day.
func NewVisit(guestID uuid.UUID, hostMemberName, hostMemberNumber, purpose string, signedInAt time.Time, status GuestStatus) (*Visit, error) {
	hostMemberName = strings.TrimSpace(hostMemberName)
	hostMemberNumber = strings.TrimSpace(hostMemberNumber)
	if guestID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Guest is required")
	}
	if hostMemberNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Host member number is required")
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid visit status")
	}
	if signedInAt.IsZero() {
		signedInAt = time.Now()
	}

	v := &Visit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		GuestID:           guestID,
		HostMemberName:    hostMemberName,
		HostMemberNumber:  hostMemberNumber,
		VisitDate:         DayOf(signedInAt),
		SignedInAt:        signedInAt,
		Purpose:           strings.TrimSpace(purpose),
		Status:            status,
	}
	v.AddDomainEvent(NewVisitSignedInEvent(v.ID, guestID, hostMemberNumber, status, signedInAt))
	return v, nil
}

// SignOut closes the visit. Closing twice is an error.
func (v *Visit) SignOut(at time.Time, automatic bool) error {
	if v.SignedOutAt != nil {
		return shared.NewDomainError("INVALID_STATE", "Visit is already signed out")
	}
	if at.IsZero() {
		at = time.Now()
	}
	if at.Before(v.SignedInAt) {
		return shared.NewDomainError("INVALID_INPUT", "Sign-out cannot precede sign-in")
	}
	v.SignedOutAt = &at
	v.UpdatedAt = time.Now()
	v.AddDomainEvent(NewVisitSignedOutEvent(v.ID, v.GuestID, at, automatic))
	return nil
}

// IsOpen reports whether the guest is still on the premises
func (v *Visit) IsOpen() bool {
	return v.SignedOutAt == nil
}

// DayOf truncates a timestamp to midnight in its own location
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MonthRange returns the calendar-month bounds [start, end) containing t
func MonthRange(t time.Time) (time.Time, time.Time) {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// YearRange returns the calendar-year bounds [start, end) containing t
func YearRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(1, 0, 0)
}
