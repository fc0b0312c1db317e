package visitor

import (
	"strings"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
)

// ReciprocalMemberStatus represents the standing of a reciprocal-club member
type ReciprocalMemberStatus string

const (
	ReciprocalStatusActive  ReciprocalMemberStatus = "active"
	ReciprocalStatusExpired ReciprocalMemberStatus = "expired"
	ReciprocalStatusRevoked ReciprocalMemberStatus = "revoked"
)

// ReciprocalMember is a member of a partner club with visiting rights.
// Tracked separately from guests: they are not subject to visit quotas.
type ReciprocalMember struct {
	shared.BaseAggregateRoot
	FullName         string
	PartnerClub      string
	MembershipNumber string
	Country          string
	City             string
	Phone            string
	Email            string
	ValidUntil       time.Time
	Status           ReciprocalMemberStatus
}

// NewReciprocalMember enrolls a partner-club member
func NewReciprocalMember(fullName, partnerClub, membershipNumber string, validUntil time.Time) (*ReciprocalMember, error) {
	fullName = strings.TrimSpace(fullName)
	partnerClub = strings.TrimSpace(partnerClub)
	membershipNumber = strings.TrimSpace(membershipNumber)
	if fullName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Member name is required")
	}
	if partnerClub == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Partner club is required")
	}
	if membershipNumber == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Membership number is required")
	}
	if validUntil.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Valid-until date is required")
	}

	m := &ReciprocalMember{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FullName:          fullName,
		PartnerClub:       partnerClub,
		MembershipNumber:  membershipNumber,
		ValidUntil:        validUntil,
		Status:            ReciprocalStatusActive,
	}
	m.AddDomainEvent(newReciprocalEvent(EventReciprocalMemberEnrolled, m))
	return m, nil
}

func newReciprocalEvent(eventType string, m *ReciprocalMember) shared.DomainEvent {
	evt := shared.NewBaseDomainEvent(eventType, "ReciprocalMember", m.ID)
	return &evt
}

// UpdateContact updates contact details
func (m *ReciprocalMember) UpdateContact(country, city, phone, email string) {
	m.Country = strings.TrimSpace(country)
	m.City = strings.TrimSpace(city)
	m.Phone = strings.TrimSpace(phone)
	m.Email = strings.TrimSpace(email)
	m.UpdatedAt = time.Now()
}

// Renew extends the validity period and reactivates an expired membership
func (m *ReciprocalMember) Renew(validUntil time.Time) error {
	if m.Status == ReciprocalStatusRevoked {
		return shared.NewDomainError("INVALID_STATE", "Cannot renew a revoked membership")
	}
	if !validUntil.After(m.ValidUntil) {
		return shared.NewDomainError("INVALID_INPUT", "New valid-until date must extend the current one")
	}
	m.ValidUntil = validUntil
	m.Status = ReciprocalStatusActive
	m.UpdatedAt = time.Now()
	return nil
}

// Expire marks the membership as lapsed. Only active memberships expire.
func (m *ReciprocalMember) Expire(asOf time.Time) bool {
	if m.Status != ReciprocalStatusActive {
		return false
	}
	if !m.ValidUntil.Before(asOf) {
		return false
	}
	m.Status = ReciprocalStatusExpired
	m.UpdatedAt = time.Now()
	m.AddDomainEvent(newReciprocalEvent(EventReciprocalMemberExpired, m))
	return true
}

// Revoke withdraws visiting rights regardless of validity
func (m *ReciprocalMember) Revoke() error {
	if m.Status == ReciprocalStatusRevoked {
		return shared.NewDomainError("INVALID_STATE", "Membership is already revoked")
	}
	m.Status = ReciprocalStatusRevoked
	m.UpdatedAt = time.Now()
	m.AddDomainEvent(newReciprocalEvent(EventReciprocalMemberRevoked, m))
	return nil
}

// IsActive reports whether the member currently holds visiting rights
func (m *ReciprocalMember) IsActive(asOf time.Time) bool {
	return m.Status == ReciprocalStatusActive && !m.ValidUntil.Before(asOf)
}
