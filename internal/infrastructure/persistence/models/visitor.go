package models

import (
	"time"

	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/google/uuid"
)

// GuestModel is the persistence model for the Guest aggregate.
type GuestModel struct {
	AggregateModel
	Code         string             `gorm:"type:varchar(20);not null;uniqueIndex"`
	FullName     string             `gorm:"type:varchar(200);not null"`
	IDNumber     string             `gorm:"type:varchar(50)"`
	Phone        string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	Email        string             `gorm:"type:varchar(200)"`
	VehicleReg   string             `gorm:"type:varchar(50)"`
	Status       visitor.GuestStatus `gorm:"type:varchar(20);not null;default:'approved';index"`
	Notes        string             `gorm:"type:text"`
	StatusReason string             `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (GuestModel) TableName() string {
	return "guests"
}

// ToDomain converts the persistence model to a domain Guest aggregate.
func (m *GuestModel) ToDomain() *visitor.Guest {
	return &visitor.Guest{
		BaseAggregateRoot: m.aggregateRoot(),
		Code:              m.Code,
		FullName:          m.FullName,
		IDNumber:          m.IDNumber,
		Phone:             m.Phone,
		Email:             m.Email,
		VehicleReg:        m.VehicleReg,
		Status:            m.Status,
		Notes:             m.Notes,
		StatusReason:      m.StatusReason,
	}
}

// FromDomain populates the persistence model from a domain Guest aggregate.
func (m *GuestModel) FromDomain(g *visitor.Guest) {
	m.FromDomainAggregateRoot(g.BaseAggregateRoot)
	m.Code = g.Code
	m.FullName = g.FullName
	m.IDNumber = g.IDNumber
	m.Phone = g.Phone
	m.Email = g.Email
	m.VehicleReg = g.VehicleReg
	m.Status = g.Status
	m.Notes = g.Notes
	m.StatusReason = g.StatusReason
}

// GuestModelFromDomain creates a new persistence model from a domain Guest aggregate.
func GuestModelFromDomain(g *visitor.Guest) *GuestModel {
	m := &GuestModel{}
	m.FromDomain(g)
	return m
}

// ReciprocalMemberModel is the persistence model for the ReciprocalMember aggregate.
type ReciprocalMemberModel struct {
	AggregateModel
	FullName         string                         `gorm:"type:varchar(200);not null"`
	PartnerClub      string                         `gorm:"type:varchar(200);not null;uniqueIndex:idx_reciprocal_club_number,priority:1"`
	MembershipNumber string                         `gorm:"type:varchar(100);not null;uniqueIndex:idx_reciprocal_club_number,priority:2"`
	Country          string                         `gorm:"type:varchar(100)"`
	City             string                         `gorm:"type:varchar(100)"`
	Phone            string                         `gorm:"type:varchar(50)"`
	Email            string                         `gorm:"type:varchar(200)"`
	ValidUntil       time.Time                      `gorm:"not null;index"`
	Status           visitor.ReciprocalMemberStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (ReciprocalMemberModel) TableName() string {
	return "reciprocal_members"
}

// ToDomain converts the persistence model to a domain ReciprocalMember aggregate.
func (m *ReciprocalMemberModel) ToDomain() *visitor.ReciprocalMember {
	return &visitor.ReciprocalMember{
		BaseAggregateRoot: m.aggregateRoot(),
		FullName:          m.FullName,
		PartnerClub:       m.PartnerClub,
		MembershipNumber:  m.MembershipNumber,
		Country:           m.Country,
		City:              m.City,
		Phone:             m.Phone,
		Email:             m.Email,
		ValidUntil:        m.ValidUntil,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain ReciprocalMember aggregate.
func (m *ReciprocalMemberModel) FromDomain(r *visitor.ReciprocalMember) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.FullName = r.FullName
	m.PartnerClub = r.PartnerClub
	m.MembershipNumber = r.MembershipNumber
	m.Country = r.Country
	m.City = r.City
	m.Phone = r.Phone
	m.Email = r.Email
	m.ValidUntil = r.ValidUntil
	m.Status = r.Status
}

// ReciprocalMemberModelFromDomain creates a new persistence model from a domain aggregate.
func ReciprocalMemberModelFromDomain(r *visitor.ReciprocalMember) *ReciprocalMemberModel {
	m := &ReciprocalMemberModel{}
	m.FromDomain(r)
	return m
}

// VisitModel is the persistence model for the Visit aggregate.
type VisitModel struct {
	AggregateModel
	GuestID          uuid.UUID           `gorm:"type:uuid;not null;index:idx_visits_guest_date,priority:1"`
	HostMemberName   string              `gorm:"type:varchar(200)"`
	HostMemberNumber string              `gorm:"type:varchar(50);not null;index:idx_visits_host_date,priority:1"`
	VisitDate        time.Time           `gorm:"not null;index:idx_visits_guest_date,priority:2;index:idx_visits_host_date,priority:2"`
	SignedInAt       time.Time           `gorm:"not null"`
	SignedOutAt      *time.Time          `gorm:"index"`
	Purpose          string              `gorm:"type:varchar(200)"`
	Status           visitor.GuestStatus `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (VisitModel) TableName() string {
	return "visits"
}

// ToDomain converts the persistence model to a domain Visit aggregate.
func (m *VisitModel) ToDomain() *visitor.Visit {
	return &visitor.Visit{
		BaseAggregateRoot: m.aggregateRoot(),
		GuestID:           m.GuestID,
		HostMemberName:    m.HostMemberName,
		HostMemberNumber:  m.HostMemberNumber,
		VisitDate:         m.VisitDate,
		SignedInAt:        m.SignedInAt,
		SignedOutAt:       m.SignedOutAt,
		Purpose:           m.Purpose,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Visit aggregate.
func (m *VisitModel) FromDomain(v *visitor.Visit) {
	m.FromDomainAggregateRoot(v.BaseAggregateRoot)
	m.GuestID = v.GuestID
	m.HostMemberName = v.HostMemberName
	m.HostMemberNumber = v.HostMemberNumber
	m.VisitDate = v.VisitDate
	m.SignedInAt = v.SignedInAt
	m.SignedOutAt = v.SignedOutAt
	m.Purpose = v.Purpose
	m.Status = v.Status
}

// VisitModelFromDomain creates a new persistence model from a domain Visit aggregate.
func VisitModelFromDomain(v *visitor.Visit) *VisitModel {
	m := &VisitModel{}
	m.FromDomain(v)
	return m
}
