package visitor

import (
	"time"

	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/google/uuid"
)

// CreateGuestRequest registers a new guest
type CreateGuestRequest struct {
	Code       string `json:"code"`
	FullName   string `json:"full_name" binding:"required"`
	IDNumber   string `json:"id_number"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	VehicleReg string `json:"vehicle_reg"`
	Notes      string `json:"notes"`
}

// UpdateGuestRequest updates guest details
type UpdateGuestRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	IDNumber   string `json:"id_number"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	VehicleReg string `json:"vehicle_reg"`
	Notes      string `json:"notes"`
}

// GuestStatusRequest carries an optional reason for a manual status change
type GuestStatusRequest struct {
	Reason string `json:"reason"`
}

// GuestResponse is the API view of a guest
type GuestResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	FullName     string    `json:"full_name"`
	IDNumber     string    `json:"id_number"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	VehicleReg   string    `json:"vehicle_reg"`
	Status       string    `json:"status"`
	StatusReason string    `json:"status_reason"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToGuestResponse maps a guest aggregate to its API view
func ToGuestResponse(g *visitor.Guest) GuestResponse {
	return GuestResponse{
		ID:           g.ID,
		Code:         g.Code,
		FullName:     g.FullName,
		IDNumber:     g.IDNumber,
		Phone:        g.Phone,
		Email:        g.Email,
		VehicleReg:   g.VehicleReg,
		Status:       string(g.Status),
		StatusReason: g.StatusReason,
		Notes:        g.Notes,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// SignInRequest records a gate sign-in
type SignInRequest struct {
	GuestID          uuid.UUID `json:"guest_id" binding:"required"`
	HostMemberName   string    `json:"host_member_name"`
	HostMemberNumber string    `json:"host_member_number" binding:"required"`
	HostPhone        string    `json:"host_phone"`
	Purpose          string    `json:"purpose"`
}

// VisitResponse is the API view of a visit
type VisitResponse struct {
	ID               uuid.UUID  `json:"id"`
	GuestID          uuid.UUID  `json:"guest_id"`
	HostMemberName   string     `json:"host_member_name"`
	HostMemberNumber string     `json:"host_member_number"`
	VisitDate        time.Time  `json:"visit_date"`
	SignedInAt       time.Time  `json:"signed_in_at"`
	SignedOutAt      *time.Time `json:"signed_out_at,omitempty"`
	Purpose          string     `json:"purpose"`
	Status           string     `json:"status"`
}

// ToVisitResponse maps a visit aggregate to its API view
func ToVisitResponse(v *visitor.Visit) VisitResponse {
	return VisitResponse{
		ID:               v.ID,
		GuestID:          v.GuestID,
		HostMemberName:   v.HostMemberName,
		HostMemberNumber: v.HostMemberNumber,
		VisitDate:        v.VisitDate,
		SignedInAt:       v.SignedInAt,
		SignedOutAt:      v.SignedOutAt,
		Purpose:          v.Purpose,
		Status:           string(v.Status),
	}
}

// CreateReciprocalMemberRequest enrolls a partner-club member
type CreateReciprocalMemberRequest struct {
	FullName         string    `json:"full_name" binding:"required"`
	PartnerClub      string    `json:"partner_club" binding:"required"`
	MembershipNumber string    `json:"membership_number" binding:"required"`
	Country          string    `json:"country"`
	City             string    `json:"city"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email" binding:"omitempty,email"`
	ValidUntil       time.Time `json:"valid_until" binding:"required"`
}

// UpdateReciprocalMemberRequest updates contact details and validity
type UpdateReciprocalMemberRequest struct {
	Country    string     `json:"country"`
	City       string     `json:"city"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email" binding:"omitempty,email"`
	ValidUntil *time.Time `json:"valid_until"`
}

// ReciprocalMemberResponse is the API view of a reciprocal member
type ReciprocalMemberResponse struct {
	ID               uuid.UUID `json:"id"`
	FullName         string    `json:"full_name"`
	PartnerClub      string    `json:"partner_club"`
	MembershipNumber string    `json:"membership_number"`
	Country          string    `json:"country"`
	City             string    `json:"city"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	ValidUntil       time.Time `json:"valid_until"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// ToReciprocalMemberResponse maps a reciprocal member to its API view
func ToReciprocalMemberResponse(m *visitor.ReciprocalMember) ReciprocalMemberResponse {
	return ReciprocalMemberResponse{
		ID:               m.ID,
		FullName:         m.FullName,
		PartnerClub:      m.PartnerClub,
		MembershipNumber: m.MembershipNumber,
		Country:          m.Country,
		City:             m.City,
		Phone:            m.Phone,
		Email:            m.Email,
		ValidUntil:       m.ValidUntil,
		Status:           string(m.Status),
		CreatedAt:        m.CreatedAt,
	}
}
