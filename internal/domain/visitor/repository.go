package visitor

import (
	"context"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// GuestRepository defines persistence operations for guests
type GuestRepository interface {
	shared.Repository[Guest]
	FindByCode(ctx context.Context, code string) (*Guest, error)
	FindByPhone(ctx context.Context, phone string) (*Guest, error)
	FindByStatus(ctx context.Context, status GuestStatus, filter shared.Filter) ([]Guest, error)
}

// ReciprocalMemberRepository defines persistence operations for
// partner-club members
type ReciprocalMemberRepository interface {
	shared.Repository[ReciprocalMember]
	FindByMembershipNumber(ctx context.Context, partnerClub, membershipNumber string) (*ReciprocalMember, error)
	FindLapsed(ctx context.Context, asOf time.Time) ([]ReciprocalMember, error)
}

// VisitRepository defines persistence operations for visits, including the
// aggregations the quota policy is decided from
type VisitRepository interface {
	shared.Repository[Visit]
	// CountByHostOnDate counts visits hosted by a member on a given day
	CountByHostOnDate(ctx context.Context, hostMemberNumber string, date time.Time) (int64, error)
	// CountByGuestInRange counts a guest's visits with visit_date in [from, to)
	CountByGuestInRange(ctx context.Context, guestID uuid.UUID, from, to time.Time) (int64, error)
	// FindOpenVisits returns visits that have not been signed out
	FindOpenVisits(ctx context.Context, before time.Time) ([]Visit, error)
	FindByGuest(ctx context.Context, guestID uuid.UUID, filter shared.Filter) ([]Visit, error)
	CountByGuest(ctx context.Context, guestID uuid.UUID) (int64, error)
}
