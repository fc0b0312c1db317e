package visitor

import (
	"context"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GuestService handles guest registration and standing
type GuestService struct {
	guests visitor.GuestRepository
	visits visitor.VisitRepository
	logger *zap.Logger
}

// NewGuestService creates a new guest service
func NewGuestService(guests visitor.GuestRepository, visits visitor.VisitRepository, logger *zap.Logger) *GuestService {
	return &GuestService{
		guests: guests,
		visits: visits,
		logger: logger,
	}
}

// CreateGuest registers a new guest. Phone numbers are unique.
func (s *GuestService) CreateGuest(ctx context.Context, req CreateGuestRequest) (*GuestResponse, error) {
	existing, err := s.guests.FindByPhone(ctx, req.Phone)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A guest with this phone number already exists")
	}

	guest, err := visitor.NewGuest(req.Code, req.FullName, req.IDNumber, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := guest.UpdateContact(req.Phone, req.Email, req.VehicleReg); err != nil {
		return nil, err
	}
	guest.Notes = req.Notes

	if err := s.guests.Save(ctx, guest); err != nil {
		return nil, err
	}

	s.logger.Info("guest registered",
		zap.String("guest_id", guest.ID.String()),
		zap.String("code", guest.Code))

	resp := ToGuestResponse(guest)
	return &resp, nil
}

// GetGuest returns a guest by ID
func (s *GuestService) GetGuest(ctx context.Context, id uuid.UUID) (*GuestResponse, error) {
	guest, err := s.guests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToGuestResponse(guest)
	return &resp, nil
}

// ListGuests returns a paginated guest listing
func (s *GuestService) ListGuests(ctx context.Context, filter shared.Filter) (*shared.Paginated[GuestResponse], error) {
	guests, err := s.guests.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.guests.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]GuestResponse, 0, len(guests))
	for i := range guests {
		items = append(items, ToGuestResponse(&guests[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateGuest updates guest details
func (s *GuestService) UpdateGuest(ctx context.Context, id uuid.UUID, req UpdateGuestRequest) (*GuestResponse, error) {
	guest, err := s.guests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Phone != guest.Phone {
		other, err := s.guests.FindByPhone(ctx, req.Phone)
		if err != nil && err != shared.ErrNotFound {
			return nil, err
		}
		if other != nil && other.ID != guest.ID {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A guest with this phone number already exists")
		}
	}

	if err := guest.Rename(req.FullName, req.IDNumber); err != nil {
		return nil, err
	}
	if err := guest.UpdateContact(req.Phone, req.Email, req.VehicleReg); err != nil {
		return nil, err
	}
	guest.Notes = req.Notes
	guest.IncrementVersion()

	if err := s.guests.Save(ctx, guest); err != nil {
		return nil, err
	}

	resp := ToGuestResponse(guest)
	return &resp, nil
}

// DeleteGuest removes a guest. Guests with recorded visits cannot be
// deleted; the visit log must stay attributable.
func (s *GuestService) DeleteGuest(ctx context.Context, id uuid.UUID) error {
	if _, err := s.guests.FindByID(ctx, id); err != nil {
		return err
	}

	visitCount, err := s.visits.CountByGuest(ctx, id)
	if err != nil {
		return err
	}
	if visitCount > 0 {
		return shared.NewDomainError("CANNOT_DELETE", "Guest has recorded visits and cannot be deleted")
	}

	return s.guests.Delete(ctx, id)
}

// ApproveGuest manually restores a guest to approved standing
func (s *GuestService) ApproveGuest(ctx context.Context, id uuid.UUID, reason string) (*GuestResponse, error) {
	return s.changeStatus(ctx, id, reason, (*visitor.Guest).Approve)
}

// SuspendGuest manually suspends a guest
func (s *GuestService) SuspendGuest(ctx context.Context, id uuid.UUID, reason string) (*GuestResponse, error) {
	return s.changeStatus(ctx, id, reason, (*visitor.Guest).Suspend)
}

// RevokeGuest manually marks a guest unapproved
func (s *GuestService) RevokeGuest(ctx context.Context, id uuid.UUID, reason string) (*GuestResponse, error) {
	return s.changeStatus(ctx, id, reason, (*visitor.Guest).Revoke)
}

func (s *GuestService) changeStatus(ctx context.Context, id uuid.UUID, reason string, transition func(*visitor.Guest, string)) (*GuestResponse, error) {
	guest, err := s.guests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	transition(guest, reason)
	guest.IncrementVersion()

	if err := s.guests.Save(ctx, guest); err != nil {
		return nil, err
	}

	s.logger.Info("guest status changed",
		zap.String("guest_id", guest.ID.String()),
		zap.String("status", string(guest.Status)),
		zap.String("reason", reason))

	resp := ToGuestResponse(guest)
	return &resp, nil
}

// RefreshGuestStatuses re-evaluates every guest's standing from current
// calendar-month and calendar-year visit counts. Run nightly so a guest
// suspended in one month is restored when a new month starts. Returns the
// number of guests whose status changed.
func (s *GuestService) RefreshGuestStatuses(ctx context.Context, policy visitor.VisitPolicy, asOf time.Time) (int, error) {
	monthFrom, monthTo := visitor.MonthRange(asOf)
	yearFrom, yearTo := visitor.YearRange(asOf)

	changed := 0
	filter := shared.DefaultFilter()
	filter.PageSize = 200

	for {
		guests, err := s.guests.FindAll(ctx, filter)
		if err != nil {
			return changed, err
		}
		if len(guests) == 0 {
			break
		}

		for i := range guests {
			guest := &guests[i]
			monthly, err := s.visits.CountByGuestInRange(ctx, guest.ID, monthFrom, monthTo)
			if err != nil {
				return changed, err
			}
			yearly, err := s.visits.CountByGuestInRange(ctx, guest.ID, yearFrom, yearTo)
			if err != nil {
				return changed, err
			}

			// The host daily limit only matters at sign-in; the nightly
			// refresh looks at the guest's own quotas.
			counts := visitor.VisitCounts{GuestMonthly: monthly, GuestYearly: yearly}
			status := policy.Evaluate(counts)
			if status == visitor.GuestStatusUnapproved {
				status = visitor.GuestStatusApproved
			}
			if guest.Status == status {
				continue
			}

			guest.ApplyStatus(status, policy.Reason(counts, status))
			guest.IncrementVersion()
			if err := s.guests.Save(ctx, guest); err != nil {
				return changed, err
			}
			changed++
		}

		if len(guests) < filter.PageSize {
			break
		}
		filter.Page++
	}

	s.logger.Info("guest statuses refreshed", zap.Int("changed", changed))
	return changed, nil
}
