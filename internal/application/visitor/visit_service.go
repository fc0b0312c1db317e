package visitor

import (
	"context"
	"fmt"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HostNotifier sends a gate notification to the host member. Implemented by
// the messaging service; a nil notifier disables notifications.
type HostNotifier interface {
	NotifySignIn(ctx context.Context, guestID uuid.UUID, hostPhone, body string) error
}

// VisitService handles gate sign-ins and sign-outs
type VisitService struct {
	visits   visitor.VisitRepository
	guests   visitor.GuestRepository
	policy   visitor.VisitPolicy
	notifier HostNotifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewVisitService creates a new visit service
func NewVisitService(visits visitor.VisitRepository, guests visitor.GuestRepository, policy visitor.VisitPolicy, notifier HostNotifier, logger *zap.Logger) *VisitService {
	return &VisitService{
		visits:   visits,
		guests:   guests,
		policy:   policy,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// SignIn records a gate sign-in. The quota policy is evaluated from the
// counts on file before this visit is stored, the resulting status is
// stamped on the visit, and the guest's standing is updated to match.
func (s *VisitService) SignIn(ctx context.Context, req SignInRequest) (*VisitResponse, error) {
	guest, err := s.guests.FindByID(ctx, req.GuestID)
	if err != nil {
		return nil, err
	}

	at := s.now()
	counts, err := s.countsFor(ctx, guest.ID, req.HostMemberNumber, at)
	if err != nil {
		return nil, err
	}

	status := s.policy.Evaluate(counts)
	reason := s.policy.Reason(counts, status)

	visit, err := visitor.NewVisit(guest.ID, req.HostMemberName, req.HostMemberNumber, req.Purpose, at, status)
	if err != nil {
		return nil, err
	}
	if err := s.visits.Save(ctx, visit); err != nil {
		return nil, err
	}

	guest.ApplyStatus(status, reason)
	guest.IncrementVersion()
	if err := s.guests.Save(ctx, guest); err != nil {
		return nil, err
	}

	s.logger.Info("guest signed in",
		zap.String("visit_id", visit.ID.String()),
		zap.String("guest_id", guest.ID.String()),
		zap.String("host_member", req.HostMemberNumber),
		zap.String("status", string(status)))

	if s.notifier != nil && req.HostPhone != "" {
		body := fmt.Sprintf("Your guest %s has arrived at the gate (%s).", guest.FullName, status)
		if err := s.notifier.NotifySignIn(ctx, guest.ID, req.HostPhone, body); err != nil {
			// Notification failures never block the sign-in
			s.logger.Warn("host notification failed",
				zap.String("visit_id", visit.ID.String()),
				zap.Error(err))
		}
	}

	resp := ToVisitResponse(visit)
	return &resp, nil
}

func (s *VisitService) countsFor(ctx context.Context, guestID uuid.UUID, hostMemberNumber string, at time.Time) (visitor.VisitCounts, error) {
	var counts visitor.VisitCounts
	var err error

	counts.HostDaily, err = s.visits.CountByHostOnDate(ctx, hostMemberNumber, visitor.DayOf(at))
	if err != nil {
		return counts, err
	}

	monthFrom, monthTo := visitor.MonthRange(at)
	counts.GuestMonthly, err = s.visits.CountByGuestInRange(ctx, guestID, monthFrom, monthTo)
	if err != nil {
		return counts, err
	}

	yearFrom, yearTo := visitor.YearRange(at)
	counts.GuestYearly, err = s.visits.CountByGuestInRange(ctx, guestID, yearFrom, yearTo)
	if err != nil {
		return counts, err
	}

	return counts, nil
}

// SignOut closes an open visit
func (s *VisitService) SignOut(ctx context.Context, visitID uuid.UUID) (*VisitResponse, error) {
	visit, err := s.visits.FindByID(ctx, visitID)
	if err != nil {
		return nil, err
	}

	if err := visit.SignOut(s.now(), false); err != nil {
		return nil, err
	}
	visit.IncrementVersion()

	if err := s.visits.Save(ctx, visit); err != nil {
		return nil, err
	}

	resp := ToVisitResponse(visit)
	return &resp, nil
}

// GetVisit returns a visit by ID
func (s *VisitService) GetVisit(ctx context.Context, id uuid.UUID) (*VisitResponse, error) {
	visit, err := s.visits.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToVisitResponse(visit)
	return &resp, nil
}

// ListVisits returns a paginated visit listing
func (s *VisitService) ListVisits(ctx context.Context, filter shared.Filter) (*shared.Paginated[VisitResponse], error) {
	visits, err := s.visits.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.visits.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]VisitResponse, 0, len(visits))
	for i := range visits {
		items = append(items, ToVisitResponse(&visits[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListOpenVisits returns visits that have not been signed out
func (s *VisitService) ListOpenVisits(ctx context.Context) ([]VisitResponse, error) {
	visits, err := s.visits.FindOpenVisits(ctx, s.now())
	if err != nil {
		return nil, err
	}
	items := make([]VisitResponse, 0, len(visits))
	for i := range visits {
		items = append(items, ToVisitResponse(&visits[i]))
	}
	return items, nil
}

// AutoSignOut closes every visit still open before the cutoff. Used by the
// end-of-day job; returns the number of visits closed.
func (s *VisitService) AutoSignOut(ctx context.Context, cutoff time.Time) (int, error) {
	open, err := s.visits.FindOpenVisits(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	closed := 0
	for i := range open {
		visit := &open[i]
		if err := visit.SignOut(cutoff, true); err != nil {
			s.logger.Warn("auto sign-out skipped",
				zap.String("visit_id", visit.ID.String()),
				zap.Error(err))
			continue
		}
		visit.IncrementVersion()
		if err := s.visits.Save(ctx, visit); err != nil {
			return closed, err
		}
		closed++
	}

	if closed > 0 {
		s.logger.Info("open visits auto signed out", zap.Int("closed", closed))
	}
	return closed, nil
}
