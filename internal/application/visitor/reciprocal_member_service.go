package visitor

import (
	"context"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReciprocalMemberService handles partner-club memberships
type ReciprocalMemberService struct {
	members visitor.ReciprocalMemberRepository
	logger  *zap.Logger
}

// NewReciprocalMemberService creates a new reciprocal member service
func NewReciprocalMemberService(members visitor.ReciprocalMemberRepository, logger *zap.Logger) *ReciprocalMemberService {
	return &ReciprocalMemberService{
		members: members,
		logger:  logger,
	}
}

// CreateMember enrolls a partner-club member. The partner club plus
// membership number pair is unique.
func (s *ReciprocalMemberService) CreateMember(ctx context.Context, req CreateReciprocalMemberRequest) (*ReciprocalMemberResponse, error) {
	existing, err := s.members.FindByMembershipNumber(ctx, req.PartnerClub, req.MembershipNumber)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This membership is already enrolled")
	}

	member, err := visitor.NewReciprocalMember(req.FullName, req.PartnerClub, req.MembershipNumber, req.ValidUntil)
	if err != nil {
		return nil, err
	}
	member.UpdateContact(req.Country, req.City, req.Phone, req.Email)

	if err := s.members.Save(ctx, member); err != nil {
		return nil, err
	}

	s.logger.Info("reciprocal member enrolled",
		zap.String("member_id", member.ID.String()),
		zap.String("partner_club", member.PartnerClub))

	resp := ToReciprocalMemberResponse(member)
	return &resp, nil
}

// GetMember returns a reciprocal member by ID
func (s *ReciprocalMemberService) GetMember(ctx context.Context, id uuid.UUID) (*ReciprocalMemberResponse, error) {
	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToReciprocalMemberResponse(member)
	return &resp, nil
}

// ListMembers returns a paginated member listing
func (s *ReciprocalMemberService) ListMembers(ctx context.Context, filter shared.Filter) (*shared.Paginated[ReciprocalMemberResponse], error) {
	members, err := s.members.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.members.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]ReciprocalMemberResponse, 0, len(members))
	for i := range members {
		items = append(items, ToReciprocalMemberResponse(&members[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateMember updates contact details and, when provided, renews validity
func (s *ReciprocalMemberService) UpdateMember(ctx context.Context, id uuid.UUID, req UpdateReciprocalMemberRequest) (*ReciprocalMemberResponse, error) {
	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	member.UpdateContact(req.Country, req.City, req.Phone, req.Email)
	if req.ValidUntil != nil {
		if err := member.Renew(*req.ValidUntil); err != nil {
			return nil, err
		}
	}
	member.IncrementVersion()

	if err := s.members.Save(ctx, member); err != nil {
		return nil, err
	}

	resp := ToReciprocalMemberResponse(member)
	return &resp, nil
}

// RevokeMember withdraws visiting rights
func (s *ReciprocalMemberService) RevokeMember(ctx context.Context, id uuid.UUID) (*ReciprocalMemberResponse, error) {
	member, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := member.Revoke(); err != nil {
		return nil, err
	}
	member.IncrementVersion()

	if err := s.members.Save(ctx, member); err != nil {
		return nil, err
	}

	resp := ToReciprocalMemberResponse(member)
	return &resp, nil
}

// DeleteMember removes a membership record
func (s *ReciprocalMemberService) DeleteMember(ctx context.Context, id uuid.UUID) error {
	if _, err := s.members.FindByID(ctx, id); err != nil {
		return err
	}
	return s.members.Delete(ctx, id)
}

// ExpireLapsed marks every active membership past its valid-until date as
// expired. Used by the daily expiry job; returns the number expired.
func (s *ReciprocalMemberService) ExpireLapsed(ctx context.Context, asOf time.Time) (int, error) {
	lapsed, err := s.members.FindLapsed(ctx, asOf)
	if err != nil {
		return 0, err
	}

	expired := 0
	for i := range lapsed {
		member := &lapsed[i]
		if !member.Expire(asOf) {
			continue
		}
		member.IncrementVersion()
		if err := s.members.Save(ctx, member); err != nil {
			return expired, err
		}
		expired++
	}

	if expired > 0 {
		s.logger.Info("reciprocal memberships expired", zap.Int("expired", expired))
	}
	return expired, nil
}
