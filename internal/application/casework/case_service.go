package casework

import (
	"context"

	"github.com/clubgate/backend/internal/domain/casework"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CaseService handles legal matters
type CaseService struct {
	cases  casework.CaseRepository
	logger *zap.Logger
}

// NewCaseService creates a new case service
func NewCaseService(cases casework.CaseRepository, logger *zap.Logger) *CaseService {
	return &CaseService{
		cases:  cases,
		logger: logger,
	}
}

// CreateCase opens a matter. Case numbers are unique.
func (s *CaseService) CreateCase(ctx context.Context, req CreateCaseRequest) (*CaseResponse, error) {
	existing, err := s.cases.FindByCaseNumber(ctx, req.CaseNumber)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A case with this number already exists")
	}

	c, err := casework.NewCase(req.CaseNumber, req.ClientName, req.OpposingParty, req.Court, req.Description, req.AssignedLawyer)
	if err != nil {
		return nil, err
	}

	if err := s.cases.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("case opened",
		zap.String("case_id", c.ID.String()),
		zap.String("case_number", c.CaseNumber))

	resp := ToCaseResponse(c)
	return &resp, nil
}

// GetCase returns a case by ID
func (s *CaseService) GetCase(ctx context.Context, id uuid.UUID) (*CaseResponse, error) {
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCaseResponse(c)
	return &resp, nil
}

// ListCases returns a paginated case listing
func (s *CaseService) ListCases(ctx context.Context, filter shared.Filter) (*shared.Paginated[CaseResponse], error) {
	cases, err := s.cases.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.cases.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]CaseResponse, 0, len(cases))
	for i := range cases {
		items = append(items, ToCaseResponse(&cases[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// UpdateCase updates details, reassigns, and schedules hearings
func (s *CaseService) UpdateCase(ctx context.Context, id uuid.UUID, req UpdateCaseRequest) (*CaseResponse, error) {
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.UpdateDetails(req.OpposingParty, req.Court, req.Description)
	if req.AssignedLawyer != "" && req.AssignedLawyer != c.AssignedLawyer {
		if err := c.Reassign(req.AssignedLawyer); err != nil {
			return nil, err
		}
	}
	if req.NextHearingDate != nil {
		if err := c.ScheduleHearing(*req.NextHearingDate); err != nil {
			return nil, err
		}
	}
	c.IncrementVersion()

	if err := s.cases.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCaseResponse(c)
	return &resp, nil
}

// CloseCase resolves a matter
func (s *CaseService) CloseCase(ctx context.Context, id uuid.UUID) (*CaseResponse, error) {
	return s.transition(ctx, id, (*casework.Case).Close)
}

// ReopenCase returns a closed matter to the open state
func (s *CaseService) ReopenCase(ctx context.Context, id uuid.UUID) (*CaseResponse, error) {
	return s.transition(ctx, id, (*casework.Case).Reopen)
}

func (s *CaseService) transition(ctx context.Context, id uuid.UUID, op func(*casework.Case) error) (*CaseResponse, error) {
	c, err := s.cases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := op(c); err != nil {
		return nil, err
	}
	c.IncrementVersion()

	if err := s.cases.Save(ctx, c); err != nil {
		return nil, err
	}

	resp := ToCaseResponse(c)
	return &resp, nil
}
