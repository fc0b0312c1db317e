package casework

import (
	"context"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CaseRepository defines persistence operations for cases
type CaseRepository interface {
	shared.Repository[Case]
	FindByCaseNumber(ctx context.Context, caseNumber string) (*Case, error)
	FindByStatus(ctx context.Context, status CaseStatus, filter shared.Filter) ([]Case, error)
	FindWithHearingsBetween(ctx context.Context, from, to time.Time) ([]Case, error)
}

// TaskRepository defines persistence operations for tasks
type TaskRepository interface {
	shared.Repository[Task]
	FindByCase(ctx context.Context, caseID uuid.UUID, filter shared.Filter) ([]Task, error)
	// FindOverdue returns live tasks past due that have not been reminded yet
	FindOverdue(ctx context.Context, asOf time.Time) ([]Task, error)
}
