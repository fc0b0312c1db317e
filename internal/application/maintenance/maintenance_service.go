package maintenance

import (
	"context"

	"go.uber.org/zap"

	caseworkapp "github.com/clubgate/backend/internal/application/casework"
	messagingapp "github.com/clubgate/backend/internal/application/messaging"
	visitorapp "github.com/clubgate/backend/internal/application/visitor"
	"github.com/clubgate/backend/internal/domain/visitor"
	"github.com/clubgate/backend/internal/infrastructure/scheduler"
)

const deliveryPollBatch = 100

// MaintenanceService routes scheduler jobs to the application services
type MaintenanceService struct {
	guests     *visitorapp.GuestService
	visits     *visitorapp.VisitService
	reciprocal *visitorapp.ReciprocalMemberService
	sms        *messagingapp.SMSService
	tasks      *caseworkapp.TaskService
	policy     visitor.VisitPolicy
	logger     *zap.Logger
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(
	guests *visitorapp.GuestService,
	visits *visitorapp.VisitService,
	reciprocal *visitorapp.ReciprocalMemberService,
	sms *messagingapp.SMSService,
	tasks *caseworkapp.TaskService,
	policy visitor.VisitPolicy,
	logger *zap.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		guests:     guests,
		visits:     visits,
		reciprocal: reciprocal,
		sms:        sms,
		tasks:      tasks,
		policy:     policy,
		logger:     logger,
	}
}

// Execute implements scheduler.JobExecutor
func (s *MaintenanceService) Execute(ctx context.Context, job *scheduler.Job) error {
	switch job.Type {
	case scheduler.JobTypeVisitAutoSignOut:
		closed, err := s.visits.AutoSignOut(ctx, job.AsOf)
		if err != nil {
			return err
		}
		s.logger.Info("auto sign-out run finished", zap.Int("closed", closed))
		return nil

	case scheduler.JobTypeGuestStatusRefresh:
		changed, err := s.guests.RefreshGuestStatuses(ctx, s.policy, job.AsOf)
		if err != nil {
			return err
		}
		s.logger.Info("guest status refresh finished", zap.Int("changed", changed))
		return nil

	case scheduler.JobTypeReciprocalExpiry:
		expired, err := s.reciprocal.ExpireLapsed(ctx, job.AsOf)
		if err != nil {
			return err
		}
		s.logger.Info("reciprocal expiry run finished", zap.Int("expired", expired))
		return nil

	case scheduler.JobTypeDeliveryPoll:
		updated, err := s.sms.PollDeliveryReports(ctx, deliveryPollBatch)
		if err != nil {
			return err
		}
		if updated > 0 {
			s.logger.Info("delivery reports applied", zap.Int("updated", updated))
		}
		return nil

	case scheduler.JobTypeTaskReminder:
		sent, err := s.tasks.RemindOverdue(ctx, job.AsOf)
		if err != nil {
			return err
		}
		if sent > 0 {
			s.logger.Info("overdue task reminders sent", zap.Int("sent", sent))
		}
		return nil

	default:
		return scheduler.ErrInvalidJobType
	}
}

// Ensure MaintenanceService implements JobExecutor
var _ scheduler.JobExecutor = (*MaintenanceService)(nil)
