package messaging

import (
	"context"
	"time"

	"github.com/clubgate/backend/internal/domain/messaging"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SMSService dispatches messages through the configured gateway and keeps
// the transaction log
type SMSService struct {
	messages    messaging.MessageRepository
	gateway     messaging.SMSGateway
	idempotency shared.IdempotencyStore
	idemCfg     shared.IdempotencyConfig
	logger      *zap.Logger
}

// NewSMSService creates a new SMS service. The idempotency store may be nil,
// which disables duplicate-send protection.
func NewSMSService(messages messaging.MessageRepository, gateway messaging.SMSGateway, idempotency shared.IdempotencyStore, idemCfg shared.IdempotencyConfig, logger *zap.Logger) *SMSService {
	return &SMSService{
		messages:    messages,
		gateway:     gateway,
		idempotency: idempotency,
		idemCfg:     idemCfg,
		logger:      logger,
	}
}

// Send logs and dispatches one SMS. A failed gateway call keeps the row in
// failed state; the caller gets the row either way alongside the error.
func (s *SMSService) Send(ctx context.Context, req SendSMSRequest) (*MessageResponse, error) {
	if req.IdempotencyKey != "" && s.idempotency != nil && s.idemCfg.Enabled {
		fresh, err := s.idempotency.MarkProcessed(ctx, req.IdempotencyKey, s.idemCfg.TTL)
		if err != nil {
			return nil, err
		}
		if !fresh {
			existing, err := s.messages.FindByIdempotencyKey(ctx, req.IdempotencyKey)
			if err != nil {
				return nil, err
			}
			resp := ToMessageResponse(existing)
			return &resp, nil
		}
	}

	msg, err := messaging.NewMessage(req.Recipient, req.Body, s.gateway.Provider())
	if err != nil {
		return nil, err
	}
	msg.IdempotencyKey = req.IdempotencyKey
	if req.GuestID != nil {
		msg.CorrelateGuest(*req.GuestID)
	}
	if req.CaseID != nil {
		msg.CorrelateCase(*req.CaseID)
	}

	if err := s.messages.Save(ctx, msg); err != nil {
		return nil, err
	}

	return s.dispatch(ctx, msg)
}

func (s *SMSService) dispatch(ctx context.Context, msg *messaging.Message) (*MessageResponse, error) {
	result, err := s.gateway.Send(ctx, msg.Recipient, msg.Body)
	if err != nil {
		msg.MarkFailed(err.Error())
		if saveErr := s.messages.Save(ctx, msg); saveErr != nil {
			return nil, saveErr
		}
		s.logger.Warn("sms dispatch failed",
			zap.String("message_id", msg.ID.String()),
			zap.String("recipient", msg.Recipient),
			zap.Error(err))
		resp := ToMessageResponse(msg)
		return &resp, shared.ErrGatewayUnavailable
	}

	if err := msg.MarkSent(result.ProviderMessageID, result.Cost); err != nil {
		return nil, err
	}
	if err := s.messages.Save(ctx, msg); err != nil {
		return nil, err
	}

	s.logger.Info("sms sent",
		zap.String("message_id", msg.ID.String()),
		zap.String("provider_message_id", result.ProviderMessageID),
		zap.String("cost", result.Cost.String()))

	resp := ToMessageResponse(msg)
	return &resp, nil
}

// Resend retries a failed message through the gateway on the same log row
func (s *SMSService) Resend(ctx context.Context, id uuid.UUID) (*MessageResponse, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := msg.PrepareResend(); err != nil {
		return nil, err
	}
	if err := s.messages.Save(ctx, msg); err != nil {
		return nil, err
	}

	return s.dispatch(ctx, msg)
}

// GetMessage returns one log row
func (s *SMSService) GetMessage(ctx context.Context, id uuid.UUID) (*MessageResponse, error) {
	msg, err := s.messages.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToMessageResponse(msg)
	return &resp, nil
}

// ListMessages returns the paginated SMS log
func (s *SMSService) ListMessages(ctx context.Context, filter shared.Filter) (*shared.Paginated[MessageResponse], error) {
	msgs, err := s.messages.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.messages.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	items := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, ToMessageResponse(&msgs[i]))
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Balance queries the gateway account credit
func (s *SMSService) Balance(ctx context.Context) (*BalanceResponse, error) {
	balance, err := s.gateway.Balance(ctx)
	if err != nil {
		return nil, shared.ErrGatewayUnavailable
	}
	return &BalanceResponse{
		Provider: string(s.gateway.Provider()),
		Balance:  balance.StringFixed(2),
	}, nil
}

// PollDeliveryReports asks the gateway about sent messages and records
// delivered/failed outcomes. Returns the number of rows updated.
func (s *SMSService) PollDeliveryReports(ctx context.Context, batch int) (int, error) {
	if batch <= 0 {
		batch = 100
	}
	pending, err := s.messages.FindAwaitingDelivery(ctx, batch)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range pending {
		msg := &pending[i]
		report, err := s.gateway.DeliveryStatus(ctx, msg.ProviderMessageID)
		if err != nil {
			s.logger.Warn("delivery status query failed",
				zap.String("message_id", msg.ID.String()),
				zap.Error(err))
			continue
		}

		switch report.State {
		case messaging.DeliveryStateDelivered:
			if err := msg.MarkDelivered(time.Now()); err != nil {
				continue
			}
		case messaging.DeliveryStateFailed:
			msg.MarkFailed(report.Detail)
		default:
			continue
		}

		if err := s.messages.Save(ctx, msg); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}
