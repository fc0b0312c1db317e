package messaging

import (
	"time"

	"github.com/clubgate/backend/internal/domain/messaging"
	"github.com/google/uuid"
)

// SendSMSRequest dispatches one SMS. IdempotencyKey is optional; when set,
// a repeat request with the same key returns the original message.
type SendSMSRequest struct {
	Recipient      string     `json:"recipient" binding:"required"`
	Body           string     `json:"body" binding:"required"`
	IdempotencyKey string     `json:"idempotency_key"`
	GuestID        *uuid.UUID `json:"guest_id"`
	CaseID         *uuid.UUID `json:"case_id"`
}

// MessageResponse is the API view of an SMS log row
type MessageResponse struct {
	ID                uuid.UUID  `json:"id"`
	Recipient         string     `json:"recipient"`
	Body              string     `json:"body"`
	Provider          string     `json:"provider"`
	Status            string     `json:"status"`
	ProviderMessageID string     `json:"provider_message_id,omitempty"`
	Cost              string     `json:"cost"`
	FailureReason     string     `json:"failure_reason,omitempty"`
	GuestID           *uuid.UUID `json:"guest_id,omitempty"`
	CaseID            *uuid.UUID `json:"case_id,omitempty"`
	SentAt            *time.Time `json:"sent_at,omitempty"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ToMessageResponse maps a message aggregate to its API view
func ToMessageResponse(m *messaging.Message) MessageResponse {
	return MessageResponse{
		ID:                m.ID,
		Recipient:         m.Recipient,
		Body:              m.Body,
		Provider:          string(m.Provider),
		Status:            string(m.Status),
		ProviderMessageID: m.ProviderMessageID,
		Cost:              m.Cost.StringFixed(4),
		FailureReason:     m.FailureReason,
		GuestID:           m.GuestID,
		CaseID:            m.CaseID,
		SentAt:            m.SentAt,
		DeliveredAt:       m.DeliveredAt,
		CreatedAt:         m.CreatedAt,
	}
}

// BalanceResponse reports the gateway account credit
type BalanceResponse struct {
	Provider string `json:"provider"`
	Balance  string `json:"balance"`
}
