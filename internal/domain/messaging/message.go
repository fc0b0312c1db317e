package messaging

import (
	"strings"
	"time"

	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Provider identifies the SMS gateway a message went through
type Provider string

const (
	ProviderLeopard    Provider = "leopard"
	ProviderMobileSASA Provider = "mobilesasa"
)

// MessageStatus tracks a message through dispatch and delivery
type MessageStatus string

const (
	MessageStatusQueued    MessageStatus = "queued"
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusFailed    MessageStatus = "failed"
)

// Message is one row of the SMS transaction log. A failed dispatch keeps the
// row; resending reuses it with a fresh provider message ID.
type Message struct {
	shared.BaseAggregateRoot
	Recipient         string
	Body              string
	Provider          Provider
	Status            MessageStatus
	ProviderMessageID string
	Cost              decimal.Decimal
	FailureReason     string
	IdempotencyKey    string
	GuestID           *uuid.UUID
	CaseID            *uuid.UUID
	SentAt            *time.Time
	DeliveredAt       *time.Time
}

// NewMessage queues an outbound SMS
func NewMessage(recipient, body string, provider Provider) (*Message, error) {
	recipient = strings.TrimSpace(recipient)
	body = strings.TrimSpace(body)
	if recipient == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Recipient phone is required")
	}
	if body == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Message body is required")
	}
	switch provider {
	case ProviderLeopard, ProviderMobileSASA:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown SMS provider")
	}

	return &Message{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Recipient:         recipient,
		Body:              body,
		Provider:          provider,
		Status:            MessageStatusQueued,
		Cost:              decimal.Zero,
	}, nil
}

// CorrelateGuest links the message to the guest that triggered it
func (m *Message) CorrelateGuest(guestID uuid.UUID) {
	m.GuestID = &guestID
}

// CorrelateCase links the message to a case
func (m *Message) CorrelateCase(caseID uuid.UUID) {
	m.CaseID = &caseID
}

// MarkSent records a successful gateway dispatch
func (m *Message) MarkSent(providerMessageID string, cost decimal.Decimal) error {
	if m.Status == MessageStatusDelivered {
		return shared.NewDomainError("INVALID_STATE", "Message is already delivered")
	}
	now := time.Now()
	m.Status = MessageStatusSent
	m.ProviderMessageID = providerMessageID
	m.Cost = cost
	m.FailureReason = ""
	m.SentAt = &now
	m.UpdatedAt = now
	return nil
}

// MarkDelivered records a delivery report from the gateway
func (m *Message) MarkDelivered(at time.Time) error {
	if m.Status != MessageStatusSent {
		return shared.NewDomainError("INVALID_STATE", "Only a sent message can be delivered")
	}
	if at.IsZero() {
		at = time.Now()
	}
	m.Status = MessageStatusDelivered
	m.DeliveredAt = &at
	m.UpdatedAt = time.Now()
	return nil
}

// MarkFailed records a dispatch or delivery failure, keeping the row
func (m *Message) MarkFailed(reason string) {
	m.Status = MessageStatusFailed
	m.FailureReason = reason
	m.UpdatedAt = time.Now()
}

// PrepareResend requeues a failed message for another gateway attempt
func (m *Message) PrepareResend() error {
	if m.Status != MessageStatusFailed {
		return shared.NewDomainError("INVALID_STATE", "Only a failed message can be resent")
	}
	m.Status = MessageStatusQueued
	m.ProviderMessageID = ""
	m.FailureReason = ""
	m.UpdatedAt = time.Now()
	return nil
}
