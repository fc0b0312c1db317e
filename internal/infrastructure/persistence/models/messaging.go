package models

import (
	"time"

	"github.com/clubgate/backend/internal/domain/messaging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MessageModel is the persistence model for the SMS transaction log.
type MessageModel struct {
	AggregateModel
	Recipient         string                  `gorm:"type:varchar(50);not null;index"`
	Body              string                  `gorm:"type:text;not null"`
	Provider          messaging.Provider      `gorm:"type:varchar(20);not null"`
	Status            messaging.MessageStatus `gorm:"type:varchar(20);not null;default:'queued';index"`
	ProviderMessageID string                  `gorm:"type:varchar(100);index"`
	Cost              decimal.Decimal         `gorm:"type:decimal(18,4);not null;default:0"`
	FailureReason     string                  `gorm:"type:varchar(500)"`
	IdempotencyKey    string                  `gorm:"type:varchar(100);index"`
	GuestID           *uuid.UUID              `gorm:"type:uuid;index"`
	CaseID            *uuid.UUID              `gorm:"type:uuid;index"`
	SentAt            *time.Time
	DeliveredAt       *time.Time
}

// TableName returns the table name for GORM
func (MessageModel) TableName() string {
	return "sms_messages"
}

// ToDomain converts the persistence model to a domain Message aggregate.
func (m *MessageModel) ToDomain() *messaging.Message {
	return &messaging.Message{
		BaseAggregateRoot: m.aggregateRoot(),
		Recipient:         m.Recipient,
		Body:              m.Body,
		Provider:          m.Provider,
		Status:            m.Status,
		ProviderMessageID: m.ProviderMessageID,
		Cost:              m.Cost,
		FailureReason:     m.FailureReason,
		IdempotencyKey:    m.IdempotencyKey,
		GuestID:           m.GuestID,
		CaseID:            m.CaseID,
		SentAt:            m.SentAt,
		DeliveredAt:       m.DeliveredAt,
	}
}

// FromDomain populates the persistence model from a domain Message aggregate.
func (m *MessageModel) FromDomain(msg *messaging.Message) {
	m.FromDomainAggregateRoot(msg.BaseAggregateRoot)
	m.Recipient = msg.Recipient
	m.Body = msg.Body
	m.Provider = msg.Provider
	m.Status = msg.Status
	m.ProviderMessageID = msg.ProviderMessageID
	m.Cost = msg.Cost
	m.FailureReason = msg.FailureReason
	m.IdempotencyKey = msg.IdempotencyKey
	m.GuestID = msg.GuestID
	m.CaseID = msg.CaseID
	m.SentAt = msg.SentAt
	m.DeliveredAt = msg.DeliveredAt
}

// MessageModelFromDomain creates a new persistence model from a domain Message aggregate.
func MessageModelFromDomain(msg *messaging.Message) *MessageModel {
	m := &MessageModel{}
	m.FromDomain(msg)
	return m
}
