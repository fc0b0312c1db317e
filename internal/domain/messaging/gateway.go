package messaging

import (
	"context"

	"github.com/shopspring/decimal"
)

// DeliveryState is a gateway-reported delivery status, normalized across
// providers
type DeliveryState string

const (
	DeliveryStatePending   DeliveryState = "pending"
	DeliveryStateDelivered DeliveryState = "delivered"
	DeliveryStateFailed    DeliveryState = "failed"
)

// SendResult is what a gateway returns for an accepted message
type SendResult struct {
	ProviderMessageID string
	Cost              decimal.Decimal
}

// DeliveryReport is the gateway's view of a previously sent message
type DeliveryReport struct {
	State  DeliveryState
	Detail string
}

// SMSGateway is the outbound port to an SMS provider
type SMSGateway interface {
	// Provider identifies which gateway this is
	Provider() Provider
	// Send dispatches one message and returns the provider's message ID
	Send(ctx context.Context, to, body string) (*SendResult, error)
	// DeliveryStatus queries the delivery state of a sent message
	DeliveryStatus(ctx context.Context, providerMessageID string) (*DeliveryReport, error)
	// Balance returns the remaining account credit
	Balance(ctx context.Context) (decimal.Decimal, error)
}
