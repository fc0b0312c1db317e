package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/clubgate/backend/internal/domain/messaging"
	"github.com/clubgate/backend/internal/domain/shared"
	"github.com/clubgate/backend/internal/infrastructure/config"
)

const (
	leopardSendPath    = "/sms/send"
	leopardStatusPath  = "/sms/status/%s"
	leopardBalancePath = "/balance"
)

// LeopardAdapter implements SMSGateway for the SMS Leopard HTTP API.
// Authentication is HTTP Basic with the account API key and secret.
type LeopardAdapter struct {
	config     config.LeopardConfig
	httpClient *http.Client
}

// NewLeopardAdapter creates a new SMS Leopard adapter
func NewLeopardAdapter(cfg config.LeopardConfig) (*LeopardAdapter, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("leopard: base URL is required")
	}
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("leopard: api key and secret are required")
	}

	return &LeopardAdapter{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Provider returns the gateway identifier
func (a *LeopardAdapter) Provider() messaging.Provider {
	return messaging.ProviderLeopard
}

type leopardSendRequest struct {
	Source      string               `json:"source"`
	Message     string               `json:"message"`
	Destination []leopardDestination `json:"destination"`
}

type leopardDestination struct {
	Number string `json:"number"`
}

type leopardSendResponse struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Recipients []leopardRecipient `json:"recipients"`
}

type leopardRecipient struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Cost   string `json:"cost"`
	Status string `json:"status"`
}

type leopardStatusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Reason  string `json:"reason"`
}

type leopardBalanceResponse struct {
	Success bool   `json:"success"`
	Balance string `json:"balance"`
}

// Send dispatches one message through SMS Leopard
func (a *LeopardAdapter) Send(ctx context.Context, to, body string) (*messaging.SendResult, error) {
	reqBody := leopardSendRequest{
		Source:      a.config.SenderID,
		Message:     body,
		Destination: []leopardDestination{{Number: to}},
	}

	respBody, err := a.doRequest(ctx, http.MethodPost, leopardSendPath, reqBody)
	if err != nil {
		return nil, err
	}

	var resp leopardSendResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("leopard: failed to parse response: %w", err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", shared.ErrGatewayUnavailable, resp.Message)
	}
	if len(resp.Recipients) == 0 {
		return nil, fmt.Errorf("%w: no recipients in response", shared.ErrGatewayUnavailable)
	}

	recipient := resp.Recipients[0]
	cost, err := decimal.NewFromString(recipient.Cost)
	if err != nil {
		cost = decimal.Zero
	}

	return &messaging.SendResult{
		ProviderMessageID: recipient.ID,
		Cost:              cost,
	}, nil
}

// DeliveryStatus queries the delivery state of a previously sent message
func (a *LeopardAdapter) DeliveryStatus(ctx context.Context, providerMessageID string) (*messaging.DeliveryReport, error) {
	if providerMessageID == "" {
		return nil, fmt.Errorf("leopard: provider message ID is required")
	}

	path := fmt.Sprintf(leopardStatusPath, providerMessageID)
	respBody, err := a.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp leopardStatusResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("leopard: failed to parse response: %w", err)
	}

	return &messaging.DeliveryReport{
		State:  mapLeopardStatus(resp.Status),
		Detail: resp.Reason,
	}, nil
}

// Balance returns the remaining account credit
func (a *LeopardAdapter) Balance(ctx context.Context) (decimal.Decimal, error) {
	respBody, err := a.doRequest(ctx, http.MethodGet, leopardBalancePath, nil)
	if err != nil {
		return decimal.Zero, err
	}

	var resp leopardBalanceResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("leopard: failed to parse response: %w", err)
	}
	if !resp.Success {
		return decimal.Zero, shared.ErrGatewayUnavailable
	}

	balance, err := decimal.NewFromString(resp.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("leopard: invalid balance %q", resp.Balance)
	}
	return balance, nil
}

// doRequest performs an HTTP request against the SMS Leopard API
func (a *LeopardAdapter) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("leopard: failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("leopard: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(a.config.APIKey, a.config.APISecret)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("leopard: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp leopardSendResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return nil, fmt.Errorf("%w: %s", shared.ErrGatewayUnavailable, errResp.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", shared.ErrGatewayUnavailable, resp.StatusCode)
	}

	return respBody, nil
}

// mapLeopardStatus maps SMS Leopard delivery statuses to our states
func mapLeopardStatus(status string) messaging.DeliveryState {
	switch status {
	case "DeliveredToTerminal", "Delivered":
		return messaging.DeliveryStateDelivered
	case "DeliveryImpossible", "Rejected", "Expired", "Failed":
		return messaging.DeliveryStateFailed
	default:
		return messaging.DeliveryStatePending
	}
}

// Ensure LeopardAdapter implements SMSGateway
var _ messaging.SMSGateway = (*LeopardAdapter)(nil)
