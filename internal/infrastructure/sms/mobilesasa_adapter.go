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
	mobileSASASendPath    = "/send/message"
	mobileSASADLRPath     = "/get-dlr"
	mobileSASABalancePath = "/get-balance"

	mobileSASACodeOK = "0200"
)

// MobileSASAAdapter implements SMSGateway for the MobileSASA HTTP API.
// Authentication is a Bearer token; every send names the registered sender ID.
type MobileSASAAdapter struct {
	config     config.MobileSASAConfig
	httpClient *http.Client
}

// NewMobileSASAAdapter creates a new MobileSASA adapter
func NewMobileSASAAdapter(cfg config.MobileSASAConfig) (*MobileSASAAdapter, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("mobilesasa: base URL is required")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("mobilesasa: api token is required")
	}

	return &MobileSASAAdapter{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// Provider returns the gateway identifier
func (a *MobileSASAAdapter) Provider() messaging.Provider {
	return messaging.ProviderMobileSASA
}

type mobileSASASendRequest struct {
	SenderID string `json:"senderID"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
}

type mobileSASASendResponse struct {
	Status       bool   `json:"status"`
	ResponseCode string `json:"responseCode"`
	Message      string `json:"message"`
	MessageID    string `json:"messageId"`
}

type mobileSASADLRRequest struct {
	MessageID string `json:"messageId"`
}

type mobileSASADLRResponse struct {
	Status         bool   `json:"status"`
	ResponseCode   string `json:"responseCode"`
	Message        string `json:"message"`
	DeliveryStatus string `json:"deliveryStatus"`
}

type mobileSASABalanceResponse struct {
	Status       bool   `json:"status"`
	ResponseCode string `json:"responseCode"`
	Balance      string `json:"balance"`
}

// Send dispatches one message through MobileSASA
func (a *MobileSASAAdapter) Send(ctx context.Context, to, body string) (*messaging.SendResult, error) {
	reqBody := mobileSASASendRequest{
		SenderID: a.config.SenderID,
		Phone:    to,
		Message:  body,
	}

	respBody, err := a.doRequest(ctx, mobileSASASendPath, reqBody)
	if err != nil {
		return nil, err
	}

	var resp mobileSASASendResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("mobilesasa: failed to parse response: %w", err)
	}
	if !resp.Status || resp.ResponseCode != mobileSASACodeOK {
		return nil, fmt.Errorf("%w: %s - %s", shared.ErrGatewayUnavailable, resp.ResponseCode, resp.Message)
	}

	// MobileSASA does not return a per-message cost on send
	return &messaging.SendResult{
		ProviderMessageID: resp.MessageID,
		Cost:              decimal.Zero,
	}, nil
}

// DeliveryStatus queries the delivery report for a sent message
func (a *MobileSASAAdapter) DeliveryStatus(ctx context.Context, providerMessageID string) (*messaging.DeliveryReport, error) {
	if providerMessageID == "" {
		return nil, fmt.Errorf("mobilesasa: provider message ID is required")
	}

	respBody, err := a.doRequest(ctx, mobileSASADLRPath, mobileSASADLRRequest{MessageID: providerMessageID})
	if err != nil {
		return nil, err
	}

	var resp mobileSASADLRResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("mobilesasa: failed to parse response: %w", err)
	}
	if !resp.Status {
		return nil, fmt.Errorf("%w: %s - %s", shared.ErrGatewayUnavailable, resp.ResponseCode, resp.Message)
	}

	return &messaging.DeliveryReport{
		State:  mapMobileSASADeliveryStatus(resp.DeliveryStatus),
		Detail: resp.Message,
	}, nil
}

// Balance returns the remaining account credit
func (a *MobileSASAAdapter) Balance(ctx context.Context) (decimal.Decimal, error) {
	respBody, err := a.doRequest(ctx, mobileSASABalancePath, struct{}{})
	if err != nil {
		return decimal.Zero, err
	}

	var resp mobileSASABalanceResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("mobilesasa: failed to parse response: %w", err)
	}
	if !resp.Status {
		return decimal.Zero, shared.ErrGatewayUnavailable
	}

	balance, err := decimal.NewFromString(resp.Balance)
	if err != nil {
		return decimal.Zero, fmt.Errorf("mobilesasa: invalid balance %q", resp.Balance)
	}
	return balance, nil
}

// doRequest performs a JSON POST against the MobileSASA API
func (a *MobileSASAAdapter) doRequest(ctx context.Context, path string, body interface{}) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("mobilesasa: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.BaseURL+path, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("mobilesasa: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.config.APIToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mobilesasa: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp mobileSASASendResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return nil, fmt.Errorf("%w: %s", shared.ErrGatewayUnavailable, errResp.Message)
		}
		return nil, fmt.Errorf("%w: HTTP %d", shared.ErrGatewayUnavailable, resp.StatusCode)
	}

	return respBody, nil
}

// mapMobileSASADeliveryStatus maps MobileSASA DLR statuses to our states
func mapMobileSASADeliveryStatus(status string) messaging.DeliveryState {
	switch status {
	case "DELIVRD", "DELIVERED":
		return messaging.DeliveryStateDelivered
	case "UNDELIV", "REJECTD", "EXPIRED", "FAILED":
		return messaging.DeliveryStateFailed
	default:
		return messaging.DeliveryStatePending
	}
}

// Ensure MobileSASAAdapter implements SMSGateway
var _ messaging.SMSGateway = (*MobileSASAAdapter)(nil)
