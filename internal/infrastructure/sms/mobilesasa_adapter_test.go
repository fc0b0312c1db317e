package sms

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clubgate/backend/internal/domain/messaging"
	"github.com/clubgate/backend/internal/infrastructure/config"
)

func mobileSASATestConfig(baseURL string) config.MobileSASAConfig {
	return config.MobileSASAConfig{
		BaseURL:  baseURL,
		APIToken: "token-789",
		SenderID: "CLUBGATE",
	}
}

func TestNewMobileSASAAdapter(t *testing.T) {
	t.Run("creates adapter with valid config", func(t *testing.T) {
		adapter, err := NewMobileSASAAdapter(mobileSASATestConfig("https://api.example.com/v1"))
		require.NoError(t, err)
		assert.Equal(t, messaging.ProviderMobileSASA, adapter.Provider())
	})

	t.Run("rejects missing token", func(t *testing.T) {
		cfg := mobileSASATestConfig("https://api.example.com/v1")
		cfg.APIToken = ""
		adapter, err := NewMobileSASAAdapter(cfg)
		assert.Error(t, err)
		assert.Nil(t, adapter)
	})
}

func TestMobileSASAAdapter_Send(t *testing.T) {
	t.Run("returns provider message id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/send/message", r.URL.Path)
			assert.Equal(t, "Bearer token-789", r.Header.Get("Authorization"))

			var req mobileSASASendRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "CLUBGATE", req.SenderID)
			assert.Equal(t, "+254700000002", req.Phone)

			json.NewEncoder(w).Encode(mobileSASASendResponse{
				Status:       true,
				ResponseCode: "0200",
				Message:      "Accepted for delivery",
				MessageID:    "ms-987",
			})
		}))
		defer server.Close()

		adapter, err := NewMobileSASAAdapter(mobileSASATestConfig(server.URL))
		require.NoError(t, err)

		result, err := adapter.Send(context.Background(), "+254700000002", "Hearing tomorrow at 9am")

		require.NoError(t, err)
		assert.Equal(t, "ms-987", result.ProviderMessageID)
		assert.True(t, result.Cost.IsZero())
	})

	t.Run("returns error on non-OK response code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(mobileSASASendResponse{
				Status:       false,
				ResponseCode: "0420",
				Message:      "Invalid sender ID",
			})
		}))
		defer server.Close()

		adapter, err := NewMobileSASAAdapter(mobileSASATestConfig(server.URL))
		require.NoError(t, err)

		result, err := adapter.Send(context.Background(), "+254700000002", "hello")

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Contains(t, err.Error(), "Invalid sender ID")
	})
}

func TestMobileSASAAdapter_DeliveryStatus(t *testing.T) {
	t.Run("maps delivered DLR", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/get-dlr", r.URL.Path)

			var req mobileSASADLRRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "ms-987", req.MessageID)

			json.NewEncoder(w).Encode(mobileSASADLRResponse{
				Status:         true,
				ResponseCode:   "0200",
				DeliveryStatus: "DELIVRD",
			})
		}))
		defer server.Close()

		adapter, err := NewMobileSASAAdapter(mobileSASATestConfig(server.URL))
		require.NoError(t, err)

		report, err := adapter.DeliveryStatus(context.Background(), "ms-987")

		require.NoError(t, err)
		assert.Equal(t, messaging.DeliveryStateDelivered, report.State)
	})

	t.Run("maps pending DLR for unknown status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(mobileSASADLRResponse{
				Status:         true,
				ResponseCode:   "0200",
				DeliveryStatus: "ACCEPTD",
			})
		}))
		defer server.Close()

		adapter, err := NewMobileSASAAdapter(mobileSASATestConfig(server.URL))
		require.NoError(t, err)

		report, err := adapter.DeliveryStatus(context.Background(), "ms-987")

		require.NoError(t, err)
		assert.Equal(t, messaging.DeliveryStatePending, report.State)
	})
}

func TestMobileSASAAdapter_Balance(t *testing.T) {
	t.Run("parses balance", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/get-balance", r.URL.Path)
			json.NewEncoder(w).Encode(mobileSASABalanceResponse{
				Status:       true,
				ResponseCode: "0200",
				Balance:      "300.00",
			})
		}))
		defer server.Close()

		adapter, err := NewMobileSASAAdapter(mobileSASATestConfig(server.URL))
		require.NoError(t, err)

		balance, err := adapter.Balance(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "300", balance.String())
	})

	t.Run("returns error when gateway is down", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		adapter, err := NewMobileSASAAdapter(mobileSASATestConfig(server.URL))
		require.NoError(t, err)

		_, err = adapter.Balance(context.Background())

		assert.Error(t, err)
	})
}
