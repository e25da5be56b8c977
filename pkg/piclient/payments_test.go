package piclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinetwork/pi-go/internal/utils"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	cfg, err := NewClientConfig("test-api-key")
	require.NoError(t, err)
	cfg.BaseURL = serverURL
	cfg.Retry = fastRetryPolicy(3)

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

// newMockedClient returns a client whose transport is a testify mock with no
// expectations, for asserting that no HTTP call was made.
func newMockedClient(t *testing.T) (*Client, *utils.MockHTTPClient) {
	t.Helper()
	client := newTestClient(t, "http://localhost:1")
	mockHTTPClient := &utils.MockHTTPClient{}
	client.Executor.HTTPClient = mockHTTPClient
	return client, mockHTTPClient
}

func TestGetPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/payments/pay-1", r.URL.Path)
			assert.Equal(t, "Key test-api-key", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"identifier":"pay-1","amount":3.14,"status":{"developer_approved":false}}`))
		}))
		defer server.Close()

		payment, err := newTestClient(t, server.URL).GetPayment(ctx, "pay-1")
		require.NoError(t, err)
		assert.Equal(t, "pay-1", payment.Identifier)
		assert.Equal(t, "3.14", payment.Amount.String())
		assert.False(t, payment.Status.DeveloperApproved)
	})

	t.Run("empty_id_makes_no_call", func(t *testing.T) {
		client, mockHTTPClient := newMockedClient(t)

		_, err := client.GetPayment(ctx, "")

		var invalidErr *InvalidArgumentError
		require.ErrorAs(t, err, &invalidErr)
		mockHTTPClient.AssertNumberOfCalls(t, "Do", 0)
	})

	t.Run("404_with_envelope_is_remote_api_error_without_retry", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"PAYMENT_NOT_FOUND","error_message":"no such payment"}`))
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL).GetPayment(ctx, "missing")

		var remoteErr *RemoteAPIError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, "PAYMENT_NOT_FOUND", remoteErr.ErrorName)
		assert.Equal(t, "no such payment", remoteErr.ErrorMessage)
		assert.EqualValues(t, 1, calls.Load())
	})
}

func TestApprovePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("5xx_then_success_reflects_approval_after_two_attempts", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/payments/pay-1/approve", r.URL.Path)
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_, _ = w.Write([]byte(`{"identifier":"pay-1","status":{"developer_approved":true}}`))
		}))
		defer server.Close()

		payment, err := newTestClient(t, server.URL).ApprovePayment(ctx, "pay-1")
		require.NoError(t, err)
		assert.True(t, payment.Status.DeveloperApproved)
		assert.EqualValues(t, 2, calls.Load())
	})

	t.Run("empty_id_makes_no_call", func(t *testing.T) {
		client, mockHTTPClient := newMockedClient(t)

		_, err := client.ApprovePayment(ctx, "")

		var invalidErr *InvalidArgumentError
		require.ErrorAs(t, err, &invalidErr)
		mockHTTPClient.AssertNumberOfCalls(t, "Do", 0)
	})
}

func TestCompletePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("posts_txid_and_returns_completed_payment", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/payments/pay-1/complete", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var reqBody completePaymentRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&reqBody))
			assert.Equal(t, "tx-hash-1", reqBody.TxID)

			_, _ = w.Write([]byte(`{
				"identifier": "pay-1",
				"status": {"developer_approved": true, "transaction_verified": true, "developer_completed": true},
				"transaction": {"txid": "tx-hash-1", "verified": true, "_link": "https://blockexplorer.minepi.com/tx/tx-hash-1"}
			}`))
		}))
		defer server.Close()

		payment, err := newTestClient(t, server.URL).CompletePayment(ctx, "pay-1", "tx-hash-1")
		require.NoError(t, err)
		assert.True(t, payment.Status.DeveloperCompleted)
		require.NotNil(t, payment.Transaction)
		assert.Equal(t, "tx-hash-1", payment.Transaction.TxID)
		assert.True(t, payment.Transaction.Verified)
	})

	t.Run("empty_payment_id_makes_no_call", func(t *testing.T) {
		client, mockHTTPClient := newMockedClient(t)

		_, err := client.CompletePayment(ctx, "", "tx1")

		var invalidErr *InvalidArgumentError
		require.ErrorAs(t, err, &invalidErr)
		mockHTTPClient.AssertNumberOfCalls(t, "Do", 0)
	})

	t.Run("empty_tx_id_makes_no_call", func(t *testing.T) {
		client, mockHTTPClient := newMockedClient(t)

		_, err := client.CompletePayment(ctx, "pay-1", "")

		var invalidErr *InvalidArgumentError
		require.ErrorAs(t, err, &invalidErr)
		mockHTTPClient.AssertNumberOfCalls(t, "Do", 0)
	})
}

func TestCancelPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("success_on_unapproved_payment", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/payments/pay-9/cancel", r.URL.Path)
			_, _ = w.Write([]byte(`{"identifier":"pay-9","status":{"developer_approved":false,"cancelled":true}}`))
		}))
		defer server.Close()

		payment, err := newTestClient(t, server.URL).CancelPayment(ctx, "pay-9")
		require.NoError(t, err)
		assert.True(t, payment.Status.Cancelled)
		assert.False(t, payment.Status.DeveloperApproved)
	})

	t.Run("empty_id_makes_no_call", func(t *testing.T) {
		client, mockHTTPClient := newMockedClient(t)

		_, err := client.CancelPayment(ctx, "")

		var invalidErr *InvalidArgumentError
		require.ErrorAs(t, err, &invalidErr)
		mockHTTPClient.AssertNumberOfCalls(t, "Do", 0)
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()

	t.Run("uses_bearer_auth", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/me", r.URL.Path)
			assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"uid":"user-1","username":"pioneer"}`))
		}))
		defer server.Close()

		user, err := newTestClient(t, server.URL).Me(ctx, "user-token")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.UID)
		assert.Equal(t, "pioneer", user.Username)
	})

	t.Run("expired_token_is_authentication_error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"UNAUTHORIZED","error_message":"token expired"}`))
		}))
		defer server.Close()

		_, err := newTestClient(t, server.URL).Me(ctx, "stale-token")

		var authErr *AuthenticationError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "token expired", authErr.Message)
	})

	t.Run("empty_token_makes_no_call", func(t *testing.T) {
		client, mockHTTPClient := newMockedClient(t)

		_, err := client.Me(ctx, "")

		var invalidErr *InvalidArgumentError
		require.ErrorAs(t, err, &invalidErr)
		mockHTTPClient.AssertNumberOfCalls(t, "Do", 0)
	})
}

func TestClientConcurrentUse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond)
		_, _ = w.Write([]byte(`{"identifier":"pay-1","status":{}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	done := make(chan error, 8)
	for range 8 {
		go func() {
			_, err := client.GetPayment(context.Background(), "pay-1")
			done <- err
		}()
	}
	for range 8 {
		assert.NoError(t, <-done)
	}
}
