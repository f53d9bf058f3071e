package midtrans

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relove/internal/config"
	"relove/pkg/utils"
)

func testConfig(baseURL string, timeout time.Duration) *config.MidtransConfig {
	return &config.MidtransConfig{
		BaseURL:   baseURL,
		ServerKey: "SB-Mid-server-test",
		Timeout:   timeout,
	}
}

func TestClient_CreateTransaction(t *testing.T) {
	var received SnapRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/snap/v1/transactions", r.URL.Path)

		username, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "SB-Mid-server-test", username)

		err := json.NewDecoder(r.Body).Decode(&received)
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(SnapResponse{
			Token:       "snap-token-123",
			RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/snap-token-123",
		})
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 5*time.Second))

	resp, err := client.CreateTransaction(context.Background(), &SnapRequest{
		TransactionDetails: TransactionDetails{OrderID: "ORDER-abc", GrossAmount: 230000},
		CustomerDetails:    CustomerDetails{FirstName: "Ayu", Email: "ayu@example.com"},
		ItemDetails: []ItemDetail{
			{ID: "prod-1", Price: 80000, Quantity: 1, Name: "Denim Jacket"},
		},
		EnabledPayments: []string{"gopay", "shopeepay"},
	})

	require.NoError(t, err)
	assert.Equal(t, "snap-token-123", resp.Token)
	assert.NotEmpty(t, resp.RedirectURL)
	assert.Equal(t, "ORDER-abc", received.TransactionDetails.OrderID)
	assert.Equal(t, int64(230000), received.TransactionDetails.GrossAmount)
	assert.Equal(t, []string{"gopay", "shopeepay"}, received.EnabledPayments)
}

func TestClient_CreateTransaction_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error_messages":["unauthorized"]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 5*time.Second))

	resp, err := client.CreateTransaction(context.Background(), &SnapRequest{})
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, utils.ErrGatewayUnavailable))
}

func TestClient_CreateTransaction_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 20*time.Millisecond))

	resp, err := client.CreateTransaction(context.Background(), &SnapRequest{})
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, utils.ErrGatewayTimeout))
}

func TestClient_CreateTransaction_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 5*time.Second))

	resp, err := client.CreateTransaction(context.Background(), &SnapRequest{})
	assert.Nil(t, resp)
	assert.Equal(t, utils.CodeGatewayUnavailable, utils.GetErrorCode(err))
}

func TestClient_CreateTransaction_EmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL, 5*time.Second))

	resp, err := client.CreateTransaction(context.Background(), &SnapRequest{})
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, utils.ErrGatewayUnavailable))
}
