package genesys

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lumipay/pixbridge/pkg/config"
	"github.com/lumipay/pixbridge/pkg/types"
)

func newTestClient(baseURL string) *Client {
	cfg := &config.Config{}
	cfg.Gateway.BaseURL = baseURL
	cfg.Gateway.APISecret = "sk_test"
	cfg.Gateway.TimeoutSeconds = 5
	return NewClient(cfg, zap.NewNop().Sugar())
}

func TestCreateTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/transactions", r.URL.Path)
		require.Equal(t, "sk_test", r.Header.Get("api-secret"))

		var req CreateTransactionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "PIX", req.PaymentMethod)
		require.Equal(t, "CPF", req.Customer.DocumentType)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "tx_1",
			"status": "PENDING",
			"pix":    map[string]string{"payload": "00020126qr"},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	txn, err := c.CreateTransaction(context.Background(), &CreateTransactionRequest{
		ExternalID:    "pix_abc",
		TotalAmount:   decimal.RequireFromString("10.50"),
		PaymentMethod: "PIX",
		Customer:      NewCustomer(types.Customer{Name: "Ana", Document: "11144477735"}),
	})
	require.NoError(t, err)
	require.Equal(t, "tx_1", txn.ID)
	require.Equal(t, "PENDING", txn.Status)
	require.Equal(t, "00020126qr", txn.Pix.Payload)
}

func TestCreateTransactionGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"hasError": true, "message": "invalid document"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateTransaction(context.Background(), &CreateTransactionRequest{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid document")
}

func TestCreateTransactionHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateTransaction(context.Background(), &CreateTransactionRequest{})
	require.Error(t, err)
}

func TestGetTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/transactions/tx_1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "tx_1", "status": "AUTHORIZED", "amount": 10.5, "external_id": "pix_abc",
		})
	}))
	defer srv.Close()

	txn, err := newTestClient(srv.URL).GetTransaction(context.Background(), "tx_1")
	require.NoError(t, err)
	require.Equal(t, "AUTHORIZED", txn.Status)
	require.Equal(t, "pix_abc", txn.ExternalID)
	require.NotNil(t, txn.EffectiveAmount())
	require.Equal(t, "10.5", txn.EffectiveAmount().String())
}

func TestGetTransactionNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetTransaction(context.Background(), "tx_9")
	require.ErrorIs(t, err, ErrTransactionNotFound)

	_, err = newTestClient(srv.URL).GetTransaction(context.Background(), "")
	require.ErrorIs(t, err, ErrTransactionNotFound)
}
