// Package genesys is the REST client for the Genesys Finance payment
// gateway. Two calls: create a PIX transaction, fetch one by id. The
// gateway authenticates with a static api-secret header and is
// authoritative for true payment status.
package genesys

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/lumipay/pixbridge/pkg/config"
)

// ErrTransactionNotFound is returned when the gateway does not know the
// requested transaction.
var ErrTransactionNotFound = errors.New("transaction not found at gateway")

type Client struct {
	baseURL   string
	apiSecret string
	http      *http.Client
	log       *zap.SugaredLogger
}

func NewClient(cfg *config.Config, log *zap.SugaredLogger) *Client {
	timeout := cfg.Gateway.Timeout()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   cfg.Gateway.BaseURL,
		apiSecret: cfg.Gateway.APISecret,
		// fixed timeout: a hung gateway call is a remote failure, never an
		// indefinitely pending state
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// CreateTransaction registers a new PIX charge with the gateway. The
// gateway assigns the transaction id and returns the payment-presentation
// payload synchronously.
func (c *Client) CreateTransaction(ctx context.Context, req *CreateTransactionRequest) (*Transaction, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal create request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-secret", c.apiSecret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway create transaction: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gateway create transaction: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.log.Errorw("gateway_create_failed", "http_code", resp.StatusCode, "body", string(raw))
		return nil, fmt.Errorf("gateway create transaction: http %d", resp.StatusCode)
	}

	var txn Transaction
	if err := json.Unmarshal(raw, &txn); err != nil {
		return nil, fmt.Errorf("gateway create transaction: decode: %w", err)
	}
	if txn.HasError {
		return nil, fmt.Errorf("gateway rejected transaction: %s", txn.Message)
	}
	if txn.ID == "" {
		return nil, fmt.Errorf("gateway create transaction: response carries no id")
	}
	return &txn, nil
}

// GetTransaction fetches the current gateway state of a transaction by
// either identifier (the gateway accepts both in the path).
func (c *Client) GetTransaction(ctx context.Context, id string) (*Transaction, error) {
	if id == "" {
		return nil, ErrTransactionNotFound
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/transactions/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("api-secret", c.apiSecret)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gateway get transaction: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrTransactionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.log.Errorw("gateway_get_failed", "transaction_id", id, "http_code", resp.StatusCode, "body", string(raw))
		return nil, fmt.Errorf("gateway get transaction: http %d", resp.StatusCode)
	}

	var txn Transaction
	if err := json.NewDecoder(resp.Body).Decode(&txn); err != nil {
		return nil, fmt.Errorf("gateway get transaction: decode: %w", err)
	}
	if txn.ID == "" {
		return nil, ErrTransactionNotFound
	}
	return &txn, nil
}
