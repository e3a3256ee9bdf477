package payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lumipay/pixbridge/internal/platform/genesys"
	"github.com/lumipay/pixbridge/pkg/types"
)

type CreateRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Customer types.Customer  `json:"customer"`
	ClientIP string          `json:"-"`
}

type CreateResult struct {
	TransactionID string              `json:"transaction_id"`
	ExternalID    string              `json:"external_id"`
	Amount        decimal.Decimal     `json:"amount"`
	Status        types.PaymentStatus `json:"status"`
	PixPayload    string              `json:"pix_payload"`
}

type StatusQuery struct {
	TransactionID string `json:"transaction_id"`
	ExternalID    string `json:"external_id"`
	// ForceCheck asks for a remote re-check, honored only while the local
	// status is still PENDING.
	ForceCheck bool `json:"force_check"`
}

type StatusResult struct {
	// Status uses the display vocabulary: "paid" stands in for APPROVED
	// on locally-served reads.
	Status        string           `json:"status"`
	TransactionID string           `json:"transaction_id,omitempty"`
	ExternalID    string           `json:"external_id,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	CreatedAt     string           `json:"created_at,omitempty"`
	Method        string           `json:"method,omitempty"`
	PixPayload    string           `json:"pix_payload,omitempty"`
	Provenance    types.Provenance `json:"source"`
}

type StatusUpdateRequest struct {
	TransactionID string
	ExternalID    string
	// Status carries the gateway vocabulary as delivered.
	Status string
	Amount *decimal.Decimal
	Method string
}

// Gateway is the slice of the gateway client the engine needs.
type Gateway interface {
	CreateTransaction(ctx context.Context, req *genesys.CreateTransactionRequest) (*genesys.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*genesys.Transaction, error)
}

// Manager is the reconciliation engine: the only component that decides
// whether the local ledger or the remote gateway wins for a given read.
type Manager interface {
	// CreateTransaction registers a charge with the gateway and appends
	// the resulting record to the ledger.
	CreateTransaction(ctx context.Context, req *CreateRequest) (*CreateResult, error)
	// GetStatus answers a status query, consulting the gateway only when
	// local data is absent or a force-check finds it still pending.
	GetStatus(ctx context.Context, q *StatusQuery) (*StatusResult, error)
	// ApplyStatusUpdate merges a webhook-delivered status change into the
	// ledger. A missing local match is not an error.
	ApplyStatusUpdate(ctx context.Context, req *StatusUpdateRequest) (bool, error)
}
