package genesys

import (
	"github.com/shopspring/decimal"

	"github.com/lumipay/pixbridge/pkg/types"
)

// CreateTransactionRequest is the payload for POST /v1/transactions.
type CreateTransactionRequest struct {
	ExternalID    string          `json:"external_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	WebhookURL    string          `json:"webhook_url"`
	Items         []Item          `json:"items"`
	IP            string          `json:"ip,omitempty"`
	Customer      Customer        `json:"customer"`
}

type Item struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	IsPhysical  bool            `json:"is_physical"`
}

type Customer struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DocumentType string `json:"document_type"`
	Document     string `json:"document"`
}

// Transaction is the gateway's view of a payment, shared by the create
// and fetch responses. Status carries the gateway vocabulary
// (AUTHORIZED, PENDING, ...), not the ledger's.
type Transaction struct {
	ID            string           `json:"id"`
	ExternalID    string           `json:"external_id"`
	Status        string           `json:"status"`
	TotalAmount   *decimal.Decimal `json:"total_amount,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	PaymentMethod string           `json:"payment_method,omitempty"`
	CreatedAt     string           `json:"created_at,omitempty"`
	Pix           *Pix             `json:"pix,omitempty"`

	HasError bool   `json:"hasError,omitempty"`
	Message  string `json:"message,omitempty"`
}

type Pix struct {
	Payload string `json:"payload"`
}

// EffectiveAmount returns whichever amount field the gateway populated,
// nil when it sent neither.
func (t *Transaction) EffectiveAmount() *decimal.Decimal {
	if t.TotalAmount != nil {
		return t.TotalAmount
	}
	return t.Amount
}

// NewCustomer maps the ledger's customer shape onto the gateway's.
func NewCustomer(c types.Customer) Customer {
	return Customer{
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		DocumentType: c.DocumentType(),
		Document:     c.Document,
	}
}
