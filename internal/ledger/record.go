package ledger

import (
	"encoding/json"
	"errors"
	"maps"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lumipay/pixbridge/pkg/types"
)

var (
	// ErrMalformedRecord marks a unit that cannot be decoded. Scans absorb
	// it by skipping the unit; it is never fatal.
	ErrMalformedRecord = errors.New("malformed ledger record")

	// ErrStoreUnwritable marks a failure to create or write the store file.
	ErrStoreUnwritable = errors.New("ledger store unwritable")
)

// Record is one transaction entry in the ledger. A record is immutable
// after creation except for Status, Amount, Method, UpdatedAt and
// ApprovedAt; the customer block is captured once and never touched again.
type Record struct {
	TransactionID string              `json:"transaction_id,omitempty"`
	ExternalID    string              `json:"external_id,omitempty"`
	Amount        decimal.Decimal     `json:"amount"`
	Status        types.PaymentStatus `json:"status,omitempty"`
	Method        string              `json:"method,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     *time.Time          `json:"updated_at,omitempty"`
	ApprovedAt    *time.Time          `json:"approved_at,omitempty"`
	// PixPayload is the payment-presentation code returned by the gateway
	// at creation, opaque to the ledger.
	PixPayload string          `json:"pix_payload,omitempty"`
	Customer   *types.Customer `json:"customer,omitempty"`

	// Extra holds fields we did not recognize when decoding. They ride
	// along and are re-emitted on encode so a rewrite never loses data.
	Extra map[string]json.RawMessage `json:"-"`
}

// Matches reports whether the record is identified by either supplied id.
// The match is an inclusive OR: either key hits even if the other one
// differs or is absent.
func (r *Record) Matches(transactionID, externalID string) bool {
	if r == nil {
		return false
	}
	if transactionID != "" && r.TransactionID == transactionID {
		return true
	}
	if externalID != "" && r.ExternalID == externalID {
		return true
	}
	return false
}

// StatusOrUnknown returns the record status, defaulting to UNKNOWN for
// records written before a status was recorded.
func (r *Record) StatusOrUnknown() types.PaymentStatus {
	if r == nil || r.Status == "" {
		return types.StatusUnknown
	}
	return r.Status
}

// Clone returns a deep copy so callers can hold a record outside the
// store lock.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	cp := *r
	if r.UpdatedAt != nil {
		t := *r.UpdatedAt
		cp.UpdatedAt = &t
	}
	if r.ApprovedAt != nil {
		t := *r.ApprovedAt
		cp.ApprovedAt = &t
	}
	if r.Customer != nil {
		c := *r.Customer
		cp.Customer = &c
	}
	if r.Extra != nil {
		cp.Extra = maps.Clone(r.Extra)
	}
	return &cp
}
