package types

// PaymentStatus is the ledger's internal status vocabulary. The gateway
// speaks a slightly different dialect (AUTHORIZED instead of APPROVED);
// translation lives in the payment service.
type PaymentStatus string

const (
	StatusPending    PaymentStatus = "PENDING"
	StatusApproved   PaymentStatus = "APPROVED"
	StatusFailed     PaymentStatus = "FAILED"
	StatusChargeback PaymentStatus = "CHARGEBACK"
	StatusInDispute  PaymentStatus = "IN_DISPUTE"
	StatusUnknown    PaymentStatus = "UNKNOWN"
)

// StatusPaidAlias is the externally-visible synonym for APPROVED that the
// frontend contract expects on locally-served status reads.
const StatusPaidAlias = "paid"

// Terminal reports whether the status is not expected to change again
// without an explicit webhook update.
func (s PaymentStatus) Terminal() bool {
	switch s {
	case StatusApproved, StatusFailed, StatusChargeback:
		return true
	}
	return false
}

// Provenance records where a status answer came from.
type Provenance string

const (
	ProvenanceLocal  Provenance = "local"
	ProvenanceRemote Provenance = "api"
)
