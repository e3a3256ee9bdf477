package payment

import "github.com/lumipay/pixbridge/pkg/types"

// gatewayStatusMap translates the gateway's status vocabulary into the
// ledger's.
var gatewayStatusMap = map[string]types.PaymentStatus{
	"AUTHORIZED": types.StatusApproved,
	"PENDING":    types.StatusPending,
	"FAILED":     types.StatusFailed,
	"CHARGEBACK": types.StatusChargeback,
	"IN_DISPUTE": types.StatusInDispute,
}

// MapGatewayStatus is total and side-effect-free: unmapped gateway
// statuses pass through unchanged so new gateway vocabulary degrades
// gracefully instead of being dropped.
func MapGatewayStatus(remote string) types.PaymentStatus {
	if s, ok := gatewayStatusMap[remote]; ok {
		return s
	}
	return types.PaymentStatus(remote)
}

// DisplayStatus renders a ledger status for callers, translating
// APPROVED to the synonym the frontend contract expects.
func DisplayStatus(s types.PaymentStatus) string {
	if s == types.StatusApproved {
		return types.StatusPaidAlias
	}
	return string(s)
}
