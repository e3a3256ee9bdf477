package payment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumipay/pixbridge/pkg/types"
)

func TestMapGatewayStatus(t *testing.T) {
	require.Equal(t, types.StatusApproved, MapGatewayStatus("AUTHORIZED"))
	require.Equal(t, types.StatusPending, MapGatewayStatus("PENDING"))
	require.Equal(t, types.StatusFailed, MapGatewayStatus("FAILED"))
	require.Equal(t, types.StatusChargeback, MapGatewayStatus("CHARGEBACK"))
	require.Equal(t, types.StatusInDispute, MapGatewayStatus("IN_DISPUTE"))

	// open vocabulary: unknown gateway statuses pass through unchanged
	require.Equal(t, types.PaymentStatus("REFUNDED"), MapGatewayStatus("REFUNDED"))
}

func TestDisplayStatus(t *testing.T) {
	require.Equal(t, "paid", DisplayStatus(types.StatusApproved))
	require.Equal(t, "PENDING", DisplayStatus(types.StatusPending))
	require.Equal(t, "CHARGEBACK", DisplayStatus(types.StatusChargeback))
}
