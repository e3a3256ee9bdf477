package statistics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lumipay/pixbridge/internal/ledger"
	"github.com/lumipay/pixbridge/pkg/types"
)

func TestSummarize(t *testing.T) {
	log := zap.NewNop().Sugar()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "deposits.txt"), log)
	require.NoError(t, err)

	ctx := context.Background()
	add := func(txID string, amount string, status types.PaymentStatus) {
		require.NoError(t, store.Append(ctx, &ledger.Record{
			TransactionID: txID,
			ExternalID:    "ext_" + txID,
			Amount:        decimal.RequireFromString(amount),
			Status:        status,
			CreatedAt:     time.Now().UTC(),
		}))
	}
	add("tx_1", "10.50", types.StatusApproved)
	add("tx_2", "20", types.StatusApproved)
	add("tx_3", "5", types.StatusPending)

	sum := New(store, log).Summarize(ctx)
	require.Equal(t, 3, sum.Total)
	require.Equal(t, "35.5", sum.TotalAmount.String())
	require.Equal(t, 2, sum.ByStatus["APPROVED"].Count)
	require.Equal(t, "30.5", sum.ByStatus["APPROVED"].Amount.String())
	require.Equal(t, 1, sum.ByStatus["PENDING"].Count)
}

func TestSummarizeEmptyLedger(t *testing.T) {
	log := zap.NewNop().Sugar()
	store, err := ledger.Open(filepath.Join(t.TempDir(), "deposits.txt"), log)
	require.NoError(t, err)

	sum := New(store, log).Summarize(context.Background())
	require.Equal(t, 0, sum.Total)
	require.Empty(t, sum.ByStatus)
}
