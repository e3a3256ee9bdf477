package statistics

import (
	"context"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lumipay/pixbridge/internal/ledger"
	"github.com/lumipay/pixbridge/pkg/logctx"
)

// Service folds ledger snapshots into the aggregates the admin summary
// endpoint serves.
type Service struct {
	store *ledger.Store
	log   *zap.SugaredLogger
}

func New(store *ledger.Store, log *zap.SugaredLogger) *Service {
	return &Service{store: store, log: log}
}

type StatusBucket struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type Summary struct {
	Total       int                     `json:"total"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	ByStatus    map[string]StatusBucket `json:"by_status"`
}

// Summarize reads the current ledger and aggregates count and amount per
// status.
func (s *Service) Summarize(ctx context.Context) *Summary {
	records := s.store.Snapshot()

	grouped := lo.GroupBy(records, func(r *ledger.Record) string {
		return string(r.StatusOrUnknown())
	})

	out := &Summary{
		Total:       len(records),
		TotalAmount: decimal.Zero,
		ByStatus:    make(map[string]StatusBucket, len(grouped)),
	}
	for status, recs := range grouped {
		bucket := StatusBucket{Count: len(recs), Amount: decimal.Zero}
		for _, r := range recs {
			bucket.Amount = bucket.Amount.Add(r.Amount)
		}
		out.ByStatus[status] = bucket
		out.TotalAmount = out.TotalAmount.Add(bucket.Amount)
	}

	logctx.FromCtx(ctx, s.log).Infow("ledger_summary", "records", out.Total)
	return out
}

var Module = fx.Options(
	fx.Provide(New),
)
