package ledger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lumipay/pixbridge/pkg/config"
)

func NewStore(cfg *config.Config, log *zap.SugaredLogger) (*Store, error) {
	return Open(cfg.Ledger.Path, log)
}

func registerStoreClose(lc fx.Lifecycle, s *Store, log *zap.SugaredLogger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			log.Infow("closing ledger store")
			return s.Close()
		},
	})
}

var Module = fx.Options(
	fx.Provide(NewStore),
	fx.Invoke(registerStoreClose),
)
