package payment

import (
	"go.uber.org/fx"

	"github.com/lumipay/pixbridge/internal/platform/genesys"
)

// Module exposes the payment manager via Fx.
var Module = fx.Options(
	fx.Provide(func(c *genesys.Client) Gateway { return c }),
	fx.Provide(NewService),
)
