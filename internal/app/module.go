package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/lumipay/pixbridge/internal/app/api/server"
	"github.com/lumipay/pixbridge/internal/app/service/auditlog"
	"github.com/lumipay/pixbridge/internal/app/service/payment"
	"github.com/lumipay/pixbridge/internal/app/service/statistics"
	"github.com/lumipay/pixbridge/internal/ledger"
	"github.com/lumipay/pixbridge/internal/platform/genesys"
	"github.com/lumipay/pixbridge/pkg/config"
	"github.com/lumipay/pixbridge/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	ledger.Module,
	genesys.Module,
	auditlog.Module,
	payment.Module,
	statistics.Module,
	server.Module,
)
