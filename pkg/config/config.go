package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/fx"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type GatewayConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APISecret      string `mapstructure:"api_secret"`
	WebhookURL     string `mapstructure:"webhook_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (g GatewayConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

type LedgerConfig struct {
	Path string `mapstructure:"path"`
}

type AuditConfig struct {
	Dir string `mapstructure:"dir"`
}

type PaymentConfig struct {
	// DefaultMethod is the only supported payment rail.
	DefaultMethod string `mapstructure:"default_method"`
	// FallbackDocument replaces customer documents that fail CPF validation.
	FallbackDocument string `mapstructure:"fallback_document"`
}

type Env string

const (
	EnvDev  Env = "dev"
	EnvProd Env = "prod"
)

type Config struct {
	Env         Env           `mapstructure:"env"`
	Server      ServerConfig  `mapstructure:"server"`
	Gateway     GatewayConfig `mapstructure:"gateway"`
	Ledger      LedgerConfig  `mapstructure:"ledger"`
	Audit       AuditConfig   `mapstructure:"audit"`
	Payment     PaymentConfig `mapstructure:"payment"`
	MetricsAddr string        `mapstructure:"metrics_addr"`
}

func New() (*Config, error) {
	v := viper.New()
	// Allow overriding config file via env:
	// - APP_CONFIG_FILE: absolute or relative file path (e.g., /etc/app/prod.yaml)
	// - APP_CONFIG_NAME: config base name without extension (default: "config")
	if file := os.Getenv("APP_CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
	} else {
		cfgName := os.Getenv("APP_CONFIG_NAME")
		if cfgName == "" {
			cfgName = "config"
		}
		v.SetConfigName(cfgName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("env", "dev")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8888)
	v.SetDefault("metrics_addr", ":90")
	v.SetDefault("gateway.base_url", "https://api.genesys.finance")
	v.SetDefault("gateway.timeout_seconds", 30)
	v.SetDefault("ledger.path", "./data/deposits.txt")
	v.SetDefault("audit.dir", "./logs")
	v.SetDefault("payment.default_method", "PIX")
	// Well-formed placeholder used when a customer document fails validation.
	v.SetDefault("payment.fallback_document", "11144477735")

	if err := v.ReadInConfig(); err != nil {
		_ = err
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &c, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
