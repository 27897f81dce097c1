package ioc

import (
	"github.com/gotomicro/ego/core/econf"

	"github.com/quotingfast/outreach/internal/service/gateway"
	"github.com/quotingfast/outreach/internal/service/gateway/console"
)

func InitGatewayClient() gateway.Client {
	// The real provider client is deployment-specific and wired here; the
	// console client is the default for development.
	return console.NewClient()
}

func InitPermanentFailureCodes() []string {
	type Config struct {
		OptOutErrorCodes []string `yaml:"optOutErrorCodes"`
	}
	var cfg Config
	err := econf.UnmarshalKey("gateway", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg.OptOutErrorCodes
}
