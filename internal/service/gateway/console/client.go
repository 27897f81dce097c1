package console

import (
	"context"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"github.com/quotingfast/outreach/internal/service/gateway"
)

// Client logs outbound messages instead of delivering them. Used in
// development and as the wiring default when no real gateway is configured.
type Client struct {
	logger *elog.Component
}

func NewClient() *Client {
	return &Client{
		logger: elog.DefaultLogger,
	}
}

func (c *Client) Send(_ context.Context, to, body string) (gateway.SendResult, error) {
	c.logger.Info("sending sms",
		elog.String("to", to),
		elog.String("body", body))
	return gateway.SendResult{
		Success:     true,
		ProviderSID: fmt.Sprintf("console-%d", time.Now().UnixNano()),
	}, nil
}
