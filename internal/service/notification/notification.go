package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/gotomicro/ego/core/elog"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/event"
	"github.com/quotingfast/outreach/internal/repository"
	"github.com/quotingfast/outreach/internal/service/gateway"
)

// adminSMSLimit: carrier single-segment limit for the admin page message.
const adminSMSLimit = 160

// Service delivers operator notifications: every alert is persisted for
// audit and broadcast to the dashboard; error and critical alerts also
// page the admin phone by SMS.
type Service interface {
	Notify(ctx context.Context, alert domain.Alert) error
}

type service struct {
	repo        repository.AlertRepository
	broadcaster event.Broadcaster
	gateway     gateway.Client
	adminPhone  string
	logger      *elog.Component
}

func NewService(
	repo repository.AlertRepository,
	broadcaster event.Broadcaster,
	gatewayClient gateway.Client,
	adminPhone string,
) Service {
	return &service{
		repo:        repo,
		broadcaster: broadcaster,
		gateway:     gatewayClient,
		adminPhone:  adminPhone,
		logger:      elog.DefaultLogger,
	}
}

func (s *service) Notify(ctx context.Context, alert domain.Alert) error {
	if err := s.repo.Create(ctx, alert); err != nil {
		return fmt.Errorf("persist alert: %w", err)
	}

	if err := s.broadcaster.Publish(ctx, event.TypeSystemAlert, map[string]any{
		"type":     alert.Type,
		"severity": alert.Severity,
		"message":  alert.Message,
	}); err != nil {
		s.logger.Warn("failed to broadcast system alert",
			elog.FieldErr(err))
	}

	if alert.Severity.Urgent() && s.adminPhone != "" {
		body := fmt.Sprintf("QuotingFast Alert [%s]: %s",
			strings.ToUpper(alert.Severity.String()), alert.Message)
		// Truncate on rune boundaries so lead names in the alert text
		// cannot leave a split multi-byte character at the cut.
		if runes := []rune(body); len(runes) > adminSMSLimit {
			body = string(runes[:adminSMSLimit])
		}
		if _, err := s.gateway.Send(ctx, s.adminPhone, body); err != nil {
			s.logger.Error("failed to page admin phone",
				elog.String("severity", alert.Severity.String()),
				elog.FieldErr(err))
		}
	}

	s.logger.Info("operator notification sent",
		elog.String("type", string(alert.Type)),
		elog.String("severity", alert.Severity.String()),
		elog.String("message", alert.Message))
	return nil
}
