package emergency

import (
	"context"
	"fmt"

	"github.com/gotomicro/ego/core/elog"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/event"
	"github.com/quotingfast/outreach/internal/repository"
	notificationsvc "github.com/quotingfast/outreach/internal/service/notification"
)

// Service is the global kill switch. The flag is a durable database row so
// it survives restarts and is visible to every replica; activation and
// deactivation are idempotent.
type Service interface {
	IsActive(ctx context.Context) (bool, error)
	Activate(ctx context.Context) error
	Deactivate(ctx context.Context) error
}

type service struct {
	repo        repository.EmergencyStopRepository
	broadcaster event.Broadcaster
	alerts      notificationsvc.Service
	logger      *elog.Component
}

func NewService(
	repo repository.EmergencyStopRepository,
	broadcaster event.Broadcaster,
	alerts notificationsvc.Service,
) Service {
	return &service{
		repo:        repo,
		broadcaster: broadcaster,
		alerts:      alerts,
		logger:      elog.DefaultLogger,
	}
}

func (s *service) IsActive(ctx context.Context) (bool, error) {
	return s.repo.IsActive(ctx)
}

func (s *service) Activate(ctx context.Context) error {
	if err := s.repo.Set(ctx, true); err != nil {
		return fmt.Errorf("activate emergency stop: %w", err)
	}
	s.logger.Warn("emergency stop activated, all outbound sms halted")
	s.broadcast(ctx, true)

	if err := s.alerts.Notify(ctx, domain.Alert{
		Type:     domain.AlertTypeCompliance,
		Severity: domain.AlertSeverityCritical,
		Message:  "Emergency stop activated: all SMS sending halted",
	}); err != nil {
		s.logger.Error("failed to notify operators of emergency stop",
			elog.FieldErr(err))
	}
	return nil
}

func (s *service) Deactivate(ctx context.Context) error {
	if err := s.repo.Set(ctx, false); err != nil {
		return fmt.Errorf("deactivate emergency stop: %w", err)
	}
	s.logger.Info("emergency stop deactivated, sms sending resumed")
	s.broadcast(ctx, false)
	return nil
}

func (s *service) broadcast(ctx context.Context, active bool) {
	if err := s.broadcaster.Publish(ctx, event.TypeEmergencyStop, map[string]any{
		"active": active,
	}); err != nil {
		s.logger.Warn("failed to broadcast emergency stop event",
			elog.FieldErr(err))
	}
}
