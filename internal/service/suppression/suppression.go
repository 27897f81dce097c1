package suppression

import (
	"context"
	"fmt"

	"github.com/gotomicro/ego/core/elog"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/repository"
	"github.com/quotingfast/outreach/internal/service/compliance"
)

// Service is the suppression registry: the union of explicit opt-outs and
// bulk-imported suppression entries. Phones are normalized here, exactly
// once, so every stored and compared value is canonical.
type Service interface {
	// AddOptOut records an opt-out. Idempotent.
	AddOptOut(ctx context.Context, phone string, method domain.OptOutMethod, originalMessage string) error
	// AddBulkSuppression records an imported suppression entry. Idempotent.
	AddBulkSuppression(ctx context.Context, phone, reason, source string) error

	// IsSuppressed is the enforcement check consulted before every send:
	// true if either an opt-out or a bulk-suppression entry exists.
	IsSuppressed(ctx context.Context, phone string) (bool, error)
	// IsOptedOut checks explicit opt-outs only.
	IsOptedOut(ctx context.Context, phone string) (bool, error)

	// Stats returns opt-out counts for operator reporting.
	Stats(ctx context.Context) (domain.OptOutStats, error)
}

type service struct {
	repo   repository.SuppressionRepository
	logger *elog.Component
}

func NewService(repo repository.SuppressionRepository) Service {
	return &service{
		repo:   repo,
		logger: elog.DefaultLogger,
	}
}

func (s *service) AddOptOut(ctx context.Context, phone string, method domain.OptOutMethod, originalMessage string) error {
	if err := method.Validate(); err != nil {
		return err
	}
	normalized := compliance.NormalizePhone(phone)
	err := s.repo.AddOptOut(ctx, domain.OptOut{
		Phone:           normalized,
		Method:          method,
		OriginalMessage: originalMessage,
	})
	if err != nil {
		return fmt.Errorf("add opt-out for %s: %w", normalized, err)
	}
	s.logger.Info("opt-out recorded",
		elog.String("phone", normalized),
		elog.String("method", method.String()))
	return nil
}

func (s *service) AddBulkSuppression(ctx context.Context, phone, reason, source string) error {
	normalized := compliance.NormalizePhone(phone)
	err := s.repo.AddBulkSuppression(ctx, domain.Suppression{
		Phone:  normalized,
		Reason: reason,
		Source: source,
	})
	if err != nil {
		return fmt.Errorf("add bulk suppression for %s: %w", normalized, err)
	}
	return nil
}

func (s *service) IsSuppressed(ctx context.Context, phone string) (bool, error) {
	return s.repo.IsSuppressed(ctx, compliance.NormalizePhone(phone))
}

func (s *service) IsOptedOut(ctx context.Context, phone string) (bool, error) {
	return s.repo.IsOptedOut(ctx, compliance.NormalizePhone(phone))
}

func (s *service) Stats(ctx context.Context) (domain.OptOutStats, error) {
	return s.repo.OptOutStats(ctx)
}
