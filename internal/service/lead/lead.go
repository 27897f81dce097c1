package lead

import (
	"context"
	"fmt"

	"github.com/gotomicro/ego/core/elog"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/event"
	"github.com/quotingfast/outreach/internal/repository"
	compliancesvc "github.com/quotingfast/outreach/internal/service/compliance"
)

// Service is the lead store boundary. Webhook payload parsing lives in the
// web layer; by the time a lead arrives here it only needs normalization
// and persistence.
type Service interface {
	// Create validates and persists a lead and announces it to the
	// dashboard. The phone is normalized here so every downstream consumer
	// sees the canonical form.
	Create(ctx context.Context, lead domain.Lead) (domain.Lead, error)

	GetByID(ctx context.Context, id int64) (domain.Lead, error)
	GetByQFCode(ctx context.Context, qfCode string) (domain.Lead, error)
}

type service struct {
	repo        repository.LeadRepository
	broadcaster event.Broadcaster
	logger      *elog.Component
}

func NewService(repo repository.LeadRepository, broadcaster event.Broadcaster) Service {
	return &service{
		repo:        repo,
		broadcaster: broadcaster,
		logger:      elog.DefaultLogger,
	}
}

func (s *service) Create(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	lead.Phone = compliancesvc.NormalizePhone(lead.Phone)
	if err := lead.Validate(); err != nil {
		return domain.Lead{}, err
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		return domain.Lead{}, fmt.Errorf("create lead %s: %w", lead.QFCode, err)
	}

	if err := s.broadcaster.Publish(ctx, event.TypeNewLead, map[string]any{
		"leadId": created.ID,
		"qfCode": created.QFCode,
		"name":   created.FirstName,
		"state":  created.State,
	}); err != nil {
		s.logger.Warn("failed to broadcast new lead event",
			elog.Int64("leadID", created.ID),
			elog.FieldErr(err))
	}
	return created, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (domain.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByQFCode(ctx context.Context, qfCode string) (domain.Lead, error) {
	return s.repo.GetByQFCode(ctx, qfCode)
}
