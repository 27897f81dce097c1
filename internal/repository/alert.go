package repository

import (
	"context"
	"encoding/json"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/repository/dao"
)

type AlertRepository interface {
	Create(ctx context.Context, alert domain.Alert) error
}

type alertRepository struct {
	dao dao.AlertDAO
}

func NewAlertRepository(d dao.AlertDAO) AlertRepository {
	return &alertRepository{dao: d}
}

func (r *alertRepository) Create(ctx context.Context, alert domain.Alert) error {
	metadata := ""
	if len(alert.Metadata) > 0 {
		bytes, err := json.Marshal(alert.Metadata)
		if err != nil {
			return err
		}
		metadata = string(bytes)
	}
	_, err := r.dao.Create(ctx, dao.SystemAlert{
		AlertType: string(alert.Type),
		Severity:  alert.Severity.String(),
		Message:   alert.Message,
		Metadata:  metadata,
	})
	return err
}
