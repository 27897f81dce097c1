package repository

import (
	"context"

	"github.com/quotingfast/outreach/internal/repository/dao"
)

// EmergencyStopRepository reads and writes the durable kill-switch flag.
type EmergencyStopRepository interface {
	IsActive(ctx context.Context) (bool, error)
	Set(ctx context.Context, active bool) error
}

type emergencyStopRepository struct {
	dao dao.EmergencyStopDAO
}

func NewEmergencyStopRepository(d dao.EmergencyStopDAO) EmergencyStopRepository {
	return &emergencyStopRepository{dao: d}
}

func (r *emergencyStopRepository) IsActive(ctx context.Context) (bool, error) {
	return r.dao.IsActive(ctx)
}

func (r *emergencyStopRepository) Set(ctx context.Context, active bool) error {
	return r.dao.Set(ctx, active)
}
