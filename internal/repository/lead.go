package repository

import (
	"context"
	"time"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/repository/dao"
)

type LeadRepository interface {
	Create(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	GetByID(ctx context.Context, id int64) (domain.Lead, error)
	GetByQFCode(ctx context.Context, qfCode string) (domain.Lead, error)
}

type leadRepository struct {
	dao dao.LeadDAO
}

func NewLeadRepository(d dao.LeadDAO) LeadRepository {
	return &leadRepository{dao: d}
}

func (r *leadRepository) Create(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	created, err := r.dao.Create(ctx, dao.Lead{
		QFCode:    lead.QFCode,
		FirstName: lead.FirstName,
		LastName:  lead.LastName,
		Phone:     lead.Phone,
		State:     lead.State,
		ZipCode:   lead.ZipCode,
	})
	if err != nil {
		return domain.Lead{}, err
	}
	return r.toDomain(created), nil
}

func (r *leadRepository) GetByID(ctx context.Context, id int64) (domain.Lead, error) {
	found, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}
	return r.toDomain(found), nil
}

func (r *leadRepository) GetByQFCode(ctx context.Context, qfCode string) (domain.Lead, error) {
	found, err := r.dao.GetByQFCode(ctx, qfCode)
	if err != nil {
		return domain.Lead{}, err
	}
	return r.toDomain(found), nil
}

func (r *leadRepository) toDomain(entity dao.Lead) domain.Lead {
	return domain.Lead{
		ID:        entity.ID,
		QFCode:    entity.QFCode,
		FirstName: entity.FirstName,
		LastName:  entity.LastName,
		Phone:     entity.Phone,
		State:     entity.State,
		ZipCode:   entity.ZipCode,
		CreatedAt: time.UnixMilli(entity.Ctime),
	}
}
