package repository

import (
	"context"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"github.com/quotingfast/outreach/internal/domain"
	redicache "github.com/quotingfast/outreach/internal/repository/cache/redis"
	"github.com/quotingfast/outreach/internal/repository/dao"
)

// SuppressionRepository is the do-not-message registry. IsSuppressed sits
// on the hot path of every send: positive results are cached in redis, and
// the database remains the source of truth so cache failures degrade to a
// database check rather than a compliance miss.
type SuppressionRepository interface {
	AddOptOut(ctx context.Context, optOut domain.OptOut) error
	AddBulkSuppression(ctx context.Context, suppression domain.Suppression) error

	IsSuppressed(ctx context.Context, phone string) (bool, error)
	IsOptedOut(ctx context.Context, phone string) (bool, error)

	OptOutStats(ctx context.Context) (domain.OptOutStats, error)
}

type suppressionRepository struct {
	dao    dao.SuppressionDAO
	cache  *redicache.SuppressionCache
	logger *elog.Component
}

func NewSuppressionRepository(d dao.SuppressionDAO, c *redicache.SuppressionCache) SuppressionRepository {
	return &suppressionRepository{
		dao:    d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

func (r *suppressionRepository) AddOptOut(ctx context.Context, optOut domain.OptOut) error {
	err := r.dao.InsertOptOut(ctx, dao.OptOut{
		Phone:           optOut.Phone,
		Method:          optOut.Method.String(),
		OriginalMessage: optOut.OriginalMessage,
	})
	if err != nil {
		return err
	}
	r.markCache(ctx, optOut.Phone)
	return nil
}

func (r *suppressionRepository) AddBulkSuppression(ctx context.Context, suppression domain.Suppression) error {
	err := r.dao.InsertSuppression(ctx, dao.Suppression{
		Phone:  suppression.Phone,
		Reason: suppression.Reason,
		Source: suppression.Source,
	})
	if err != nil {
		return err
	}
	r.markCache(ctx, suppression.Phone)
	return nil
}

func (r *suppressionRepository) IsSuppressed(ctx context.Context, phone string) (bool, error) {
	cached, err := r.cache.IsSuppressed(ctx, phone)
	if err != nil {
		r.logger.Warn("suppression cache unavailable, falling back to database",
			elog.FieldErr(err))
	} else if cached {
		return true, nil
	}

	optedOut, err := r.dao.OptOutExists(ctx, phone)
	if err != nil {
		return false, err
	}
	if optedOut {
		r.markCache(ctx, phone)
		return true, nil
	}

	suppressed, err := r.dao.SuppressionExists(ctx, phone)
	if err != nil {
		return false, err
	}
	if suppressed {
		r.markCache(ctx, phone)
	}
	return suppressed, nil
}

func (r *suppressionRepository) IsOptedOut(ctx context.Context, phone string) (bool, error) {
	return r.dao.OptOutExists(ctx, phone)
}

func (r *suppressionRepository) OptOutStats(ctx context.Context) (domain.OptOutStats, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int((now.Weekday()+6)%7)) // back to Monday

	today, err := r.dao.CountOptOutsSince(ctx, startOfDay.UnixMilli())
	if err != nil {
		return domain.OptOutStats{}, err
	}
	thisWeek, err := r.dao.CountOptOutsSince(ctx, startOfWeek.UnixMilli())
	if err != nil {
		return domain.OptOutStats{}, err
	}
	total, err := r.dao.CountOptOutsSince(ctx, 0)
	if err != nil {
		return domain.OptOutStats{}, err
	}
	return domain.OptOutStats{
		Today:    today,
		ThisWeek: thisWeek,
		Total:    total,
	}, nil
}

// markCache is best effort: the database row already guarantees
// enforcement, the cache only accelerates it.
func (r *suppressionRepository) markCache(ctx context.Context, phone string) {
	if err := r.cache.MarkSuppressed(ctx, phone); err != nil {
		r.logger.Warn("failed to cache suppression entry",
			elog.String("phone", phone),
			elog.FieldErr(err))
	}
}
