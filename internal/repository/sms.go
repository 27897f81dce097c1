package repository

import (
	"context"
	"time"

	"github.com/ecodeclub/ekit/slice"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/repository/dao"
)

// SMSMessageRepository persists dispatch attempts.
type SMSMessageRepository interface {
	Create(ctx context.Context, msg domain.SMSMessage) (domain.SMSMessage, error)
	GetByID(ctx context.Context, id int64) (domain.SMSMessage, error)
	GetByProviderSID(ctx context.Context, sid string) (domain.SMSMessage, error)

	MarkSent(ctx context.Context, id int64, providerSID string) error
	MarkDelivered(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, errorCode, errorMessage string) error

	UpdateBody(ctx context.Context, id int64, body string) error
	Reschedule(ctx context.Context, id int64, scheduledFor time.Time) error

	FindDue(ctx context.Context, now time.Time, limit int) ([]domain.SMSMessage, error)
}

type smsMessageRepository struct {
	dao dao.SMSMessageDAO
}

func NewSMSMessageRepository(d dao.SMSMessageDAO) SMSMessageRepository {
	return &smsMessageRepository{dao: d}
}

func (r *smsMessageRepository) Create(ctx context.Context, msg domain.SMSMessage) (domain.SMSMessage, error) {
	if err := msg.Validate(); err != nil {
		return domain.SMSMessage{}, err
	}
	created, err := r.dao.Create(ctx, r.toEntity(msg))
	if err != nil {
		return domain.SMSMessage{}, err
	}
	return r.toDomain(created), nil
}

func (r *smsMessageRepository) GetByID(ctx context.Context, id int64) (domain.SMSMessage, error) {
	found, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.SMSMessage{}, err
	}
	return r.toDomain(found), nil
}

func (r *smsMessageRepository) GetByProviderSID(ctx context.Context, sid string) (domain.SMSMessage, error) {
	found, err := r.dao.GetByProviderSID(ctx, sid)
	if err != nil {
		return domain.SMSMessage{}, err
	}
	return r.toDomain(found), nil
}

func (r *smsMessageRepository) MarkSent(ctx context.Context, id int64, providerSID string) error {
	return r.dao.MarkSent(ctx, id, providerSID)
}

func (r *smsMessageRepository) MarkDelivered(ctx context.Context, id int64) error {
	return r.dao.MarkDelivered(ctx, id)
}

func (r *smsMessageRepository) MarkFailed(ctx context.Context, id int64, errorCode, errorMessage string) error {
	return r.dao.MarkFailed(ctx, id, errorCode, errorMessage)
}

func (r *smsMessageRepository) UpdateBody(ctx context.Context, id int64, body string) error {
	return r.dao.UpdateBody(ctx, id, body)
}

func (r *smsMessageRepository) Reschedule(ctx context.Context, id int64, scheduledFor time.Time) error {
	return r.dao.Reschedule(ctx, id, scheduledFor.UnixMilli())
}

func (r *smsMessageRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]domain.SMSMessage, error) {
	entities, err := r.dao.FindDue(ctx, now.UnixMilli(), limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(_ int, src dao.SMSMessage) domain.SMSMessage {
		return r.toDomain(src)
	}), nil
}

func (r *smsMessageRepository) toEntity(msg domain.SMSMessage) dao.SMSMessage {
	entity := dao.SMSMessage{
		ID:           msg.ID,
		LeadID:       msg.LeadID,
		Phone:        msg.Phone,
		Body:         msg.Body,
		MessageType:  msg.Type.String(),
		Status:       msg.Status.String(),
		ProviderSID:  msg.ProviderSID,
		ErrorCode:    msg.ErrorCode,
		ErrorMessage: msg.ErrorMessage,
	}
	if !msg.ScheduledFor.IsZero() {
		entity.ScheduledFor = msg.ScheduledFor.UnixMilli()
	}
	if !msg.SentAt.IsZero() {
		entity.SentAt = msg.SentAt.UnixMilli()
	}
	if !msg.DeliveredAt.IsZero() {
		entity.DeliveredAt = msg.DeliveredAt.UnixMilli()
	}
	return entity
}

func (r *smsMessageRepository) toDomain(entity dao.SMSMessage) domain.SMSMessage {
	msg := domain.SMSMessage{
		ID:           entity.ID,
		LeadID:       entity.LeadID,
		Phone:        entity.Phone,
		Body:         entity.Body,
		Type:         domain.MessageType(entity.MessageType),
		Status:       domain.SendStatus(entity.Status),
		ProviderSID:  entity.ProviderSID,
		ErrorCode:    entity.ErrorCode,
		ErrorMessage: entity.ErrorMessage,
	}
	if entity.ScheduledFor > 0 {
		msg.ScheduledFor = time.UnixMilli(entity.ScheduledFor)
	}
	if entity.SentAt > 0 {
		msg.SentAt = time.UnixMilli(entity.SentAt)
	}
	if entity.DeliveredAt > 0 {
		msg.DeliveredAt = time.UnixMilli(entity.DeliveredAt)
	}
	return msg
}
