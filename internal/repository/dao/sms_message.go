package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"github.com/quotingfast/outreach/internal/errs"
)

type SMSMessageDAO interface {
	// Create inserts a dispatch attempt row.
	Create(ctx context.Context, data SMSMessage) (SMSMessage, error)

	// GetByID looks up a single message.
	GetByID(ctx context.Context, id int64) (SMSMessage, error)
	// GetByProviderSID locates the message matching a gateway delivery
	// callback.
	GetByProviderSID(ctx context.Context, sid string) (SMSMessage, error)

	// MarkSent moves PENDING -> SENT, recording the provider SID and send
	// time. No-op if the message already left PENDING.
	MarkSent(ctx context.Context, id int64, providerSID string) error
	// MarkDelivered moves PENDING|SENT -> DELIVERED. Guarded so a late or
	// duplicate callback can never regress a terminal status.
	MarkDelivered(ctx context.Context, id int64) error
	// MarkFailed moves PENDING|SENT -> FAILED with the gateway error.
	MarkFailed(ctx context.Context, id int64, errorCode, errorMessage string) error

	// UpdateBody sets the body of a deferred message at actual send time.
	UpdateBody(ctx context.Context, id int64, body string) error
	// Reschedule pushes a deferred message's due time forward.
	Reschedule(ctx context.Context, id int64, scheduledFor int64) error

	// FindDue returns PENDING messages whose scheduled_for is at or before
	// now (milliseconds), oldest first.
	FindDue(ctx context.Context, now int64, limit int) ([]SMSMessage, error)
}

// SMSMessage is the sms_messages table: one row per dispatch attempt,
// created by the orchestrator and finalized by gateway callbacks. Rows are
// never deleted.
type SMSMessage struct {
	ID           int64  `gorm:"primaryKey;comment:'snowflake-variant id'"`
	LeadID       int64  `gorm:"type:BIGINT;index:idx_lead_id;comment:'0 for ad-hoc custom sends'"`
	Phone        string `gorm:"type:VARCHAR(32);NOT NULL;index:idx_phone"`
	Body         string `gorm:"type:TEXT;comment:'empty until actual send time for deferred messages'"`
	MessageType  string `gorm:"type:ENUM('followup','urgent','lastchance','custom');NOT NULL"`
	Status       string `gorm:"type:ENUM('PENDING','SENT','DELIVERED','FAILED');NOT NULL;DEFAULT:'PENDING';index:idx_status_scheduled,priority:1"`
	ProviderSID  string `gorm:"type:VARCHAR(64);index:idx_provider_sid"`
	ErrorCode    string `gorm:"type:VARCHAR(32)"`
	ErrorMessage string `gorm:"type:VARCHAR(512)"`
	ScheduledFor int64  `gorm:"index:idx_status_scheduled,priority:2;comment:'due time in ms when deferred by compliance'"`
	SentAt       int64
	DeliveredAt  int64
	Ctime        int64
	Utime        int64
}

func (SMSMessage) TableName() string {
	return "sms_messages"
}

type smsMessageDAO struct {
	db *egorm.Component
}

func NewSMSMessageDAO(db *egorm.Component) SMSMessageDAO {
	return &smsMessageDAO{db: db}
}

func (d *smsMessageDAO) Create(ctx context.Context, data SMSMessage) (SMSMessage, error) {
	now := time.Now().UnixMilli()
	data.Ctime, data.Utime = now, now
	if data.Status == "" {
		data.Status = "PENDING"
	}
	if err := d.db.WithContext(ctx).Create(&data).Error; err != nil {
		if isUniqueConstraintError(err) {
			return SMSMessage{}, fmt.Errorf("%w: id=%d", errs.ErrMessageDuplicate, data.ID)
		}
		return SMSMessage{}, fmt.Errorf("%w: %w", errs.ErrCreateMessageFailed, err)
	}
	return data, nil
}

func (d *smsMessageDAO) GetByID(ctx context.Context, id int64) (SMSMessage, error) {
	var msg SMSMessage
	err := d.db.WithContext(ctx).First(&msg, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SMSMessage{}, fmt.Errorf("%w: id=%d", errs.ErrMessageNotFound, id)
		}
		return SMSMessage{}, err
	}
	return msg, nil
}

func (d *smsMessageDAO) GetByProviderSID(ctx context.Context, sid string) (SMSMessage, error) {
	var msg SMSMessage
	err := d.db.WithContext(ctx).
		Where("provider_sid = ?", sid).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SMSMessage{}, fmt.Errorf("%w: provider_sid=%s", errs.ErrMessageNotFound, sid)
		}
		return SMSMessage{}, err
	}
	return msg, nil
}

func (d *smsMessageDAO) MarkSent(ctx context.Context, id int64, providerSID string) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Model(&SMSMessage{}).
		Where("id = ? AND status = ?", id, "PENDING").
		Updates(map[string]any{
			"status":       "SENT",
			"provider_sid": providerSID,
			"sent_at":      now,
			"utime":        now,
		}).Error
}

func (d *smsMessageDAO) MarkDelivered(ctx context.Context, id int64) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Model(&SMSMessage{}).
		Where("id = ? AND status IN (?)", id, []string{"PENDING", "SENT"}).
		Updates(map[string]any{
			"status":       "DELIVERED",
			"delivered_at": now,
			"utime":        now,
		}).Error
}

func (d *smsMessageDAO) MarkFailed(ctx context.Context, id int64, errorCode, errorMessage string) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Model(&SMSMessage{}).
		Where("id = ? AND status IN (?)", id, []string{"PENDING", "SENT"}).
		Updates(map[string]any{
			"status":        "FAILED",
			"error_code":    errorCode,
			"error_message": errorMessage,
			"utime":         now,
		}).Error
}

func (d *smsMessageDAO) UpdateBody(ctx context.Context, id int64, body string) error {
	return d.db.WithContext(ctx).Model(&SMSMessage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"body":  body,
			"utime": time.Now().UnixMilli(),
		}).Error
}

func (d *smsMessageDAO) Reschedule(ctx context.Context, id int64, scheduledFor int64) error {
	return d.db.WithContext(ctx).Model(&SMSMessage{}).
		Where("id = ? AND status = ?", id, "PENDING").
		Updates(map[string]any{
			"scheduled_for": scheduledFor,
			"utime":         time.Now().UnixMilli(),
		}).Error
}

func (d *smsMessageDAO) FindDue(ctx context.Context, now int64, limit int) ([]SMSMessage, error) {
	var msgs []SMSMessage
	err := d.db.WithContext(ctx).
		Where("status = ? AND scheduled_for > 0 AND scheduled_for <= ?", "PENDING", now).
		Order("scheduled_for ASC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	me := new(mysql.MySQLError)
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}
