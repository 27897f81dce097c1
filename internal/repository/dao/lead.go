package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"

	"github.com/quotingfast/outreach/internal/errs"
)

type LeadDAO interface {
	Create(ctx context.Context, data Lead) (Lead, error)
	GetByID(ctx context.Context, id int64) (Lead, error)
	GetByQFCode(ctx context.Context, qfCode string) (Lead, error)
}

// Lead is the canonical normalized lead row. Raw webhook shapes are
// consolidated upstream; the phone column always holds the normalized form.
type Lead struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	QFCode    string `gorm:"type:VARCHAR(16);NOT NULL;uniqueIndex:uniq_qf_code"`
	FirstName string `gorm:"type:VARCHAR(128);NOT NULL"`
	LastName  string `gorm:"type:VARCHAR(128)"`
	Phone     string `gorm:"type:VARCHAR(32);NOT NULL;index:idx_phone"`
	State     string `gorm:"type:VARCHAR(2)"`
	ZipCode   string `gorm:"type:VARCHAR(10)"`
	Ctime     int64
	Utime     int64
}

func (Lead) TableName() string {
	return "leads"
}

type leadDAO struct {
	db *egorm.Component
}

func NewLeadDAO(db *egorm.Component) LeadDAO {
	return &leadDAO{db: db}
}

func (d *leadDAO) Create(ctx context.Context, data Lead) (Lead, error) {
	now := time.Now().UnixMilli()
	data.Ctime, data.Utime = now, now
	if err := d.db.WithContext(ctx).Create(&data).Error; err != nil {
		if isUniqueConstraintError(err) {
			return Lead{}, fmt.Errorf("%w: qf_code=%s", errs.ErrLeadDuplicate, data.QFCode)
		}
		return Lead{}, err
	}
	return data, nil
}

func (d *leadDAO) GetByID(ctx context.Context, id int64) (Lead, error) {
	var lead Lead
	err := d.db.WithContext(ctx).First(&lead, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Lead{}, fmt.Errorf("%w: id=%d", errs.ErrLeadNotFound, id)
		}
		return Lead{}, err
	}
	return lead, nil
}

func (d *leadDAO) GetByQFCode(ctx context.Context, qfCode string) (Lead, error) {
	var lead Lead
	err := d.db.WithContext(ctx).
		Where("qf_code = ?", qfCode).
		First(&lead).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Lead{}, fmt.Errorf("%w: qf_code=%s", errs.ErrLeadNotFound, qfCode)
		}
		return Lead{}, err
	}
	return lead, nil
}
