package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm/clause"
)

type SuppressionDAO interface {
	// InsertOptOut records an explicit opt-out. Idempotent: a duplicate
	// insert for the same normalized phone is a no-op, not an error.
	InsertOptOut(ctx context.Context, data OptOut) error
	// InsertSuppression records a bulk-imported suppression entry with the
	// same idempotency contract.
	InsertSuppression(ctx context.Context, data Suppression) error

	// OptOutExists reports whether an opt-out row exists for the phone.
	OptOutExists(ctx context.Context, phone string) (bool, error)
	// SuppressionExists reports whether a bulk-suppression row exists.
	SuppressionExists(ctx context.Context, phone string) (bool, error)

	// CountOptOutsSince counts opt-outs created at or after the given
	// millisecond timestamp; since<=0 counts all.
	CountOptOutsSince(ctx context.Context, since int64) (int64, error)
}

// OptOut rows are created once per normalized phone and never deleted:
// TCPA requires the opt-out record to be retained.
type OptOut struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	Phone           string `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:uniq_phone"`
	Method          string `gorm:"type:ENUM('sms_reply','manual','auto_error');NOT NULL"`
	OriginalMessage string `gorm:"type:VARCHAR(1024)"`
	Ctime           int64
}

func (OptOut) TableName() string {
	return "opt_outs"
}

// Suppression rows come from external bulk imports.
type Suppression struct {
	ID     int64  `gorm:"primaryKey;autoIncrement"`
	Phone  string `gorm:"type:VARCHAR(32);NOT NULL;uniqueIndex:uniq_phone"`
	Reason string `gorm:"type:VARCHAR(256)"`
	Source string `gorm:"type:VARCHAR(128)"`
	Ctime  int64
}

func (Suppression) TableName() string {
	return "suppression_list"
}

type suppressionDAO struct {
	db *egorm.Component
}

func NewSuppressionDAO(db *egorm.Component) SuppressionDAO {
	return &suppressionDAO{db: db}
}

func (d *suppressionDAO) InsertOptOut(ctx context.Context, data OptOut) error {
	data.Ctime = time.Now().UnixMilli()
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&data).Error
}

func (d *suppressionDAO) InsertSuppression(ctx context.Context, data Suppression) error {
	data.Ctime = time.Now().UnixMilli()
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&data).Error
}

func (d *suppressionDAO) OptOutExists(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&OptOut{}).
		Where("phone = ?", phone).
		Count(&count).Error
	return count > 0, err
}

func (d *suppressionDAO) SuppressionExists(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Suppression{}).
		Where("phone = ?", phone).
		Count(&count).Error
	return count > 0, err
}

func (d *suppressionDAO) CountOptOutsSince(ctx context.Context, since int64) (int64, error) {
	var count int64
	query := d.db.WithContext(ctx).Model(&OptOut{})
	if since > 0 {
		query = query.Where("ctime >= ?", since)
	}
	err := query.Count(&count).Error
	return count, err
}
