package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
)

type AlertDAO interface {
	Create(ctx context.Context, data SystemAlert) (SystemAlert, error)
}

// SystemAlert is the audit trail of operator notifications.
type SystemAlert struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	AlertType string `gorm:"type:VARCHAR(32);NOT NULL"`
	Severity  string `gorm:"type:ENUM('info','warning','error','critical');NOT NULL"`
	Message   string `gorm:"type:VARCHAR(1024);NOT NULL"`
	Metadata  string `gorm:"type:JSON"`
	IsRead    bool   `gorm:"NOT NULL;DEFAULT:false"`
	Ctime     int64
}

func (SystemAlert) TableName() string {
	return "system_alerts"
}

type alertDAO struct {
	db *egorm.Component
}

func NewAlertDAO(db *egorm.Component) AlertDAO {
	return &alertDAO{db: db}
}

func (d *alertDAO) Create(ctx context.Context, data SystemAlert) (SystemAlert, error) {
	data.Ctime = time.Now().UnixMilli()
	err := d.db.WithContext(ctx).Create(&data).Error
	return data, err
}
