package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// emergencyStopRowID: the flag is a single durable row so that every
// replica reads the same state without in-memory coordination.
const emergencyStopRowID = 1

type EmergencyStopDAO interface {
	// IsActive reads the flag. A missing row means inactive.
	IsActive(ctx context.Context) (bool, error)
	// Set writes the flag. Idempotent, last-writer-wins.
	Set(ctx context.Context, active bool) error
}

type EmergencyStop struct {
	ID     int64 `gorm:"primaryKey"`
	Active bool  `gorm:"NOT NULL;DEFAULT:false"`
	Utime  int64
}

func (EmergencyStop) TableName() string {
	return "emergency_stop"
}

type emergencyStopDAO struct {
	db *egorm.Component
}

func NewEmergencyStopDAO(db *egorm.Component) EmergencyStopDAO {
	return &emergencyStopDAO{db: db}
}

func (d *emergencyStopDAO) IsActive(ctx context.Context) (bool, error) {
	var row EmergencyStop
	err := d.db.WithContext(ctx).First(&row, emergencyStopRowID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return row.Active, nil
}

func (d *emergencyStopDAO) Set(ctx context.Context, active bool) error {
	row := EmergencyStop{
		ID:     emergencyStopRowID,
		Active: active,
		Utime:  time.Now().UnixMilli(),
	}
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"active", "utime"}),
		}).
		Create(&row).Error
}
