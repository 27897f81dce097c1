//go:build e2e

package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	testioc "github.com/quotingfast/outreach/internal/test/ioc"
)

func TestEmergencyStopDAOSuite(t *testing.T) {
	suite.Run(t, new(EmergencyStopDAOTestSuite))
}

type EmergencyStopDAOTestSuite struct {
	suite.Suite
	db  *gorm.DB
	dao EmergencyStopDAO
}

func (s *EmergencyStopDAOTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	err := s.db.AutoMigrate(&EmergencyStop{})
	s.NoError(err)
	s.dao = NewEmergencyStopDAO(s.db)
}

func (s *EmergencyStopDAOTestSuite) TearDownTest() {
	s.db.Exec("TRUNCATE TABLE `emergency_stop`")
}

func (s *EmergencyStopDAOTestSuite) TestMissingRowMeansInactive() {
	active, err := s.dao.IsActive(context.Background())
	s.NoError(err)
	s.False(active)
}

func (s *EmergencyStopDAOTestSuite) TestToggle() {
	t := s.T()
	ctx := context.Background()

	assert.NoError(t, s.dao.Set(ctx, true))
	active, err := s.dao.IsActive(ctx)
	assert.NoError(t, err)
	assert.True(t, active)

	// Repeated activation is idempotent, not an error.
	assert.NoError(t, s.dao.Set(ctx, true))

	assert.NoError(t, s.dao.Set(ctx, false))
	active, err = s.dao.IsActive(ctx)
	assert.NoError(t, err)
	assert.False(t, active)

	// A single flag row regardless of how often it is toggled.
	var count int64
	assert.NoError(t, s.db.Model(&EmergencyStop{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
