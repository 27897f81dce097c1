//go:build e2e

package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	testioc "github.com/quotingfast/outreach/internal/test/ioc"
)

func TestSuppressionDAOSuite(t *testing.T) {
	suite.Run(t, new(SuppressionDAOTestSuite))
}

type SuppressionDAOTestSuite struct {
	suite.Suite
	db  *gorm.DB
	dao SuppressionDAO
}

func (s *SuppressionDAOTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	err := s.db.AutoMigrate(&OptOut{}, &Suppression{})
	s.NoError(err)
	s.dao = NewSuppressionDAO(s.db)
}

func (s *SuppressionDAOTestSuite) TearDownTest() {
	s.db.Exec("TRUNCATE TABLE `opt_outs`")
	s.db.Exec("TRUNCATE TABLE `suppression_list`")
}

func (s *SuppressionDAOTestSuite) TestInsertOptOutIdempotent() {
	t := s.T()
	ctx := context.Background()

	first := OptOut{
		Phone:           "+15551234567",
		Method:          "sms_reply",
		OriginalMessage: "STOP",
	}
	err := s.dao.InsertOptOut(ctx, first)
	assert.NoError(t, err)

	// Duplicate insert for the same phone must be a silent no-op and must
	// not overwrite the original record.
	err = s.dao.InsertOptOut(ctx, OptOut{
		Phone:           "+15551234567",
		Method:          "auto_error",
		OriginalMessage: "Auto opt-out due to error 21610",
	})
	assert.NoError(t, err)

	var rows []OptOut
	err = s.db.Where("phone = ?", "+15551234567").Find(&rows).Error
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "sms_reply", rows[0].Method)
	assert.Equal(t, "STOP", rows[0].OriginalMessage)
	assert.NotZero(t, rows[0].Ctime)
}

func (s *SuppressionDAOTestSuite) TestOptOutExists() {
	t := s.T()
	ctx := context.Background()

	exists, err := s.dao.OptOutExists(ctx, "+15551234567")
	assert.NoError(t, err)
	assert.False(t, exists)

	err = s.dao.InsertOptOut(ctx, OptOut{Phone: "+15551234567", Method: "manual"})
	assert.NoError(t, err)

	exists, err = s.dao.OptOutExists(ctx, "+15551234567")
	assert.NoError(t, err)
	assert.True(t, exists)

	// An opt-out does not leak into the bulk suppression table.
	exists, err = s.dao.SuppressionExists(ctx, "+15551234567")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func (s *SuppressionDAOTestSuite) TestInsertSuppressionIdempotent() {
	t := s.T()
	ctx := context.Background()

	entry := Suppression{
		Phone:  "+15559876543",
		Reason: "carrier complaint",
		Source: "litigator-scrub-2025-06",
	}
	assert.NoError(t, s.dao.InsertSuppression(ctx, entry))
	assert.NoError(t, s.dao.InsertSuppression(ctx, entry))

	var count int64
	err := s.db.Model(&Suppression{}).Where("phone = ?", entry.Phone).Count(&count).Error
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func (s *SuppressionDAOTestSuite) TestCountOptOutsSince() {
	t := s.T()
	ctx := context.Background()

	phones := []string{"+15551230001", "+15551230002", "+15551230003"}
	for _, phone := range phones {
		assert.NoError(t, s.dao.InsertOptOut(ctx, OptOut{Phone: phone, Method: "sms_reply"}))
	}
	// Age one record beyond the cutoff.
	old := time.Now().Add(-48 * time.Hour).UnixMilli()
	err := s.db.Model(&OptOut{}).
		Where("phone = ?", phones[0]).
		Update("ctime", old).Error
	assert.NoError(t, err)

	cutoff := time.Now().Add(-24 * time.Hour).UnixMilli()
	recent, err := s.dao.CountOptOutsSince(ctx, cutoff)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), recent)

	total, err := s.dao.CountOptOutsSince(ctx, 0)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), total)
}
