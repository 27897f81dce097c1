package lead

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/errs"
	"github.com/quotingfast/outreach/internal/event"
)

type mockLeadRepo struct {
	nextID  int64
	created []domain.Lead
}

func (m *mockLeadRepo) Create(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	for _, existing := range m.created {
		if existing.QFCode == lead.QFCode {
			return domain.Lead{}, errs.ErrLeadDuplicate
		}
	}
	m.nextID++
	lead.ID = m.nextID
	m.created = append(m.created, lead)
	return lead, nil
}

func (m *mockLeadRepo) GetByID(_ context.Context, id int64) (domain.Lead, error) {
	for _, lead := range m.created {
		if lead.ID == id {
			return lead, nil
		}
	}
	return domain.Lead{}, errs.ErrLeadNotFound
}

func (m *mockLeadRepo) GetByQFCode(_ context.Context, qfCode string) (domain.Lead, error) {
	for _, lead := range m.created {
		if lead.QFCode == qfCode {
			return lead, nil
		}
	}
	return domain.Lead{}, errs.ErrLeadNotFound
}

type publishedEvent struct {
	eventType string
	payload   any
}

type mockBroadcaster struct {
	events []publishedEvent
}

func (m *mockBroadcaster) Publish(_ context.Context, eventType string, payload any) error {
	m.events = append(m.events, publishedEvent{eventType: eventType, payload: payload})
	return nil
}

func TestCreate(t *testing.T) {
	t.Parallel()

	repo := &mockLeadRepo{}
	bus := &mockBroadcaster{}
	svc := NewService(repo, bus)

	created, err := svc.Create(t.Context(), domain.Lead{
		QFCode:    "QF482913",
		FirstName: "Maria",
		LastName:  "Santos",
		Phone:     "(555) 123-4567",
		State:     "FL",
		ZipCode:   "33101",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "+15551234567", created.Phone, "phone normalized at ingress")

	require.Len(t, bus.events, 1)
	assert.Equal(t, event.TypeNewLead, bus.events[0].eventType)
}

func TestCreate_Invalid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		lead domain.Lead
	}{
		{name: "missing qf code", lead: domain.Lead{FirstName: "Maria", Phone: "+15551234567"}},
		{name: "missing phone", lead: domain.Lead{QFCode: "QF482913", FirstName: "Maria"}},
		{name: "missing first name", lead: domain.Lead{QFCode: "QF482913", Phone: "+15551234567"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bus := &mockBroadcaster{}
			svc := NewService(&mockLeadRepo{}, bus)

			_, err := svc.Create(t.Context(), tc.lead)
			assert.ErrorIs(t, err, errs.ErrInvalidParameter)
			assert.Empty(t, bus.events)
		})
	}
}

func TestCreate_DuplicateQFCode(t *testing.T) {
	t.Parallel()

	svc := NewService(&mockLeadRepo{}, &mockBroadcaster{})

	lead := domain.Lead{QFCode: "QF482913", FirstName: "Maria", Phone: "+15551234567"}
	_, err := svc.Create(t.Context(), lead)
	require.NoError(t, err)

	_, err = svc.Create(t.Context(), lead)
	assert.ErrorIs(t, err, errs.ErrLeadDuplicate)
}

func TestGetByQFCode(t *testing.T) {
	t.Parallel()

	svc := NewService(&mockLeadRepo{}, &mockBroadcaster{})
	created, err := svc.Create(t.Context(), domain.Lead{
		QFCode: "QF482913", FirstName: "Maria", Phone: "+15551234567",
	})
	require.NoError(t, err)

	found, err := svc.GetByQFCode(t.Context(), "QF482913")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByQFCode(t.Context(), "QF000000")
	assert.ErrorIs(t, err, errs.ErrLeadNotFound)
}
