package template

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/errs"
)

func TestRender(t *testing.T) {
	t.Parallel()

	svc := NewService("https://quotingfast.io")

	testCases := []struct {
		name        string
		messageType domain.MessageType
	}{
		{name: "followup", messageType: domain.MessageTypeFollowUp},
		{name: "urgent", messageType: domain.MessageTypeUrgent},
		{name: "lastchance", messageType: domain.MessageTypeLastChance},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			body, err := svc.Render(tc.messageType, "Maria", "QF482913")
			require.NoError(t, err)
			assert.Contains(t, body, "Maria")
			assert.Contains(t, body, "https://quotingfast.io/quote/QF482913")
			assert.NotContains(t, body, "{name}")
			assert.NotContains(t, body, "{quote_link}")
		})
	}
}

func TestRender_VariantBelongsToType(t *testing.T) {
	t.Parallel()

	svc := NewService("https://quotingfast.io")
	variants := templates[domain.MessageTypeUrgent]

	// Enough draws to exercise the variant picker; each result must be an
	// expansion of one of the type's own variants.
	for i := 0; i < 20; i++ {
		body, err := svc.Render(domain.MessageTypeUrgent, "Maria", "QF482913")
		require.NoError(t, err)

		matched := false
		for _, tmpl := range variants {
			expanded := strings.ReplaceAll(tmpl, "{name}", "Maria")
			expanded = strings.ReplaceAll(expanded, "{quote_link}", "https://quotingfast.io/quote/QF482913")
			if body == expanded {
				matched = true
				break
			}
		}
		assert.True(t, matched, "body %q matches no urgent variant", body)
	}
}

func TestRender_ConcurrentDispatches(t *testing.T) {
	t.Parallel()

	svc := NewService("https://quotingfast.io")

	const goroutines = 8
	const perGoroutine = 200

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				body, err := svc.Render(domain.MessageTypeFollowUp, "Maria", "QF482913")
				assert.NoError(t, err)
				assert.NotEmpty(t, body)
			}
		}()
	}
	wg.Wait()
}

func TestRender_UnknownType(t *testing.T) {
	t.Parallel()

	svc := NewService("https://quotingfast.io")

	// Custom bodies are caller-supplied; the renderer rejects the type.
	_, err := svc.Render(domain.MessageTypeCustom, "Maria", "QF482913")
	assert.ErrorIs(t, err, errs.ErrUnknownMessageType)

	_, err = svc.Render(domain.MessageType("bogus"), "Maria", "QF482913")
	assert.ErrorIs(t, err, errs.ErrUnknownMessageType)
}

func TestRender_TrailingSlashBaseURL(t *testing.T) {
	t.Parallel()

	svc := NewService("https://quotingfast.io/")
	body, err := svc.Render(domain.MessageTypeFollowUp, "Maria", "QF482913")
	require.NoError(t, err)
	assert.Contains(t, body, "https://quotingfast.io/quote/QF482913")
	assert.NotContains(t, body, "io//quote")
}
