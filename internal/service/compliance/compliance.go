package compliance

import (
	"fmt"
	"strings"
	"time"

	"github.com/quotingfast/outreach/internal/domain"
)

// Contact hours mandated for outbound marketing SMS. The local window is
// 8 AM - 9 PM Mon-Fri in the recipient's timezone; on top of that an
// absolute 9 PM - 8 AM Eastern block applies regardless of where the
// recipient lives. The check fails closed: missing or unknown state data
// blocks the send rather than guessing a timezone.
const (
	businessOpenHour  = 8
	businessCloseHour = 21
)

type Service interface {
	// Evaluate decides whether a message may be sent to the given phone
	// in the given state at the given instant. For time-window failures
	// NextEligibleAt carries the earliest retry time; data failures leave
	// it zero.
	Evaluate(phone, state string, at time.Time) domain.ComplianceDecision
}

type service struct {
	eastern   *time.Location
	locations map[string]*time.Location
}

// NewService preloads every state's timezone so Evaluate never touches
// the zone database on the hot path.
func NewService() (Service, error) {
	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load eastern timezone: %w", err)
	}
	locations := make(map[string]*time.Location, len(stateTimezones))
	for code, info := range stateTimezones {
		loc, err := info.Location()
		if err != nil {
			return nil, fmt.Errorf("load timezone for %s: %w", code, err)
		}
		locations[code] = loc
	}
	return &service{
		eastern:   eastern,
		locations: locations,
	}, nil
}

func (s *service) Evaluate(phone, state string, at time.Time) domain.ComplianceDecision {
	code := strings.ToUpper(strings.TrimSpace(state))
	if code == "" {
		return domain.ComplianceDecision{
			Reason: "State required for TCPA timezone validation",
		}
	}
	loc, ok := s.locations[code]
	if !ok {
		return domain.ComplianceDecision{
			Reason: fmt.Sprintf("Invalid state code: %s", state),
		}
	}

	eastern := at.In(s.eastern)
	if eastern.Hour() >= businessCloseHour || eastern.Hour() < businessOpenHour {
		return domain.ComplianceDecision{
			Reason:         "Outside business hours (9 PM - 8 AM EST blocked)",
			NextEligibleAt: nextEasternOpen(eastern),
		}
	}

	local := at.In(loc)
	if !isWeekday(local) || !isBusinessHours(local) {
		return domain.ComplianceDecision{
			Reason:         "Outside business hours (8 AM - 9 PM, Mon-Fri in recipient timezone)",
			NextEligibleAt: nextBusinessOpen(local),
		}
	}

	return domain.ComplianceDecision{Compliant: true}
}

func isBusinessHours(t time.Time) bool {
	return t.Hour() >= businessOpenHour && t.Hour() < businessCloseHour
}

func isWeekday(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

// nextEasternOpen returns the next 8 AM Eastern after t. Weekends are not
// skipped here: the deferred attempt re-runs the full gate when it fires,
// and the local-hours rule reschedules it again if needed.
func nextEasternOpen(t time.Time) time.Time {
	open := time.Date(t.Year(), t.Month(), t.Day(), businessOpenHour, 0, 0, 0, t.Location())
	if t.Hour() < businessOpenHour {
		return open
	}
	return open.AddDate(0, 0, 1)
}

// nextBusinessOpen returns the next weekday 8 AM in t's location.
func nextBusinessOpen(t time.Time) time.Time {
	if isWeekday(t) && t.Hour() < businessOpenHour {
		return time.Date(t.Year(), t.Month(), t.Day(), businessOpenHour, 0, 0, 0, t.Location())
	}
	day := t.AddDate(0, 0, 1)
	for !isWeekday(day) {
		day = day.AddDate(0, 0, 1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), businessOpenHour, 0, 0, 0, day.Location())
}
