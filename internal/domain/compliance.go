package domain

import "time"

// ComplianceDecision is the outcome of evaluating a (phone, state, time)
// triple against TCPA contact-hour rules. It is a derived value, never
// persisted. Reason is set iff the decision is non-compliant;
// NextEligibleAt is set iff the failure is recoverable by waiting.
type ComplianceDecision struct {
	Compliant      bool
	Reason         string
	NextEligibleAt time.Time
}

// Recoverable reports whether a deferred retry makes sense. Missing or
// invalid state data is not recoverable by waiting.
func (d ComplianceDecision) Recoverable() bool {
	return !d.Compliant && !d.NextEligibleAt.IsZero()
}
