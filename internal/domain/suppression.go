package domain

import (
	"fmt"
	"time"

	"github.com/quotingfast/outreach/internal/errs"
)

// OptOutMethod indicates how an opt-out was recorded.
type OptOutMethod string

const (
	// OptOutMethodReply is a recipient replying with an opt-out keyword.
	OptOutMethodReply OptOutMethod = "sms_reply"
	// OptOutMethodManual is an operator-entered opt-out.
	OptOutMethodManual OptOutMethod = "manual"
	// OptOutMethodAutoError is inferred from a carrier-signaled
	// permanent-failure error code.
	OptOutMethodAutoError OptOutMethod = "auto_error"
)

func (m OptOutMethod) String() string {
	return string(m)
}

func (m OptOutMethod) Validate() error {
	switch m {
	case OptOutMethodReply, OptOutMethodManual, OptOutMethodAutoError:
		return nil
	default:
		return fmt.Errorf("%w: OptOutMethod = %q", errs.ErrInvalidParameter, m)
	}
}

// OptOut is an explicit recipient request to stop receiving messages.
// Created once per normalized phone, never deleted (legal retention).
type OptOut struct {
	ID              int64
	Phone           string
	Method          OptOutMethod
	OriginalMessage string
	CreatedAt       time.Time
}

// Suppression is an externally imported do-not-message entry. It converges
// with OptOut on the same enforcement check.
type Suppression struct {
	ID        int64
	Phone     string
	Reason    string
	Source    string
	CreatedAt time.Time
}

// OptOutStats are the opt-out counts surfaced to operators.
type OptOutStats struct {
	Today    int64
	ThisWeek int64
	Total    int64
}
