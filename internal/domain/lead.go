package domain

import (
	"fmt"
	"time"

	"github.com/quotingfast/outreach/internal/errs"
)

// Lead is the canonical normalized lead. Webhook payload parsing and
// validation happen upstream; by the time a lead reaches the dispatch
// pipeline its phone is already in normalized form.
type Lead struct {
	ID        int64
	QFCode    string // public quote-page code, e.g. QF482913
	FirstName string
	LastName  string
	Phone     string
	State     string
	ZipCode   string
	CreatedAt time.Time
}

func (l *Lead) Validate() error {
	if l.QFCode == "" {
		return fmt.Errorf("%w: QFCode = %q", errs.ErrInvalidParameter, l.QFCode)
	}
	if l.Phone == "" {
		return fmt.Errorf("%w: Phone = %q", errs.ErrInvalidParameter, l.Phone)
	}
	if l.FirstName == "" {
		return fmt.Errorf("%w: FirstName = %q", errs.ErrInvalidParameter, l.FirstName)
	}
	return nil
}
