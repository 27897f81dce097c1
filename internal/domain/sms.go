package domain

import (
	"fmt"
	"time"

	"github.com/quotingfast/outreach/internal/errs"
)

// MessageType classifies an outbound SMS.
type MessageType string

const (
	MessageTypeFollowUp   MessageType = "followup"
	MessageTypeUrgent     MessageType = "urgent"
	MessageTypeLastChance MessageType = "lastchance"
	MessageTypeCustom     MessageType = "custom"
)

func (t MessageType) String() string {
	return string(t)
}

func (t MessageType) Validate() error {
	switch t {
	case MessageTypeFollowUp, MessageTypeUrgent, MessageTypeLastChance, MessageTypeCustom:
		return nil
	default:
		return fmt.Errorf("%w: %q", errs.ErrUnknownMessageType, t)
	}
}

// SendStatus is the lifecycle status of a dispatch attempt.
// Transitions are monotonic: PENDING -> SENT -> DELIVERED|FAILED, with
// DELIVERED and FAILED terminal. The DAO's guarded updates enforce the
// ordering.
type SendStatus string

const (
	SendStatusPending   SendStatus = "PENDING"
	SendStatusSent      SendStatus = "SENT"
	SendStatusDelivered SendStatus = "DELIVERED"
	SendStatusFailed    SendStatus = "FAILED"
)

func (s SendStatus) String() string {
	return string(s)
}

// SMSMessage is one attempt to deliver one message to one phone number.
type SMSMessage struct {
	ID           int64
	LeadID       int64 // zero for ad-hoc custom sends
	Phone        string
	Body         string
	Type         MessageType
	Status       SendStatus
	ProviderSID  string
	ErrorCode    string
	ErrorMessage string
	ScheduledFor time.Time // zero unless the send was deferred by compliance
	SentAt       time.Time
	DeliveredAt  time.Time
}

func (m *SMSMessage) Validate() error {
	if m.Phone == "" {
		return fmt.Errorf("%w: Phone = %q", errs.ErrInvalidParameter, m.Phone)
	}
	return m.Type.Validate()
}
