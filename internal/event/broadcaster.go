package event

import "context"

// Dashboard event types consumed by the real-time dashboard channel.
const (
	TypeNewLead         = "new_lead"
	TypeSMSSent         = "sms_sent"
	TypeSMSStatusUpdate = "sms_status_update"
	TypeCustomSMSSent   = "custom_sms_sent"
	TypeEmergencyStop   = "emergency_stop"
	TypeSystemAlert     = "system_alert"
	TypeOptOut          = "opt_out"
)

// Broadcaster publishes fire-and-forget events to the external dashboard
// channel. No acknowledgement is expected; callers log publish errors and
// never fail a dispatch over them.
type Broadcaster interface {
	Publish(ctx context.Context, eventType string, payload any) error
}
