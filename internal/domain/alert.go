package domain

// AlertSeverity grades operator alerts.
type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityError    AlertSeverity = "error"
	AlertSeverityCritical AlertSeverity = "critical"
)

func (s AlertSeverity) String() string {
	return string(s)
}

// Urgent reports whether the alert warrants paging the on-call admin phone
// in addition to being persisted and broadcast.
func (s AlertSeverity) Urgent() bool {
	return s == AlertSeverityError || s == AlertSeverityCritical
}

// AlertType categorizes operator alerts.
type AlertType string

const (
	AlertTypeCompliance   AlertType = "compliance"
	AlertTypeDeliveryRate AlertType = "delivery_rate"
	AlertTypeError        AlertType = "error"
	AlertTypeHealthCheck  AlertType = "health_check"
)

// Alert is an operator notification.
type Alert struct {
	Type     AlertType
	Severity AlertSeverity
	Message  string
	Metadata map[string]any
}
