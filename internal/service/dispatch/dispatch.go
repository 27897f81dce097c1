package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gotomicro/ego/core/elog"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/errs"
	"github.com/quotingfast/outreach/internal/event"
	"github.com/quotingfast/outreach/internal/pkg/idgen"
	"github.com/quotingfast/outreach/internal/repository"
	compliancesvc "github.com/quotingfast/outreach/internal/service/compliance"
	emergencysvc "github.com/quotingfast/outreach/internal/service/emergency"
	"github.com/quotingfast/outreach/internal/service/gateway"
	notificationsvc "github.com/quotingfast/outreach/internal/service/notification"
	suppressionsvc "github.com/quotingfast/outreach/internal/service/suppression"
	templatesvc "github.com/quotingfast/outreach/internal/service/template"
)

// Service is the dispatch orchestrator. Every outbound message passes the
// same strictly ordered gates: emergency stop, suppression registry, TCPA
// compliance. Only then is a body rendered, a dispatch attempt recorded
// and the gateway called. There is no automatic retry beyond the one
// compliance-triggered reschedule; a failed send is terminal until an
// external trigger dispatches again.
type Service interface {
	// DispatchLead sends the given message type to a lead. Compliance
	// deferrals are not errors: a pending attempt is recorded with the
	// next eligible send time and nil is returned.
	DispatchLead(ctx context.Context, leadID int64, messageType domain.MessageType) error

	// SendCustom sends an ad-hoc message to an arbitrary phone number,
	// subject to the same full gate. Operator-facing: gate rejections come
	// back as errors carrying the reason, and nothing is deferred.
	SendCustom(ctx context.Context, phone, state, body string) (domain.SMSMessage, error)

	// DispatchDue replays deferred pending attempts whose scheduled time
	// has arrived, re-running the full gate for each. Returns the number
	// of attempts handed to the gateway.
	DispatchDue(ctx context.Context, limit int) (int, error)

	// EscalatePermanentFailure records an implicit opt-out when a gateway
	// error code signals a permanently undeliverable number. No-op for
	// other codes. Shared with the inbound event processor, which applies
	// the same rule to delivery callbacks.
	EscalatePermanentFailure(ctx context.Context, phone, errorCode string) error
}

type service struct {
	leads        repository.LeadRepository
	messages     repository.SMSMessageRepository
	suppressions suppressionsvc.Service
	emergency    emergencysvc.Service
	compliance   compliancesvc.Service
	templates    templatesvc.Service
	gateway      gateway.Client
	broadcaster  event.Broadcaster
	alerts       notificationsvc.Service
	idGen        *idgen.Generator
	// carrier error codes treated as an implicit opt-out
	permanentFailureCodes map[string]struct{}
	logger                *elog.Component
}

func NewService(
	leads repository.LeadRepository,
	messages repository.SMSMessageRepository,
	suppressions suppressionsvc.Service,
	emergency emergencysvc.Service,
	compliance compliancesvc.Service,
	templates templatesvc.Service,
	gatewayClient gateway.Client,
	broadcaster event.Broadcaster,
	alerts notificationsvc.Service,
	permanentFailureCodes []string,
) Service {
	return &service{
		leads:                 leads,
		messages:              messages,
		suppressions:          suppressions,
		emergency:             emergency,
		compliance:            compliance,
		templates:             templates,
		gateway:               gatewayClient,
		broadcaster:           broadcaster,
		alerts:                alerts,
		idGen:                 idgen.NewGenerator(),
		permanentFailureCodes: gateway.PermanentFailureCodes(permanentFailureCodes),
		logger:                elog.DefaultLogger,
	}
}

func (s *service) DispatchLead(ctx context.Context, leadID int64, messageType domain.MessageType) error {
	if err := messageType.Validate(); err != nil {
		return err
	}

	halted, err := s.emergency.IsActive(ctx)
	if err != nil {
		return fmt.Errorf("check emergency stop: %w", err)
	}
	if halted {
		// No attempt row is recorded for an emergency-stop block.
		s.logger.Warn("emergency stop active, skipping dispatch",
			elog.Int64("leadID", leadID),
			elog.String("messageType", messageType.String()))
		return nil
	}

	lead, err := s.leads.GetByID(ctx, leadID)
	if err != nil {
		return err
	}

	suppressed, err := s.suppressions.IsSuppressed(ctx, lead.Phone)
	if err != nil {
		return fmt.Errorf("check suppression: %w", err)
	}
	if suppressed {
		// Routine outcome: no attempt row, no retry, no alarm.
		s.logger.Info("phone suppressed, skipping dispatch",
			elog.Int64("leadID", leadID),
			elog.String("phone", lead.Phone))
		return nil
	}

	decision := s.compliance.Evaluate(lead.Phone, lead.State, time.Now())
	if !decision.Compliant {
		return s.handleNonCompliant(ctx, lead, messageType, decision)
	}

	body, err := s.templates.Render(messageType, lead.FirstName, lead.QFCode)
	if err != nil {
		return err
	}

	msg, err := s.messages.Create(ctx, domain.SMSMessage{
		ID:     s.idGen.GenerateID(lead.Phone, time.Time{}),
		LeadID: lead.ID,
		Phone:  lead.Phone,
		Body:   body,
		Type:   messageType,
		Status: domain.SendStatusPending,
	})
	if err != nil {
		return err
	}

	_, err = s.deliver(ctx, msg, event.TypeSMSSent)
	return err
}

func (s *service) SendCustom(ctx context.Context, phone, state, body string) (domain.SMSMessage, error) {
	normalized := compliancesvc.NormalizePhone(phone)

	halted, err := s.emergency.IsActive(ctx)
	if err != nil {
		return domain.SMSMessage{}, fmt.Errorf("check emergency stop: %w", err)
	}
	if halted {
		return domain.SMSMessage{}, fmt.Errorf("%w", errs.ErrEmergencyStopActive)
	}

	suppressed, err := s.suppressions.IsSuppressed(ctx, normalized)
	if err != nil {
		return domain.SMSMessage{}, fmt.Errorf("check suppression: %w", err)
	}
	if suppressed {
		return domain.SMSMessage{}, fmt.Errorf("%w: %s", errs.ErrPhoneSuppressed, normalized)
	}

	decision := s.compliance.Evaluate(normalized, state, time.Now())
	if !decision.Compliant {
		// Ad-hoc sends are operator-driven: reject with the reason rather
		// than deferring on their behalf.
		return domain.SMSMessage{}, fmt.Errorf("%w: %s", errs.ErrNotCompliant, decision.Reason)
	}

	msg, err := s.messages.Create(ctx, domain.SMSMessage{
		ID:     s.idGen.GenerateID(normalized, time.Time{}),
		Phone:  normalized,
		Body:   body,
		Type:   domain.MessageTypeCustom,
		Status: domain.SendStatusPending,
	})
	if err != nil {
		return domain.SMSMessage{}, err
	}

	return s.deliver(ctx, msg, event.TypeCustomSMSSent)
}

func (s *service) DispatchDue(ctx context.Context, limit int) (int, error) {
	due, err := s.messages.FindDue(ctx, time.Now(), limit)
	if err != nil {
		return 0, fmt.Errorf("scan due messages: %w", err)
	}

	sent := 0
	for i := range due {
		msg := due[i]

		halted, err := s.emergency.IsActive(ctx)
		if err != nil {
			return sent, fmt.Errorf("check emergency stop: %w", err)
		}
		if halted {
			// Leave the rest of the batch pending; it will be picked up
			// after the stop is lifted.
			s.logger.Warn("emergency stop active, deferring remaining due messages",
				elog.Int("remaining", len(due)-i))
			return sent, nil
		}

		delivered, err := s.dispatchDeferred(ctx, msg)
		if err != nil {
			if errors.Is(err, errs.ErrSendFailed) {
				s.logger.Warn("deferred send failed",
					elog.Int64("messageID", msg.ID),
					elog.FieldErr(err))
				continue
			}
			return sent, err
		}
		if delivered {
			sent++
		}
	}
	return sent, nil
}

// dispatchDeferred re-runs the full gate for a single deferred attempt.
// Gate outcomes terminate or reschedule the row without a gateway call;
// only infrastructure failures (and ErrSendFailed transport errors) come
// back as errors. Returns whether the message reached the gateway.
func (s *service) dispatchDeferred(ctx context.Context, msg domain.SMSMessage) (bool, error) {
	lead, err := s.leads.GetByID(ctx, msg.LeadID)
	if err != nil {
		if errors.Is(err, errs.ErrLeadNotFound) {
			return false, s.messages.MarkFailed(ctx, msg.ID, "", "lead missing for deferred send")
		}
		return false, err
	}

	suppressed, err := s.suppressions.IsSuppressed(ctx, msg.Phone)
	if err != nil {
		return false, fmt.Errorf("check suppression: %w", err)
	}
	if suppressed {
		// Opted out while the message waited. Terminate the attempt.
		return false, s.messages.MarkFailed(ctx, msg.ID, "", "phone suppressed before scheduled send")
	}

	decision := s.compliance.Evaluate(msg.Phone, lead.State, time.Now())
	if !decision.Compliant {
		if decision.Recoverable() {
			return false, s.messages.Reschedule(ctx, msg.ID, decision.NextEligibleAt)
		}
		return false, s.messages.MarkFailed(ctx, msg.ID, "", decision.Reason)
	}

	// Body is rendered at actual send time, not at deferral time.
	body, err := s.templates.Render(msg.Type, lead.FirstName, lead.QFCode)
	if err != nil {
		return false, err
	}
	if err := s.messages.UpdateBody(ctx, msg.ID, body); err != nil {
		return false, err
	}
	msg.Body = body

	_, err = s.deliver(ctx, msg, event.TypeSMSSent)
	return err == nil, err
}

func (s *service) handleNonCompliant(ctx context.Context, lead domain.Lead, messageType domain.MessageType, decision domain.ComplianceDecision) error {
	if decision.Recoverable() {
		// Defer: record a pending attempt due at the next eligible time.
		// The body is rendered when the scheduler replays it.
		_, err := s.messages.Create(ctx, domain.SMSMessage{
			ID:           s.idGen.GenerateID(lead.Phone, decision.NextEligibleAt),
			LeadID:       lead.ID,
			Phone:        lead.Phone,
			Type:         messageType,
			Status:       domain.SendStatusPending,
			ScheduledFor: decision.NextEligibleAt,
		})
		if err != nil {
			return err
		}
		s.logger.Info("dispatch deferred by compliance",
			elog.Int64("leadID", lead.ID),
			elog.String("reason", decision.Reason),
			elog.String("nextEligibleAt", decision.NextEligibleAt.Format(time.RFC3339)))
		return nil
	}

	// No next eligible time means the lead's state data is unusable;
	// waiting will not fix it.
	if err := s.alerts.Notify(ctx, domain.Alert{
		Type:     domain.AlertTypeCompliance,
		Severity: domain.AlertSeverityWarning,
		Message:  fmt.Sprintf("Dispatch blocked for lead %d: %s", lead.ID, decision.Reason),
		Metadata: map[string]any{
			"leadID": lead.ID,
			"phone":  lead.Phone,
			"state":  lead.State,
		},
	}); err != nil {
		s.logger.Error("failed to notify compliance block",
			elog.FieldErr(err))
	}
	return fmt.Errorf("%w: %s", errs.ErrNotCompliant, decision.Reason)
}

// deliver hands an already-recorded pending attempt to the gateway and
// finalizes the row. Provider rejections are recorded outcomes, not
// errors; transport failures wrap ErrSendFailed.
func (s *service) deliver(ctx context.Context, msg domain.SMSMessage, eventType string) (domain.SMSMessage, error) {
	result, err := s.gateway.Send(ctx, msg.Phone, msg.Body)
	if err != nil {
		if markErr := s.messages.MarkFailed(ctx, msg.ID, "", err.Error()); markErr != nil {
			return domain.SMSMessage{}, markErr
		}
		msg.Status = domain.SendStatusFailed
		msg.ErrorMessage = err.Error()
		s.broadcast(ctx, eventType, msg)
		return msg, fmt.Errorf("%w: %w", errs.ErrSendFailed, err)
	}

	if result.Success {
		if err := s.messages.MarkSent(ctx, msg.ID, result.ProviderSID); err != nil {
			return domain.SMSMessage{}, err
		}
		msg.Status = domain.SendStatusSent
		msg.ProviderSID = result.ProviderSID
		msg.SentAt = time.Now()
		s.broadcast(ctx, eventType, msg)
		return msg, nil
	}

	if err := s.messages.MarkFailed(ctx, msg.ID, result.ErrorCode, result.ErrorMessage); err != nil {
		return domain.SMSMessage{}, err
	}
	msg.Status = domain.SendStatusFailed
	msg.ErrorCode = result.ErrorCode
	msg.ErrorMessage = result.ErrorMessage

	if err := s.EscalatePermanentFailure(ctx, msg.Phone, result.ErrorCode); err != nil {
		return domain.SMSMessage{}, err
	}
	s.broadcast(ctx, eventType, msg)
	return msg, nil
}

// EscalatePermanentFailure treats carrier-signaled permanent failures as an
// implicit opt-out: the number is added to the registry and operators are
// notified.
func (s *service) EscalatePermanentFailure(ctx context.Context, phone, errorCode string) error {
	if _, ok := s.permanentFailureCodes[errorCode]; !ok {
		return nil
	}
	err := s.suppressions.AddOptOut(ctx, phone, domain.OptOutMethodAutoError,
		fmt.Sprintf("Auto opt-out due to error %s", errorCode))
	if err != nil {
		return fmt.Errorf("record auto opt-out: %w", err)
	}
	if err := s.alerts.Notify(ctx, domain.Alert{
		Type:     domain.AlertTypeCompliance,
		Severity: domain.AlertSeverityError,
		Message:  fmt.Sprintf("Auto opt-out for %s: carrier error %s", phone, errorCode),
		Metadata: map[string]any{
			"phone":     phone,
			"errorCode": errorCode,
		},
	}); err != nil {
		s.logger.Error("failed to notify auto opt-out",
			elog.FieldErr(err))
	}
	return nil
}

func (s *service) broadcast(ctx context.Context, eventType string, msg domain.SMSMessage) {
	if err := s.broadcaster.Publish(ctx, eventType, map[string]any{
		"leadId":      msg.LeadID,
		"phone":       msg.Phone,
		"status":      msg.Status,
		"messageType": msg.Type,
	}); err != nil {
		s.logger.Warn("failed to broadcast dispatch event",
			elog.String("eventType", eventType),
			elog.FieldErr(err))
	}
}
