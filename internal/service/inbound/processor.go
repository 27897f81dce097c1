package inbound

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gotomicro/ego/core/elog"

	"github.com/quotingfast/outreach/internal/domain"
	"github.com/quotingfast/outreach/internal/errs"
	"github.com/quotingfast/outreach/internal/event"
	"github.com/quotingfast/outreach/internal/repository"
	compliancesvc "github.com/quotingfast/outreach/internal/service/compliance"
	dispatchsvc "github.com/quotingfast/outreach/internal/service/dispatch"
	"github.com/quotingfast/outreach/internal/service/gateway"
	notificationsvc "github.com/quotingfast/outreach/internal/service/notification"
	suppressionsvc "github.com/quotingfast/outreach/internal/service/suppression"
)

const optOutConfirmation = "You have been successfully unsubscribed. You will not receive any more messages from us."

// Whole-body match after trimming, case-insensitive. Carrier-standard
// opt-out keyword set.
var optOutKeywords = map[string]struct{}{
	"STOP":        {},
	"STOPALL":     {},
	"UNSUBSCRIBE": {},
	"CANCEL":      {},
	"END":         {},
	"QUIT":        {},
}

// Service consumes gateway callbacks: inbound replies (opt-out keyword
// detection) and delivery status updates. Processing is idempotent: a
// duplicate callback neither duplicates suppression entries nor regresses
// a message status.
type Service interface {
	// HandleInboundMessage processes a recipient reply. Bodies matching an
	// opt-out keyword record an opt-out, notify operators and send a
	// one-time confirmation; anything else is ignored.
	HandleInboundMessage(ctx context.Context, fromPhone, body string) error

	// HandleStatusCallback applies a delivery status update to the
	// matching dispatch attempt, escalating permanent-failure codes the
	// same way the orchestrator does.
	HandleStatusCallback(ctx context.Context, providerSID, status, errorCode string) error
}

type service struct {
	messages     repository.SMSMessageRepository
	suppressions suppressionsvc.Service
	dispatch     dispatchsvc.Service
	gateway      gateway.Client
	broadcaster  event.Broadcaster
	alerts       notificationsvc.Service
	logger       *elog.Component
}

func NewService(
	messages repository.SMSMessageRepository,
	suppressions suppressionsvc.Service,
	dispatch dispatchsvc.Service,
	gatewayClient gateway.Client,
	broadcaster event.Broadcaster,
	alerts notificationsvc.Service,
) Service {
	return &service{
		messages:     messages,
		suppressions: suppressions,
		dispatch:     dispatch,
		gateway:      gatewayClient,
		broadcaster:  broadcaster,
		alerts:       alerts,
		logger:       elog.DefaultLogger,
	}
}

func (s *service) HandleInboundMessage(ctx context.Context, fromPhone, body string) error {
	if !isOptOutMessage(body) {
		// Not an opt-out; this component does not auto-reply to anything
		// else.
		return nil
	}

	phone := compliancesvc.NormalizePhone(fromPhone)

	alreadyOptedOut, err := s.suppressions.IsOptedOut(ctx, phone)
	if err != nil {
		return fmt.Errorf("check opt-out: %w", err)
	}

	if err := s.suppressions.AddOptOut(ctx, phone, domain.OptOutMethodReply, body); err != nil {
		return err
	}

	if err := s.alerts.Notify(ctx, domain.Alert{
		Type:     domain.AlertTypeCompliance,
		Severity: domain.AlertSeverityInfo,
		Message:  fmt.Sprintf("New opt-out: %s via %s", phone, domain.OptOutMethodReply),
		Metadata: map[string]any{
			"phone":   phone,
			"method":  domain.OptOutMethodReply,
			"message": body,
		},
	}); err != nil {
		s.logger.Error("failed to notify opt-out",
			elog.FieldErr(err))
	}

	if err := s.broadcaster.Publish(ctx, event.TypeOptOut, map[string]any{
		"phone":  phone,
		"method": domain.OptOutMethodReply,
	}); err != nil {
		s.logger.Warn("failed to broadcast opt-out event",
			elog.FieldErr(err))
	}

	// Confirmation goes out once: a repeat STOP from an already opted-out
	// number is a no-op all the way down.
	if alreadyOptedOut {
		return nil
	}
	if _, err := s.gateway.Send(ctx, phone, optOutConfirmation); err != nil {
		s.logger.Error("failed to send opt-out confirmation",
			elog.String("phone", phone),
			elog.FieldErr(err))
	}
	return nil
}

func (s *service) HandleStatusCallback(ctx context.Context, providerSID, status, errorCode string) error {
	msg, err := s.messages.GetByProviderSID(ctx, providerSID)
	if err != nil {
		if errors.Is(err, errs.ErrMessageNotFound) {
			// Unknown SID: nothing of ours to update.
			s.logger.Warn("status callback for unknown provider sid",
				elog.String("providerSID", providerSID),
				elog.String("status", status))
			return nil
		}
		return err
	}

	switch strings.ToLower(status) {
	case "delivered":
		if err := s.messages.MarkDelivered(ctx, msg.ID); err != nil {
			return err
		}
	case "failed", "undelivered":
		if err := s.messages.MarkFailed(ctx, msg.ID, errorCode, "delivery failed"); err != nil {
			return err
		}
		if err := s.dispatch.EscalatePermanentFailure(ctx, msg.Phone, errorCode); err != nil {
			return err
		}
	default:
		// Intermediate provider states (queued, sending, sent) carry no
		// transition for us.
		return nil
	}

	if err := s.broadcaster.Publish(ctx, event.TypeSMSStatusUpdate, map[string]any{
		"messageId": msg.ID,
		"phone":     msg.Phone,
		"status":    status,
	}); err != nil {
		s.logger.Warn("failed to broadcast status update",
			elog.FieldErr(err))
	}
	return nil
}

func isOptOutMessage(body string) bool {
	_, ok := optOutKeywords[strings.ToUpper(strings.TrimSpace(body))]
	return ok
}
