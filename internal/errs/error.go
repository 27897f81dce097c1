package errs

import (
	"errors"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")

	ErrLeadNotFound  = errors.New("lead not found")
	ErrLeadDuplicate = errors.New("lead already exists")

	ErrMessageNotFound     = errors.New("sms message not found")
	ErrMessageDuplicate    = errors.New("sms message already exists")
	ErrCreateMessageFailed = errors.New("failed to create sms message")
	ErrSendFailed          = errors.New("failed to send sms message")

	ErrUnknownMessageType = errors.New("unknown message type")

	ErrPhoneSuppressed     = errors.New("phone number is opted out or suppressed")
	ErrNotCompliant        = errors.New("tcpa compliance check failed")
	ErrEmergencyStopActive = errors.New("sms sending is halted by emergency stop")
)
