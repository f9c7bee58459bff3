package errorutil

import (
	"errors"
	"fmt"
)

// Error codes for bot operations. Codes prefixed with a user mistake are
// rejected immediately; the rest wrap platform failures.
const (
	CodeGuildContextMissing = "GUILD_CONTEXT_MISSING"
	CodeNotATicketChannel   = "NOT_A_TICKET_CHANNEL"
	CodeChannelCreateFailed = "CHANNEL_CREATE_FAILED"
	CodeChannelDeleteFailed = "CHANNEL_DELETE_FAILED"
	CodePermissionDenied    = "PERMISSION_DENIED"
	CodeRecorderError       = "RECORDER_ERROR"
	CodeTicketBusy          = "TICKET_BUSY"
	CodeInternalError       = "INTERNAL_ERROR"
)

// DomainError standardizes application errors surfaced to the invoking actor.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Notice is the short human-readable failure text shown to the invoking
// actor. Every invocation yields exactly one acknowledgement, so the notice
// must stand alone.
func (e *DomainError) Notice() string {
	return "❌ " + e.Message
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

func NewGuildContextMissing() error {
	return NewDomainError(CodeGuildContextMissing, "Tickets must be used in a server.", nil)
}

func NewNotATicketChannel() error {
	return NewDomainError(CodeNotATicketChannel, "Use this inside a ticket channel.", nil)
}

func NewChannelCreateFailed(err error) error {
	return &DomainError{
		Code:    CodeChannelCreateFailed,
		Message: "Could not create the ticket channel.",
		Err:     err,
	}
}

func NewChannelDeleteFailed(err error) error {
	return &DomainError{
		Code:    CodeChannelDeleteFailed,
		Message: "Could not delete the ticket channel.",
		Err:     err,
	}
}

func NewPermissionDenied(message string) error {
	return NewDomainError(CodePermissionDenied, message, nil)
}

func NewRecorderError(err error) error {
	return &DomainError{
		Code:    CodeRecorderError,
		Message: "Could not generate the ticket transcript.",
		Err:     err,
	}
}

func NewTicketBusy() error {
	return NewDomainError(CodeTicketBusy, "This ticket is already being closed.", nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:    CodeInternalError,
		Message: "Something went wrong.",
		Err:     err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return &DomainError{
		Code:    CodeInternalError,
		Message: "Something went wrong.",
		Err:     err,
	}
}

// HasCode reports whether err is a DomainError carrying the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
