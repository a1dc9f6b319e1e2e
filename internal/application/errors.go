package application

import "strings"

// Kind is the closed set of failure categories the services can return. The
// HTTP gateway maps kinds to status codes through an explicit table; nothing
// inspects error identity at runtime.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicate
	KindAuthentication
	KindUnauthenticated
	KindInvalidSession
	KindNotFound
	KindInvalidState
)

// Error is the only error type that crosses the service boundary.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
}

func (e *Error) Error() string { return e.Message }

// NewValidationError concatenates one message per violated field, keeping the
// field breakdown in Details.
func NewValidationError(details map[string]string) *Error {
	msgs := make([]string, 0, len(details))
	for field, msg := range details {
		msgs = append(msgs, field+" "+msg)
	}
	return &Error{Kind: KindValidation, Message: strings.Join(msgs, "; "), Details: details}
}

func NewDuplicateError(msg string) *Error {
	return &Error{Kind: KindDuplicate, Message: msg}
}

func NewAuthenticationError(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func NewUnauthenticatedError(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Message: msg}
}

func NewInvalidSessionError(msg string) *Error {
	return &Error{Kind: KindInvalidSession, Message: msg}
}

func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func NewInvalidStateError(msg string) *Error {
	return &Error{Kind: KindInvalidState, Message: msg}
}

func NewInternalError() *Error {
	return &Error{Kind: KindInternal, Message: "internal server error"}
}
