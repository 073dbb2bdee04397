package force

import (
	"errors"
	"fmt"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired       = errors.New("config is required")
	ErrSessionRequired      = errors.New("session is required")
	ErrEndpointRequired     = errors.New("instance URL is required")
	ErrCredentialsRequired  = errors.New("username and password or an existing session are required")
	ErrZipExtensionRequired = errors.New("destination path must have a .zip extension")
	ErrUnknownOperation     = errors.New("unknown metadata operation")
	ErrAsyncIDMissing       = errors.New("response did not contain an async process id")
	ErrListQueryRequired    = errors.New("at least one list query is required")
	ErrTooManyListQueries   = errors.New("too many list queries in a single call")
)

// Session-fault code surfaced by the platform when a token has expired or
// been revoked.
const faultCodeInvalidSession = "INVALID_SESSION_ID"

// TransportError reports a connectivity-level failure (DNS, TLS, timeout,
// connection reset). It is fatal to the current call; nothing is retried at
// this layer beyond the transport's own policy.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// MalformedResponseError reports a response body that did not parse as a
// SOAP document, or that lacked the expected response element.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ProtocolFaultError is a SOAP-level fault (bad auth, malformed request,
// rate limiting surfaced as a fault). It is checked before any result and
// always short-circuits.
type ProtocolFaultError struct {
	Code    string
	Message string
}

func (e *ProtocolFaultError) Error() string {
	return e.Code + ": " + e.Message
}

// ApplicationFaultError is a fault embedded inside a nominally successful
// envelope: the operation was accepted but a submitted component was
// rejected by business logic. Fatal at the call level even when it names
// only one of several components.
type ApplicationFaultError struct {
	Code    string
	Message string
}

func (e *ApplicationFaultError) Error() string {
	return e.Code + ": " + e.Message
}

// IsTransport checks if the error is a transport-level failure.
func IsTransport(err error) bool {
	var te *TransportError

	return errors.As(err, &te)
}

// IsProtocolFault checks if the error is a SOAP-level fault.
func IsProtocolFault(err error) bool {
	var pe *ProtocolFaultError

	return errors.As(err, &pe)
}

// IsApplicationFault checks if the error is an application-level result
// fault.
func IsApplicationFault(err error) bool {
	var ae *ApplicationFaultError

	return errors.As(err, &ae)
}

// IsSessionExpired checks if the error is the platform's invalid-session
// fault, the usual signal to log in again.
func IsSessionExpired(err error) bool {
	var pe *ProtocolFaultError
	if errors.As(err, &pe) {
		return pe.Code == faultCodeInvalidSession
	}

	return false
}
