package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for status mapping and metrics.
type Kind int

const (
	// KindValidation covers client-caused failures: bad ids, malformed input.
	KindValidation Kind = iota + 1
	// KindTransport covers upstream failures: unreachable source, bad URL, HTTP errors.
	KindTransport
	// KindTimeout covers upstream requests that exceeded their deadline.
	KindTimeout
	// KindPayload covers upstream responses that could not be decoded.
	KindPayload
	// KindLookup covers ids missing from a fetched collection.
	KindLookup
	// KindProcessing covers internal failures: config gaps, document generation.
	KindProcessing
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	case KindPayload:
		return "payload"
	case KindLookup:
		return "lookup"
	case KindProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// AppError represents an application error
type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindTransport, KindPayload:
		return http.StatusBadGateway
	case KindTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Error constructors
func Validation(message string, err error) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Err: err}
}

func Transport(message string, err error) *AppError {
	return &AppError{Kind: KindTransport, Message: message, Err: err}
}

func Timeout(message string, err error) *AppError {
	return &AppError{Kind: KindTimeout, Message: message, Err: err}
}

func Payload(message string, err error) *AppError {
	return &AppError{Kind: KindPayload, Message: message, Err: err}
}

func Lookup(resource string, err error) *AppError {
	return &AppError{
		Kind:    KindLookup,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func Processing(message string, err error) *AppError {
	return &AppError{Kind: KindProcessing, Message: message, Err: err}
}

// KindOf returns the kind of err, or 0 when err carries no AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return 0
}
