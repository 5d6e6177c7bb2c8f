// Package failure turns gateway errors into user-facing messages.
package failure

import (
	"adventcal/internal/gateway"
	"adventcal/internal/metrics"
	"context"
	"errors"
	"log"
	"net/http"
)

// Kind classifies a failed gateway call
type Kind string

const (
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindServerError  Kind = "server_error"
	KindUnclassified Kind = "unclassified"
)

const (
	MsgUnauthorized = "Authentication failed. Please log in again."
	MsgForbidden    = "You don't have permission to perform this action."
	MsgNotFound     = "The requested resource was not found."
	MsgServerError  = "Server error. Please try again later."
	MsgUnexpected   = "An unexpected error occurred."
)

// Error is a normalized gateway failure. Message is safe to show to users.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// Classify maps any gateway error to a normalized failure
func Classify(err error) *Error {
	var already *Error
	if errors.As(err, &already) {
		return already
	}

	var se *gateway.StatusError
	if !errors.As(err, &se) {
		return &Error{Kind: KindUnclassified, Message: MsgUnexpected, Err: err}
	}
	switch {
	case se.StatusCode == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, Message: MsgUnauthorized, Err: err}
	case se.StatusCode == http.StatusForbidden:
		return &Error{Kind: KindForbidden, Message: MsgForbidden, Err: err}
	case se.StatusCode == http.StatusNotFound:
		return &Error{Kind: KindNotFound, Message: MsgNotFound, Err: err}
	case se.StatusCode >= 500:
		return &Error{Kind: KindServerError, Message: MsgServerError, Err: err}
	case se.Message != "":
		return &Error{Kind: KindUnclassified, Message: se.Message, Err: err}
	default:
		return &Error{Kind: KindUnclassified, Message: MsgUnexpected, Err: err}
	}
}

// Call runs one gateway call and normalizes its failure
func Call[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		var zero T
		return zero, normalize(err)
	}
	return v, nil
}

// Do is Call for operations without a result
func Do(ctx context.Context, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		return normalize(err)
	}
	return nil
}

func normalize(err error) *Error {
	log.Printf("[gateway] error: %v", err)
	f := Classify(err)
	metrics.GatewayFailures.WithLabelValues(string(f.Kind)).Inc()
	return f
}

// KindOf returns the failure kind of err, or "" if it is not normalized
func KindOf(err error) Kind {
	var f *Error
	if errors.As(err, &f) {
		return f.Kind
	}
	return ""
}
