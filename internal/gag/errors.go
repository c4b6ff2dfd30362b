package gag

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a fetch failure.
type ErrorKind string

// Fetch error kinds.
const (
	KindNetwork     ErrorKind = "network"
	KindRateLimited ErrorKind = "rate_limited"
	KindServerError ErrorKind = "server_error"
	KindTimeout     ErrorKind = "timeout"
	KindParseError  ErrorKind = "parse_error"
)

// ErrDailyBudgetExhausted is returned when the rolling daily call budget
// has been used up.
var ErrDailyBudgetExhausted = errors.New("daily API budget exhausted")

// FetchError wraps an upstream fetch failure with a classification the
// monitor loop uses for logging and backoff decisions.
type FetchError struct {
	Kind   ErrorKind
	Status int // HTTP status when one was received, else 0
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetching stock (%s, status %d): %v", e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("fetching stock (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf extracts the error kind from err, or "" when err is not a
// FetchError.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
