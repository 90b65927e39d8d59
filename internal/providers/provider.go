package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/jstittsworth/fan-faceoff/internal/sports"
)

// ErrorKind classifies provider failures.
type ErrorKind int

const (
	// Unavailable covers network errors, timeouts, and 5xx responses.
	Unavailable ErrorKind = iota
	// BadResponse covers non-success statuses and payloads that cannot
	// be decoded into the expected shape.
	BadResponse
)

func (k ErrorKind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case BadResponse:
		return "bad_response"
	default:
		return "unknown"
	}
}

// Error is the only error type a provider client returns. The aggregator's
// fallback chain inspects failures instead of unwinding on them, so clients
// must never panic or leak transport errors directly.
type Error struct {
	Provider string
	Kind     ErrorKind
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s provider %s: %v", e.Provider, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s provider %s", e.Provider, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err is a provider-boundary failure
// and returns it if so.
func IsProviderError(err error) (*Error, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Client fetches the day's scheduled contests for a sport from one
// upstream and normalizes them into canonical events. Implementations do
// not retry; retry policy belongs to the aggregator (which currently does
// zero retries and relies on the fallback chain plus the next request).
type Client interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// Supports reports whether this provider carries data for the sport.
	Supports(sport sports.Sport) bool
	// FetchEvents returns normalized events. Any failure is a *Error.
	FetchEvents(ctx context.Context, sport sports.Sport) ([]sports.GameEvent, error)
}
