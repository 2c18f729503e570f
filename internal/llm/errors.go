package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

var (
	// ErrUnavailable covers transport and service-side failures.
	ErrUnavailable = errors.New("generation unavailable")
	// ErrTimeout covers exceeding the bounded per-call wait.
	ErrTimeout = errors.New("generation timeout")
	// ErrMalformed covers structured output that fails schema validation.
	ErrMalformed = errors.New("generation malformed")
)

// ClassifyTransport wraps a raw provider error with the matching sentinel so
// callers can switch on errors.Is without knowing the provider.
func ClassifyTransport(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrUnavailable) || errors.Is(err, ErrTimeout) || errors.Is(err, ErrMalformed) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "client.timeout") || strings.Contains(msg, "deadline") {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// Transient reports whether a failed call may succeed on a retry.
func Transient(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrUnavailable)
}
