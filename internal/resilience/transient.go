package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"
)

// transientErr marks an error as retryable regardless of its text.
type transientErr struct{ err error }

func (e *transientErr) Error() string { return e.err.Error() }
func (e *transientErr) Unwrap() error { return e.err }

// MarkTransient flags err as retryable for IsTransient.
func MarkTransient(err error) error {
	if err == nil {
		return nil
	}
	return &transientErr{err: err}
}

// apiFailureHints are substrings of error text from the Anthropic API and
// the Bolt driver that indicate a retry is worthwhile.
var apiFailureHints = []string{
	"rate_limit_error",
	"rate limit",
	"too many requests",
	"overloaded",
	"internal server error",
	"bad gateway",
	"service unavailable",
	"gateway timeout",
	"connection reset by peer",
	"broken pipe",
	"no such host",
	"tls handshake timeout",
	"i/o timeout",
}

// IsTransient reports whether err looks like a momentary failure: an error
// marked via MarkTransient, a network timeout, a refused or reset
// connection, or a message matching a known API failure mode.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var marked *transientErr
	if errors.As(err, &marked) {
		return true
	}

	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	for _, errno := range []syscall.Errno{syscall.ECONNRESET, syscall.ECONNREFUSED, syscall.ECONNABORTED} {
		if errors.Is(err, errno) {
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	for _, hint := range apiFailureHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
