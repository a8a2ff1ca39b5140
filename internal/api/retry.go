package api

import (
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// RetryableStatusCodes are HTTP status codes that should trigger a retry.
// Authentication and other client errors are deliberately absent: retrying
// a bad credential or a malformed request only wastes the user's time.
var RetryableStatusCodes = []int{
	http.StatusTooManyRequests,     // 429 - Rate limited
	http.StatusInternalServerError, // 500 - Internal server error (transient)
	http.StatusBadGateway,          // 502 - Bad gateway
	http.StatusServiceUnavailable,  // 503 - Service unavailable
	http.StatusGatewayTimeout,      // 504 - Gateway timeout
	529,                            // Anthropic: API temporarily overloaded
}

// ShouldRetry checks if the status code indicates a transient failure.
func ShouldRetry(statusCode int) bool {
	for _, code := range RetryableStatusCodes {
		if statusCode == code {
			return true
		}
	}
	return false
}

// IsTransient reports whether a transport error is worth retrying:
// network timeouts, connection resets, and truncated responses.
// Context cancellation is not transient; the caller checks that first.
func IsTransient(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	return false
}

// Backoff returns the delay for a given attempt number: exponential
// doubling from the initial backoff, capped at the maximum.
func Backoff(attempt int, initial, max time.Duration) time.Duration {
	backoff := initial
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff > max {
			return max
		}
	}
	return backoff
}

// RetryDelay picks the delay before the next attempt. A server-provided
// Retry-After hint wins over the computed backoff, but both are bounded by
// the backoff cap so a hostile or confused server cannot stall the session.
func RetryDelay(attempt int, retryAfter, initial, max time.Duration) time.Duration {
	if retryAfter > 0 {
		if retryAfter > max {
			return max
		}
		return retryAfter
	}
	return Backoff(attempt, initial, max)
}

// parseRetryAfter parses a Retry-After header value, which is either a
// delay in seconds or an HTTP-date. Returns 0 when absent or unparseable.
func parseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
