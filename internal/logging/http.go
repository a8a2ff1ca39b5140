package logging

import (
	"net/http"
	"strings"
	"time"
)

// maxLoggedBody caps how much of a request/response body is logged
const maxLoggedBody = 4096

// sensitiveHeaders are redacted before logging. The API key must never
// appear in any log output.
var sensitiveHeaders = map[string]bool{
	"x-api-key":     true,
	"authorization": true,
	"cookie":        true,
}

// HTTPLogger provides request/response logging for the API client
type HTTPLogger struct {
	logger *Logger
}

// NewHTTPLogger creates an HTTP logger on top of a leveled logger
func NewHTTPLogger(logger *Logger) *HTTPLogger {
	return &HTTPLogger{logger: logger}
}

// LogRequest logs an outgoing HTTP request with sensitive headers redacted
func (h *HTTPLogger) LogRequest(req *http.Request, body []byte) {
	headers := make(map[string]string, len(req.Header))
	for k, v := range req.Header {
		if sensitiveHeaders[strings.ToLower(k)] {
			headers[k] = "[REDACTED]"
		} else if len(v) > 0 {
			headers[k] = v[0]
		}
	}

	h.logger.Debug("HTTP request", Fields{
		"method":    req.Method,
		"url":       req.URL.String(),
		"headers":   headers,
		"body":      truncate(body),
		"body_size": len(body),
	})
}

// LogResponse logs an HTTP response
func (h *HTTPLogger) LogResponse(resp *http.Response, body []byte, duration time.Duration) {
	h.logger.Debug("HTTP response", Fields{
		"status":      resp.StatusCode,
		"duration_ms": duration.Milliseconds(),
		"body":        truncate(body),
		"body_size":   len(body),
	})
}

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "...[truncated]"
	}
	return string(body)
}
