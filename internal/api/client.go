package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ChrisBushman/tiger-claude/internal/chat"
	"github.com/ChrisBushman/tiger-claude/internal/config"
	"github.com/ChrisBushman/tiger-claude/internal/constants"
	"github.com/ChrisBushman/tiger-claude/internal/logging"
)

// MessagesRequest is the Messages API request body.
type MessagesRequest struct {
	Model     string      `json:"model"`
	MaxTokens int         `json:"max_tokens"`
	Messages  []chat.Turn `json:"messages"`
}

// ContentBlock is one block of the response content array.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Usage reports token consumption for one request.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// MessagesResponse is the Messages API response body.
type MessagesResponse struct {
	ID         string         `json:"id"`
	Role       string         `json:"role"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

// GetText returns the first text content block, or "" if there is none.
func (r *MessagesResponse) GetText() string {
	for _, block := range r.Content {
		if block.Type == "text" {
			return block.Text
		}
	}
	return ""
}

// errorResponse is the API's error envelope.
type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError represents an error response from the API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
	// RetryAfter is the server-provided delay hint, 0 if absent
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	return e.Message
}

// Completer sends a conversation history and returns the assistant's turn.
// The concrete implementation is Client; tests inject stubs.
type Completer interface {
	Complete(ctx context.Context, history []chat.Turn) (chat.Turn, error)
}

var _ Completer = (*Client)(nil)

// Client is the Anthropic Messages API client. It sends the full history on
// every request (the remote API is stateless across calls) and applies the
// retry policy described in the package documentation.
type Client struct {
	httpClient *http.Client
	cfg        *config.Config
	httpLogger *logging.HTTPLogger
}

// NewClient creates a client using the trust bundle resolved from cfg.
// A bad bundle path is not fatal here: the handshake will fail with a
// classified TLSError, which is more useful to the user than an early exit.
func NewClient(cfg *config.Config, httpLogger *logging.HTTPLogger) *Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if pool, _, err := ResolveTrust(cfg.CertFile); err == nil && pool != nil {
		transport.TLSClientConfig = &tls.Config{RootCAs: pool}
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		cfg:        cfg,
		httpLogger: httpLogger,
	}
}

// Complete sends the history and returns the assistant turn. Transient
// failures are retried with backoff; TLS failures and non-retryable status
// codes are surfaced immediately. The whole call, retries included, is
// bounded by the configured total timeout.
func (c *Client) Complete(ctx context.Context, history []chat.Turn) (chat.Turn, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.TotalTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return chat.Turn{}, fmt.Errorf("request cancelled: %w", err)
		}

		turn, err := c.attempt(ctx, history)
		if err == nil {
			return turn, nil
		}
		lastErr = err

		// User-initiated interrupt: stop immediately, keep history intact
		if errors.Is(err, context.Canceled) {
			return chat.Turn{}, fmt.Errorf("request cancelled: %w", err)
		}

		// TLS failures are never retried blindly; surface the diagnosis
		var tlsErr *TLSError
		if errors.As(err, &tlsErr) {
			return chat.Turn{}, tlsErr
		}

		var delay time.Duration
		var apiErr *APIError
		switch {
		case errors.As(err, &apiErr):
			if !ShouldRetry(apiErr.StatusCode) {
				return chat.Turn{}, apiErr
			}
			delay = RetryDelay(attempt, apiErr.RetryAfter, c.cfg.InitialBackoff, c.cfg.MaxBackoff)
		case IsTransient(err):
			delay = RetryDelay(attempt, 0, c.cfg.InitialBackoff, c.cfg.MaxBackoff)
		default:
			return chat.Turn{}, err
		}

		if attempt < c.cfg.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return chat.Turn{}, fmt.Errorf("request cancelled: %w", ctx.Err())
			case <-time.After(delay):
			}
		}
	}

	return chat.Turn{}, fmt.Errorf("max retry attempts (%d) exceeded: %w", c.cfg.MaxAttempts, lastErr)
}

// attempt performs one HTTP round trip.
func (c *Client) attempt(ctx context.Context, history []chat.Turn) (chat.Turn, error) {
	reqBody := MessagesRequest{
		Model:     c.cfg.Model,
		MaxTokens: c.cfg.MaxTokens,
		Messages:  history,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return chat.Turn{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.cfg.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return chat.Turn{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", constants.APIVersion)
	req.Header.Set("X-Request-Id", uuid.New().String())

	if c.httpLogger != nil {
		c.httpLogger.LogRequest(req, jsonData)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if tlsErr := ClassifyTLSError(err, req.URL.Hostname()); tlsErr != nil {
			return chat.Turn{}, tlsErr
		}
		return chat.Turn{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return chat.Turn{}, fmt.Errorf("failed to read response: %w", err)
	}

	if c.httpLogger != nil {
		c.httpLogger.LogResponse(resp, body, time.Since(start))
	}

	if resp.StatusCode != http.StatusOK {
		return chat.Turn{}, c.handleError(resp, body)
	}

	var msgResp MessagesResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return chat.Turn{}, fmt.Errorf("failed to parse response: %w", err)
	}

	text := msgResp.GetText()
	if text == "" {
		return chat.Turn{}, fmt.Errorf("unexpected response format: no text content")
	}

	return chat.NewAssistantTurn(text), nil
}

// handleError creates an appropriate error from the API response.
func (c *Client) handleError(resp *http.Response, body []byte) error {
	var errResp errorResponse
	errMsg := fmt.Sprintf("status code %d", resp.StatusCode)
	errType := ""
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		errMsg = errResp.Error.Message
		errType = errResp.Error.Type
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Type:       errType,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		apiErr.Message = fmt.Sprintf("authentication failed (%d): check ANTHROPIC_API_KEY - %s", resp.StatusCode, errMsg)
	case http.StatusTooManyRequests:
		apiErr.Message = fmt.Sprintf("rate limited: %s", errMsg)
	default:
		apiErr.Message = fmt.Sprintf("API error (%d): %s", resp.StatusCode, errMsg)
	}

	return apiErr
}
