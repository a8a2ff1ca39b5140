// Package api provides the HTTP client for the Anthropic Messages API.
//
// # Architecture
//
//   - client.go: request/response types, Completer interface, and the
//     Client that sends the full conversation history on every call
//   - retry.go: exponential backoff retry logic for transient failures,
//     honoring server-provided Retry-After hints
//   - tlserror.go: trust bundle resolution and classification of
//     TLS/certificate failures into an actionable taxonomy
//
// # Error handling
//
// Transport failures fall into three buckets with different policies:
//
//   - Transient (timeouts, connection resets, 429, 5xx): retried with
//     exponential backoff up to MaxRetryAttempts, bounded by a total
//     elapsed-time ceiling for the whole command.
//   - TLS/certificate failures: never retried. They are classified into
//     *TLSError so the user gets a diagnosis (stale CA bundle, expired
//     certificate, protocol mismatch) instead of a generic network error.
//     On the hardware this tool targets, a custom-built OpenSSL with a
//     stale or missing trust bundle is an expected failure mode.
//   - Authentication and other 4xx failures: surfaced immediately.
//
// # Usage
//
//	client := api.NewClient(cfg, httpLogger)
//	turn, err := client.Complete(ctx, conversation.History())
//
// The Completer interface supports injecting a stub client in tests.
package api
