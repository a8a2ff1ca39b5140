// Package tlscheck implements the standalone TLS health check behind the
// check-ssl command. It performs a handshake against the API host without
// sending any conversational request, using the same trust resolution and
// failure taxonomy as the transport client, so a passing check means the
// client's own connections will verify the same way.
package tlscheck

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/url"
	"time"

	"github.com/ChrisBushman/tiger-claude/internal/api"
	"github.com/ChrisBushman/tiger-claude/internal/config"
	"github.com/ChrisBushman/tiger-claude/internal/constants"
)

// Report is the result of one TLS health check.
type Report struct {
	Host        string
	TrustSource string
	BundlePath  string

	// Populated on a successful handshake
	TLSVersion  string
	CipherSuite string
	CertSubject string
	CertExpiry  time.Time

	// Failure is the classified TLS failure, nil on success. Err holds
	// failures outside the TLS taxonomy (unreachable host, bad bundle).
	Failure *api.TLSError
	Err     error
}

// OK reports whether the handshake succeeded.
func (r *Report) OK() bool {
	return r.Failure == nil && r.Err == nil
}

// Check runs the health check against the configured API host.
// It never sends a request body; conversation state is not involved.
func Check(ctx context.Context, cfg *config.Config) *Report {
	host, addr := targetAddr(cfg.APIURL)
	report := &Report{
		Host:       host,
		BundlePath: cfg.CertFile,
	}

	pool, source, err := api.ResolveTrust(cfg.CertFile)
	report.TrustSource = source
	if err != nil {
		report.Err = err
		return report
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: constants.DefaultHandshakeTimeout},
		Config: &tls.Config{
			RootCAs:    pool,
			ServerName: host,
			MinVersion: tls.VersionTLS12,
		},
	}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		if tlsErr := api.ClassifyTLSError(err, host); tlsErr != nil {
			report.Failure = tlsErr
		} else {
			report.Err = fmt.Errorf("cannot reach %s: %w", addr, err)
		}
		return report
	}
	defer func() { _ = conn.Close() }()

	state := conn.(*tls.Conn).ConnectionState()
	report.TLSVersion = tls.VersionName(state.Version)
	report.CipherSuite = tls.CipherSuiteName(state.CipherSuite)
	if len(state.PeerCertificates) > 0 {
		leaf := state.PeerCertificates[0]
		report.CertSubject = leaf.Subject.CommonName
		report.CertExpiry = leaf.NotAfter
	}

	return report
}

// Print writes a human-readable report.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Host:         %s\n", r.Host)
	if r.BundlePath != "" {
		fmt.Fprintf(w, "Trust source: %s (%s)\n", r.TrustSource, r.BundlePath)
	} else {
		fmt.Fprintf(w, "Trust source: %s\n", r.TrustSource)
	}

	switch {
	case r.Failure != nil:
		fmt.Fprintf(w, "Result:       FAILED\n")
		fmt.Fprintf(w, "Diagnosis:    %v\n", r.Failure)
	case r.Err != nil:
		fmt.Fprintf(w, "Result:       FAILED\n")
		fmt.Fprintf(w, "Error:        %v\n", r.Err)
	default:
		fmt.Fprintf(w, "Protocol:     %s\n", r.TLSVersion)
		fmt.Fprintf(w, "Cipher:       %s\n", r.CipherSuite)
		if r.CertSubject != "" {
			fmt.Fprintf(w, "Certificate:  %s (expires %s)\n", r.CertSubject, r.CertExpiry.Format("2006-01-02"))
		}
		fmt.Fprintf(w, "Result:       OK\n")
	}
}

// targetAddr derives the handshake target from the API URL.
func targetAddr(apiURL string) (host, addr string) {
	u, err := url.Parse(apiURL)
	if err != nil || u.Hostname() == "" {
		return constants.DefaultAPIHost, net.JoinHostPort(constants.DefaultAPIHost, "443")
	}
	host = u.Hostname()
	port := u.Port()
	if port == "" {
		port = "443"
	}
	return host, net.JoinHostPort(host, port)
}
