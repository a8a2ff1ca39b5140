package api

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"strings"
)

// TLSErrorKind classifies a TLS/certificate failure.
type TLSErrorKind int

const (
	// TLSUnknownAuthority means certificate verification failed because the
	// signing CA is not in the trust bundle (missing or outdated bundle)
	TLSUnknownAuthority TLSErrorKind = iota
	// TLSCertificateExpired means the chain contains an expired or
	// not-yet-valid certificate (often a wrong system clock on old machines)
	TLSCertificateExpired
	// TLSHostnameMismatch means the certificate is not valid for the host
	TLSHostnameMismatch
	// TLSHandshake means the handshake itself failed, typically a protocol
	// or cipher mismatch (the peer requires TLS 1.2+)
	TLSHandshake
)

// String returns a short label for the kind.
func (k TLSErrorKind) String() string {
	switch k {
	case TLSUnknownAuthority:
		return "unknown certificate authority"
	case TLSCertificateExpired:
		return "expired certificate"
	case TLSHostnameMismatch:
		return "hostname mismatch"
	case TLSHandshake:
		return "handshake failure"
	default:
		return "unknown"
	}
}

// TLSError is a classified TLS/certificate failure. It is never retried and
// always carries an actionable diagnosis: on the machines this tool targets
// (old OS, hand-built OpenSSL) these failures are expected, and "connection
// error" would send the user down the wrong path.
type TLSError struct {
	Kind TLSErrorKind
	Host string
	Err  error
}

func (e *TLSError) Error() string {
	switch e.Kind {
	case TLSUnknownAuthority:
		return fmt.Sprintf("TLS error (%s): certificate for %s is signed by an unknown authority. "+
			"The CA bundle is missing or outdated; point SSL_CERT_FILE at a current cacert.pem", e.Kind, e.Host)
	case TLSCertificateExpired:
		return fmt.Sprintf("TLS error (%s): certificate chain for %s contains an expired or not-yet-valid certificate. "+
			"Check the system clock and refresh the CA bundle", e.Kind, e.Host)
	case TLSHostnameMismatch:
		return fmt.Sprintf("TLS error (%s): certificate is not valid for %s", e.Kind, e.Host)
	default:
		return fmt.Sprintf("TLS error (%s): handshake with %s failed. "+
			"The server requires TLS 1.2 or newer; make sure the linked crypto library supports it (%v)", e.Kind, e.Host, e.Err)
	}
}

func (e *TLSError) Unwrap() error {
	return e.Err
}

// ClassifyTLSError inspects a transport error and returns a *TLSError when
// the failure is TLS/certificate related, nil otherwise. The classification
// never degrades a verification failure into a generic network error.
func ClassifyTLSError(err error, host string) *TLSError {
	if err == nil {
		return nil
	}

	// crypto/tls wraps verification failures since Go 1.20
	var verifyErr *tls.CertificateVerificationError
	if errors.As(err, &verifyErr) {
		if inner := ClassifyTLSError(verifyErr.Err, host); inner != nil {
			return inner
		}
		return &TLSError{Kind: TLSUnknownAuthority, Host: host, Err: err}
	}

	var uaErr x509.UnknownAuthorityError
	if errors.As(err, &uaErr) {
		return &TLSError{Kind: TLSUnknownAuthority, Host: host, Err: err}
	}

	var ciErr x509.CertificateInvalidError
	if errors.As(err, &ciErr) {
		if ciErr.Reason == x509.Expired {
			return &TLSError{Kind: TLSCertificateExpired, Host: host, Err: err}
		}
		return &TLSError{Kind: TLSHandshake, Host: host, Err: err}
	}

	var hnErr x509.HostnameError
	if errors.As(err, &hnErr) {
		return &TLSError{Kind: TLSHostnameMismatch, Host: host, Err: err}
	}

	var rhErr tls.RecordHeaderError
	if errors.As(err, &rhErr) {
		return &TLSError{Kind: TLSHandshake, Host: host, Err: err}
	}

	var alertErr tls.AlertError
	if errors.As(err, &alertErr) {
		return &TLSError{Kind: TLSHandshake, Host: host, Err: err}
	}

	// Handshake failures reported by the peer arrive as plain errors with a
	// "tls:" prefix in the message
	msg := err.Error()
	if strings.Contains(msg, "tls:") || strings.Contains(msg, "handshake failure") {
		return &TLSError{Kind: TLSHandshake, Host: host, Err: err}
	}

	return nil
}

// Trust bundle sources, in resolution order.
const (
	TrustSourceBundle = "certificate bundle"
	TrustSourceSystem = "system trust store"
)

// ResolveTrust resolves the certificate pool for API connections.
// An explicit bundle path (SSL_CERT_FILE or the config file, resolved by
// the config package) wins; otherwise the platform default pool is used.
// The transport client and check-ssl share this resolution so they cannot
// disagree about which roots are trusted.
func ResolveTrust(certFile string) (*x509.CertPool, string, error) {
	if certFile != "" {
		data, err := os.ReadFile(certFile)
		if err != nil {
			return nil, TrustSourceBundle, fmt.Errorf("cannot read certificate bundle %s: %w", certFile, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(data) {
			return nil, TrustSourceBundle, fmt.Errorf("no certificates found in bundle %s", certFile)
		}
		return pool, TrustSourceBundle, nil
	}

	pool, err := x509.SystemCertPool()
	if err != nil {
		return nil, TrustSourceSystem, fmt.Errorf("cannot load system trust store: %w", err)
	}
	return pool, TrustSourceSystem, nil
}
