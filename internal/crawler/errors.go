package crawler

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// FailureKind is the coarse classification of a fetch failure.
type FailureKind string

// Failure kinds surfaced to users. Each maps to a distinct, legible message.
const (
	FailTimeout     FailureKind = "timeout"
	FailDNS         FailureKind = "dns"
	FailTLS         FailureKind = "tls"
	FailConnReset   FailureKind = "connection_reset"
	FailConnRefused FailureKind = "connection_refused"
	FailHTTPStatus  FailureKind = "http_status"
	FailUnknown     FailureKind = "unknown"
)

// FetchError wraps a failed fetch with its classification. StatusCode is set
// only when the failure carried an HTTP response.
type FetchError struct {
	Kind       FailureKind
	Message    string
	StatusCode *int
	Err        error
}

// Error returns the user-legible message.
func (e *FetchError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying transport error, if any.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewHTTPStatusError builds a FetchError for a non-2xx response.
func NewHTTPStatusError(code int) *FetchError {
	reason := http.StatusText(code)
	if reason == "" {
		reason = "unknown status"
	}
	c := code
	return &FetchError{
		Kind:       FailHTTPStatus,
		Message:    fmt.Sprintf("HTTP %d %s", code, reason),
		StatusCode: &c,
	}
}

// ClassifyFetchError maps a transport-level error onto the failure taxonomy.
func ClassifyFetchError(err error) *FetchError {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe
	}

	switch {
	case isTimeout(err):
		return &FetchError{Kind: FailTimeout, Message: "request timed out", Err: err}
	case isDNSFailure(err):
		return &FetchError{Kind: FailDNS, Message: fmt.Sprintf("DNS resolution failed: %v", dnsDetail(err)), Err: err}
	case isTLSFailure(err):
		return &FetchError{Kind: FailTLS, Message: fmt.Sprintf("TLS handshake or certificate verification failed: %v", err), Err: err}
	case errors.Is(err, syscall.ECONNRESET):
		return &FetchError{Kind: FailConnReset, Message: "connection reset by peer", Err: err}
	case errors.Is(err, syscall.ECONNREFUSED):
		return &FetchError{Kind: FailConnRefused, Message: "connection refused", Err: err}
	default:
		return &FetchError{Kind: FailUnknown, Message: fmt.Sprintf("request failed: %v", err), Err: err}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isDNSFailure(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func dnsDetail(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.Name
	}
	return err.Error()
}

func isTLSFailure(err error) bool {
	var (
		unknownAuthority x509.UnknownAuthorityError
		hostname         x509.HostnameError
		certInvalid      x509.CertificateInvalidError
		recordHeader     tls.RecordHeaderError
		certVerification *tls.CertificateVerificationError
	)
	return errors.As(err, &unknownAuthority) ||
		errors.As(err, &hostname) ||
		errors.As(err, &certInvalid) ||
		errors.As(err, &recordHeader) ||
		errors.As(err, &certVerification)
}
