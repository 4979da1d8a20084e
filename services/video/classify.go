package video

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/replicate/replicate-go"
)

// ErrorClass is a diagnostic label for a failed model attempt
type ErrorClass string

const (
	ClassDNS             ErrorClass = "dns"
	ClassTLS             ErrorClass = "tls"
	ClassRateLimit       ErrorClass = "rate_limit"
	ClassNotFound        ErrorClass = "not_found"
	ClassUnauthorized    ErrorClass = "unauthorized"
	ClassTimeout         ErrorClass = "timeout"
	ClassUpstream        ErrorClass = "upstream"
	ClassInvalidResponse ErrorClass = "invalid_response"
	ClassUnknown         ErrorClass = "unknown"
)

var (
	errInvalidResponse = errors.New("invalid response")
	errNoVideoURL      = fmt.Errorf("%w: no video url returned", errInvalidResponse)

	resetsInRe   = regexp.MustCompile(`(?i)resets in ~(\d+)s`)
	retryAfterRe = regexp.MustCompile(`(?i)retry_after["':\s]*(\d+)`)
)

// StatusError is a non-2xx response from a provider
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200] + "..."
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), strings.TrimSpace(body))
}

// Classify labels err for logs and troubleshooting. It never changes control flow
// except that the Replicate wrapper retries rate_limit and skips not_found.
func Classify(err error) ErrorClass {
	if err == nil {
		return ""
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ClassDNS
	}

	var certErr *tls.CertificateVerificationError
	var authorityErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	var recordErr tls.RecordHeaderError
	if errors.As(err, &certErr) || errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) || errors.As(err, &recordErr) {
		return ClassTLS
	}

	code := statusCode(err)
	switch {
	case code == http.StatusTooManyRequests:
		return ClassRateLimit
	case code == http.StatusNotFound:
		return ClassNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ClassUnauthorized
	case code > 0:
		// the body of an error response is vendor text, not a cause
		return ClassUpstream
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ClassTimeout
	}
	if errors.Is(err, errInvalidResponse) {
		return ClassInvalidResponse
	}

	// transport errors often only report the cause in the message text
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such host") || strings.Contains(msg, "enotfound") || strings.Contains(msg, "eai_again"):
		return ClassDNS
	case strings.Contains(msg, "certificate") || strings.Contains(msg, "tls:"):
		return ClassTLS
	case strings.Contains(msg, "429") || strings.Contains(msg, "too many requests") || strings.Contains(msg, "rate limit"):
		return ClassRateLimit
	case strings.Contains(msg, "404") || strings.Contains(msg, "not found"):
		return ClassNotFound
	case strings.Contains(msg, "401") || strings.Contains(msg, "unauthorized"):
		return ClassUnauthorized
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "timed out"):
		return ClassTimeout
	}
	return ClassUnknown
}

// statusCode returns the HTTP status carried by err, or 0. Both our own
// *StatusError and the Replicate SDK's *APIError carry one.
func statusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	var apiErr *replicate.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// SuggestedDelay extracts a vendor-suggested wait from a rate-limit error:
// the Retry-After header first, then "resets in ~Ns" or "retry_after: N" in the text.
func SuggestedDelay(err error) time.Duration {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.RetryAfter > 0 {
		return statusErr.RetryAfter
	}
	msg := err.Error()
	for _, re := range []*regexp.Regexp{resetsInRe, retryAfterRe} {
		if m := re.FindStringSubmatch(msg); m != nil {
			if n, convErr := strconv.Atoi(m[1]); convErr == nil && n > 0 {
				return time.Duration(n) * time.Second
			}
		}
	}
	return 0
}

// parseRetryAfter reads a Retry-After header in seconds or HTTP-date form
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
