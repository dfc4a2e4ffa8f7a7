package rocketchat

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	maxTimeout       = 5 * time.Minute
	maxRateBurst     = 1000
	defaultRateBurst = 1
)

// protectedHeaders are owned by the client and cannot be overridden with
// [WithRequestHeader]. The auth headers come from the session token.
var protectedHeaders = []string{"Content-Type", "Accept", headerAuthToken, headerUserID}

type Option func(*Options)

type Options struct {
	timeout             time.Duration
	requestLogger       RequestLogger
	requestHeaders      map[string]string
	insecureSkipVerify  bool
	rootCertificateFile string
	rateLimit           rate.Limit
	rateBurst           int
}

func newServerOptions() *Options {
	return &Options{
		timeout:       30 * time.Second,
		requestLogger: &NoopLogger{},
		requestHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		rateLimit: rate.Inf,
		rateBurst: defaultRateBurst,
	}
}

// WithTimeout sets the overall timeout of a single HTTP round-trip,
// including connect and reading the response. Zero disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout >= 0 {
			o.timeout = timeout
		}
	}
}

func WithRequestLogger(logger RequestLogger) Option {
	return func(o *Options) {
		if logger != nil {
			o.requestLogger = logger
		}
	}
}

// WithRequestHeader adds a header to every request. Content-Type, Accept
// and the X-Auth-Token/X-User-Id pair cannot be set this way.
func WithRequestHeader(header, value string) Option {
	return func(o *Options) {
		header = strings.TrimSpace(header)

		if header == "" || isProtectedHeader(header) {
			return
		}

		o.requestHeaders[header] = value
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Only use
// this against test servers.
func WithInsecureSkipVerify(skip bool) Option {
	return func(o *Options) {
		o.insecureSkipVerify = skip
	}
}

// WithRootCertificate trusts the PEM encoded CA certificates in pemFile in
// addition to the system pool.
func WithRootCertificate(pemFile string) Option {
	return func(o *Options) {
		o.rootCertificateFile = strings.TrimSpace(pemFile)
	}
}

// WithRateLimit throttles outgoing requests to requestsPerSecond with the
// given burst. Calls block until a token is available or their context is
// done; nothing is retried.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(o *Options) {
		if requestsPerSecond <= 0 {
			return
		}

		o.rateLimit = rate.Limit(requestsPerSecond)

		if burst > 0 {
			o.rateBurst = burst
		}
	}
}

func (o *Options) Validate() error {
	if o.timeout < 0 {
		return errors.New("timeout must be non-negative")
	}

	if o.timeout > maxTimeout {
		return fmt.Errorf("timeout must not exceed %v", maxTimeout)
	}

	if o.requestLogger == nil {
		return errors.New("requestLogger must not be nil")
	}

	if o.rateBurst < 1 {
		return errors.New("rateBurst must be at least 1")
	}

	if o.rateBurst > maxRateBurst {
		return fmt.Errorf("rateBurst must not exceed %d", maxRateBurst)
	}

	if o.insecureSkipVerify && o.rootCertificateFile != "" {
		return errors.New("cannot use both insecure TLS and a root certificate - choose one")
	}

	if o.rootCertificateFile != "" {
		info, err := os.Stat(o.rootCertificateFile)
		if err != nil {
			return fmt.Errorf("rootCertificateFile is not readable: %w", err)
		}

		if info.IsDir() {
			return fmt.Errorf("rootCertificateFile %s is a directory", o.rootCertificateFile)
		}
	}

	return nil
}

func isProtectedHeader(header string) bool {
	for _, protected := range protectedHeaders {
		if strings.EqualFold(header, protected) {
			return true
		}
	}

	return false
}
