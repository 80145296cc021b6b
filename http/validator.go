package http

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/headlines"
)

// DefaultValidateTimeout bounds the reachability probe.
const DefaultValidateTimeout = 5 * time.Second

var _ headlines.URLValidator = (*Validator)(nil)

// Validator checks that a submitted URL is well formed and that its host
// answers a HEAD request. Any HTTP response, whatever the status, counts
// as reachable.
type Validator struct {
	client    *http.Client
	userAgent string
}

// NewValidator returns a Validator whose probe gives up after timeout.
// A non-positive timeout selects DefaultValidateTimeout.
func NewValidator(timeout time.Duration) *Validator {
	if timeout <= 0 {
		timeout = DefaultValidateTimeout
	}
	return &Validator{
		client:    &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
	}
}

// Validate returns EINVALID with a user-facing message when rawURL is
// malformed or unreachable.
func (v *Validator) Validate(ctx context.Context, rawURL string) error {
	if !wellFormed(rawURL) {
		return headlines.Errorf(headlines.EINVALID, "Invalid URL format")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return headlines.Errorf(headlines.EINVALID, "Invalid URL format")
	}
	req.Header.Set("User-Agent", v.userAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		return headlines.Errorf(headlines.EINVALID, "URL is not accessible")
	}
	resp.Body.Close()
	return nil
}

func wellFormed(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
