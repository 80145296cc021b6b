package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/headlines"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch once and then once more after each delay while
// the failure is transient. Only EUNAVAILABLE counts as transient: timeouts
// and invalid requests are returned immediately. Retries are logged at warn
// when logger is non-nil.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, logger *slog.Logger) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 || headlines.ErrorCode(err) != headlines.EUNAVAILABLE {
			break
		}

		if logger != nil {
			logger.WarnContext(ctx, "retry fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
