package http_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	hhttp "github.com/fwojciec/headlines/http"
	"github.com/fwojciec/headlines/mock"
	"github.com/stretchr/testify/assert"
)

func TestClientLimiter_Allow(t *testing.T) {
	t.Parallel()

	t.Run("admits requests up to the burst and then denies", func(t *testing.T) {
		t.Parallel()

		l := hhttp.NewClientLimiter(hhttp.Limit{Requests: 3, Per: time.Hour})
		assert.True(t, l.Allow("1.2.3.4"))
		assert.True(t, l.Allow("1.2.3.4"))
		assert.True(t, l.Allow("1.2.3.4"))
		assert.False(t, l.Allow("1.2.3.4"))
	})

	t.Run("tracks clients independently", func(t *testing.T) {
		t.Parallel()

		l := hhttp.NewClientLimiter(hhttp.Limit{Requests: 1, Per: time.Hour})
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
		assert.True(t, l.Allow("b"))
	})

	t.Run("enforces the tightest of several limits", func(t *testing.T) {
		t.Parallel()

		l := hhttp.NewClientLimiter(
			hhttp.Limit{Requests: 5, Per: time.Minute},
			hhttp.Limit{Requests: 2, Per: 24 * time.Hour},
		)
		assert.True(t, l.Allow("a"))
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
	})

	t.Run("does not consume tokens on denied requests", func(t *testing.T) {
		t.Parallel()

		l := hhttp.NewClientLimiter(
			hhttp.Limit{Requests: 1, Per: 24 * time.Hour},
			hhttp.Limit{Requests: 3, Per: 24 * time.Hour},
		)
		assert.True(t, l.Allow("a"))
		for range 5 {
			assert.False(t, l.Allow("a"))
		}
	})

	t.Run("defaults to ten per minute", func(t *testing.T) {
		t.Parallel()

		l := hhttp.NewClientLimiter()
		for i := range 10 {
			assert.True(t, l.Allow("a"), "request %d", i)
		}
		assert.False(t, l.Allow("a"))
	})

	t.Run("ignores disabled limits", func(t *testing.T) {
		t.Parallel()

		l := hhttp.NewClientLimiter(
			hhttp.Limit{Requests: 0, Per: time.Minute},
			hhttp.Limit{Requests: 2, Per: time.Hour},
		)
		assert.True(t, l.Allow("a"))
		assert.True(t, l.Allow("a"))
		assert.False(t, l.Allow("a"))
	})

	t.Run("admits everything when every limit is disabled", func(t *testing.T) {
		t.Parallel()

		l := hhttp.NewClientLimiter(hhttp.Limit{Requests: 0, Per: time.Minute})
		for range 5 {
			assert.True(t, l.Allow("a"))
		}
		assert.Equal(t, 0, l.Clients())
	})

	t.Run("forgets clients idle for the longest window", func(t *testing.T) {
		t.Parallel()

		l := hhttp.NewClientLimiter(hhttp.Limit{Requests: 1, Per: 200 * time.Millisecond})
		assert.True(t, l.Allow("a"))
		assert.True(t, l.Allow("b"))
		assert.Equal(t, 2, l.Clients())

		assert.Eventually(t, func() bool { return l.Clients() == 0 }, 3*time.Second, 20*time.Millisecond)
		assert.True(t, l.Allow("a"))
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		l := hhttp.NewClientLimiter(hhttp.Limit{Requests: 20, Per: time.Hour})
		var admitted atomic.Int32
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if l.Allow("a") {
					admitted.Add(1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(20), admitted.Load())
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	t.Run("passes admitted requests through", func(t *testing.T) {
		t.Parallel()

		var key string
		limiter := &mock.ClientLimiter{AllowFn: func(k string) bool { key = k; return true }}
		h := hhttp.RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		req := httptest.NewRequest(http.MethodPost, "/scrape", nil)
		req.RemoteAddr = "10.0.0.7:5555"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "10.0.0.7", key)
	})

	t.Run("rejects limited requests with 429", func(t *testing.T) {
		t.Parallel()

		limiter := &mock.ClientLimiter{AllowFn: func(string) bool { return false }}
		h := hhttp.RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("handler should not be called")
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/scrape", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), `"error"`)
	})
}
