package http

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/fwojciec/headlines"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

var _ headlines.ClientLimiter = (*ClientLimiter)(nil)

// Limit allows Requests per window of length Per.
type Limit struct {
	Requests int
	Per      time.Duration
}

// DefaultLimits allows 10 requests per minute and 100 per day.
func DefaultLimits() []Limit {
	return []Limit{
		{Requests: 10, Per: time.Minute},
		{Requests: 100, Per: 24 * time.Hour},
	}
}

// maxSweepInterval bounds how long idle clients linger after expiring.
const maxSweepInterval = time.Minute

// ClientLimiter provides per-client rate limiting using token buckets.
// Each client key gets one bucket per configured Limit and a request is
// admitted only when every bucket has a token available.
//
// A client idle for the longest window has full buckets again, so its
// entry expires then and is swept from memory.
type ClientLimiter struct {
	mu      sync.Mutex
	clients *cache.Cache
	limits  []Limit
}

// NewClientLimiter creates a ClientLimiter enforcing limits.
// With no limits it uses DefaultLimits. Limits with a non-positive request
// count or window are ignored.
func NewClientLimiter(limits ...Limit) *ClientLimiter {
	if len(limits) == 0 {
		limits = DefaultLimits()
	}
	var active []Limit
	var idle time.Duration
	for _, l := range limits {
		if l.Requests > 0 && l.Per > 0 {
			active = append(active, l)
			idle = max(idle, l.Per)
		}
	}
	return &ClientLimiter{
		clients: cache.New(idle, min(idle, maxSweepInterval)),
		limits:  active,
	}
}

// Allow reports whether a request from key is admitted and, if so,
// consumes one token from each of its buckets.
func (c *ClientLimiter) Allow(key string) bool {
	if len(c.limits) == 0 {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var buckets []*rate.Limiter
	if v, found := c.clients.Get(key); found {
		buckets = v.([]*rate.Limiter)
	} else {
		buckets = make([]*rate.Limiter, len(c.limits))
		for i, l := range c.limits {
			buckets[i] = rate.NewLimiter(rate.Every(l.Per/time.Duration(l.Requests)), l.Requests)
		}
	}
	c.clients.SetDefault(key, buckets)

	now := time.Now()
	for _, b := range buckets {
		if b.TokensAt(now) < 1 {
			return false
		}
	}
	for _, b := range buckets {
		b.AllowN(now, 1)
	}
	return true
}

// Clients returns the number of clients currently tracked, including
// expired ones not yet swept.
func (c *ClientLimiter) Clients() int {
	return c.clients.ItemCount()
}

// RateLimit rejects requests from clients over their limit with 429.
func RateLimit(limiter headlines.ClientLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientKey(r)) {
				writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: rateLimitMessage})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies the caller by remote IP. Proxy headers are honoured
// only when the server installs chi's RealIP middleware in front.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
