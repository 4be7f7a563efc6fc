// Package ratelimit applies per-client request limits with an optional
// server-wide cap.
package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/maksimkurb/keen-embed/src/internal/metrics"
	"github.com/maksimkurb/keen-embed/src/internal/utils"
	"golang.org/x/time/rate"
)

const (
	maxTrackedClients = 10_000
	clientIdleTTL     = 10 * time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter applies per-client request limits and, when configured, a global
// limit shared by all clients.
type Limiter struct {
	global *rate.Limiter // nil when no global limit is set
	perIP  map[string]*clientLimiter
	mu     sync.Mutex

	rps   rate.Limit
	burst int
	now   func() time.Time
}

// New creates a limiter allowing rps requests per second to each client. It
// returns nil when rps is not positive, and a nil *Limiter lets every request
// through.
func New(rps float64, burst int) *Limiter {
	if rps <= 0 {
		return nil
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{
		perIP:  make(map[string]*clientLimiter),
		rps:    rate.Limit(rps),
		burst:  burst,
		now:    time.Now,
	}
}

// WithGlobal adds a limit shared by all clients. It is a no-op on a nil
// limiter or when rps is not positive.
func (l *Limiter) WithGlobal(rps float64, burst int) *Limiter {
	if l == nil || rps <= 0 {
		return l
	}
	if burst < 1 {
		burst = 1
	}
	l.global = rate.NewLimiter(rate.Limit(rps), burst)
	return l
}

func (l *Limiter) Middleware(m *metrics.Metrics, next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(utils.ClientIP(r)) {
			m.ObserveRateLimited()
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *Limiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	item, ok := l.perIP[ip]
	if !ok {
		item = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.perIP[ip] = item
	}

	item.lastSeen = now
	if len(l.perIP) > maxTrackedClients {
		l.cleanupLocked(now.Add(-clientIdleTTL))
	}

	// The client's token is only reserved until the global bucket agrees, so a
	// rejection by one bucket never consumes a token from the other.
	res := item.limiter.ReserveN(now, 1)
	if !res.OK() || res.DelayFrom(now) > 0 {
		res.CancelAt(now)
		return false
	}
	if l.global != nil && !l.global.AllowN(now, 1) {
		res.CancelAt(now)
		return false
	}
	return true
}

func (l *Limiter) cleanupLocked(threshold time.Time) {
	for ip, entry := range l.perIP {
		if entry.lastSeen.Before(threshold) {
			delete(l.perIP, ip)
		}
	}
}
