package middleware

import (
	"context"
	"log"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/toninews/logbook-back/apperrors"
	"github.com/toninews/logbook-back/response"
)

// Limiter staleness housekeeping defaults
const (
	staleEntryHorizon = 2 * time.Hour
	janitorInterval   = 15 * time.Minute
)

// RateLimiter is a fixed-window request counter keyed by client identity.
// A window admits at most max requests measured from the entry's windowStart;
// adjacent windows can admit up to 2*max at the boundary, which is accepted
// for this scale.
type RateLimiter struct {
	mu      sync.Mutex
	entries map[string]*rateLimitEntry
	window  time.Duration
	max     int
	now     func() time.Time
}

type rateLimitEntry struct {
	count       int
	windowStart time.Time
}

// NewRateLimiter creates a limiter admitting max requests per window
func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		entries: make(map[string]*rateLimitEntry),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Admit decides whether a request from the given identity is allowed now.
// When denied, retryAfter reports whole seconds until the window resets,
// rounded up.
func (l *RateLimiter) Admit(key string) (allowed bool, retryAfter int) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.entries[key]
	if !ok {
		l.entries[key] = &rateLimitEntry{count: 1, windowStart: now}
		return true, 0
	}

	if now.Sub(entry.windowStart) >= l.window {
		entry.count = 1
		entry.windowStart = now
		return true, 0
	}

	if entry.count >= l.max {
		remaining := entry.windowStart.Add(l.window).Sub(now)
		seconds := int((remaining + time.Second - 1) / time.Second)
		return false, seconds
	}

	entry.count++
	return true, 0
}

// Cleanup removes entries whose window started before the staleness horizon,
// bounding memory growth from one-off identities
func (l *RateLimiter) Cleanup(staleAfter time.Duration) int {
	cutoff := l.now().Add(-staleAfter)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, entry := range l.entries {
		if entry.windowStart.Before(cutoff) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// StartJanitor runs the staleness sweep on a low-frequency ticker until the
// context is cancelled. Best-effort housekeeping; never blocks shutdown.
func (l *RateLimiter) StartJanitor(ctx context.Context) {
	t := time.NewTicker(janitorInterval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if removed := l.Cleanup(staleEntryHorizon); removed > 0 {
					log.Printf("[RATELIMIT] reclaimed %d stale entries", removed)
				}
			}
		}
	}()
}

// RateLimit throttles requests per client IP. When bypass is set (development
// mode) the limiter is skipped entirely.
func RateLimit(limiter *RateLimiter, bypass bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypass {
				next.ServeHTTP(w, r)
				return
			}

			allowed, retryAfter := limiter.Admit(clientIP(r))
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				response.Fail(w, apperrors.New(http.StatusTooManyRequests, apperrors.CodeTooManyRequests,
					"Too many requests. Please try again later."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client identity, checking X-Forwarded-For first
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// Take first IP if multiple
		ips := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(ips[0]); ip != "" {
			return ip
		}
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
