package web

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/unrolled/render"
)

// Limiter decides whether a client may make another request.
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// RateLimiter allows each client limit requests per window. A client's count
// starts with its first request and expires with the window.
type RateLimiter struct {
	clock  clock.Clock
	limit  int
	window time.Duration

	mu        sync.Mutex
	clients   map[string]*rateWindow
	nextSweep time.Time
}

type rateWindow struct {
	count   int
	expires time.Time
}

func NewRateLimiter(clock clock.Clock, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		clock:   clock,
		limit:   max(limit, 1),
		window:  window,
		clients: make(map[string]*rateWindow),
	}
}

// Allow counts a request from key. When the limit is reached it returns false
// and how long until the window expires.
func (l *RateLimiter) Allow(key string) (bool, time.Duration) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	w, ok := l.clients[key]
	if !ok || !now.Before(w.expires) {
		w = &rateWindow{expires: now.Add(l.window)}
		l.clients[key] = w
	}
	if w.count >= l.limit {
		return false, w.expires.Sub(now)
	}
	w.count++
	return true, 0
}

// sweep drops expired windows, at most once per window.
func (l *RateLimiter) sweep(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	for key, w := range l.clients {
		if !now.Before(w.expires) {
			delete(l.clients, key)
		}
	}
	l.nextSweep = now.Add(l.window)
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// rateLimit keys clients by their token's email when there is one, otherwise
// by address.
func rateLimit(limiter Limiter, render *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientAddress(r)
			if email, ok := callerEmail(r.Context()); ok {
				key = email
			}

			ok, retry := limiter.Allow(key)
			if !ok {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(retry.Seconds()))))
				render.JSON(w, http.StatusTooManyRequests, errorBody("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
