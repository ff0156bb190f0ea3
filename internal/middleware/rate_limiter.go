package middleware

import (
	"net/http"
	"sync"
	"time"

	"cicloharmony/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// windowCounter tracks requests from one IP inside a fixed window.
type windowCounter struct {
	mu        sync.Mutex
	count     int
	windowEnd time.Time
}

// ipLimiter is a per-IP fixed-window limiter shared by the login and the
// general API limiters. Entries for IPs that stop sending requests are
// purged by a background sweep.
type ipLimiter struct {
	mu      sync.Mutex
	entries map[string]*windowCounter
	limit   int
	window  time.Duration
}

func newIPLimiter(limit int, window time.Duration) *ipLimiter {
	return &ipLimiter{
		entries: make(map[string]*windowCounter),
		limit:   limit,
		window:  window,
	}
}

// allow counts one request from ip and reports whether it is under the limit.
// The second return value is the moment the current window resets.
func (l *ipLimiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	entry, ok := l.entries[ip]
	if !ok {
		entry = &windowCounter{}
		l.entries[ip] = entry
	}
	l.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(l.window)
	}
	entry.count++
	return entry.count <= l.limit, entry.windowEnd
}

func (l *ipLimiter) purge(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	purged := 0
	for ip, entry := range l.entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}

var (
	loginLimiter = newIPLimiter(20, time.Minute)
	registered   []*ipLimiter
	registeredMu sync.Mutex
)

// LoginRateLimiter limits login attempts to 20 per minute per IP. It protects
// the only endpoint that accepts credentials, so its limit is much tighter
// than the general API limiter's.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, _ := loginLimiter.allow(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter returns a per-IP fixed-window limiter for the whole API surface.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	l := newIPLimiter(limit, window)
	registeredMu.Lock()
	registered = append(registered, l)
	registeredMu.Unlock()

	return func(c *gin.Context) {
		ok, resetAt := l.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", resetAt.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()
			purged := loginLimiter.purge(now)

			registeredMu.Lock()
			limiters := registered
			registeredMu.Unlock()
			for _, l := range limiters {
				purged += l.purge(now)
			}

			if purged > 0 {
				log.Debug().Int("entries_purged", purged).Msg("rate limiter maps purged")
			}
		}
	}()
}
