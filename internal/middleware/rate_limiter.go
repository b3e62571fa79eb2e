package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ── Fixed-window limiter ─────────────────────────────────────────────────────

type window struct {
	count int
	ends  time.Time
}

// windowLimiter counts hits per key in fixed windows. Expired keys are
// swept every purgeEvery calls so idle clients do not accumulate.
type windowLimiter struct {
	mu     sync.Mutex
	limit  int
	length time.Duration
	hits   map[string]*window
	calls  int
	now    func() time.Time
}

const purgeEvery = 1024

func newWindowLimiter(limit int, length time.Duration) *windowLimiter {
	return &windowLimiter{limit: limit, length: length, hits: make(map[string]*window), now: time.Now}
}

// allow records one hit for key. When the limit is exceeded it returns
// false and the time the current window ends.
func (l *windowLimiter) allow(key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls++
	if l.calls%purgeEvery == 0 {
		l.purge(now)
	}

	w, ok := l.hits[key]
	if !ok || now.After(w.ends) {
		w = &window{ends: now.Add(l.length)}
		l.hits[key] = w
	}
	w.count++
	return w.count <= l.limit, w.ends
}

func (l *windowLimiter) purge(now time.Time) {
	before := len(l.hits)
	for k, w := range l.hits {
		if now.After(w.ends) {
			delete(l.hits, k)
		}
	}
	if purged := before - len(l.hits); purged > 0 {
		log.Debug().Int("purged", purged).Int("remaining", len(l.hits)).Msg("rate limiter swept")
	}
}

func limitByIP(l *windowLimiter, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, ends := l.allow(c.ClientIP())
		if !ok {
			wait := int(time.Until(ends).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(wait))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter allows 20 login attempts per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return limitByIP(newWindowLimiter(20, time.Minute), "Too many login attempts. Try again in a minute.")
}

// RateLimiter is the general per-IP API limiter.
func RateLimiter(limit int, length time.Duration) gin.HandlerFunc {
	return limitByIP(newWindowLimiter(limit, length), "Too many requests. Try again shortly.")
}
