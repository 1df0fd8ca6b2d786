package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/fenixfl1/CompuPay/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const limiterIdleTTL = 10 * time.Minute

type keyedEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter hands out one token bucket per key (client IP or username).
// Buckets idle for longer than limiterIdleTTL are dropped on the next sweep.
type KeyedLimiter struct {
	mu        sync.Mutex
	entries   map[string]*keyedEntry
	r         rate.Limit
	b         int
	lastSweep time.Time
	now       func() time.Time
}

func NewKeyedLimiter(r rate.Limit, b int) *KeyedLimiter {
	return &KeyedLimiter{
		entries: make(map[string]*keyedEntry),
		r:       r,
		b:       b,
		now:     time.Now,
	}
}

func (l *KeyedLimiter) Limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > limiterIdleTTL {
		for k, e := range l.entries {
			if now.Sub(e.lastSeen) > limiterIdleTTL {
				delete(l.entries, k)
			}
		}
		l.lastSweep = now
	}

	e, ok := l.entries[key]
	if !ok {
		e = &keyedEntry{limiter: rate.NewLimiter(l.r, l.b)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedLimiter(r, b)
	return func(c *gin.Context) {
		if !limiter.Limiter(c.ClientIP()).Allow() {
			tooMany(c, r, "Too many requests from this IP")
			return
		}
		c.Next()
	}
}

// RateLimitByUser limits authenticated callers by username. Anonymous
// requests pass through untouched.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	limiter := NewKeyedLimiter(r, b)
	return func(c *gin.Context) {
		username := c.GetString(ContextUsername)
		if username == "" {
			c.Next()
			return
		}
		if !limiter.Limiter(username).Allow() {
			tooMany(c, r, "Too many requests from this user")
			return
		}
		c.Next()
	}
}

func tooMany(c *gin.Context, r rate.Limit, message string) {
	if r > 0 {
		wait := time.Duration(float64(time.Second) / float64(r))
		c.Header("Retry-After", strconv.Itoa(int(wait.Seconds()+0.999)))
	}
	response.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", message, nil)
	c.Abort()
}
