package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// window counts requests from one client within a fixed window.
type window struct {
	count int
	end   time.Time
}

// Limiter is a fixed-window per-IP request limiter.
type Limiter struct {
	limit   int
	period  time.Duration
	message string
	now     func() time.Time

	mu      sync.Mutex
	clients map[string]*window
}

func NewLimiter(limit int, period time.Duration, message string) *Limiter {
	return &Limiter{
		limit:   limit,
		period:  period,
		message: message,
		now:     time.Now,
		clients: make(map[string]*window),
	}
}

// Allow records one request for key and reports whether it is within the limit.
func (l *Limiter) Allow(key string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.clients[key]
	if !ok || now.After(w.end) {
		w = &window{end: now.Add(l.period)}
		l.clients[key] = w
	}
	w.count++
	return w.count <= l.limit, w.end
}

// Middleware rejects over-limit requests with 429.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, reset := l.Allow(c.ClientIP())
		if !ok {
			retry := int(time.Until(reset).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(l.message))
			return
		}
		c.Next()
	}
}

// Purge drops expired windows and returns how many were removed.
func (l *Limiter) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	purged := 0
	for key, w := range l.clients {
		if now.After(w.end) {
			delete(l.clients, key)
			purged++
		}
	}
	return purged
}

// StartPurger purges expired windows every interval until ctx is done.
func (l *Limiter) StartPurger(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := l.Purge(); n > 0 {
					log.Debug().Int("purged", n).Msg("rate limiter windows purged")
				}
			}
		}
	}()
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() *Limiter {
	return NewLimiter(20, time.Minute, "Too many login attempts. Try again in a minute.")
}

// RateLimiter limits general API traffic to limit requests per minute per IP.
func RateLimiter(limit int) *Limiter {
	return NewLimiter(limit, time.Minute, "Too many requests. Try again shortly.")
}
