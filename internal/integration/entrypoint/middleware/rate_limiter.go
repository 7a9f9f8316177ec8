package middleware

import (
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	domainerror "github.com/veresiye/backend/internal/domain/error"
	"github.com/veresiye/backend/internal/integration/entrypoint/dto"
)

// Login is the only endpoint worth brute-forcing, so a small fixed window
// per client IP is enough.
const (
	loginAttemptsPerWindow = 5
	loginWindow            = time.Minute
)

type attemptWindow struct {
	count int
	ends  time.Time
}

// RateLimiter caps login attempts per client IP within a fixed window.
// State lives in memory; a restart forgives everyone, which is fine for a
// single-instance deployment.
type RateLimiter struct {
	mu        sync.Mutex
	windows   map[string]*attemptWindow
	limit     int
	window    time.Duration
	lastSweep time.Time
}

// NewRateLimiter creates a limiter with the login defaults.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*attemptWindow),
		limit:   loginAttemptsPerWindow,
		window:  loginWindow,
	}
}

// Middleware rejects the request with 429 once the caller's window is
// exhausted. The test environment bypasses it so suites can hammer login.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if os.Getenv("ENV") == "test" {
			c.Next()
			return
		}

		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}

		allowed, retryAfter := rl.take(key)
		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
			c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// take consumes one attempt for key. When the window is spent it returns
// false with the time left until the window rolls over.
func (rl *RateLimiter) take(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.sweep(now)

	w, ok := rl.windows[key]
	if !ok || now.After(w.ends) {
		rl.windows[key] = &attemptWindow{count: 1, ends: now.Add(rl.window)}
		return true, 0
	}
	if w.count >= rl.limit {
		return false, w.ends.Sub(now)
	}
	w.count++
	return true, 0
}

// sweep drops expired windows so the map does not grow with every IP that
// ever hit the endpoint. Runs at most once per window.
func (rl *RateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.window {
		return
	}
	rl.lastSweep = now
	for key, w := range rl.windows {
		if now.After(w.ends) {
			delete(rl.windows, key)
		}
	}
}
