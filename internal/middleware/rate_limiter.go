package middleware

import (
	"net/http"
	"sync"
	"time"

	"campuskart/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ipWindow is a fixed-window per-IP counter. One instance backs the login
// limiter, another the general API limiter.
type ipWindow struct {
	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	count     int
	windowEnd time.Time
}

func newIPWindow() *ipWindow {
	return &ipWindow{buckets: make(map[string]*bucket)}
}

// allow counts one hit for ip and reports whether it stays within limit.
// The window end is returned for the Retry-After header.
func (w *ipWindow) allow(ip string, limit int, window time.Duration) (bool, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	b, ok := w.buckets[ip]
	if !ok || now.After(b.windowEnd) {
		b = &bucket{windowEnd: now.Add(window)}
		w.buckets[ip] = b
	}
	b.count++
	return b.count <= limit, b.windowEnd
}

// purge drops expired buckets and returns how many were removed.
func (w *ipWindow) purge(now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	removed := 0
	for ip, b := range w.buckets {
		if now.After(b.windowEnd) {
			delete(w.buckets, ip)
			removed++
		}
	}
	return removed
}

var (
	loginWindow = newIPWindow()
	apiWindow   = newIPWindow()
)

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, _ := loginWindow.allow(c.ClientIP(), 20, time.Minute)
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many login attempts, try again in a minute"))
			return
		}
		c.Next()
	}
}

// RateLimiter returns a general-purpose per-IP rate limiter.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := apiWindow.allow(c.ClientIP(), limit, window)
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("too many requests, try again shortly"))
			return
		}
		c.Next()
	}
}

// Expired buckets from IPs that never return would otherwise accumulate
// forever; sweep them on a slow ticker.
const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			purged := loginWindow.purge(now) + apiWindow.purge(now)
			if purged > 0 {
				log.Debug().Int("buckets_purged", purged).Msg("rate limiter swept")
			}
		}
	}()
}
