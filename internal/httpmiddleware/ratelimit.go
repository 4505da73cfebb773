package httpmiddleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// IPLimiter is an in-memory per-client token bucket. The console sits
// behind a single instance, so in-process state is enough; a Redis-backed
// limiter would be the next step for a multi-replica deploy.
type IPLimiter struct {
	capacity int
	perMin   int
	mu       sync.Mutex
	buckets  map[string]*tokenBucket
	lastScan time.Time
}

type tokenBucket struct {
	tokens int
	last   time.Time
}

// staleAfter is how long an idle client keeps its bucket before pruning.
const staleAfter = 10 * time.Minute

// NewIPLimiter allows perMinute requests per client IP with bursts of the
// same size.
func NewIPLimiter(perMinute int) *IPLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &IPLimiter{
		capacity: perMinute,
		perMin:   perMinute,
		buckets:  make(map[string]*tokenBucket),
		lastScan: time.Now(),
	}
}

// Middleware rejects over-limit requests with 429.
func (l *IPLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		if !l.allow(ip, time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (l *IPLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if now.Sub(l.lastScan) > staleAfter {
		l.prune(now)
		l.lastScan = now
	}

	b, ok := l.buckets[key]
	if !ok {
		l.buckets[key] = &tokenBucket{tokens: l.capacity - 1, last: now}
		return true
	}
	refill := int(now.Sub(b.last).Minutes() * float64(l.perMin))
	if refill > 0 {
		b.tokens += refill
		if b.tokens > l.capacity {
			b.tokens = l.capacity
		}
		b.last = now
	}
	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// prune drops buckets that have been idle long enough to be full again
// anyway. Caller holds the lock.
func (l *IPLimiter) prune(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.last) > staleAfter {
			delete(l.buckets, key)
		}
	}
}
