package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Limiter throttles an endpoint with a shared token bucket.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter allows reqPerSec sustained requests with bursts of burst.
func NewLimiter(reqPerSec float64, burst int) *Limiter {
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(reqPerSec), burst)}
}

// Allow reports whether a request may proceed now, consuming a token if so.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// RetryAfter estimates how long until the next token is available.
func (l *Limiter) RetryAfter() time.Duration {
	r := l.limiter.Reserve()
	defer r.Cancel()
	return r.Delay()
}

// Middleware rejects requests with 429 when the bucket is empty.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow() {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(l.RetryAfter())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "Too many requests",
				"details": "listings are rate limited; retry later",
			})
			return
		}
		c.Next()
	}
}

// retryAfterSeconds rounds up to whole seconds, minimum one.
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
