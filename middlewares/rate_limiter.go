package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeremiapane/restaurant-ordering/utils"
)

// RateLimiter keeps one token bucket per client IP. Buckets untouched for
// longer than idleTTL are dropped on the next sweep.
type RateLimiter struct {
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	message string

	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perSecond requests per second per IP with an equal burst.
func NewRateLimiter(perSecond int) *RateLimiter {
	return newRateLimiter(rate.Limit(perSecond), perSecond, "too many requests")
}

// NewStrictRateLimiter is used on login: perMinute attempts per IP.
func NewStrictRateLimiter(perMinute int) *RateLimiter {
	return newRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute, "too many attempts, please wait a moment")
}

func newRateLimiter(limit rate.Limit, burst int, message string) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limit:     limit,
		burst:     burst,
		idleTTL:   10 * time.Minute,
		message:   message,
		clients:   make(map[string]*client),
		lastSweep: time.Now(),
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.idleTTL {
		for k, cl := range rl.clients {
			if now.Sub(cl.lastSeen) > rl.idleTTL {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	cl, ok := rl.clients[ip]
	if !ok {
		cl = &client{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			utils.RespondErrorMessage(c, http.StatusTooManyRequests, rl.message)
			c.Abort()
			return
		}
		c.Next()
	}
}
