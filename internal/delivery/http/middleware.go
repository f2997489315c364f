package http

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fridgechef/backend/internal/observability/metrics"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// CORSMiddleware handles CORS for the web app and browser extension
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return isAllowedOrigin(origin, allowedOrigins)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	})
}

// isAllowedOrigin checks if the origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	if origin == "" {
		return false
	}
	for _, allowed := range allowedOrigins {
		// Support wildcard matching for chrome-extension://*
		if strings.HasSuffix(allowed, "*") {
			prefix := strings.TrimSuffix(allowed, "*")
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// RequestIDMiddleware assigns an X-Request-ID to every request
func RequestIDMiddleware() gin.HandlerFunc {
	return requestid.New(requestid.WithGenerator(uuid.NewString))
}

// LoggerMiddleware logs each request at a level chosen by status class
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", requestid.Get(c)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		switch {
		case status >= 500:
			log.Error("server error", fields...)
		case status >= 400:
			log.Warn("client error", fields...)
		default:
			log.Info("request completed", fields...)
		}
	}
}

// RecoveryMiddleware recovers from panics and replies with a JSON 500
func RecoveryMiddleware(log *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Code:    ErrCodeInternalError,
			Message: "internal server error",
		})
	})
}

// MetricsMiddleware counts requests by route template and status
func MetricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		m.ObserveHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status())
	}
}

// ipRateLimiter keeps one token bucket per client IP. Idle buckets expire.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters *gocache.Cache
	limit    rate.Limit
	burst    int
}

func newIPRateLimiter(perMinute, burst int, idleTTL time.Duration) *ipRateLimiter {
	if burst <= 0 {
		burst = perMinute
	}
	return &ipRateLimiter{
		limiters: gocache.New(idleTTL, idleTTL),
		limit:    rate.Limit(float64(perMinute) / 60),
		burst:    burst,
	}
}

// get returns the IP's limiter, creating it on first use. go-cache locks each
// call on its own; mu makes the lookup and insert one step so concurrent first
// requests from an IP share a single bucket.
func (l *ipRateLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.limiters.Get(ip); ok {
		limiter := v.(*rate.Limiter)
		l.limiters.SetDefault(ip, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(l.limit, l.burst)
	l.limiters.SetDefault(ip, limiter)
	return limiter
}

// RateLimitMiddleware limits each client IP to perMinute requests with the given burst
func RateLimitMiddleware(perMinute, burst int) gin.HandlerFunc {
	limiter := newIPRateLimiter(perMinute, burst, 10*time.Minute)
	retryAfter := strconv.Itoa(int(math.Ceil(60 / float64(perMinute))))

	return func(c *gin.Context) {
		if !limiter.get(c.ClientIP()).Allow() {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Code:    ErrCodeTooManyRequests,
				Message: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
