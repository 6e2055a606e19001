package middleware

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
)

const (
	requestIDHeader     = "X-Request-ID"
	requestIDContextKey = "request_id"
	requestIDBytes      = 16
	requestIDMaxLen     = 64
)

var requestIDClock atomic.Uint64

// RequestIDConfig controls whether an upstream X-Request-ID is reused.
type RequestIDConfig struct {
	TrustUpstream bool
}

// RequestID returns a middleware that tags every request with a fresh random
// ID. Upstream X-Request-ID headers are ignored; use RequestIDWithConfig to
// trust a proxy that sets them.
func RequestID() gin.HandlerFunc {
	return RequestIDWithConfig(RequestIDConfig{})
}

// RequestIDWithConfig returns the request-id middleware. The chosen ID is
// stored in the gin context under "request_id", echoed in the X-Request-ID
// response header, and attached to the request context through
// logger.WithContextAttrs so every log line carries it.
func RequestIDWithConfig(cfg RequestIDConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		if cfg.TrustUpstream {
			if upstream := c.GetHeader(requestIDHeader); isValidRequestID(upstream) {
				id = upstream
			}
		}
		if id == "" {
			id = newRequestID()
		}

		c.Set(requestIDContextKey, id)
		c.Header(requestIDHeader, id)

		ctx := logger.WithContextAttrs(c.Request.Context(), slog.String("request_id", id))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// isValidRequestID accepts 1-64 characters of [A-Za-z0-9-]. Anything else,
// including an empty header, is discarded.
func isValidRequestID(id string) bool {
	if id == "" || len(id) > requestIDMaxLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch ch := id[i]; {
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
		case ch == '-':
		default:
			return false
		}
	}
	return true
}

// GetRequestID returns the request ID set by the middleware, or "" when the
// middleware did not run.
func GetRequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDContextKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// newRequestID produces 32 hex characters of randomness. If the system
// source fails, it falls back to a timestamp plus a process-local counter
// so IDs stay unique.
func newRequestID() string {
	b := make([]byte, requestIDBytes)
	if _, err := rand.Read(b); err != nil {
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], requestIDClock.Add(1))
	}
	return hex.EncodeToString(b)
}
