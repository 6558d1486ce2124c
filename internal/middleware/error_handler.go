package middleware

import (
	"net/http"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	RequestIDKey    = "request_id"
	RequestIDHeader = "X-Request-ID"
)

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// ErrorHandler renders errors attached with c.Error by handlers that did not
// write a response themselves. Causes of opaque errors are only logged.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status, body := apierror.Body(err)
		if status >= http.StatusInternalServerError {
			log.Error().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("path", c.FullPath()).
				Str("method", c.Request.Method).
				Err(err).
				Msg("unhandled error")
		}
		c.AbortWithStatusJSON(status, body)
	}
}

// Recovery converts panics into 500 responses without exposing the stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Internal server error"))
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ev := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
