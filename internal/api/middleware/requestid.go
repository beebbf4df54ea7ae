package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/polyprec/internal/shared/id"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID accepts a well-formed incoming X-Request-ID or assigns a new
// one, stores it in the context and echoes it in the response.
func RequestID(gen *id.Generator) gin.HandlerFunc {
	if gen == nil {
		gen = id.Default()
	}
	return func(c *gin.Context) {
		rid := id.RequestID(c.GetHeader(RequestIDHeader))
		if !id.IsValid(string(rid)) {
			rid = id.RequestID(gen.GenerateWithPrefix(id.RequestPrefix))
		}
		c.Set(requestIDKey, string(rid))
		c.Header(RequestIDHeader, string(rid))
		c.Next()
	}
}

// GetRequestID returns the ID assigned by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
