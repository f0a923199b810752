package context

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type key string

const (
	RequestIDKey = "request_id"
	SessionIDKey = "session_id"

	localsRequestID = "X-Request-ID"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, key(SessionIDKey), sessionID)
}

func GetSessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(key(SessionIDKey)).(string)
	return sessionID
}

// FromFiberCtx derives a request scoped context carrying the request id set
// by the request id middleware, falling back to the inbound header.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	ctx := c.UserContext()

	requestID, ok := c.Locals(localsRequestID).(string)
	if !ok || requestID == "" {
		requestID = c.Get(localsRequestID)

		if requestID == "" {
			requestID = "unknown"
		}
	}

	return WithRequestID(ctx, requestID)
}
