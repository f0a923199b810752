package middleware

import (
	"HotelGolang/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewTokenMiddleware(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewLoggingMiddleware() fiber.Handler
	GetRequestID(ctx *fiber.Ctx) string
}

type middleware struct {
	token               *tokenMiddleware
	rateLimitter        *rateLimiter
	loggingMiddleware   *loggingMiddleware
	requestIDMiddleware fiber.Handler
	log                 *logrus.Logger
}

type options struct {
	requestsPerSecond float64
	burst             int
	roles             []string
	utils             utils.IUtils
}

type Option func(*options)

func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(o *options) {
		if requestsPerSecond > 0 {
			o.requestsPerSecond = requestsPerSecond
		}
		if burst > 0 {
			o.burst = burst
		}
	}
}

// WithOperatorRoles replaces the roles accepted by the token middleware.
func WithOperatorRoles(roles ...string) Option {
	return func(o *options) {
		if len(roles) > 0 {
			o.roles = roles
		}
	}
}

func WithUtils(u utils.IUtils) Option {
	return func(o *options) {
		if u != nil {
			o.utils = u
		}
	}
}

func New(logger *logrus.Logger, opts ...Option) Middleware {
	o := options{
		requestsPerSecond: 50,
		burst:             100,
		roles:             defaultOperatorRoles(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.utils == nil {
		o.utils = utils.New()
	}

	return &middleware{
		token:               newTokenMiddleware(o.roles...),
		rateLimitter:        newRateLimiter(rate.Limit(o.requestsPerSecond), o.burst),
		loggingMiddleware:   newLoggingMiddleware(logger),
		requestIDMiddleware: NewRequestIDMiddleware(o.utils),
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}
