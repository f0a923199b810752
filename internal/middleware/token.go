package middleware

import (
	"HotelGolang/internal/entity"
	jwtPkg "HotelGolang/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
)

type tokenMiddleware struct {
	allowedRoles map[string]bool
}

func newTokenMiddleware(roles ...string) *tokenMiddleware {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return &tokenMiddleware{allowedRoles: allowed}
}

// NewTokenMiddleware guards the admin routes: a valid bearer token whose role
// claim is one of the operator roles.
func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)
	fields := logrus.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
		"method":     ctx.Method(),
		"client_ip":  ctx.IP(),
	}

	if ctx.Get("Authorization") == "" {
		m.log.WithFields(fields).Warn("Authorization header is missing")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	token, err := jwtPkg.VerifyTokenHeader(ctx, AccessTokenSecret)
	if err != nil {
		fields["error"] = err.Error()
		m.log.WithFields(fields).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		m.log.WithFields(fields).Warn("Invalid token claims")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	operator, err := jwtPkg.OperatorFromClaims(claims)
	if err != nil {
		fields["error"] = err.Error()
		m.log.WithFields(fields).Warn("Token claims check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	if !m.token.allowedRoles[operator.Role] {
		fields["role"] = operator.Role
		m.log.WithFields(fields).Warn("Operator role not allowed")
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Forbidden, operator role not allowed",
		})
	}

	ctx.Locals(jwtPkg.OperatorLocalsKey, operator)

	m.log.WithFields(logrus.Fields{
		"request_id":  requestID,
		"operator_id": operator.ID,
		"role":        operator.Role,
	}).Debug("Authentication successful")
	return ctx.Next()
}

func defaultOperatorRoles() []string {
	return []string{entity.OperatorRoleAdmin, entity.OperatorRoleAnalyst}
}
