// Package middleware carries the auth gate: JWT verification and principal
// resolution for protected routes.
package middleware

import (
	"errors"
	"log/slog"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/unnamedbank/banking/pkg/config"
	clientsvc "github.com/unnamedbank/banking/pkg/service/client"
	"github.com/unnamedbank/banking/pkg/service/transfer"
)

// PrincipalKey is where ClientPrincipal stores the resolved principal in the
// request locals.
const PrincipalKey = "principal"

// JwtProtected verifies the bearer token on the route. Missing or malformed
// credentials are a 401; a bad signature or an expired token is a 403, the
// way proof of identity that fails its check differs from no proof at all.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret), JWTAlg: jwtware.HS512},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return problem(c, fiber.StatusForbidden, err, "The JWT token has expired")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return problem(c, fiber.StatusForbidden, err, "The JWT signature is invalid")
	default:
		return problem(c, fiber.StatusUnauthorized, err,
			"A valid bearer token is required")
	}
}

func problem(c *fiber.Ctx, status int, err error, description string) error {
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(fiber.Map{
		"status":      status,
		"detail":      err.Error(),
		"description": description,
	})
}

// ClientPrincipal resolves the verified token subject through the identity
// store and attaches a Principal to the request. It runs after JwtProtected,
// so an unresolvable subject means the client vanished since issue time.
func ClientPrincipal(svc *clientsvc.Service, logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok || token == nil {
			return problem(c, fiber.StatusUnauthorized,
				errors.New("no verified token on request"),
				"A valid bearer token is required")
		}
		subject, err := token.Claims.GetSubject()
		if err != nil || subject == "" {
			return problem(c, fiber.StatusUnauthorized,
				errors.New("token has no subject"),
				"A valid bearer token is required")
		}
		resolved, err := svc.GetByUsername(c.Context(), subject)
		if err != nil {
			logger.Warn("Principal resolution failed", "subject", subject, "error", err)
			return problem(c, fiber.StatusUnauthorized,
				errors.New("unknown token subject"),
				"A valid bearer token is required")
		}
		c.Locals(PrincipalKey, &transfer.Principal{
			ClientID: resolved.ID,
			Username: resolved.Username,
		})
		return c.Next()
	}
}

// PrincipalFromCtx returns the principal attached by ClientPrincipal, or nil.
func PrincipalFromCtx(c *fiber.Ctx) *transfer.Principal {
	p, _ := c.Locals(PrincipalKey).(*transfer.Principal)
	return p
}
